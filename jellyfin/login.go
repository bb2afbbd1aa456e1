package jellyfin

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/finetic-cli/finetic/auth"
	"github.com/finetic-cli/finetic/constant"
	"github.com/finetic-cli/finetic/log"
	"github.com/finetic-cli/finetic/network"
	"github.com/google/uuid"
)

// authenticateResponse mirrors the relevant fields of /Users/AuthenticateByName.
type authenticateResponse struct {
	AccessToken string `json:"AccessToken"`
	User        struct {
		ID   string `json:"Id"`
		Name string `json:"Name"`
	} `json:"User"`
}

// Authenticate performs username/password authentication against a Jellyfin server
// and returns ready-to-persist credentials. A fresh device id is generated per login.
func Authenticate(serverURL, username, password string) (auth.Credentials, error) {
	var creds auth.Credentials

	serverURL = strings.TrimRight(serverURL, "/")
	deviceID := uuid.NewString()

	body, err := json.Marshal(map[string]string{
		"Username": username,
		"Pw":       password,
	})
	if err != nil {
		return creds, err
	}

	req, err := http.NewRequest(http.MethodPost, serverURL+"/Users/AuthenticateByName", bytes.NewBuffer(body))
	if err != nil {
		return creds, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", fmt.Sprintf(
		`MediaBrowser Client="%s", Device="%s", DeviceId="%s", Version="%s"`,
		constant.ClientName, constant.DeviceName, deviceID, constant.Version,
	))

	log.Infof("Authenticating against %s as %s", serverURL, username)
	resp, err := network.Client.Do(req)
	if err != nil {
		log.Error(err)
		return creds, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return creds, fmt.Errorf("invalid username or password")
	}
	if resp.StatusCode != http.StatusOK {
		return creds, fmt.Errorf("invalid response code %d", resp.StatusCode)
	}

	var decoded authenticateResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return creds, err
	}

	creds = auth.Credentials{
		ServerURL:   serverURL,
		Username:    decoded.User.Name,
		UserID:      decoded.User.ID,
		DeviceID:    deviceID,
		AccessToken: decoded.AccessToken,
	}
	return creds, nil
}
