// Package auth provides a high-level API for persisting and retrieving Jellyfin credentials from the system keyring.
package auth

import (
	"encoding/json"
	"errors"

	"github.com/zalando/go-keyring"
)

const (
	service = "finetic-cli"
	user    = "jellyfin-credentials"
)

// ErrNotLoggedIn indicates that no Jellyfin credentials are stored on this machine.
var ErrNotLoggedIn = errors.New("not logged in, run \"finetic login\" first")

// Credentials holds everything required to talk to a Jellyfin server on behalf of a user.
type Credentials struct {
	ServerURL   string `json:"server_url"`
	Username    string `json:"username"`
	UserID      string `json:"user_id"`
	DeviceID    string `json:"device_id"`
	AccessToken string `json:"access_token"`
}

// Set persists the Jellyfin credentials to the system keyring.
func Set(creds Credentials) error {
	encoded, err := json.Marshal(creds)
	if err != nil {
		return err
	}
	return keyring.Set(service, user, string(encoded))
}

// Get retrieves the Jellyfin credentials from the system keyring.
func Get() (Credentials, error) {
	var creds Credentials

	raw, err := keyring.Get(service, user)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return creds, ErrNotLoggedIn
		}
		return creds, err
	}

	if err := json.Unmarshal([]byte(raw), &creds); err != nil {
		return creds, err
	}

	if creds.ServerURL == "" || creds.AccessToken == "" {
		return creds, ErrNotLoggedIn
	}

	return creds, nil
}

// Delete removes the Jellyfin credentials from the system keyring.
func Delete() error {
	err := keyring.Delete(service, user)
	if errors.Is(err, keyring.ErrNotFound) {
		return nil
	}
	return err
}
