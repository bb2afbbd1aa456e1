// Package jellyfin provides a typed client for the subset of the Jellyfin server API
// required for library browsing and supervised playback sessions.
//
// All positional values on this boundary are expressed in server ticks (100 nanoseconds);
// the playback package is the sole translation point to and from seconds.
package jellyfin

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/finetic-cli/finetic/auth"
	"github.com/finetic-cli/finetic/log"
	"github.com/finetic-cli/finetic/network"
)

// ErrUnauthorized indicates that the server rejected our access token.
// It is not recoverable locally; callers must force re-authentication.
var ErrUnauthorized = errors.New("jellyfin session invalid, run \"finetic login\" again")

// Client is an authenticated handle to a single Jellyfin server.
type Client struct {
	baseURL  string
	token    string
	userID   string
	deviceID string

	http *http.Client
}

// New constructs a Client from explicit connection parameters.
func New(serverURL, token, userID, deviceID string) *Client {
	return &Client{
		baseURL:  strings.TrimRight(serverURL, "/"),
		token:    token,
		userID:   userID,
		deviceID: deviceID,
		http:     network.Client,
	}
}

// FromKeyring constructs a Client from the credentials stored in the system keyring.
func FromKeyring() (*Client, error) {
	creds, err := auth.Get()
	if err != nil {
		return nil, err
	}
	return New(creds.ServerURL, creds.AccessToken, creds.UserID, creds.DeviceID), nil
}

// UserID returns the authenticated user's identifier.
func (c *Client) UserID() string {
	return c.userID
}

// ServerURL returns the normalized base URL of the connected server.
func (c *Client) ServerURL() string {
	return c.baseURL
}

// authHeader builds the MediaBrowser authorization header carrying client identity and token.
func (c *Client) authHeader() string {
	return auth.MediaBrowserHeader(c.deviceID, c.token)
}

// get performs an authenticated GET against the server and decodes the JSON response into out.
func (c *Client) get(path string, query url.Values, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequest(http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", c.authHeader())
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		log.Error(err)
		return err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return err
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

// post performs an authenticated POST with a JSON body. The response body is discarded.
func (c *Client) post(path string, body any) error {
	encoded, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequest(http.MethodPost, c.baseURL+path, bytes.NewBuffer(encoded))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", c.authHeader())
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		log.Error(err)
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	return checkStatus(resp)
}

// checkStatus maps HTTP status codes to the client error taxonomy.
func checkStatus(resp *http.Response) error {
	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return ErrUnauthorized
	case resp.StatusCode >= 400:
		log.Errorf("jellyfin returned status code %d for %s", resp.StatusCode, resp.Request.URL.Path)
		return fmt.Errorf("invalid response code %d", resp.StatusCode)
	default:
		return nil
	}
}
