package auth

import (
	"fmt"

	"github.com/finetic-cli/finetic/constant"
)

// MediaBrowserHeader builds the Authorization header value Jellyfin expects,
// carrying the client identity, the device id and the access token.
func MediaBrowserHeader(deviceID, token string) string {
	return fmt.Sprintf(
		`MediaBrowser Client="%s", Device="%s", DeviceId="%s", Version="%s", Token="%s"`,
		constant.ClientName, constant.DeviceName, deviceID, constant.Version, token,
	)
}
