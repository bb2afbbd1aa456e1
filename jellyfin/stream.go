package jellyfin

import (
	"fmt"
	"net/url"
	"strconv"
)

// StreamURL builds an HLS stream URL for the given item and media source.
// maxBitrate caps the video bitrate in bits per second; zero delegates the
// decision entirely to the server's transcoding configuration.
func (c *Client) StreamURL(itemID, mediaSourceID string, maxBitrate int) (string, error) {
	if itemID == "" || mediaSourceID == "" {
		return "", fmt.Errorf("stream url requires item and source identifiers")
	}

	query := url.Values{}
	query.Set("MediaSourceId", mediaSourceID)
	query.Set("DeviceId", c.deviceID)
	query.Set("api_key", c.token)
	if maxBitrate > 0 {
		query.Set("VideoBitrate", strconv.Itoa(maxBitrate))
	}

	return fmt.Sprintf("%s/Videos/%s/main.m3u8?%s", c.baseURL, itemID, query.Encode()), nil
}
