package jellyfin

import (
	"github.com/finetic-cli/finetic/internal/sync"
	"github.com/finetic-cli/finetic/log"
)

// playMethod reported on every session call. Stream URLs always go through the
// server's HLS pipeline, so the method is constant for this client.
const playMethod = "Transcode"

// ReportPlaybackStart notifies the server that a playback session has begun.
func (c *Client) ReportPlaybackStart(itemID, mediaSourceID, playSessionID string) error {
	log.Infof("Reporting playback start for item %s (session %s)", itemID, playSessionID)
	return c.post("/Sessions/Playing", map[string]any{
		"ItemId":              itemID,
		"MediaSourceId":       mediaSourceID,
		"PlaySessionId":       playSessionID,
		"CanSeek":             true,
		"QueueableMediaTypes": []string{"Video", "Audio"},
		"PlayMethod":          playMethod,
	})
}

// ReportPlaybackProgress notifies the server of the current position and pause state.
func (c *Client) ReportPlaybackProgress(itemID, mediaSourceID, playSessionID string, positionTicks int64, paused bool) error {
	return c.post("/Sessions/Playing/Progress", map[string]any{
		"ItemId":        itemID,
		"MediaSourceId": mediaSourceID,
		"PlaySessionId": playSessionID,
		"PositionTicks": positionTicks,
		"IsPaused":      paused,
		"PlayMethod":    playMethod,
	})
}

// ReportPlaybackStopped notifies the server that the session has ended at the given position.
func (c *Client) ReportPlaybackStopped(itemID, mediaSourceID, playSessionID string, positionTicks int64) error {
	log.Infof("Reporting playback stopped for item %s (session %s)", itemID, playSessionID)
	err := c.post("/Sessions/Playing/Stopped", map[string]any{
		"ItemId":        itemID,
		"MediaSourceId": mediaSourceID,
		"PlaySessionId": playSessionID,
		"PositionTicks": positionTicks,
		"PlayMethod":    playMethod,
	})
	if err != nil {
		// The final position matters most for server-side resume, so a failed
		// stop report is journaled and redelivered on the next startup.
		if queueErr := sync.QueueFailure(itemID, mediaSourceID, playSessionID, positionTicks); queueErr != nil {
			log.Warnf("Queueing failed stop report: %s", queueErr)
		}
	}
	return err
}
