// Package sync implements asynchronous background reconciliation for playback
// reports that failed to reach the server.
package sync

import (
	"bytes"
	"encoding/json"
	"math/rand"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/finetic-cli/finetic/auth"
	"github.com/finetic-cli/finetic/network"
	"github.com/finetic-cli/finetic/where"
)

// StopReport captures a final playback position whose delivery failed, queued
// for deferred reconciliation.
type StopReport struct {
	Timestamp     int64  `json:"timestamp"`
	ItemID        string `json:"item_id"`
	MediaSourceID string `json:"media_source_id"`
	PlaySessionID string `json:"play_session_id"`
	PositionTicks int64  `json:"position_ticks"`
}

func getSyncFile() string {
	dir := where.Config()
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "failed_reports.json")
}

// QueueFailure persists a failed stop report to a local JSON-log for deferred reconciliation.
func QueueFailure(itemID, mediaSourceID, playSessionID string, positionTicks int64) error {
	f, err := os.OpenFile(getSyncFile(), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer f.Close()

	report := StopReport{
		Timestamp:     time.Now().Unix(),
		ItemID:        itemID,
		MediaSourceID: mediaSourceID,
		PlaySessionID: playSessionID,
		PositionTicks: positionTicks,
	}

	// Stream JSON directly to disk buffer
	encoder := json.NewEncoder(f)
	return encoder.Encode(report)
}

// ReconcileFailures initializes an asynchronous background process to redeliver
// previously failed stop reports. The journal is truncated only when every
// queued report reaches the server.
func ReconcileFailures() {
	go func() {
		path := getSyncFile()
		info, err := os.Stat(path)
		if err != nil || info.Size() == 0 {
			return
		}

		content, err := os.ReadFile(path)
		if err != nil {
			return
		}

		var reports []StopReport
		decoder := json.NewDecoder(bytes.NewReader(content))
		for decoder.More() {
			var r StopReport
			if err := decoder.Decode(&r); err == nil {
				reports = append(reports, r)
			}
		}

		if len(reports) == 0 {
			return
		}

		creds, err := auth.Get()
		if err != nil {
			return
		}

		successCount := 0

		for i, r := range reports {
			// Apply incremental delay with randomized jitter to manage request throttling.
			backoff := time.Duration((1<<i)*100)*time.Millisecond + time.Duration(rand.Intn(100))*time.Millisecond
			time.Sleep(backoff)

			payload, err := json.Marshal(map[string]any{
				"ItemId":        r.ItemID,
				"MediaSourceId": r.MediaSourceID,
				"PlaySessionId": r.PlaySessionID,
				"PositionTicks": r.PositionTicks,
			})
			if err != nil {
				continue
			}

			req, err := http.NewRequest(http.MethodPost, creds.ServerURL+"/Sessions/Playing/Stopped", bytes.NewBuffer(payload))
			if err != nil {
				continue
			}

			req.Header.Set("Authorization", auth.MediaBrowserHeader(creds.DeviceID, creds.AccessToken))
			req.Header.Set("Content-Type", "application/json")

			resp, err := network.Client.Do(req)
			if err == nil {
				resp.Body.Close()
				if resp.StatusCode < 300 {
					successCount++
				}
			}
		}

		// Truncate the journal only when every report reached the server;
		// a partial run keeps the full backlog for the next attempt.
		if successCount == len(reports) {
			_ = os.Truncate(path, 0)
		}
	}()
}
