package jellyfin

import (
	"fmt"

	"github.com/finetic-cli/finetic/log"
)

// SubtitleTrack is a descriptor for one selectable subtitle stream.
// Cue content is not part of the descriptor; it is fetched lazily on selection.
type SubtitleTrack struct {
	Index    int
	Label    string
	Language string
	Default  bool
	External bool
}

// SubtitleTracks derives the selectable subtitle descriptors from a media source's streams.
func SubtitleTracks(source *MediaSource) []SubtitleTrack {
	if source == nil {
		return nil
	}

	var tracks []SubtitleTrack
	for _, stream := range source.MediaStreams {
		if stream.Type != "Subtitle" {
			continue
		}

		label := stream.DisplayTitle
		if label == "" {
			label = fmt.Sprintf("Track %d", stream.Index)
		}

		tracks = append(tracks, SubtitleTrack{
			Index:    stream.Index,
			Label:    label,
			Language: stream.Language,
			Default:  stream.IsDefault,
			External: stream.IsExternal,
		})
	}
	return tracks
}

// TrackEvent is one raw subtitle cue as delivered by the server, positioned in ticks.
type TrackEvent struct {
	ID                 string `json:"Id"`
	Text               string `json:"Text"`
	StartPositionTicks int64  `json:"StartPositionTicks"`
	EndPositionTicks   int64  `json:"EndPositionTicks"`
}

type subtitleResponse struct {
	TrackEvents []TrackEvent `json:"TrackEvents"`
}

// SubtitleEvents fetches the cue payload for one subtitle stream of a media source.
// An empty payload is a valid result, not a failure.
func (c *Client) SubtitleEvents(itemID, mediaSourceID string, streamIndex int) ([]TrackEvent, error) {
	path := fmt.Sprintf("/Videos/%s/%s/Subtitles/%d/0/Stream.js", itemID, mediaSourceID, streamIndex)

	var decoded subtitleResponse
	if err := c.get(path, nil, &decoded); err != nil {
		return nil, fmt.Errorf("fetch subtitles for stream %d: %w", streamIndex, err)
	}

	log.Infof("Fetched %d subtitle events for stream %d", len(decoded.TrackEvents), streamIndex)
	return decoded.TrackEvents, nil
}
