package history

import (
	"fmt"

	"github.com/finetic-cli/finetic/jellyfin"
	"github.com/finetic-cli/finetic/playback"
)

// SavedItem represents a single playback entry preserved in the user's history.
type SavedItem struct {
	ItemID            string  `json:"item_id"`
	Name              string  `json:"name"`
	Type              string  `json:"type"`
	SeriesName        string  `json:"series_name,omitempty"`
	IndexNumber       int     `json:"index_number,omitempty"`
	ParentIndexNumber int     `json:"parent_index_number,omitempty"`
	SourceID          string  `json:"source_id"`
	PositionTicks     int64   `json:"position_ticks"`
	WatchedPercentage float64 `json:"watched_percentage"`
	WatchedAt         int64   `json:"watched_at"`
}

func (s *SavedItem) encode() string {
	return s.ItemID
}

func (s *SavedItem) String() string {
	if s.Type == jellyfin.KindEpisode && s.SeriesName != "" {
		return fmt.Sprintf("%s S%02dE%02d - %s", s.SeriesName, s.ParentIndexNumber, s.IndexNumber, s.Name)
	}
	return s.Name
}

// Position reports the saved playhead in seconds.
func (s *SavedItem) Position() float64 {
	return playback.TicksToSeconds(s.PositionTicks)
}

func newSavedItem(item *jellyfin.Item, sourceID string) *SavedItem {
	return &SavedItem{
		ItemID:            item.ID,
		Name:              item.Name,
		Type:              item.Type,
		SeriesName:        item.SeriesName,
		IndexNumber:       item.IndexNumber,
		ParentIndexNumber: item.ParentIndexNumber,
		SourceID:          sourceID,
	}
}
