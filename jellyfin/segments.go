package jellyfin

import (
	"fmt"
	"net/url"

	"github.com/finetic-cli/finetic/log"
)

// Media segment kinds relevant to skip affordances.
const (
	SegmentIntro = "Intro"
	SegmentOutro = "Outro"
)

// MediaSegment is a named interval within an item, positioned in ticks.
type MediaSegment struct {
	ID         string `json:"Id"`
	ItemID     string `json:"ItemId"`
	Type       string `json:"Type"`
	StartTicks int64  `json:"StartTicks"`
	EndTicks   int64  `json:"EndTicks"`
}

type segmentsResponse struct {
	Items            []MediaSegment `json:"Items"`
	TotalRecordCount int            `json:"TotalRecordCount"`
}

// MediaSegments fetches the intro/outro segment markers for an item.
// Servers without a segment provider return an empty list; that is not a failure.
func (c *Client) MediaSegments(itemID string) ([]MediaSegment, error) {
	query := url.Values{}
	query.Add("includeSegmentTypes", SegmentIntro)
	query.Add("includeSegmentTypes", SegmentOutro)

	var decoded segmentsResponse
	if err := c.get("/MediaSegments/"+itemID, query, &decoded); err != nil {
		return nil, fmt.Errorf("fetch media segments: %w", err)
	}

	log.Infof("Fetched %d media segments for item %s", len(decoded.Items), itemID)
	return decoded.Items, nil
}
