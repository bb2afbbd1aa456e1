package jellyfin

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/finetic-cli/finetic/log"
)

// Item kinds returned by the server.
const (
	KindMovie   = "Movie"
	KindSeries  = "Series"
	KindEpisode = "Episode"
)

// Item is the subset of a Jellyfin library item relevant to browsing and playback.
type Item struct {
	ID                string        `json:"Id"`
	Name              string        `json:"Name"`
	Type              string        `json:"Type"`
	SeriesName        string        `json:"SeriesName,omitempty"`
	IndexNumber       int           `json:"IndexNumber,omitempty"`
	ParentIndexNumber int           `json:"ParentIndexNumber,omitempty"`
	ProductionYear    int           `json:"ProductionYear,omitempty"`
	RunTimeTicks      int64         `json:"RunTimeTicks,omitempty"`
	MediaSources      []MediaSource `json:"MediaSources,omitempty"`
	Chapters          []Chapter     `json:"Chapters,omitempty"`
	People            []Person      `json:"People,omitempty"`
	UserData          *UserData     `json:"UserData,omitempty"`
}

// DisplayName formats the item for menus: series items carry their episode numbering.
func (i *Item) DisplayName() string {
	if i.Type == KindEpisode && i.SeriesName != "" {
		return fmt.Sprintf("%s S%02dE%02d - %s", i.SeriesName, i.ParentIndexNumber, i.IndexNumber, i.Name)
	}
	return i.Name
}

// MediaSource is one playable encoding variant of an item.
type MediaSource struct {
	ID           string        `json:"Id"`
	Name         string        `json:"Name,omitempty"`
	Container    string        `json:"Container,omitempty"`
	MediaStreams []MediaStream `json:"MediaStreams,omitempty"`
}

// MediaStream describes one stream (video, audio, subtitle) inside a media source.
type MediaStream struct {
	Index        int    `json:"Index"`
	Type         string `json:"Type"`
	Codec        string `json:"Codec,omitempty"`
	Language     string `json:"Language,omitempty"`
	DisplayTitle string `json:"DisplayTitle,omitempty"`
	IsDefault    bool   `json:"IsDefault,omitempty"`
	IsExternal   bool   `json:"IsExternal,omitempty"`
}

// Chapter is the wire representation of a chapter marker; the server only supplies starts.
type Chapter struct {
	StartPositionTicks int64  `json:"StartPositionTicks"`
	Name               string `json:"Name,omitempty"`
}

// Person is a cast or crew entry attached to an item.
type Person struct {
	ID   string `json:"Id"`
	Name string `json:"Name"`
	Role string `json:"Role,omitempty"`
	Type string `json:"Type,omitempty"`
}

// UserData carries per-user playback state, including the resume position.
type UserData struct {
	PlaybackPositionTicks int64   `json:"PlaybackPositionTicks"`
	PlayedPercentage      float64 `json:"PlayedPercentage,omitempty"`
	Played                bool    `json:"Played,omitempty"`
}

type itemsResponse struct {
	Items            []Item `json:"Items"`
	TotalRecordCount int    `json:"TotalRecordCount"`
}

// Item fetches the full detail record for a single library item, including
// media sources, chapters, and people.
func (c *Client) Item(itemID string) (*Item, error) {
	var item Item
	err := c.get(fmt.Sprintf("/Users/%s/Items/%s", c.userID, itemID), nil, &item)
	if err != nil {
		return nil, fmt.Errorf("fetch item %s: %w", itemID, err)
	}
	return &item, nil
}

// ResumeItems returns the user's partially-watched items, most recent first.
func (c *Client) ResumeItems(limit int) ([]Item, error) {
	query := url.Values{}
	query.Set("Limit", strconv.Itoa(limit))
	query.Set("MediaTypes", "Video")
	query.Set("Fields", "MediaSources")

	var decoded itemsResponse
	err := c.get(fmt.Sprintf("/Users/%s/Items/Resume", c.userID), query, &decoded)
	if err != nil {
		return nil, fmt.Errorf("fetch resume items: %w", err)
	}

	log.Infof("Fetched %d resume items", len(decoded.Items))
	return decoded.Items, nil
}

// Search performs a recursive library search over movies, series, and episodes.
func (c *Client) Search(term string, limit int) ([]Item, error) {
	query := url.Values{}
	query.Set("searchTerm", term)
	query.Set("IncludeItemTypes", "Movie,Series,Episode")
	query.Set("Recursive", "true")
	query.Set("Limit", strconv.Itoa(limit))

	var decoded itemsResponse
	err := c.get(fmt.Sprintf("/Users/%s/Items", c.userID), query, &decoded)
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", term, err)
	}

	log.Infof("Search %q returned %d results", term, len(decoded.Items))
	return decoded.Items, nil
}
