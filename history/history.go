// Package history provides the implementation for tracking and persisting user media consumption state.
package history

import (
	"time"

	"github.com/finetic-cli/finetic/filesystem"
	"github.com/finetic-cli/finetic/jellyfin"
	"github.com/finetic-cli/finetic/where"
	"github.com/metafates/gache"
)

// cacher provides an abstracted, disk-backed registry for playback progress records.
var cacher = gache.New[map[string]*SavedItem](
	&gache.Options{
		Path:       where.History(),
		FileSystem: &filesystem.GacheFs{},
	},
)

// Get returns the complete collection of historical playback records from the persistent store.
func Get() (map[string]*SavedItem, error) {
	cached, expired, err := cacher.Get()
	if err != nil {
		return nil, err
	}
	if expired || cached == nil {
		return make(map[string]*SavedItem), nil
	}
	return cached, nil
}

// Save persists the playback progress of an item to the history registry.
func Save(item *jellyfin.Item, sourceID string, positionTicks int64, percentage float64) error {
	saved, err := Get()
	if err != nil {
		return err
	}

	record := newSavedItem(item, sourceID)
	record.PositionTicks = positionTicks
	record.WatchedAt = time.Now().Unix()

	// Idempotency: Maintain the maximum observed playback percentage to prevent regressions on re-watch.
	if existing, exists := saved[record.encode()]; exists {
		if percentage < existing.WatchedPercentage {
			percentage = existing.WatchedPercentage
		}
	}
	record.WatchedPercentage = percentage

	saved[record.encode()] = record

	return cacher.Set(saved)
}

// Remove permanently deletes a specific playback record from the history registry.
func Remove(item *SavedItem) error {
	saved, err := Get()
	if err != nil {
		return err
	}

	delete(saved, item.encode())
	return cacher.Set(saved)
}
