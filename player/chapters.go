package player

import "github.com/finetic-cli/finetic/playback"

// chapterMarkers converts synthesized chapters to the mpv chapter-list shape.
func chapterMarkers(chapters []playback.Chapter) []map[string]interface{} {
	markers := make([]map[string]interface{}, 0, len(chapters))
	for _, chapter := range chapters {
		markers = append(markers, map[string]interface{}{
			"title": chapter.Name,
			"time":  chapter.Start,
		})
	}
	return markers
}

// ApplyChapters sends chapter markers to mpv for visual feedback on the timeline.
func ApplyChapters(m *MPV, chapters []playback.Chapter) error {
	if len(chapters) == 0 {
		return nil
	}
	return m.SetChapters(chapterMarkers(chapters))
}
