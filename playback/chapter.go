package playback

import (
	"fmt"

	"github.com/finetic-cli/finetic/jellyfin"
)

// Chapter is a named interval on the seconds timeline. End is synthesized
// from the next chapter's start, or the media duration for the final chapter.
type Chapter struct {
	Start float64
	End   float64
	Name  string
}

// SynthesizeChapters derives seconds-based chapters from tick-based chapter
// markers and a known media duration. Chapters without a name get an ordinal
// one. Returns nil until the duration is known.
func SynthesizeChapters(chapters []jellyfin.Chapter, duration float64) []Chapter {
	if duration <= 0 || len(chapters) == 0 {
		return nil
	}

	out := make([]Chapter, 0, len(chapters))
	for i, raw := range chapters {
		chapter := Chapter{
			Start: TicksToSeconds(raw.StartPositionTicks),
			End:   duration,
			Name:  raw.Name,
		}
		if i+1 < len(chapters) {
			chapter.End = TicksToSeconds(chapters[i+1].StartPositionTicks)
		}
		if chapter.Name == "" {
			chapter.Name = fmt.Sprintf("Chapter %d", i+1)
		}
		out = append(out, chapter)
	}
	return out
}
