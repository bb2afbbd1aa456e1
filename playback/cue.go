package playback

import (
	"regexp"
	"sort"
	"strings"

	"github.com/finetic-cli/finetic/jellyfin"
	"github.com/samber/mo"
)

// cueStalenessSeconds is the window after a cue's timestamp during which the
// cue stays on screen when it has no explicit end.
const cueStalenessSeconds = 5

var assTagPattern = regexp.MustCompile(`\{\\an\d\}`)

// Cue is one subtitle line, positioned on a seconds timeline.
type Cue struct {
	Timestamp float64
	End       mo.Option[float64]
	Text      string

	// PositionTop places the cue at the top of the frame instead of the bottom.
	PositionTop bool
}

// ProcessCueText strips ASS alignment override tags from raw cue text and
// reports whether the cue requested top placement. Processing already clean
// text is a no-op, so the function is safe to apply twice.
func ProcessCueText(raw string) (text string, top bool) {
	top = strings.Contains(raw, `{\an8}`)
	text = assTagPattern.ReplaceAllString(raw, "")
	text = strings.ReplaceAll(text, "\\N", "\n")
	text = strings.ReplaceAll(text, "\\n", "\n")
	return strings.TrimSpace(text), top
}

// Cues is a subtitle cue index sorted by timestamp.
type Cues []Cue

// CuesFromEvents converts tick-based subtitle track events into a cue index.
// Events with empty text are dropped.
func CuesFromEvents(events []jellyfin.TrackEvent) Cues {
	cues := make(Cues, 0, len(events))
	for _, event := range events {
		text, top := ProcessCueText(event.Text)
		if text == "" {
			continue
		}

		cue := Cue{
			Timestamp:   TicksToSeconds(event.StartPositionTicks),
			Text:        text,
			PositionTop: top,
		}
		if event.EndPositionTicks > event.StartPositionTicks {
			cue.End = mo.Some(TicksToSeconds(event.EndPositionTicks))
		}
		cues = append(cues, cue)
	}

	sort.Slice(cues, func(i, j int) bool {
		return cues[i].Timestamp < cues[j].Timestamp
	})
	return cues
}

// ActiveCue returns the cue visible at t: the latest cue whose timestamp is at
// or before t, as long as it has not ended or gone stale.
func (c Cues) ActiveCue(t float64) mo.Option[Cue] {
	// First cue strictly after t.
	next := sort.Search(len(c), func(i int) bool {
		return c[i].Timestamp > t
	})
	if next == 0 {
		return mo.None[Cue]()
	}

	cue := c[next-1]
	if end, ok := cue.End.Get(); ok {
		if t >= end {
			return mo.None[Cue]()
		}
	} else if t-cue.Timestamp > cueStalenessSeconds {
		return mo.None[Cue]()
	}
	return mo.Some(cue)
}
