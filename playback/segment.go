package playback

import (
	"github.com/finetic-cli/finetic/jellyfin"
	"github.com/samber/mo"
)

// Interval is a continuous temporal range in seconds.
type Interval struct {
	Start float64
	End   float64
}

// contains reports whether t falls inside the interval.
// Degenerate intervals with Start == End are never active.
func (i Interval) contains(t float64) bool {
	return i.Start < i.End && t >= i.Start && t < i.End
}

// Segments indexes the intro/outro markers of one media item.
// Both intervals are optional; at most one of each exists per session.
type Segments struct {
	Intro mo.Option[Interval]
	Outro mo.Option[Interval]
}

// SegmentsFromWire converts tick-based segment markers into a seconds-based index.
// Unknown segment kinds are ignored.
func SegmentsFromWire(items []jellyfin.MediaSegment) Segments {
	var segments Segments
	for _, item := range items {
		interval := Interval{
			Start: TicksToSeconds(item.StartTicks),
			End:   TicksToSeconds(item.EndTicks),
		}

		switch item.Type {
		case jellyfin.SegmentIntro:
			segments.Intro = mo.Some(interval)
		case jellyfin.SegmentOutro:
			segments.Outro = mo.Some(interval)
		}
	}
	return segments
}

// ActiveIntro returns the intro interval if t falls inside it.
func (s Segments) ActiveIntro(t float64) mo.Option[Interval] {
	if intro, ok := s.Intro.Get(); ok && intro.contains(t) {
		return mo.Some(intro)
	}
	return mo.None[Interval]()
}

// ShouldOfferSkip reports whether the skip affordance is visible at t.
// The affordance is offered for the entire intro duration: start <= t < end.
func (s Segments) ShouldOfferSkip(t float64) bool {
	return s.ActiveIntro(t).IsPresent()
}

// SkipTarget returns the position to seek to when skipping at t: the end of
// the interval containing t, intro first.
func (s Segments) SkipTarget(t float64) mo.Option[float64] {
	if intro, ok := s.ActiveIntro(t).Get(); ok {
		return mo.Some(intro.End)
	}
	if outro, ok := s.Outro.Get(); ok && outro.contains(t) {
		return mo.Some(outro.End)
	}
	return mo.None[float64]()
}
