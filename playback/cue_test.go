package playback

import (
	"testing"

	"github.com/finetic-cli/finetic/jellyfin"
	. "github.com/smartystreets/goconvey/convey"
)

func TestProcessCueText(t *testing.T) {
	Convey("ProcessCueText", t, func() {
		Convey("Strips alignment tags", func() {
			text, top := ProcessCueText(`{\an2}Hello there`)
			So(text, ShouldEqual, "Hello there")
			So(top, ShouldBeFalse)
		})

		Convey("Flags top placement", func() {
			text, top := ProcessCueText(`{\an8}On-screen sign`)
			So(text, ShouldEqual, "On-screen sign")
			So(top, ShouldBeTrue)
		})

		Convey("Converts newline markers", func() {
			text, _ := ProcessCueText(`First line\NSecond line`)
			So(text, ShouldEqual, "First line\nSecond line")
		})

		Convey("Is idempotent", func() {
			once, _ := ProcessCueText(`{\an8}Line one\NLine two`)
			twice, _ := ProcessCueText(once)
			So(twice, ShouldEqual, once)
		})
	})
}

func TestActiveCue(t *testing.T) {
	Convey("ActiveCue", t, func() {
		cues := CuesFromEvents([]jellyfin.TrackEvent{
			{Text: "a", StartPositionTicks: 100000000},
			{Text: "b", StartPositionTicks: 200000000},
		})

		Convey("Returns the latest cue at or before t", func() {
			cue, ok := cues.ActiveCue(14).Get()
			So(ok, ShouldBeTrue)
			So(cue.Text, ShouldEqual, "a")

			cue, ok = cues.ActiveCue(24).Get()
			So(ok, ShouldBeTrue)
			So(cue.Text, ShouldEqual, "b")
		})

		Convey("Goes stale once the gap exceeds the window", func() {
			cue, ok := cues.ActiveCue(15).Get()
			So(ok, ShouldBeTrue)
			So(cue.Text, ShouldEqual, "a")

			So(cues.ActiveCue(19).IsAbsent(), ShouldBeTrue)
			So(cues.ActiveCue(26).IsAbsent(), ShouldBeTrue)
		})

		Convey("Nothing before the first cue", func() {
			So(cues.ActiveCue(5).IsAbsent(), ShouldBeTrue)
		})

		Convey("Empty index has no active cue", func() {
			So(Cues{}.ActiveCue(10).IsAbsent(), ShouldBeTrue)
		})
	})
}

func TestActiveCueWithExplicitEnds(t *testing.T) {
	Convey("ActiveCue honors explicit cue ends", t, func() {
		cues := CuesFromEvents([]jellyfin.TrackEvent{
			{Text: "short", StartPositionTicks: 100000000, EndPositionTicks: 120000000},
		})

		cue, ok := cues.ActiveCue(11).Get()
		So(ok, ShouldBeTrue)
		So(cue.Text, ShouldEqual, "short")

		So(cues.ActiveCue(12).IsAbsent(), ShouldBeTrue)
	})
}

func TestCuesFromEvents(t *testing.T) {
	Convey("CuesFromEvents", t, func() {
		Convey("Sorts by timestamp and drops empty cues", func() {
			cues := CuesFromEvents([]jellyfin.TrackEvent{
				{Text: "later", StartPositionTicks: 300000000},
				{Text: `{\an4}`, StartPositionTicks: 200000000},
				{Text: "sooner", StartPositionTicks: 100000000},
			})

			So(len(cues), ShouldEqual, 2)
			So(cues[0].Text, ShouldEqual, "sooner")
			So(cues[1].Text, ShouldEqual, "later")
		})
	})
}
