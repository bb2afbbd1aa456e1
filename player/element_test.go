package player

import (
	"sync"
	"testing"

	"github.com/finetic-cli/finetic/playback"
	. "github.com/smartystreets/goconvey/convey"
)

func TestElementEvents(t *testing.T) {
	Convey("Element event adaptation", t, func() {
		element := NewElement(NewMPV(), "title")

		var mu sync.Mutex
		var events []playback.Event
		stop := element.Observe(func(event playback.Event) {
			mu.Lock()
			events = append(events, event)
			mu.Unlock()
		})
		defer stop()

		recorded := func() []playback.Event {
			mu.Lock()
			defer mu.Unlock()
			return append([]playback.Event(nil), events...)
		}

		Convey("Announces metadata before the first play transition", func() {
			element.onProperty("pause", false)
			So(recorded(), ShouldBeEmpty)

			element.onProperty("duration", 120.0)
			got := recorded()
			So(len(got), ShouldEqual, 2)
			So(got[0].Kind, ShouldEqual, playback.EventLoadedMetadata)
			So(got[0].Duration, ShouldEqual, 120)
			So(got[1].Kind, ShouldEqual, playback.EventPlay)
		})

		Convey("Pause transitions pass through once metadata is known", func() {
			element.onProperty("duration", 120.0)
			element.onProperty("pause", true)

			got := recorded()
			So(got[len(got)-1].Kind, ShouldEqual, playback.EventPause)
		})

		Convey("An unexpected process death surfaces as a playback error", func() {
			element.processExited()

			got := recorded()
			So(len(got), ShouldEqual, 1)
			So(got[0].Kind, ShouldEqual, playback.EventError)
			So(got[0].Err, ShouldNotBeNil)
		})

		Convey("Exit after the end of media is not an error", func() {
			element.onProperty("eof-reached", true)
			element.processExited()

			got := recorded()
			So(len(got), ShouldEqual, 1)
			So(got[0].Kind, ShouldEqual, playback.EventEnded)
		})
	})
}
