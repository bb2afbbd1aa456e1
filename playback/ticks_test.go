package playback

import (
	"math"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestTicksToSeconds(t *testing.T) {
	Convey("TicksToSeconds", t, func() {
		So(TicksToSeconds(0), ShouldEqual, 0)
		So(TicksToSeconds(TicksPerSecond), ShouldEqual, 1)
		So(TicksToSeconds(6000000000), ShouldEqual, 600)
		So(TicksToSeconds(5000000), ShouldEqual, 0.5)
	})
}

func TestSecondsToTicks(t *testing.T) {
	Convey("SecondsToTicks", t, func() {
		So(SecondsToTicks(0), ShouldEqual, 0)
		So(SecondsToTicks(1), ShouldEqual, TicksPerSecond)
		So(SecondsToTicks(90.5), ShouldEqual, int64(905000000))

		Convey("Should truncate toward zero", func() {
			So(SecondsToTicks(0.00000009), ShouldEqual, 0)
		})
	})
}

func TestTickRoundTrip(t *testing.T) {
	Convey("Round-trip stays within one tick", t, func() {
		for _, s := range []float64{0, 0.1, 1, 42.424242, 90.5, 3599.9999999, 86400} {
			back := TicksToSeconds(SecondsToTicks(s))
			So(math.Abs(back-s), ShouldBeLessThanOrEqualTo, 1.0/TicksPerSecond)
		}
	})
}
