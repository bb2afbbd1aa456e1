package playback

import (
	"testing"

	"github.com/finetic-cli/finetic/jellyfin"
	. "github.com/smartystreets/goconvey/convey"
)

func TestSynthesizeChapters(t *testing.T) {
	Convey("SynthesizeChapters", t, func() {
		Convey("Derives ends from the next start and the duration", func() {
			chapters := SynthesizeChapters([]jellyfin.Chapter{
				{StartPositionTicks: 0},
				{StartPositionTicks: 600000000},
			}, 120)

			So(len(chapters), ShouldEqual, 2)
			So(chapters[0], ShouldResemble, Chapter{Start: 0, End: 60, Name: "Chapter 1"})
			So(chapters[1], ShouldResemble, Chapter{Start: 60, End: 120, Name: "Chapter 2"})
		})

		Convey("Keeps server-provided names", func() {
			chapters := SynthesizeChapters([]jellyfin.Chapter{
				{StartPositionTicks: 0, Name: "Opening"},
			}, 90)

			So(chapters[0].Name, ShouldEqual, "Opening")
		})

		Convey("Undefined until the duration is known", func() {
			So(SynthesizeChapters([]jellyfin.Chapter{{StartPositionTicks: 0}}, 0), ShouldBeNil)
		})

		Convey("No markers means no chapters", func() {
			So(SynthesizeChapters(nil, 120), ShouldBeNil)
		})
	})
}
