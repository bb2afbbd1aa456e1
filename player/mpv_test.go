package player

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestSanitizeMediaTarget(t *testing.T) {
	Convey("sanitizeMediaTarget", t, func() {
		Convey("Accepts http and https URLs", func() {
			url, err := sanitizeMediaTarget("https://server/Videos/abc/main.m3u8?api_key=k")
			So(err, ShouldBeNil)
			So(url, ShouldEqual, "https://server/Videos/abc/main.m3u8?api_key=k")
		})

		Convey("Rejects empty input", func() {
			_, err := sanitizeMediaTarget("  ")
			So(err, ShouldNotBeNil)
		})

		Convey("Rejects flag-shaped input", func() {
			_, err := sanitizeMediaTarget("--script=evil.lua")
			So(err, ShouldNotBeNil)
		})

		Convey("Rejects control characters", func() {
			_, err := sanitizeMediaTarget("http://a\nb")
			So(err, ShouldNotBeNil)
		})

		Convey("Rejects non-http schemes", func() {
			_, err := sanitizeMediaTarget("ftp://server/file")
			So(err, ShouldNotBeNil)
		})

		Convey("Cleans local file paths", func() {
			path, err := sanitizeMediaTarget("dir//file.mkv")
			So(err, ShouldBeNil)
			So(path, ShouldEqual, "dir/file.mkv")
		})
	})
}

func TestSanitizeTitle(t *testing.T) {
	Convey("sanitizeTitle", t, func() {
		So(sanitizeTitle("Show S01E01\n- Pilot"), ShouldEqual, "Show S01E01 - Pilot")
		So(sanitizeTitle("a\x00b\tc"), ShouldEqual, "ab c")
	})
}
