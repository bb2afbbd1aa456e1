package auth

import (
	"testing"

	"github.com/finetic-cli/finetic/constant"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMediaBrowserHeader(t *testing.T) {
	Convey("MediaBrowserHeader", t, func() {
		header := MediaBrowserHeader("device-1", "tok")

		So(header, ShouldStartWith, `MediaBrowser Client="`+constant.ClientName+`"`)
		So(header, ShouldContainSubstring, `DeviceId="device-1"`)
		So(header, ShouldContainSubstring, `Token="tok"`)
	})
}
