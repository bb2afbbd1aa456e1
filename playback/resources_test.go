package playback

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestResources(t *testing.T) {
	Convey("Resources", t, func() {
		resources := &Resources{}

		Convey("ReleaseAll runs every handle once", func() {
			released := 0
			resources.Register(func() { released++ })
			resources.Register(func() { released++ })
			So(resources.Len(), ShouldEqual, 2)

			resources.ReleaseAll()
			So(released, ShouldEqual, 2)
			So(resources.Len(), ShouldEqual, 0)
		})

		Convey("ReleaseAll is idempotent", func() {
			released := 0
			resources.Register(func() { released++ })

			resources.ReleaseAll()
			resources.ReleaseAll()
			So(released, ShouldEqual, 1)
			So(resources.Len(), ShouldEqual, 0)
		})

		Convey("Releases in reverse registration order", func() {
			var order []string
			resources.Register(func() { order = append(order, "first") })
			resources.Register(func() { order = append(order, "second") })

			resources.ReleaseAll()
			So(order, ShouldResemble, []string{"second", "first"})
		})
	})
}
