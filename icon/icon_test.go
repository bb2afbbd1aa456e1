package icon

import (
	"testing"

	"github.com/finetic-cli/finetic/key"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func TestGet(t *testing.T) {
	Convey("Given a registered icon", t, func() {
		target := Play

		Convey("It renders correctly for each variant", func() {
			for _, variant := range AvailableVariants() {
				Convey("variant="+variant, func() {
					viper.Set(key.IconsVariant, variant)
					result := Get(target)
					So(result, ShouldNotBeEmpty)
				})
			}
		})

		Convey("Unknown variant renders empty", func() {
			viper.Set(key.IconsVariant, "bogus")
			So(Get(target), ShouldBeEmpty)
		})
	})
}
