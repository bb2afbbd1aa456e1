package config

import (
	"testing"

	"github.com/finetic-cli/finetic/filesystem"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func TestSetup(t *testing.T) {
	filesystem.SetMemMapFs()
	defer filesystem.SetOsFs()

	Convey("Config Setup", t, func() {
		Convey("Should initialize without error", func() {
			err := Setup()
			So(err, ShouldBeNil)
		})

		Convey("Should have default values populated", func() {
			_ = Setup()
			for name := range Default {
				So(viper.Get(name), ShouldNotBeNil)
			}
		})

		Convey("EnvKeyReplacer should convert dots to underscores", func() {
			result := EnvKeyReplacer.Replace("player.auto.skip")
			So(result, ShouldEqual, "player_auto_skip")
		})

		Convey("Env names should carry the application prefix", func() {
			field := Default["logs.write"]
			So(field.Env(), ShouldEqual, "FINETIC_LOGS_WRITE")
		})
	})
}
