package history

import (
	"testing"

	"github.com/finetic-cli/finetic/filesystem"
	"github.com/finetic-cli/finetic/jellyfin"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestHistory(t *testing.T) {
	Convey("Given an item", t, func() {
		item := &jellyfin.Item{
			ID:                "item-1",
			Name:              "Pilot",
			Type:              jellyfin.KindEpisode,
			SeriesName:        "Some Show",
			IndexNumber:       1,
			ParentIndexNumber: 1,
		}

		Convey("When saving its progress", func() {
			err := Save(item, "source-1", 420000000, 35)
			So(err, ShouldBeNil)

			Convey("Then the record should be retrievable", func() {
				saved, err := Get()
				So(err, ShouldBeNil)
				So(saved["item-1"], ShouldNotBeNil)
				So(saved["item-1"].Name, ShouldEqual, "Pilot")
				So(saved["item-1"].Position(), ShouldEqual, 42)
				So(saved["item-1"].String(), ShouldEqual, "Some Show S01E01 - Pilot")
			})

			Convey("Then a lower percentage never regresses the record", func() {
				So(Save(item, "source-1", 100000000, 10), ShouldBeNil)

				saved, err := Get()
				So(err, ShouldBeNil)
				So(saved["item-1"].WatchedPercentage, ShouldEqual, 35)
			})

			Convey("Then removing it empties the registry", func() {
				saved, err := Get()
				So(err, ShouldBeNil)
				So(Remove(saved["item-1"]), ShouldBeNil)

				saved, err = Get()
				So(err, ShouldBeNil)
				So(saved["item-1"], ShouldBeNil)
			})
		})
	})
}
