package query

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
	"github.com/tvremote/tvremote/filesystem"
	"github.com/tvremote/tvremote/key"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestQuery(t *testing.T) {
	Convey("Given an empty history", t, func() {
		viper.Set(key.SearchShowQuerySuggestions, true)
		So(Forget(), ShouldBeNil)

		Convey("Remembered terms are suggested, most used first", func() {
			So(Remember("The Expanse", "youtube"), ShouldBeNil)
			So(Remember("the expanse season 2", "piratebay"), ShouldBeNil)
			So(Remember("the  expanse season 2", "piratebay"), ShouldBeNil)

			So(SuggestMany("expanse"), ShouldResemble, []string{"the expanse season 2", "the expanse"})
			So(Suggest("season").MustGet(), ShouldEqual, "the expanse season 2")
		})

		Convey("A new term is visible to a cached prefix", func() {
			So(SuggestMany("dune"), ShouldBeEmpty)
			So(Remember("dune", "youtube"), ShouldBeNil)
			So(SuggestMany("dune"), ShouldResemble, []string{"dune"})
		})

		Convey("Blank terms are not stored", func() {
			So(Remember("   ", "youtube"), ShouldBeNil)
			So(SuggestMany(""), ShouldBeEmpty)
		})

		Convey("The last engine is kept per term", func() {
			So(Remember("dune", "youtube"), ShouldBeNil)
			So(Remember("Dune", "piratebay"), ShouldBeNil)
			So(LastEngine("DUNE").MustGet(), ShouldEqual, "piratebay")
			So(LastEngine("arrival").IsAbsent(), ShouldBeTrue)
		})

		Convey("Suggestions can be switched off", func() {
			So(Remember("dune", "youtube"), ShouldBeNil)
			viper.Set(key.SearchShowQuerySuggestions, false)
			So(SuggestMany("dune"), ShouldBeEmpty)
			So(Suggest("dune").IsAbsent(), ShouldBeTrue)
		})
	})

	Convey("normalize lowers and collapses spaces", t, func() {
		So(normalize("  The   EXPANSE "), ShouldEqual, "the expanse")
	})
}
