package open

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/tvremote/tvremote/constant"
)

func TestCommand(t *testing.T) {
	Convey("Each platform has its own opener", t, func() {
		cmd, err := Command(constant.Linux, "https://example.com")
		So(err, ShouldBeNil)
		So(cmd.Args, ShouldResemble, []string{"xdg-open", "https://example.com"})

		cmd, err = Command(constant.Darwin, "https://example.com")
		So(err, ShouldBeNil)
		So(cmd.Args[0], ShouldEqual, "open")

		_, err = Command("plan9", "https://example.com")
		So(err, ShouldNotBeNil)
	})

	Convey("Only web and magnet links are opened", t, func() {
		So(URL("file:///etc/passwd"), ShouldNotBeNil)
		So(URL("javascript:alert(1)"), ShouldNotBeNil)
	})
}
