package color

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/tvremote/tvremote/message"
)

func TestForKind(t *testing.T) {
	Convey("Reports and errors stand out from commands", t, func() {
		So(ForKind(message.KindPlay), ShouldEqual, Purple)
		So(ForKind(message.KindSeek), ShouldEqual, Purple)
		So(ForKind(message.KindState), ShouldEqual, Cyan)
		So(ForKind(message.KindError), ShouldEqual, Red)
		So(ANSI(13), ShouldEqual, HiPurple)
	})
}
