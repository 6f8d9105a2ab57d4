package control

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/tvremote/tvremote/alert"
	"github.com/tvremote/tvremote/api"
	"github.com/tvremote/tvremote/message"
)

type call struct {
	Method  string
	Path    string
	Payload any
}

// fakeAPI records calls and answers from canned values.
type fakeAPI struct {
	calls   []call
	reply   *api.Reply
	err     error
	getBody string
	getErr  error
}

func (f *fakeAPI) Get(_ context.Context, path string, out any) error {
	f.calls = append(f.calls, call{"GET", path, nil})
	if f.getErr != nil {
		return f.getErr
	}
	return json.Unmarshal([]byte(f.getBody), out)
}

func (f *fakeAPI) Post(_ context.Context, path string, payload any) (*api.Reply, error) {
	f.calls = append(f.calls, call{"POST", path, payload})
	return f.reply, f.err
}

func (f *fakeAPI) Put(_ context.Context, path string, payload any) (*api.Reply, error) {
	f.calls = append(f.calls, call{"PUT", path, payload})
	return f.reply, f.err
}

func (f *fakeAPI) Delete(_ context.Context, path string) (*api.Reply, error) {
	f.calls = append(f.calls, call{"DELETE", path, nil})
	return f.reply, f.err
}

func (f *fakeAPI) Host() string { return "media.lan:4000" }

type recorder struct {
	questions []string
	answer    bool
	levels    []alert.Level
	alerts    []string
}

func (r *recorder) Ask(_ context.Context, q string) (bool, error) {
	r.questions = append(r.questions, q)
	return r.answer, nil
}

func (r *recorder) Alert(l alert.Level, msg string) {
	r.levels = append(r.levels, l)
	r.alerts = append(r.alerts, msg)
}

func newPlayer(collection string, opts ...Option) (*VideoPlayer, *fakeAPI, *recorder, *test.Hook) {
	f := &fakeAPI{reply: &api.Reply{Code: 200, Status: "200 OK"}}
	r := &recorder{}
	logger, hook := test.NewNullLogger()
	p := New(f, collection, append([]Option{WithAlerter(r), WithAsker(r), WithLogger(logger)}, opts...)...)
	return p, f, r, hook
}

func TestDeleteVideo(t *testing.T) {
	Convey("Given a player without a collection", t, func() {
		p, f, r, _ := newPlayer("")
		ctx := context.Background()

		Convey("A declined delete sends nothing", func() {
			r.answer = false
			So(p.DeleteVideo(ctx, "video.mp4"), ShouldBeNil)
			So(r.questions, ShouldResemble, []string{`Delete video "video.mp4?"`})
			So(f.calls, ShouldBeEmpty)
			So(r.alerts, ShouldBeEmpty)
		})

		Convey("A confirmed delete answered 204 succeeds quietly", func() {
			r.answer = true
			f.reply = &api.Reply{Code: 204, Status: "204 No Content"}
			So(p.DeleteVideo(ctx, "video.mp4"), ShouldBeNil)
			So(f.calls, ShouldResemble, []call{{"DELETE", "media/video.mp4", nil}})
			So(r.alerts, ShouldBeEmpty)
		})

		Convey("A rejected delete is logged and alerted", func() {
			r.answer = true
			f.reply = &api.Reply{Code: 400, Status: "400 Bad Request"}
			err := p.DeleteVideo(ctx, "video.mp4")
			So(errors.Is(err, ErrAlerted), ShouldBeTrue)
			So(errors.Is(err, api.ErrStatus), ShouldBeTrue)
			So(r.alerts, ShouldResemble, []string{`cannot delete video "video.mp4": "400 Bad Request"`})
		})
	})

	Convey("Given a player inside a collection", t, func() {
		p, f, r, _ := newPlayer("films")
		r.answer = true
		ctx := context.Background()

		Convey("Paths join the collection", func() {
			So(p.DeleteVideo(ctx, "a.mp4"), ShouldBeNil)
			So(p.RenameVideo(ctx, "a.mp4", "b.mp4"), ShouldBeNil)
			So(p.ConvertVideo(ctx, "a.mp4", "h264"), ShouldBeNil)

			So(f.calls, ShouldResemble, []call{
				{"DELETE", "media/films/a.mp4", nil},
				{"PUT", "media/films/a.mp4", api.RenameRequest{NewName: "b.mp4"}},
				{"POST", "media/films/a.mp4", api.ConversionRequest{Name: "h264"}},
			})
			So(r.questions[1], ShouldEqual, `Rename video "a.mp4" to "b.mp4?"`)
			So(r.questions[2], ShouldEqual, `Convert video "a.mp4" using "h264?"`)
		})

		Convey("Transport failures alert a generic message", func() {
			f.err = errors.New("connection refused")
			err := p.RenameVideo(ctx, "a.mp4", "b.mp4")
			So(errors.Is(err, ErrAlerted), ShouldBeTrue)
			So(r.alerts, ShouldResemble, []string{unreachable})
		})
	})
}

func TestRemoteCommands(t *testing.T) {
	Convey("Given a controller", t, func() {
		p, f, r, _ := newPlayer("films", WithRemoteAddress("10.0.0.7"))
		ctx := context.Background()

		Convey("PlayVideo posts a Play command", func() {
			So(p.PlayVideo(ctx, "a.mp4"), ShouldBeNil)
			So(f.calls, ShouldResemble, []call{{"POST", "remote/play", message.RemoteCommand{
				RemoteAddress: "10.0.0.7",
				Message:       message.Play{URL: "http://media.lan:4000/api/media/films/a.mp4", Collection: "films", Video: "a.mp4"},
			}}})
		})

		Convey("Seek and TogglePause post to remote/control", func() {
			So(p.Seek(ctx, -15), ShouldBeNil)
			So(p.TogglePause(ctx), ShouldBeNil)
			So(f.calls[0].Path, ShouldEqual, "remote/control")
			So(f.calls[0].Payload.(message.RemoteCommand).Message, ShouldResemble, message.Seek{Interval: -15})
			So(f.calls[1].Payload.(message.RemoteCommand).Message, ShouldResemble, message.TogglePause{})
		})

		Convey("Server reported errors are alerted", func() {
			f.reply = &api.Reply{Code: 500, Status: "500", Body: []byte(`{"message":"","errors":["no surface connected"]}`)}
			err := p.TogglePause(ctx)
			So(err, ShouldNotBeNil)
			So(r.alerts[0], ShouldContainSubstring, "no surface connected")
		})

		Convey("Errors in a successful answer are warnings", func() {
			f.reply = &api.Reply{Code: 200, Body: []byte(`{"message":"ok","errors":["thumbnail missing"]}`)}
			So(p.PlayVideo(ctx, "a.mp4"), ShouldBeNil)
			So(r.levels, ShouldResemble, []alert.Level{alert.Warning})
		})
	})

	Convey("Given a player embedding the surface", t, func() {
		var got []message.Message
		surface := message.HandlerFuncs{
			Play: func(m message.Play) { got = append(got, m) },
			Seek: func(m message.Seek) { got = append(got, m) },
		}
		p, f, _, _ := newPlayer("films", WithSurface(surface))

		So(p.PlayVideo(context.Background(), "a.mp4"), ShouldBeNil)
		So(p.Seek(context.Background(), 10), ShouldBeNil)
		So(f.calls, ShouldBeEmpty)
		So(got, ShouldHaveLength, 2)
		So(got[0].(message.Play).Video, ShouldEqual, "a.mp4")
	})
}

func TestFetch(t *testing.T) {
	Convey("Given a player", t, func() {
		p, f, r, hook := newPlayer("films")
		ctx := context.Background()

		Convey("FetchDetails joins only non-empty segments", func() {
			f.getBody = `{}`
			_, _ = p.FetchDetails(ctx, "", "")
			_, _ = p.FetchDetails(ctx, "a.mp4", "films")
			_, _ = p.FetchCollection(ctx)
			So(f.calls[0].Path, ShouldEqual, "media")
			So(f.calls[1].Path, ShouldEqual, "media/films/a.mp4")
			So(f.calls[2].Path, ShouldEqual, "media/films")
		})

		Convey("A server Error is alerted", func() {
			f.getBody = `{"Error":"not found"}`
			_, err := p.FetchDetails(ctx, "x", "films")
			So(errors.Is(err, ErrAlerted), ShouldBeTrue)
			So(r.alerts, ShouldResemble, []string{"not found"})
		})

		Convey("Conversions are listed", func() {
			f.getBody = `{"results":[{"name":"MP4","description":"MPEG-4 video file"}],"error":null}`
			So(p.GetAvailableConversions(ctx), ShouldResemble, []api.Conversion{{Name: "MP4", Description: "MPEG-4 video file"}})
			So(f.calls[0].Path, ShouldEqual, "conversion")
		})

		Convey("Unavailable conversions give an empty list and a log line", func() {
			f.getBody = `{"results":null,"error":"Some error"}`
			So(p.GetAvailableConversions(ctx), ShouldResemble, []api.Conversion{})
			So(hook.LastEntry().Level, ShouldEqual, logrus.ErrorLevel)
			So(hook.LastEntry().Message, ShouldEqual, "conversions are unavailable: Some error")

			f.getErr = errors.New("Some error")
			So(p.GetAvailableConversions(ctx), ShouldResemble, []api.Conversion{})
			So(r.alerts, ShouldBeEmpty)
		})

		Convey("SetCollection calls the hook", func() {
			var seen string
			p.onCollection = func(c string) { seen = c }
			p.SetCollection("series")
			So(p.Collection(), ShouldEqual, "series")
			So(seen, ShouldEqual, "series")
		})
	})
}

func TestMediaURL(t *testing.T) {
	Convey("MediaURL escapes names", t, func() {
		So(MediaURL("tv:4000", "my films", "a b.mp4"), ShouldEqual, "http://tv:4000/api/media/my%20films/a%20b.mp4")
	})
}
