package session

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
	"github.com/tvremote/tvremote/api"
	"github.com/tvremote/tvremote/channel"
	"github.com/tvremote/tvremote/key"
	"github.com/tvremote/tvremote/message"
	"github.com/tvremote/tvremote/player"
	"github.com/tvremote/tvremote/remote"
)

func TestDetect(t *testing.T) {
	Convey("Detect", t, func() {
		tv := "Mozilla/5.0 (SMART-TV; Linux; Tizen 6.0)"

		Convey("The mode parameter wins", func() {
			So(Detect(Signals{UserAgent: tv, Query: "mode=remote"}, DefaultTVMarkers), ShouldEqual, Controller)
			So(Detect(Signals{Query: "?mode=tv"}, DefaultTVMarkers), ShouldEqual, Surface)
			So(Detect(Signals{Query: "collection=films&mode=video"}, DefaultTVMarkers), ShouldEqual, Surface)
		})

		Convey("A smart TV marker selects the surface", func() {
			So(Detect(Signals{UserAgent: tv}, DefaultTVMarkers), ShouldEqual, Surface)
			So(Detect(Signals{UserAgent: "Mozilla/5.0 Gecko/20100101 Firefox/109.0"}, DefaultTVMarkers), ShouldEqual, Surface)
			So(Detect(Signals{UserAgent: tv, Query: "mode=unknown"}, DefaultTVMarkers), ShouldEqual, Surface)
		})

		Convey("Anything else is a controller", func() {
			So(Detect(Signals{}, DefaultTVMarkers), ShouldEqual, Controller)
			So(Detect(Signals{UserAgent: "curl/8.0"}, DefaultTVMarkers), ShouldEqual, Controller)
			So(Detect(Signals{UserAgent: tv}, []string{""}), ShouldEqual, Controller)
		})

		Convey("Modes parse and print", func() {
			m, ok := ParseMode(" Surface ")
			So(ok, ShouldBeTrue)
			So(m.String(), ShouldEqual, "surface")
			_, ok = ParseMode("auto")
			So(ok, ShouldBeFalse)
		})
	})
}

type fakeAPI struct {
	mu    sync.Mutex
	posts []any
}

func (f *fakeAPI) Get(context.Context, string, any) error { return nil }
func (f *fakeAPI) Post(_ context.Context, _ string, payload any) (*api.Reply, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.posts = append(f.posts, payload)
	return &api.Reply{Code: 200}, nil
}
func (f *fakeAPI) Put(context.Context, string, any) (*api.Reply, error) { return &api.Reply{Code: 200}, nil }
func (f *fakeAPI) Delete(context.Context, string) (*api.Reply, error)   { return &api.Reply{Code: 200}, nil }
func (f *fakeAPI) Host() string                                         { return "tv.lan:4000" }

// fakeConn serves inbound frames from a channel and records outbound ones.
type fakeConn struct {
	inbound chan []byte
	closed  chan struct{}
	once    sync.Once

	mu      sync.Mutex
	written [][]byte
}

func newFakeConn() *fakeConn {
	return &fakeConn{inbound: make(chan []byte, 4), closed: make(chan struct{})}
}

func (c *fakeConn) ReadMessage() (int, []byte, error) {
	select {
	case data := <-c.inbound:
		return int(message.TextFrame), data, nil
	case <-c.closed:
		return 0, nil, errors.New("closed")
	}
}

func (c *fakeConn) WriteMessage(_ int, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.written = append(c.written, data)
	return nil
}

func (c *fakeConn) WriteControl(int, []byte, time.Time) error { return nil }
func (c *fakeConn) SetWriteDeadline(time.Time) error { return nil }

func (c *fakeConn) Close() error {
	c.once.Do(func() { close(c.closed) })
	return nil
}

func (c *fakeConn) frames() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.written))
	for i, w := range c.written {
		out[i] = string(w)
	}
	return out
}

type fakePlayer struct {
	mu     sync.Mutex
	loaded []string
	events chan player.Event
}

func (p *fakePlayer) Load(url, _ string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.loaded = append(p.loaded, url)
	return nil
}

func (p *fakePlayer) Loaded() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.loaded...)
}

func (p *fakePlayer) Resume() error               { return nil }
func (p *fakePlayer) Pause() error                { return nil }
func (p *fakePlayer) Position() (float64, error)  { return 12, nil }
func (p *fakePlayer) Duration() (float64, error)  { return 60, nil }
func (p *fakePlayer) SetPosition(float64) error   { return nil }
func (p *fakePlayer) Source() string              { return "http://tv.lan:4000/api/media/films/a.mp4" }
func (p *fakePlayer) Events() <-chan player.Event { return p.events }
func (p *fakePlayer) Close() error                { return nil }

func eventually(check func() bool) bool {
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if check() {
			return true
		}
		time.Sleep(5 * time.Millisecond)
	}
	return false
}

func TestSession(t *testing.T) {
	Convey("Given a session", t, func() {
		f := &fakeAPI{}
		conn := newFakeConn()
		opts := Options{
			Signals: Signals{Query: "mode=tv"},
			API:     f,
			Builder: func(context.Context) (channel.Conn, error) {
				return conn, nil
			},
			RemoteAddress:  "10.0.0.7",
			ReconnectDelay: 10 * time.Millisecond,
		}

		Convey("The mode is decided once", func() {
			s := New(opts)
			So(s.Mode(), ShouldEqual, Surface)
			s.opts.Signals = Signals{}
			So(s.Mode(), ShouldEqual, Surface)
		})

		Convey("A configured mode skips detection", func() {
			controller := Controller
			opts.Forced = &controller
			So(New(opts).Mode(), ShouldEqual, Controller)
		})

		Convey("Players carry the remote address", func() {
			s := New(opts)
			So(s.Player("films").PlayVideo(context.Background(), "a.mp4"), ShouldBeNil)
			So(f.posts, ShouldHaveLength, 1)
			So(f.posts[0].(message.RemoteCommand).RemoteAddress, ShouldEqual, "10.0.0.7")
		})

		Convey("Local players bypass the Media API", func() {
			var played []message.Play
			s := New(opts)
			p := s.Local("films", message.HandlerFuncs{Play: func(m message.Play) { played = append(played, m) }})
			So(p.PlayVideo(context.Background(), "a.mp4"), ShouldBeNil)
			So(played, ShouldHaveLength, 1)
			So(f.posts, ShouldBeEmpty)
		})

		Convey("A local browser drives the surface", func() {
			s := New(opts)
			defer s.Close()
			p := &fakePlayer{events: make(chan player.Event, 1)}
			surface := s.Surface(p)

			So(s.Local("films", surface).PlayVideo(context.Background(), "a.mp4"), ShouldBeNil)
			So(p.Loaded(), ShouldResemble, []string{"http://tv.lan:4000/api/media/films/a.mp4"})
			So(f.posts, ShouldBeEmpty)
		})

		Convey("Connect shares one channel", func() {
			s := New(opts)
			defer s.Close()
			monitor := remote.NewMonitor()
			a := s.Watch(monitor)
			b := s.Connect(func(message.Message) {})
			So(a, ShouldEqual, b)
			So(s.Channel(), ShouldEqual, a)

			conn.inbound <- []byte(`{"State":{"currentTime":5,"duration":60,"currentSrc":"x","collection":"films","video":"a.mp4"}}`)
			So(eventually(func() bool { return monitor.Progress("films", "a.mp4").IsPresent() }), ShouldBeTrue)
		})

		Convey("Serve plays remote commands and reports the position", func() {
			s := New(opts)
			p := &fakePlayer{events: make(chan player.Event, 1)}
			ctx, cancel := context.WithCancel(context.Background())

			done := make(chan error, 1)
			go func() { done <- s.Serve(ctx, p) }()

			So(eventually(func() bool { return len(conn.frames()) == 1 }), ShouldBeTrue)
			So(conn.frames()[0], ShouldEqual, "Hello Server!")

			conn.inbound <- []byte(`{"Play":{"url":"http://tv.lan:4000/api/media/films/a.mp4","collection":"films","video":"a.mp4"}}`)
			So(eventually(func() bool { return len(p.Loaded()) == 1 }), ShouldBeTrue)

			p.events <- player.Event{Kind: player.EventTimeUpdate, Time: 12}
			So(eventually(func() bool { return len(conn.frames()) == 2 }), ShouldBeTrue)

			var state struct{ State message.State }
			So(json.Unmarshal([]byte(conn.frames()[1]), &state), ShouldBeNil)
			So(state.State, ShouldResemble, message.State{
				CurrentTime: 12,
				Duration:    60,
				CurrentSrc:  "http://tv.lan:4000/api/media/films/a.mp4",
				Collection:  "films",
				Video:       "a.mp4",
			})

			cancel()
			So(<-done, ShouldBeNil)
			So(s.Channel(), ShouldBeNil)
		})
	})
}

func TestFromConfig(t *testing.T) {
	Convey("The configured query string decides the mode", t, func() {
		viper.Set(key.SessionQuery, "mode=tv")
		defer viper.Set(key.SessionQuery, "")

		opts := FromConfig(nil, nil)
		So(opts.Signals.Query, ShouldEqual, "mode=tv")
		So(New(opts).Mode(), ShouldEqual, Surface)
	})
}
