package remote

import (
	"context"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/tvremote/tvremote/alert"
	"github.com/tvremote/tvremote/message"
	"github.com/tvremote/tvremote/player"
)

func newSurface(p *fakePlayer, opts ...SurfaceOption) (*Surface, *fakeSender, *alerts) {
	logger, _ := test.NewNullLogger()
	a := &alerts{}
	s := NewSurface(p, append([]SurfaceOption{WithSurfaceLogger(logger), WithAlerter(a)}, opts...)...)
	sender := &fakeSender{}
	s.Bind(sender)
	return s, sender, a
}

func TestSurfaceCommands(t *testing.T) {
	Convey("Given a stopped surface", t, func() {
		p := newFakePlayer()
		var changes []PlayState
		s, _, a := newSurface(p, WithStateChange(func(ps PlayState) { changes = append(changes, ps) }))

		So(s.State(), ShouldEqual, Stopped)

		Convey("Play loads the item and starts", func() {
			s.Receive(message.Play{URL: "http://tv/api/media/films/a.mp4", Collection: "films", Video: "a.mp4"})
			So(p.loaded, ShouldResemble, []string{"http://tv/api/media/films/a.mp4"})
			So(s.State(), ShouldEqual, Started)
			collection, video := s.Playing()
			So(collection, ShouldEqual, "films")
			So(video, ShouldEqual, "a.mp4")
			So(changes, ShouldResemble, []PlayState{Started})
		})

		Convey("A failed load alerts and stays stopped", func() {
			p.failLoad = true
			s.Receive(message.Play{URL: "http://tv/x.mp4", Video: "x.mp4"})
			So(s.State(), ShouldEqual, Stopped)
			So(a.levels, ShouldResemble, []alert.Level{alert.Error})
		})

		Convey("Seek is relative to the current position", func() {
			p.position = 30
			s.Receive(message.Seek{Interval: -10})
			So(p.seeks, ShouldResemble, []float64{20})
		})

		Convey("Seek is passed through without clamping", func() {
			p.position = 5
			s.Receive(message.Seek{Interval: -30})
			s.Receive(message.Seek{Interval: 500})
			So(p.seeks, ShouldResemble, []float64{-25, 505})
		})

		Convey("Seek without a known position does nothing", func() {
			p.failPosition = true
			s.Receive(message.Seek{Interval: 10})
			So(p.seeks, ShouldBeEmpty)
		})

		Convey("TogglePause alternates pause and resume", func() {
			s.Receive(message.Play{URL: "http://tv/a.mp4"})
			s.Receive(message.TogglePause{})
			So(s.State(), ShouldEqual, Paused)
			So(p.pauses, ShouldEqual, 1)

			s.Receive(message.TogglePause{})
			So(s.State(), ShouldEqual, Started)
			So(p.resumes, ShouldEqual, 1)
			So(changes, ShouldResemble, []PlayState{Started, Paused, Started})
		})

		Convey("TogglePause on a stopped surface resumes", func() {
			s.Receive(message.TogglePause{})
			So(p.resumes, ShouldEqual, 1)
			So(s.State(), ShouldEqual, Started)
		})

		Convey("A failed resume is a warning, not a crash", func() {
			p.failResume = true
			s.Receive(message.TogglePause{})
			So(s.State(), ShouldEqual, Stopped)
			So(a.levels, ShouldResemble, []alert.Level{alert.Warning})
		})

		Convey("Other variants are ignored", func() {
			for _, m := range []message.Message{message.Stop{}, message.Command{Command: "x"}, message.State{}, message.Error{Message: "e"}, nil} {
				s.Receive(m)
			}
			So(s.State(), ShouldEqual, Stopped)
			So(p.loaded, ShouldBeEmpty)
			So(p.seeks, ShouldBeEmpty)
			So(p.pauses+p.resumes, ShouldEqual, 0)
		})
	})
}

func TestSurfaceEvents(t *testing.T) {
	Convey("Given a surface playing an item", t, func() {
		p := newFakePlayer()
		s, sender, _ := newSurface(p)
		s.Receive(message.Play{URL: "http://tv/a.mp4", Collection: "c", Video: "a.mp4"})

		Convey("Native events drive the state", func() {
			s.HandleEvent(player.Event{Kind: player.EventPause})
			So(s.State(), ShouldEqual, Paused)
			s.HandleEvent(player.Event{Kind: player.EventPlay})
			So(s.State(), ShouldEqual, Started)
			s.HandleEvent(player.Event{Kind: player.EventEnded})
			So(s.State(), ShouldEqual, Stopped)
		})

		Convey("Every time update is reported", func() {
			s.HandleEvent(player.Event{Kind: player.EventTimeUpdate, Time: 1})
			s.HandleEvent(player.Event{Kind: player.EventTimeUpdate, Time: 2})

			states := sender.states()
			So(states, ShouldHaveLength, 2)
			So(states[1], ShouldResemble, message.State{
				CurrentTime: 2, Duration: 100, CurrentSrc: "http://tv/a.mp4", Collection: "c", Video: "a.mp4",
			})
		})

		Convey("Without a sender nothing is reported", func() {
			s.Bind(nil)
			s.HandleEvent(player.Event{Kind: player.EventTimeUpdate, Time: 1})
			So(sender.states(), ShouldBeEmpty)
		})
	})

	Convey("Given a throttled surface", t, func() {
		p := newFakePlayer()
		s, sender, _ := newSurface(p, WithReportInterval(time.Second))
		clock := time.Unix(1000, 0)
		s.now = func() time.Time { return clock }

		Convey("Updates inside the interval are held back", func() {
			s.HandleEvent(player.Event{Kind: player.EventTimeUpdate, Time: 1})
			clock = clock.Add(250 * time.Millisecond)
			s.HandleEvent(player.Event{Kind: player.EventTimeUpdate, Time: 1.25})
			So(sender.states(), ShouldHaveLength, 1)

			clock = clock.Add(time.Second)
			s.HandleEvent(player.Event{Kind: player.EventTimeUpdate, Time: 2.25})
			So(sender.states(), ShouldHaveLength, 2)
			So(sender.states()[1].CurrentTime, ShouldEqual, 2.25)
		})

		Convey("A pause flushes the held back position", func() {
			s.HandleEvent(player.Event{Kind: player.EventTimeUpdate, Time: 1})
			s.HandleEvent(player.Event{Kind: player.EventTimeUpdate, Time: 1.5})
			p.position = 1.5
			s.HandleEvent(player.Event{Kind: player.EventPause})

			states := sender.states()
			So(states, ShouldHaveLength, 2)
			So(states[1].CurrentTime, ShouldEqual, 1.5)
		})
	})
}

func TestSurfaceRun(t *testing.T) {
	Convey("Run applies player events until cancelled", t, func() {
		p := newFakePlayer()
		s, _, _ := newSurface(p)
		ctx, cancel := context.WithCancel(context.Background())

		done := make(chan error, 1)
		go func() { done <- s.Run(ctx) }()

		p.events <- player.Event{Kind: player.EventPlay}
		deadline := time.Now().Add(time.Second)
		for s.State() != Started && time.Now().Before(deadline) {
			time.Sleep(5 * time.Millisecond)
		}
		So(s.State(), ShouldEqual, Started)

		cancel()
		So(<-done, ShouldEqual, context.Canceled)
	})
}

func TestTee(t *testing.T) {
	Convey("Given a tee in front of a sender", t, func() {
		next := &fakeSender{}
		var seen []message.Message
		tee := Tee(next, func(m message.Message) { seen = append(seen, m) })

		Convey("Messages are observed and forwarded", func() {
			state := message.State{CurrentTime: 3, Duration: 60, Collection: "films", Video: "a.mp4"}
			So(tee.Send(state), ShouldBeNil)
			So(seen, ShouldResemble, []message.Message{state})
			So(next.states(), ShouldResemble, []message.State{state})
		})

		Convey("Plain text is forwarded without being observed", func() {
			So(tee.Send("Hello Server!"), ShouldBeNil)
			So(seen, ShouldBeEmpty)
			So(next.sent, ShouldResemble, []any{"Hello Server!"})
		})

		Convey("A surface reports its position to a monitor", func() {
			p := newFakePlayer()
			s, _, _ := newSurface(p)
			monitor := NewMonitor()
			s.Bind(Tee(next, monitor.Observe))

			s.OnPlay(message.Play{URL: "http://tv.lan:4000/api/media/films/a.mp4", Collection: "films", Video: "a.mp4"})
			s.HandleEvent(player.Event{Kind: player.EventTimeUpdate, Time: 12})

			So(monitor.Progress("films", "a.mp4").IsPresent(), ShouldBeTrue)
			So(next.states(), ShouldNotBeEmpty)
		})
	})
}
