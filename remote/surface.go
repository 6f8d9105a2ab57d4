// Package remote applies the remote control protocol on both ends of the channel:
// a Surface obeys commands and reports its position, a Monitor lets a controller follow it.
package remote

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/tvremote/tvremote/alert"
	"github.com/tvremote/tvremote/log"
	"github.com/tvremote/tvremote/message"
	"github.com/tvremote/tvremote/player"
	"github.com/tvremote/tvremote/util"
)

// PlayState is the playback state of a surface.
type PlayState int

const (
	Stopped PlayState = iota + 1
	Paused
	Started
)

func (s PlayState) String() string {
	switch s {
	case Stopped:
		return "stopped"
	case Paused:
		return "paused"
	case Started:
		return "started"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Sender delivers outbound messages. *channel.Channel implements it.
type Sender interface {
	Send(payload any) error
}

// Tee sends through next and hands every outbound message to observe as well.
func Tee(next Sender, observe func(message.Message)) Sender {
	return teeSender{next: next, observe: observe}
}

type teeSender struct {
	next    Sender
	observe func(message.Message)
}

func (t teeSender) Send(payload any) error {
	if m, ok := payload.(message.Message); ok {
		t.observe(m)
	}
	return t.next.Send(payload)
}

// SurfaceOption configures a Surface.
type SurfaceOption func(*Surface)

// WithReportInterval sets the minimum time between two State reports. Zero reports every update.
func WithReportInterval(d time.Duration) SurfaceOption {
	return func(s *Surface) { s.interval = d }
}

// WithStateChange registers a callback run after every state transition.
func WithStateChange(fn func(PlayState)) SurfaceOption {
	return func(s *Surface) { s.onChange = fn }
}

// WithSurfaceLogger replaces the component logger.
func WithSurfaceLogger(l logrus.FieldLogger) SurfaceOption {
	return func(s *Surface) { s.log = l }
}

// WithAlerter sets where recoverable playback problems are shown.
func WithAlerter(a alert.Alerter) SurfaceOption {
	return func(s *Surface) { s.alerts = a }
}

// Surface is the playback side of the protocol. It implements message.Handler.
type Surface struct {
	player   player.Player
	log      logrus.FieldLogger
	alerts   alert.Alerter
	interval time.Duration
	onChange func(PlayState)
	now      func() time.Time

	mu         sync.Mutex
	sender     Sender
	state      PlayState
	collection string
	video      string
	lastReport time.Time
	skipped    bool
}

// NewSurface returns a stopped surface driving p.
func NewSurface(p player.Player, opts ...SurfaceOption) *Surface {
	s := &Surface{
		player: p,
		log:    log.For("surface"),
		alerts: alert.AlerterFunc(func(alert.Level, string) {}),
		now:    time.Now,
		state:  Stopped,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Bind sets the sender used for State reports.
func (s *Surface) Bind(sender Sender) {
	s.mu.Lock()
	s.sender = sender
	s.mu.Unlock()
}

// Receive is a channel.Receiver.
func (s *Surface) Receive(m message.Message) {
	message.Dispatch(m, s)
}

// State returns the current playback state.
func (s *Surface) State() PlayState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Playing returns the collection and video of the active item.
func (s *Surface) Playing() (collection, video string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.collection, s.video
}

func (s *Surface) OnPlay(m message.Play) {
	title := util.FileStem(m.Video)
	if title == "" || title == "." {
		title = m.URL
	}

	if err := s.player.Load(m.URL, title); err != nil {
		s.log.WithError(err).WithField("url", m.URL).Error("could not start playback")
		s.alerts.Alert(alert.Error, fmt.Sprintf("Could not play %s", title))
		return
	}

	s.mu.Lock()
	s.collection, s.video = m.Collection, m.Video
	s.mu.Unlock()
	s.setState(Started)
}

// OnSeek moves relative to the current position. The target is not clamped.
func (s *Surface) OnSeek(m message.Seek) {
	pos, err := s.player.Position()
	if err != nil {
		s.log.WithError(err).Warn("seek ignored, position unknown")
		return
	}
	if err := s.player.SetPosition(pos + m.Interval); err != nil {
		s.log.WithError(err).Warnf("seek by %.1fs failed", m.Interval)
	}
}

// OnTogglePause pauses a started surface and resumes a paused or stopped one.
func (s *Surface) OnTogglePause(message.TogglePause) {
	if s.State() == Started {
		if err := s.player.Pause(); err != nil {
			s.log.WithError(err).Warn("pause failed")
			return
		}
		s.setState(Paused)
		return
	}

	if err := s.player.Resume(); err != nil {
		s.log.WithError(err).Warn("resume failed")
		s.alerts.Alert(alert.Warning, "Could not resume playback")
		return
	}
	s.setState(Started)
}

func (s *Surface) OnStop(message.Stop) {
	s.log.Debug("ignoring Stop")
}

func (s *Surface) OnCommand(m message.Command) {
	s.log.WithField("command", m.Command).Debug("ignoring Command")
}

func (s *Surface) OnState(message.State) {
	s.log.Debug("ignoring State")
}

func (s *Surface) OnError(m message.Error) {
	s.log.WithField("error", m.Message).Debug("remote reported an error")
}

// HandleEvent applies a native player event.
func (s *Surface) HandleEvent(ev player.Event) {
	switch ev.Kind {
	case player.EventPlay:
		s.setState(Started)
	case player.EventPause:
		s.setState(Paused)
		s.flush()
	case player.EventEnded:
		s.setState(Stopped)
		s.flush()
	case player.EventTimeUpdate:
		s.report(ev.Time, false)
	}
}

// Run applies player events until ctx is done.
func (s *Surface) Run(ctx context.Context) error {
	events := s.player.Events()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			s.HandleEvent(ev)
		}
	}
}

func (s *Surface) setState(next PlayState) {
	s.mu.Lock()
	changed := s.state != next
	s.state = next
	s.mu.Unlock()

	if changed {
		s.log.WithField("state", next.String()).Debug("state changed")
		if s.onChange != nil {
			s.onChange(next)
		}
	}
}

// flush sends the latest position if throttling held a report back.
func (s *Surface) flush() {
	s.mu.Lock()
	skipped := s.skipped
	s.mu.Unlock()

	if !skipped {
		return
	}
	pos, err := s.player.Position()
	if err != nil {
		return
	}
	s.report(pos, true)
}

func (s *Surface) report(pos float64, force bool) {
	now := s.now()

	s.mu.Lock()
	if !force && s.interval > 0 && !s.lastReport.IsZero() && now.Sub(s.lastReport) < s.interval {
		s.skipped = true
		s.mu.Unlock()
		return
	}
	s.lastReport, s.skipped = now, false
	sender := s.sender
	collection, video := s.collection, s.video
	s.mu.Unlock()

	if sender == nil {
		return
	}

	duration, err := s.player.Duration()
	if err != nil {
		duration = 0
	}

	state := message.State{
		CurrentTime: pos,
		Duration:    duration,
		CurrentSrc:  s.player.Source(),
		Collection:  collection,
		Video:       video,
	}
	if err := sender.Send(state); err != nil {
		s.log.WithError(err).Debug("state report not sent")
	}
}
