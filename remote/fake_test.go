package remote

import (
	"errors"
	"sync"

	"github.com/tvremote/tvremote/alert"
	"github.com/tvremote/tvremote/message"
	"github.com/tvremote/tvremote/player"
)

type fakePlayer struct {
	position     float64
	duration     float64
	source       string
	loaded       []string
	seeks        []float64
	pauses       int
	resumes      int
	failResume   bool
	failLoad     bool
	failPosition bool
	events       chan player.Event
}

func newFakePlayer() *fakePlayer {
	return &fakePlayer{duration: 100, events: make(chan player.Event, 8)}
}

func (f *fakePlayer) Load(url, title string) error {
	if f.failLoad {
		return errors.New("no such file")
	}
	f.loaded = append(f.loaded, url)
	f.source = url
	return nil
}

func (f *fakePlayer) Resume() error {
	if f.failResume {
		return errors.New("autoplay blocked")
	}
	f.resumes++
	return nil
}

func (f *fakePlayer) Pause() error {
	f.pauses++
	return nil
}

func (f *fakePlayer) Position() (float64, error) {
	if f.failPosition {
		return 0, errors.New("idle")
	}
	return f.position, nil
}

func (f *fakePlayer) Duration() (float64, error) { return f.duration, nil }

func (f *fakePlayer) SetPosition(s float64) error {
	f.seeks = append(f.seeks, s)
	return nil
}

func (f *fakePlayer) Source() string              { return f.source }
func (f *fakePlayer) Events() <-chan player.Event { return f.events }
func (f *fakePlayer) Close() error                { return nil }

type fakeSender struct {
	mu   sync.Mutex
	sent []any
}

func (f *fakeSender) Send(payload any) error {
	f.mu.Lock()
	f.sent = append(f.sent, payload)
	f.mu.Unlock()
	return nil
}

func (f *fakeSender) states() []message.State {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []message.State
	for _, p := range f.sent {
		if s, ok := p.(message.State); ok {
			out = append(out, s)
		}
	}
	return out
}

type alerts struct {
	levels []alert.Level
	msgs   []string
}

func (a *alerts) Alert(l alert.Level, msg string) {
	a.levels = append(a.levels, l)
	a.msgs = append(a.msgs, msg)
}
