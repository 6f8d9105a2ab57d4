// Package player drives the local media player of a playback surface.
// The primary backend is mpv, controlled through its JSON-IPC socket.
package player

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// EventKind is a native player event.
type EventKind int

const (
	EventPlay EventKind = iota + 1
	EventPause
	EventEnded
	EventTimeUpdate
)

func (k EventKind) String() string {
	switch k {
	case EventPlay:
		return "play"
	case EventPause:
		return "pause"
	case EventEnded:
		return "ended"
	case EventTimeUpdate:
		return "timeupdate"
	default:
		return fmt.Sprintf("event(%d)", int(k))
	}
}

// Event is emitted by a Player. Time is set for EventTimeUpdate.
type Event struct {
	Kind EventKind
	Time float64
}

// Player is the media element a playback surface controls.
type Player interface {
	// Load replaces the current media with url and starts playing it.
	Load(url, title string) error

	// Resume continues paused playback.
	Resume() error

	// Pause suspends playback.
	Pause() error

	// Position returns the current playback position in seconds.
	Position() (float64, error)

	// Duration returns the length of the current media in seconds.
	Duration() (float64, error)

	// SetPosition moves playback to an absolute position in seconds.
	SetPosition(seconds float64) error

	// Source returns the URL of the loaded media, or "" when idle.
	Source() string

	// Events delivers native events until the player is closed.
	Events() <-chan Event

	// Close stops the player and releases its resources.
	Close() error
}

// New returns the backend registered under name.
func New(name string, logger logrus.FieldLogger) (Player, error) {
	switch name {
	case "mpv", "":
		return NewMPV(logger), nil
	default:
		return nil, fmt.Errorf("unknown player %q", name)
	}
}
