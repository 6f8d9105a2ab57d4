// Package message defines the remote control protocol shared by controllers and playback surfaces.
//
// A Message carries exactly one variant. On the wire it is a JSON object with a single key naming
// the variant, e.g. {"Seek":{"interval":-10}} or {"TogglePause":""}.
package message

// Kind names a variant. The value is also its key in the wire object.
type Kind string

const (
	KindPlay        Kind = "Play"
	KindSeek        Kind = "Seek"
	KindTogglePause Kind = "TogglePause"
	KindStop        Kind = "Stop"
	KindCommand     Kind = "Command"
	KindState       Kind = "State"
	KindError       Kind = "Error"
)

// Kinds lists every variant in decoding priority order.
var Kinds = []Kind{KindPlay, KindSeek, KindTogglePause, KindStop, KindCommand, KindState, KindError}

// Message is implemented only by the variant types of this package.
type Message interface {
	Kind() Kind
	accept(Handler)
}

// Play asks the surface to load and start a media item.
type Play struct {
	URL        string `json:"url"`
	Collection string `json:"collection"`
	Video      string `json:"video"`
}

// Stop asks the surface to stop playback.
type Stop struct{}

// TogglePause asks the surface to pause when playing and resume otherwise.
type TogglePause struct{}

// Command is a free text command.
type Command struct {
	Command string `json:"command"`
}

// Seek moves playback by Interval seconds, backwards when negative.
type Seek struct {
	Interval float64 `json:"interval"`
}

// State is reported by a playback surface on every position update.
type State struct {
	CurrentTime float64 `json:"currentTime"`
	Duration    float64 `json:"duration"`
	CurrentSrc  string  `json:"currentSrc"`
	Collection  string  `json:"collection"`
	Video       string  `json:"video"`
}

// Error reports a protocol level failure.
type Error struct {
	Message string
}

func (Play) Kind() Kind        { return KindPlay }
func (Stop) Kind() Kind        { return KindStop }
func (TogglePause) Kind() Kind { return KindTogglePause }
func (Command) Kind() Kind     { return KindCommand }
func (Seek) Kind() Kind        { return KindSeek }
func (State) Kind() Kind       { return KindState }
func (Error) Kind() Kind       { return KindError }

func (m Play) accept(h Handler)        { h.OnPlay(m) }
func (m Stop) accept(h Handler)        { h.OnStop(m) }
func (m TogglePause) accept(h Handler) { h.OnTogglePause(m) }
func (m Command) accept(h Handler)     { h.OnCommand(m) }
func (m Seek) accept(h Handler)        { h.OnSeek(m) }
func (m State) accept(h Handler)       { h.OnState(m) }
func (m Error) accept(h Handler)       { h.OnError(m) }

// Matches reports whether the state describes the given collection and video.
func (s State) Matches(collection, video string) bool {
	return s.Collection == collection && s.Video == video
}

// Percent returns the played fraction in [0, 1]. Unknown durations give 0.
func (s State) Percent() float64 {
	if s.Duration <= 0 {
		return 0
	}
	p := s.CurrentTime / s.Duration
	switch {
	case p < 0:
		return 0
	case p > 1:
		return 1
	default:
		return p
	}
}

// RemoteCommand wraps a message sent through the Media API.
// An empty RemoteAddress broadcasts over the shared channel.
type RemoteCommand struct {
	RemoteAddress string
	Message       Message
}
