// Package session decides once whether this instance is a controller or a playback surface
// and owns the collaborators both modes share.
package session

import (
	"net/url"
	"strings"

	"github.com/samber/lo"
)

// Mode is the role of this instance.
type Mode int

const (
	Controller Mode = iota
	Surface
)

func (m Mode) String() string {
	if m == Surface {
		return "surface"
	}
	return "controller"
}

// DefaultTVMarkers identify smart TV user agents.
var DefaultTVMarkers = []string{"SMART-TV", "Firefox/109"}

// ParseMode reads an explicit mode name.
func ParseMode(name string) (Mode, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "tv", "video", "surface":
		return Surface, true
	case "remote", "controller":
		return Controller, true
	default:
		return Controller, false
	}
}

// Signals are the startup hints mode detection looks at.
type Signals struct {
	UserAgent string
	// Query is a raw query string such as "mode=tv". A leading '?' is allowed.
	Query string
}

// Detect classifies an instance. An explicit mode parameter wins, then a user agent containing
// one of markers selects the surface. Anything else is a controller.
func Detect(signals Signals, markers []string) Mode {
	if values, err := url.ParseQuery(strings.TrimPrefix(signals.Query, "?")); err == nil {
		if mode, ok := ParseMode(values.Get("mode")); ok {
			return mode
		}
	}

	if signals.UserAgent != "" && lo.SomeBy(markers, func(marker string) bool {
		return marker != "" && strings.Contains(signals.UserAgent, marker)
	}) {
		return Surface
	}

	return Controller
}
