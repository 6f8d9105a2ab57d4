package config

import (
	"github.com/tvremote/tvremote/constant"
	"github.com/tvremote/tvremote/key"
)

// Default holds every configuration field by key.
var Default = make(map[string]Field)

// EnvExposed lists the keys bound to TVREMOTE_* variables.
var EnvExposed []string

func init() {
	register := func(k string, v any, desc string) {
		if _, exists := Default[k]; exists {
			panic("duplicate config key " + k)
		}
		Default[k] = Field{Key: k, Value: v, Description: desc}
		EnvExposed = append(EnvExposed, k)
	}

	register(key.ServerHost, "localhost:4000", "Host (and port) of the media server.\nUsed for both the Media API and the remote control socket")
	register(key.ServerTimeout, 30, "Timeout in seconds for Media API requests")
	register(key.RemoteAddress, "", "Destination hint sent with remote commands.\nLeave empty to broadcast over the shared channel")
	register(key.RemoteReconnectDelay, 5, "Seconds to wait before rebuilding a broken remote control socket")
	register(key.RemoteGreeting, constant.Greeting, "Frame written right after the remote control socket opens")
	register(key.RemoteReportInterval, 0, "Minimum milliseconds between two player state reports.\n0 reports on every player time update")
	register(key.RemoteSeekStep, 15, "Seconds skipped by the seek controls")
	register(key.SessionMode, "auto", "Session mode.\nAvailable options are: auto, controller, surface")
	register(key.SessionUserAgent, "", "Device user agent used by the auto mode detection")
	register(key.SessionTVMarkers, []string{"SMART-TV", "Firefox/109"}, "User agent markers identifying a playback surface")
	register(key.SessionQuery, "", "Query string of the launching URL, e.g. mode=tv")
	register(key.Player, "mpv", "Media player used in surface mode")
	register(key.PollInterval, 2, "Seconds between collection and task list refreshes")
	register(key.SearchEngine, "youtube", "Default search engine.\nAvailable options are: youtube, piratebay")
	register(key.SearchShowQuerySuggestions, true, "Show query suggestions when searching")
	register(key.IconsVariant, "plain", "Icons variant.\nAvailable options are: emoji, nerd, plain, squares")
	register(key.LogsWrite, false, "Write logs")
	register(key.LogsLevel, "info", "Available options are: (from less to most verbose)\npanic, fatal, error, warn, info, debug, trace")
	register(key.LogsJson, false, "Use json format for logs")
	register(key.LogsShip, false, "Ship log entries to the media server")
	register(key.CliColored, true, "Enable colored CLI output")
	register(key.CliVersionCheck, true, "Check for a newer tvremote release after printing help")
}
