// Package key defines the canonical set of configuration identifiers used for centralized settings management.
package key

// Media Server - these keys locate the Media API and the remote control socket.
const (
	ServerHost    = "server.host"
	ServerTimeout = "server.timeout"
)

// Remote Control Channel - these keys tune the persistent socket and the state reports sent over it.
const (
	RemoteAddress        = "remote.address"
	RemoteReconnectDelay = "remote.reconnect_delay"
	RemoteGreeting       = "remote.greeting"
	RemoteReportInterval = "remote.report_interval"
	RemoteSeekStep       = "remote.seek_step"
)

// Session Bootstrap - these keys drive the one-shot controller / playback surface decision.
const (
	SessionMode      = "session.mode"
	SessionUserAgent = "session.user_agent"
	SessionTVMarkers = "session.tv_markers"
	SessionQuery     = "session.query"
)

// Media Playback - these keys configure the local playback backend used in surface mode.
const (
	Player = "player.default"
)

// Polling - periodic refresh of collections and tasks.
const (
	PollInterval = "poll.interval"
)

// Search Interaction - these keys define the UI/UX parameters for search discovery.
const (
	SearchEngine               = "search.engine"
	SearchShowQuerySuggestions = "search.show_query_suggestions"
)

// Iconography - these keys manage the visual rendering of UI symbols.
const (
	IconsVariant = "icons.variant"
)

// Logging Infrastructure - these keys manage the application's internal diagnostics.
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
	LogsShip  = "logs.ship"
)

// CLI Execution Environment - these flags and settings govern the non-TUI application behavior.
const (
	CliColored      = "cli.colored"
	CliVersionCheck = "cli.version_check"
)
