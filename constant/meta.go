// Package constant defines immutable application-level identifiers and protocol literals.
package constant

const (
	// App is the canonical application identifier used for filesystem paths, env prefixes and CLI branding.
	App = "tvremote"

	// Version is the current application semantic version string.
	Version = "0.3.0"

	// UserAgent is sent with every Media API request.
	UserAgent = App + "/" + Version
)

// Remote control channel literals.
const (
	// Greeting is the first frame written after the socket handshake completes.
	Greeting = "Hello Server!"

	// RemotePath is the WebSocket endpoint relative to the server host.
	RemotePath = "/api/remote/ws"

	// APIPath is the prefix of every Media API resource.
	APIPath = "/api/"
)
