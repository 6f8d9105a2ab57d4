package channel

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/gorilla/websocket"
	"github.com/tvremote/tvremote/constant"
)

// Endpoint returns the remote control socket URL for a media server host.
func Endpoint(host string) string {
	u := url.URL{Scheme: "ws", Host: host, Path: constant.RemotePath}
	return u.String()
}

// Dial returns a Builder that opens a WebSocket to endpoint.
func Dial(endpoint string, header http.Header) Builder {
	return func(ctx context.Context) (Conn, error) {
		conn, resp, err := websocket.DefaultDialer.DialContext(ctx, endpoint, header)
		if resp != nil && resp.Body != nil {
			_ = resp.Body.Close()
		}
		if err != nil {
			return nil, fmt.Errorf("dial %s: %w", endpoint, err)
		}
		return conn, nil
	}
}
