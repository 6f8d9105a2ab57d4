// Package network provides the HTTP client shared by the Media API adaptor and the log shipper.
package network

import (
	"net/http"
	"time"

	"github.com/tvremote/tvremote/constant"
)

// Client is the shared HTTP client. Its timeout is replaced by SetTimeout once configuration is loaded.
var Client = &http.Client{
	Timeout:   30 * time.Second,
	Transport: &userAgent{next: newTransport()},
}

// SetTimeout changes the timeout of the shared client.
func SetTimeout(d time.Duration) {
	if d > 0 {
		Client.Timeout = d
	}
}

// newTransport keeps a small idle pool; every request goes to the same media server.
func newTransport() *http.Transport {
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.MaxIdleConns = 16
	t.MaxIdleConnsPerHost = 16
	t.IdleConnTimeout = 30 * time.Second
	t.ResponseHeaderTimeout = 30 * time.Second
	t.ExpectContinueTimeout = time.Second
	return t
}

type userAgent struct {
	next http.RoundTripper
}

// RoundTrip sets the tvremote user agent unless the caller already chose one.
func (u *userAgent) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get("User-Agent") == "" {
		req = req.Clone(req.Context())
		req.Header.Set("User-Agent", constant.UserAgent)
	}
	return u.next.RoundTrip(req)
}
