package channel

import "sync"

// Holder owns at most one live Channel. The first Acquire builds it; later calls
// reuse it until it is closed.
type Holder struct {
	mu sync.Mutex
	ch *Channel
}

// Acquire returns the live channel, or builds one when there is none.
// The builder and receiver of a reused channel are never replaced.
func (h *Holder) Acquire(build Builder, receive Receiver, opts ...Option) *Channel {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.ch != nil && !h.ch.Closed() {
		return h.ch
	}
	h.ch = New(build, receive, opts...)
	return h.ch
}

// Current returns the held channel, which may be nil or closed.
func (h *Holder) Current() *Channel {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.ch
}

// Close closes the held channel, if any.
func (h *Holder) Close(code int, reason string) {
	h.mu.Lock()
	ch := h.ch
	h.ch = nil
	h.mu.Unlock()

	if ch != nil {
		ch.Close(code, reason)
	}
}
