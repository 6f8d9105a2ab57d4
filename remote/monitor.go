package remote

import (
	"sync"

	"github.com/samber/mo"
	"github.com/tvremote/tvremote/message"
)

// Monitor remembers the last message a controller received.
type Monitor struct {
	mu      sync.Mutex
	last    message.Message
	updates chan struct{}
}

// NewMonitor returns an empty monitor.
func NewMonitor() *Monitor {
	return &Monitor{updates: make(chan struct{}, 1)}
}

// Observe is a channel.Receiver.
func (m *Monitor) Observe(msg message.Message) {
	m.mu.Lock()
	m.last = msg
	m.mu.Unlock()

	select {
	case m.updates <- struct{}{}:
	default:
	}
}

// Updates signals after Observe. Signals coalesce while nobody reads.
func (m *Monitor) Updates() <-chan struct{} {
	return m.updates
}

// Last returns the last observed message, or nil.
func (m *Monitor) Last() message.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.last
}

// Progress returns the last message when it is a State report for the given item.
func (m *Monitor) Progress(collection, video string) mo.Option[message.State] {
	state, ok := m.Last().(message.State)
	if !ok || !state.Matches(collection, video) {
		return mo.None[message.State]()
	}
	return mo.Some(state)
}
