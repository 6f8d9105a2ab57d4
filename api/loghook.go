package api

import (
	"context"
	"fmt"
	"runtime/debug"
	"sort"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

const logQueueSize = 64

// LogHook ships log entries to POST log as {level, messages}.
// Entries are queued and sent from one goroutine; a full queue drops entries.
type LogHook struct {
	adaptor Adaptor
	levels  []logrus.Level
	queue   chan LogRequest
	done    chan struct{}

	mu     sync.RWMutex
	closed bool
}

// NewLogHook starts shipping entries at or above min.
func NewLogHook(adaptor Adaptor, min logrus.Level) *LogHook {
	h := &LogHook{
		adaptor: adaptor,
		levels:  logrus.AllLevels[:min+1],
		queue:   make(chan LogRequest, logQueueSize),
		done:    make(chan struct{}),
	}
	go h.run()
	return h
}

func (h *LogHook) Levels() []logrus.Level {
	return h.levels
}

// Fire formats the entry. Error entries carry the stack, one frame line per message.
func (h *LogHook) Fire(entry *logrus.Entry) error {
	messages := []string{format(entry)}
	if entry.Level <= logrus.ErrorLevel {
		for _, line := range strings.Split(strings.TrimSpace(string(debug.Stack())), "\n") {
			messages = append(messages, line)
		}
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.closed {
		return nil
	}

	select {
	case h.queue <- LogRequest{Level: entry.Level.String(), Messages: messages}:
	default:
	}
	return nil
}

// Close stops shipping after the queued entries were sent.
func (h *LogHook) Close() {
	h.mu.Lock()
	if !h.closed {
		h.closed = true
		close(h.queue)
	}
	h.mu.Unlock()
	<-h.done
}

func (h *LogHook) run() {
	defer close(h.done)
	for req := range h.queue {
		// Failures are not logged: that would ship again.
		_, _ = h.adaptor.Post(context.Background(), "log", req)
	}
}

func format(entry *logrus.Entry) string {
	keys := make([]string, 0, len(entry.Data))
	for k := range entry.Data {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(entry.Message)
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, entry.Data[k])
	}
	return b.String()
}
