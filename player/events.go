package player

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"sync"

	"github.com/sirupsen/logrus"
)

// EventCallback receives property changes by property name and other mpv events by event name.
type EventCallback func(name string, data interface{})

// observed properties, registered with their index+1 as observer id.
var observed = []string{"time-pos", "pause", "eof-reached"}

// ipcEvent is an unsolicited line on the mpv socket. Replies have an empty Event.
type ipcEvent struct {
	Event string      `json:"event"`
	Name  string      `json:"name"`
	Data  interface{} `json:"data"`
}

// observer owns the connection its observe_property registrations belong to.
type observer struct {
	conn     net.Conn
	onChange EventCallback
	log      logrus.FieldLogger
	done     chan struct{}
	once     sync.Once
}

// observe connects to socketPath, registers the observed properties and
// forwards what mpv reports to onChange until Close.
func observe(socketPath string, logger logrus.FieldLogger, onChange EventCallback) (*observer, error) {
	conn, err := net.Dial("unix", socketPath)
	if err != nil {
		return nil, fmt.Errorf("connect mpv events: %w", err)
	}

	enc := json.NewEncoder(conn)
	for i, name := range observed {
		if err := enc.Encode(ipcCommand{Command: []interface{}{"observe_property", i + 1, name}}); err != nil {
			_ = conn.Close()
			return nil, fmt.Errorf("observe %s: %w", name, err)
		}
	}

	o := &observer{conn: conn, onChange: onChange, log: logger, done: make(chan struct{})}
	go o.read()

	logger.Debugf("observing mpv on %s", socketPath)
	return o, nil
}

func (o *observer) read() {
	defer close(o.done)

	dec := json.NewDecoder(o.conn)
	for {
		var ev ipcEvent
		err := dec.Decode(&ev)
		switch {
		case err == nil:
			o.dispatch(ev)
		case errors.Is(err, io.EOF), errors.Is(err, net.ErrClosed):
			return
		default:
			var syntax *json.SyntaxError
			if errors.As(err, &syntax) {
				o.log.WithError(err).Warn("malformed mpv event")
			} else {
				o.log.WithError(err).Warn("mpv event stream broke")
			}
			return
		}
	}
}

func (o *observer) dispatch(ev ipcEvent) {
	if ev.Event == "" || o.onChange == nil {
		return
	}
	if ev.Event != "property-change" {
		o.onChange(ev.Event, ev)
		return
	}
	if ev.Name != "" {
		o.onChange(ev.Name, ev.Data)
	}
}

// Close drops the connection and waits for the reader to return.
func (o *observer) Close() {
	o.once.Do(func() {
		_ = o.conn.Close()
		<-o.done
	})
}
