package channel

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/tvremote/tvremote/message"
)

type frame struct {
	kind int
	data string
}

type fakeConn struct {
	mu       sync.Mutex
	writes   []frame
	controls []frame
	failing  bool
	deadline time.Time
	// stall blocks WriteMessage until it is closed or the connection closes.
	stall    chan struct{}

	inbox     chan frame
	closed    chan struct{}
	closeOnce sync.Once
}

func newFakeConn() *fakeConn {
	return &fakeConn{inbox: make(chan frame, 16), closed: make(chan struct{})}
}

func (f *fakeConn) ReadMessage() (int, []byte, error) {
	select {
	case fr := <-f.inbox:
		return fr.kind, []byte(fr.data), nil
	case <-f.closed:
		return 0, nil, errors.New("use of closed connection")
	}
}

func (f *fakeConn) WriteMessage(kind int, data []byte) error {
	f.mu.Lock()
	stall := f.stall
	f.mu.Unlock()
	if stall != nil {
		select {
		case <-stall:
		case <-f.closed:
			return errors.New("use of closed connection")
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failing {
		return errors.New("broken pipe")
	}
	f.writes = append(f.writes, frame{kind, string(data)})
	return nil
}

func (f *fakeConn) WriteControl(kind int, data []byte, _ time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.controls = append(f.controls, frame{kind, string(data)})
	return nil
}

func (f *fakeConn) SetWriteDeadline(t time.Time) error {
	f.mu.Lock()
	f.deadline = t
	f.mu.Unlock()
	return nil
}

func (f *fakeConn) Close() error {
	f.closeOnce.Do(func() { close(f.closed) })
	return nil
}

func (f *fakeConn) isClosed() bool {
	select {
	case <-f.closed:
		return true
	default:
		return false
	}
}

func (f *fakeConn) written() []frame {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]frame(nil), f.writes...)
}

func (f *fakeConn) fail() {
	f.mu.Lock()
	f.failing = true
	f.mu.Unlock()
}

// dialer hands out fake connections and counts builder calls.
type dialer struct {
	mu    sync.Mutex
	conns []*fakeConn
	calls atomic.Int32
	errs  []error
}

func (d *dialer) build(ctx context.Context) (Conn, error) {
	n := int(d.calls.Add(1))
	if n <= len(d.errs) && d.errs[n-1] != nil {
		return nil, d.errs[n-1]
	}
	conn := newFakeConn()
	d.mu.Lock()
	d.conns = append(d.conns, conn)
	d.mu.Unlock()
	return conn, nil
}

func (d *dialer) last() *fakeConn {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.conns) == 0 {
		return nil
	}
	return d.conns[len(d.conns)-1]
}

type inbox struct {
	mu  sync.Mutex
	got []message.Message
}

func (i *inbox) receive(m message.Message) {
	i.mu.Lock()
	i.got = append(i.got, m)
	i.mu.Unlock()
}

func (i *inbox) messages() []message.Message {
	i.mu.Lock()
	defer i.mu.Unlock()
	return append([]message.Message(nil), i.got...)
}

func eventually(cond func() bool) bool {
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(5 * time.Millisecond)
	}
	return cond()
}
