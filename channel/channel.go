// Package channel keeps one logical WebSocket connection to the remote control endpoint alive.
//
// The connection is rebuilt from a stored builder after every transport error, so callers only
// ever see a Channel and never the socket behind it.
package channel

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	"github.com/tvremote/tvremote/constant"
	"github.com/tvremote/tvremote/log"
	"github.com/tvremote/tvremote/message"
)

// DefaultReconnectDelay is the fixed wait between a transport error and the next connection attempt.
const DefaultReconnectDelay = 5 * time.Second

// ErrUnsupportedPayload is returned by Send for payloads other than strings, messages and remote commands.
var ErrUnsupportedPayload = errors.New("unsupported payload")

// Conn is the part of *websocket.Conn the channel depends on.
type Conn interface {
	ReadMessage() (messageType int, p []byte, err error)
	WriteMessage(messageType int, data []byte) error
	WriteControl(messageType int, data []byte, deadline time.Time) error
	SetWriteDeadline(t time.Time) error
	Close() error
}

// writeTimeout bounds a single frame write to a peer that stopped reading.
const writeTimeout = 10 * time.Second

// Builder opens a new low level connection.
type Builder func(ctx context.Context) (Conn, error)

// Receiver is called once per decoded inbound message, in arrival order.
type Receiver func(message.Message)

// Option configures a Channel.
type Option func(*Channel)

// WithLogger replaces the component logger.
func WithLogger(l logrus.FieldLogger) Option {
	return func(c *Channel) { c.log = l }
}

// WithReconnectDelay replaces DefaultReconnectDelay.
func WithReconnectDelay(d time.Duration) Option {
	return func(c *Channel) {
		if d > 0 {
			c.delay = d
		}
	}
}

// WithGreeting replaces the frame written right after the socket opens.
func WithGreeting(greeting string) Option {
	return func(c *Channel) { c.greeting = greeting }
}

// Channel is a self-healing remote control connection.
type Channel struct {
	build    Builder
	receive  Receiver
	log      logrus.FieldLogger
	delay    time.Duration
	greeting string

	mu   sync.Mutex
	conn Conn
	open bool

	writeMu sync.Mutex

	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}
}

// New starts connecting in the background and returns immediately.
func New(build Builder, receive Receiver, opts ...Option) *Channel {
	ctx, cancel := context.WithCancel(context.Background())
	c := &Channel{
		build:    build,
		receive:  receive,
		log:      log.For("channel"),
		delay:    DefaultReconnectDelay,
		greeting: constant.Greeting,
		ctx:      ctx,
		cancel:   cancel,
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}

	go c.run()
	return c
}

// IsReady reports whether a connection exists and its greeting went out.
func (c *Channel) IsReady() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn != nil && c.open
}

// Closed reports whether Close was called.
func (c *Channel) Closed() bool {
	return c.ctx.Err() != nil
}

// Done is closed once the connection loop has exited after Close.
func (c *Channel) Done() <-chan struct{} {
	return c.done
}

// Send writes a payload. Strings go out as text frames; messages and remote commands are
// encoded to JSON and sent as binary frames. While the channel is not open the payload is
// dropped and Send returns nil.
func (c *Channel) Send(payload any) error {
	kind, data, err := encode(payload)
	if err != nil {
		return err
	}

	c.mu.Lock()
	conn, open := c.conn, c.open
	c.mu.Unlock()

	if conn == nil || !open {
		c.log.WithField("payload", string(data)).Debug("channel not open, dropping payload")
		return nil
	}

	if err := c.write(conn, kind, data); err != nil {
		c.log.WithError(err).Warn("write failed, reconnecting")
		c.teardown(conn)
		return fmt.Errorf("send: %w", err)
	}
	return nil
}

// Close sends a close frame when possible, releases the connection and stops reconnecting.
// It is safe to call on a broken or already closed channel.
func (c *Channel) Close(code int, reason string) {
	c.cancel()

	c.mu.Lock()
	conn := c.conn
	c.conn, c.open = nil, false
	c.mu.Unlock()

	if conn == nil {
		return
	}
	if code == 0 {
		code = websocket.CloseNormalClosure
	}

	// WriteControl and Close may run alongside a stalled WriteMessage.
	_ = conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(code, reason), time.Now().Add(time.Second))
	_ = conn.Close()
}

func encode(payload any) (message.FrameKind, []byte, error) {
	switch p := payload.(type) {
	case string:
		return message.TextFrame, []byte(p), nil
	case message.RemoteCommand:
		data, err := message.EncodeCommand(p)
		return message.BinaryFrame, data, err
	case message.Message:
		data, err := message.Encode(p)
		return message.BinaryFrame, data, err
	default:
		return 0, nil, fmt.Errorf("%w: %T", ErrUnsupportedPayload, payload)
	}
}

func (c *Channel) write(conn Conn, kind message.FrameKind, data []byte) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	if err := conn.SetWriteDeadline(time.Now().Add(writeTimeout)); err != nil {
		return err
	}
	return conn.WriteMessage(int(kind), data)
}

func (c *Channel) run() {
	defer close(c.done)

	for {
		conn, err := c.build(c.ctx)
		if err != nil {
			if c.Closed() {
				return
			}
			c.log.WithError(err).Warnf("connect failed, retrying in %s", c.delay)
		} else if c.attach(conn) {
			c.listen(conn)
		} else {
			_ = conn.Close()
			return
		}

		if !c.wait() {
			return
		}
	}
}

// attach installs conn unless the channel was closed while it was being built.
func (c *Channel) attach(conn Conn) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Closed() {
		return false
	}
	c.conn, c.open = conn, false
	return true
}

func (c *Channel) listen(conn Conn) {
	if err := c.write(conn, message.TextFrame, []byte(c.greeting)); err != nil {
		c.log.WithError(err).Warn("greeting failed")
		c.teardown(conn)
		return
	}

	c.mu.Lock()
	if c.conn == conn {
		c.open = true
	}
	c.mu.Unlock()
	c.log.Info("remote control channel open")

	for {
		kind, data, err := conn.ReadMessage()
		if err != nil {
			if !c.Closed() {
				c.log.WithError(err).Warnf("socket error, reconnecting in %s", c.delay)
			}
			c.teardown(conn)
			return
		}
		c.deliver(message.FrameKind(kind), data)
	}
}

func (c *Channel) deliver(kind message.FrameKind, data []byte) {
	msg, err := message.DecodeFrame(kind, data)
	switch {
	case errors.Is(err, message.ErrPlainText):
		c.log.Infof("server says: %s", data)
	case err != nil:
		c.log.WithError(err).WithField("frame", kind.String()).Error("dropping undecodable frame")
	case msg == nil:
		c.log.Debug("ignoring frame without a known variant")
	default:
		c.receive(msg)
	}
}

// teardown drops conn if it is still the current connection.
func (c *Channel) teardown(conn Conn) {
	c.mu.Lock()
	if c.conn == conn {
		c.conn, c.open = nil, false
	}
	c.mu.Unlock()
	_ = conn.Close()
}

func (c *Channel) wait() bool {
	timer := time.NewTimer(c.delay)
	defer timer.Stop()

	select {
	case <-c.ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
