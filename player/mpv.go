package player

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math"
	"net"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/tvremote/tvremote/where"
)

const (
	socketPollInterval = 250 * time.Millisecond
	socketTimeout      = 3 * time.Second
	quitTimeout        = 3 * time.Second
	eventBuffer        = 64
)

var errNotStarted = errors.New("mpv is not running")

// MPV plays media in an idle mpv window and reports its property changes as Events.
// When the mpv process exits, the next Load spawns a new one.
type MPV struct {
	mu         sync.Mutex // serializes IPC round trips, guards socketPath
	socketPath string
	log        logrus.FieldLogger

	procMu   sync.Mutex // guards the process fields below
	cmd      *exec.Cmd
	exited   chan struct{}
	observer *observer

	events chan Event
	stop   chan struct{}

	stateMu sync.Mutex
	source  string
	loaded  bool
	closed  bool
}

// NewMPV creates an MPV player. The process is spawned by the first Load.
func NewMPV(logger logrus.FieldLogger) *MPV {
	return &MPV{
		events: make(chan Event, eventBuffer),
		stop:   make(chan struct{}),
		log:    logger,
	}
}

// Start spawns mpv with an empty playlist and begins observing it.
// It does nothing while a previously spawned mpv is still running.
func (m *MPV) Start() error {
	m.procMu.Lock()
	defer m.procMu.Unlock()

	if m.cmd != nil {
		select {
		case <-m.exited:
			m.log.Info("mpv has exited, spawning a new one")
			m.resetLocked()
		default:
			return nil
		}
	}

	socketPath, err := m.ensureSocketPath()
	if err != nil {
		return err
	}

	cmd := exec.Command("mpv", m.args(socketPath)...)
	cmd.SysProcAttr = sysProcAttr()
	cmd.Stdout, cmd.Stderr, cmd.Stdin = nil, nil, nil
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start mpv: %w", err)
	}

	exited := make(chan struct{})
	m.cmd, m.exited = cmd, exited
	go m.wait(cmd, exited)

	if err := waitForSocket(socketPath, exited); err != nil {
		m.log.WithError(err).Warn("giving up on mpv")
		_ = killProcess(cmd)
		<-exited
		m.resetLocked()
		return err
	}

	o, err := observe(socketPath, m.log, m.onProperty)
	if err != nil {
		return err
	}
	m.observer = o
	return nil
}

// wait reaps mpv and reports an exit nobody asked for as the end of playback.
func (m *MPV) wait(cmd *exec.Cmd, exited chan struct{}) {
	_ = cmd.Wait()
	close(exited)

	m.stateMu.Lock()
	closed := m.closed
	m.stateMu.Unlock()
	if closed {
		return
	}

	select {
	case m.events <- Event{Kind: EventEnded}:
	default:
	}
}

// resetLocked forgets an exited process. procMu must be held.
func (m *MPV) resetLocked() {
	if m.observer != nil {
		m.observer.Close()
		m.observer = nil
	}
	m.cmd, m.exited = nil, nil

	m.mu.Lock()
	if m.socketPath != "" {
		_ = os.Remove(m.socketPath)
		m.socketPath = ""
	}
	m.mu.Unlock()

	m.stateMu.Lock()
	m.loaded = false
	m.source = ""
	m.stateMu.Unlock()
}

func (m *MPV) ensureSocketPath() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.socketPath == "" {
		suffix := make([]byte, 4)
		if _, err := rand.Read(suffix); err != nil {
			return "", fmt.Errorf("generate socket name: %w", err)
		}
		m.socketPath = filepath.Join(where.Temp(), fmt.Sprintf("mpv-%x.sock", suffix))
	}
	return m.socketPath, nil
}

// args keeps the user's mpv.conf in charge of video output and decoding.
func (m *MPV) args(socketPath string) []string {
	return []string{
		"--no-terminal",
		"--really-quiet",
		"--input-ipc-server=" + socketPath,
		"--force-window=yes",
		"--idle=yes",
		"--keep-open=yes",
		"--fullscreen=yes",
	}
}

// waitForSocket polls until mpv accepts IPC connections or exits.
func waitForSocket(socketPath string, exited <-chan struct{}) error {
	tick := time.NewTicker(socketPollInterval)
	defer tick.Stop()
	deadline := time.After(socketTimeout)

	for {
		select {
		case <-exited:
			return errors.New("mpv exited before opening its IPC socket")
		case <-deadline:
			return fmt.Errorf("no IPC socket at %s after %s", socketPath, socketTimeout)
		case <-tick.C:
			if conn, err := net.DialTimeout("unix", socketPath, socketPollInterval); err == nil {
				return conn.Close()
			}
		}
	}
}

// Load starts mpv if needed, replaces the playlist with url and unpauses.
func (m *MPV) Load(rawURL, title string) error {
	target, err := sanitizeMediaTarget(rawURL)
	if err != nil {
		return fmt.Errorf("invalid media target: %w", err)
	}
	if err := m.Start(); err != nil {
		return err
	}

	if _, err := m.sendCommand([]interface{}{"loadfile", target, "replace"}); err != nil {
		return fmt.Errorf("load %s: %w", target, err)
	}
	if t := sanitizeTitle(title); t != "" {
		_ = m.set("force-media-title", t)
	}

	m.stateMu.Lock()
	m.source = target
	m.stateMu.Unlock()

	return m.set("pause", false)
}

func (m *MPV) Resume() error {
	return m.set("pause", false)
}

func (m *MPV) Pause() error {
	return m.set("pause", true)
}

func (m *MPV) Position() (float64, error) {
	return m.getFloatProperty("time-pos")
}

func (m *MPV) Duration() (float64, error) {
	return m.getFloatProperty("duration")
}

// SetPosition seeks to an absolute position. Negative positions start from the
// beginning, as mpv would count them from the end of the file.
func (m *MPV) SetPosition(seconds float64) error {
	_, err := m.sendCommand([]interface{}{"seek", math.Max(seconds, 0), "absolute"})
	return err
}

func (m *MPV) Source() string {
	m.stateMu.Lock()
	defer m.stateMu.Unlock()
	return m.source
}

func (m *MPV) Events() <-chan Event {
	return m.events
}

// Close quits mpv, killing it when it does not exit within three seconds.
func (m *MPV) Close() error {
	m.stateMu.Lock()
	if m.closed {
		m.stateMu.Unlock()
		return nil
	}
	m.closed = true
	m.stateMu.Unlock()
	close(m.stop)

	m.procMu.Lock()
	defer m.procMu.Unlock()

	if m.observer != nil {
		m.observer.Close()
		m.observer = nil
	}
	if m.cmd == nil {
		return nil
	}

	if _, err := m.sendCommand([]interface{}{"quit"}); err != nil {
		m.log.WithError(err).Debug("quit was not delivered")
	}

	var err error
	select {
	case <-m.exited:
	case <-time.After(quitTimeout):
		err = killProcess(m.cmd)
	}
	m.resetLocked()
	return err
}

func (m *MPV) set(property string, value interface{}) error {
	_, err := m.sendCommand([]interface{}{"set_property", property, value})
	return err
}

func (m *MPV) getFloatProperty(name string) (float64, error) {
	data, err := m.sendCommand([]interface{}{"get_property", name})
	if err != nil {
		return 0, err
	}
	if data == nil {
		return 0, fmt.Errorf("property %s: nil response", name)
	}

	val, ok := data.(float64)
	if !ok {
		return 0, fmt.Errorf("property %s: expected float64, got %T", name, data)
	}
	return val, nil
}

// onProperty turns observed mpv properties into player events.
func (m *MPV) onProperty(name string, data interface{}) {
	m.stateMu.Lock()
	if name == "file-loaded" {
		m.loaded = true
	}
	loaded := m.loaded
	m.stateMu.Unlock()

	ev, ok := translate(name, data, loaded)
	if !ok {
		return
	}

	if ev.Kind == EventTimeUpdate {
		select {
		case m.events <- ev:
		default:
		}
		return
	}

	select {
	case m.events <- ev:
	case <-m.stop:
	}
}

// translate maps an mpv property change or event to a player Event.
// Pause changes are ignored until a file has been loaded.
func translate(name string, data interface{}, loaded bool) (Event, bool) {
	switch name {
	case "file-loaded":
		return Event{Kind: EventPlay}, true
	case "pause":
		paused, ok := data.(bool)
		if !ok || !loaded {
			return Event{}, false
		}
		if paused {
			return Event{Kind: EventPause}, true
		}
		return Event{Kind: EventPlay}, true
	case "eof-reached":
		if reached, _ := data.(bool); reached {
			return Event{Kind: EventEnded}, true
		}
	case "time-pos":
		if pos, ok := data.(float64); ok {
			return Event{Kind: EventTimeUpdate, Time: pos}, true
		}
	}
	return Event{}, false
}

// sanitizeMediaTarget accepts http(s) URLs and plain paths, and rejects
// anything mpv could read as an option.
func sanitizeMediaTarget(link string) (string, error) {
	target := strings.TrimSpace(link)
	switch {
	case target == "":
		return "", errors.New("no media to load")
	case strings.ContainsAny(target, "\x00\r\n"):
		return "", errors.New("media target contains control characters")
	case target[0] == '-':
		return "", fmt.Errorf("media target %q looks like an option", target)
	case !strings.Contains(target, "://"):
		return filepath.Clean(target), nil
	}

	u, err := url.Parse(target)
	if err != nil {
		return "", fmt.Errorf("parse media URL: %w", err)
	}
	if scheme := strings.ToLower(u.Scheme); scheme != "http" && scheme != "https" {
		return "", fmt.Errorf("%s URLs are not played", u.Scheme)
	}
	return target, nil
}

var titleReplacer = strings.NewReplacer("\n", " ", "\r", " ", "\t", " ", "\x00", "")

func sanitizeTitle(title string) string {
	return strings.TrimSpace(titleReplacer.Replace(title))
}
