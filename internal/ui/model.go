// Package ui holds the notification line of the terminal UI and the bridge that lets
// background operations alert and ask through it.
package ui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/tvremote/tvremote/alert"
	"github.com/tvremote/tvremote/icon"
	"github.com/tvremote/tvremote/style"
)

// NotificationLifetime is how long a notification stays on screen.
const NotificationLifetime = 4 * time.Second

// NotifyMsg shows a notification.
type NotifyMsg struct {
	Level alert.Level
	Text  string
}

// ClearNotificationMsg hides the notification shown at At.
type ClearNotificationMsg struct {
	At time.Time
}

// Notify returns a command showing text.
func Notify(level alert.Level, text string) tea.Cmd {
	return func() tea.Msg {
		return NotifyMsg{Level: level, Text: text}
	}
}

// Model is the notification line.
type Model struct {
	notification NotifyMsg
	notifiedAt   time.Time
}

// Update handles NotifyMsg and ClearNotificationMsg and ignores everything else.
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case NotifyMsg:
		m.notification = msg
		m.notifiedAt = time.Now()
		at := m.notifiedAt
		return tea.Tick(NotificationLifetime, func(time.Time) tea.Msg {
			return ClearNotificationMsg{At: at}
		})
	case ClearNotificationMsg:
		// a newer notification keeps its own timer
		if msg.At.Equal(m.notifiedAt) {
			m.notification = NotifyMsg{}
		}
	}
	return nil
}

// Current returns the visible notification text.
func (m *Model) Current() string {
	return m.notification.Text
}

// View appends the notification to the last line of content.
func (m *Model) View(content string) string {
	if m.notification.Text == "" {
		return content
	}

	var rendered string
	switch m.notification.Level {
	case alert.Error:
		rendered = style.Fg(style.ErrorColor)(icon.Get(icon.Fail) + " " + m.notification.Text)
	case alert.Warning:
		rendered = style.Fg(style.WarningColor)(icon.Get(icon.Warn) + " " + m.notification.Text)
	default:
		rendered = style.Faint(m.notification.Text)
	}

	lines := strings.Split(content, "\n")
	lines[len(lines)-1] += "  " + rendered
	return strings.Join(lines, "\n")
}
