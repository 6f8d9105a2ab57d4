package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/tvremote/tvremote/alert"
)

// QuestionMsg asks the user a yes/no question. Exactly one value must be sent on Answer.
type QuestionMsg struct {
	Text   string
	Answer chan<- bool
}

// Bridge implements alert.Alerter and alert.Asker for code running inside tea.Cmd goroutines.
// Alerts become NotifyMsg and questions become QuestionMsg, both read by Next.
type Bridge struct {
	msgs chan tea.Msg
}

// NewBridge returns a bridge buffering up to size pending messages.
func NewBridge(size int) *Bridge {
	return &Bridge{msgs: make(chan tea.Msg, size)}
}

// Alert queues a notification. It drops the alert when the queue is full.
func (b *Bridge) Alert(level alert.Level, text string) {
	select {
	case b.msgs <- NotifyMsg{Level: level, Text: text}:
	default:
	}
}

// Ask queues a question and blocks until it is answered or ctx is done.
func (b *Bridge) Ask(ctx context.Context, question string) (bool, error) {
	answer := make(chan bool, 1)
	select {
	case b.msgs <- QuestionMsg{Text: question, Answer: answer}:
	case <-ctx.Done():
		return false, ctx.Err()
	}

	select {
	case ok := <-answer:
		return ok, nil
	case <-ctx.Done():
		return false, ctx.Err()
	}
}

// Next waits for the next alert or question.
func (b *Bridge) Next() tea.Cmd {
	return func() tea.Msg {
		return <-b.msgs
	}
}
