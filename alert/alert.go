// Package alert carries the user-facing notification and confirmation capabilities that
// components receive instead of reaching for a global UI.
package alert

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/AlecAivazis/survey/v2"
	"github.com/tvremote/tvremote/color"
	"github.com/tvremote/tvremote/icon"
	"github.com/tvremote/tvremote/style"
)

// Level is the severity of an alert.
type Level int

const (
	Info Level = iota
	Warning
	Error
)

func (l Level) String() string {
	switch l {
	case Warning:
		return "warning"
	case Error:
		return "error"
	default:
		return "info"
	}
}

// Alerter shows a message to the user.
type Alerter interface {
	Alert(level Level, msg string)
}

// Asker asks the user a yes/no question.
type Asker interface {
	Ask(ctx context.Context, question string) (bool, error)
}

// AlerterFunc adapts a function to Alerter.
type AlerterFunc func(level Level, msg string)

func (f AlerterFunc) Alert(level Level, msg string) { f(level, msg) }

// AskerFunc adapts a function to Asker.
type AskerFunc func(ctx context.Context, question string) (bool, error)

func (f AskerFunc) Ask(ctx context.Context, question string) (bool, error) { return f(ctx, question) }

// Terminal prints alerts as single lines prefixed with an icon.
type Terminal struct {
	mu  sync.Mutex
	Out io.Writer
}

func (t *Terminal) Alert(level Level, msg string) {
	var prefix string
	switch level {
	case Warning:
		prefix = style.Fg(color.Yellow)(icon.Get(icon.Warn))
	case Error:
		prefix = style.Fg(color.Red)(icon.Get(icon.Fail))
	default:
		prefix = style.Fg(color.Blue)(icon.Get(icon.Info))
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	_, _ = fmt.Fprintf(t.Out, "%s %s\n", prefix, strings.TrimSpace(msg))
}

// Survey asks on the terminal with a survey confirm prompt.
type Survey struct {
	Default bool
}

func (s Survey) Ask(ctx context.Context, question string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	confirm := survey.Confirm{
		Message: question,
		Default: s.Default,
	}
	var response bool
	err := survey.AskOne(&confirm, &response)
	return response, err
}

// Fixed answers every question with Answer, e.g. for --yes.
type Fixed struct {
	Answer bool
}

func (f Fixed) Ask(ctx context.Context, _ string) (bool, error) {
	return f.Answer, ctx.Err()
}
