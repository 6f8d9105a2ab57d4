// Package tui is the controller's terminal interface: browse and play videos, search, and manage tasks.
package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/tvremote/tvremote/remote"
	"github.com/tvremote/tvremote/search"
	"github.com/tvremote/tvremote/session"
)

// Options configure Run.
type Options struct {
	Session *session.Session
	// Collection to open first; empty is the root.
	Collection string
	// Search starts on the search tab with this term.
	Search string
	// Surface, when set, is the playback surface running in this process.
	// Playback goes to it directly and its reports feed the progress display.
	Surface *remote.Surface
}

// Run blocks until the user quits or ctx is done.
func Run(ctx context.Context, options *Options) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	bubble := newBubble(ctx, options)
	if options.Surface != nil {
		ch := options.Session.Connect(options.Surface.Receive)
		options.Surface.Bind(remote.Tee(ch, bubble.monitor.Observe))
	} else {
		options.Session.Watch(bubble.monitor)
	}

	if options.Search != "" {
		bubble.search.Dispatch(search.SetTerm(options.Search))
		bubble.inputC.SetValue(options.Search)
		bubble.newState(searchState)
	} else {
		bubble.newState(videosState)
	}

	_, err := tea.NewProgram(bubble, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}
