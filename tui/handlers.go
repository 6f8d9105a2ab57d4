package tui

import (
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/samber/lo"
	"github.com/tvremote/tvremote/alert"
	"github.com/tvremote/tvremote/api"
	"github.com/tvremote/tvremote/control"
	"github.com/tvremote/tvremote/internal/ui"
	"github.com/tvremote/tvremote/log"
	"github.com/tvremote/tvremote/open"
	"github.com/tvremote/tvremote/query"
	"github.com/tvremote/tvremote/search"
)

type (
	collectionMsg  api.CollectionDetails
	videoMsg       api.VideoDetails
	tasksMsg       []api.TaskState
	conversionsMsg []api.Conversion
	resultsMsg     search.State
	remoteMsg      struct{}
	pollMsg        struct{}

	// doneMsg ends a background operation. refresh reloads the current listing.
	doneMsg struct {
		refresh bool
		err     error
	}
)

func (b *statefulBubble) loadCollection() tea.Cmd {
	return func() tea.Msg {
		details, err := b.player.FetchCollection(b.ctx)
		if err != nil {
			return doneMsg{err: err}
		}
		if details.Collection == nil {
			return doneMsg{err: errors.New("the media server did not return a collection")}
		}
		return collectionMsg(*details.Collection)
	}
}

func (b *statefulBubble) loadVideo(video string) tea.Cmd {
	collection := b.player.Collection()
	return func() tea.Msg {
		details, err := b.player.FetchDetails(b.ctx, video, collection)
		if err != nil {
			return doneMsg{err: err}
		}
		if details.Video == nil {
			return doneMsg{err: errors.New("the media server did not return a video")}
		}
		return videoMsg(*details.Video)
	}
}

func (b *statefulBubble) loadTasks() tea.Cmd {
	return func() tea.Msg {
		running, err := b.tasks.List(b.ctx)
		if err != nil {
			return doneMsg{err: err}
		}
		return tasksMsg(running)
	}
}

func (b *statefulBubble) loadConversions() tea.Cmd {
	return func() tea.Msg {
		return conversionsMsg(b.player.GetAvailableConversions(b.ctx))
	}
}

func (b *statefulBubble) runSearch() tea.Cmd {
	state := b.search.State()
	return func() tea.Msg {
		if err := query.Remember(state.Term, string(state.Engine)); err != nil {
			log.For("tui").WithError(err).Warn("search term not remembered")
		}
		if err := b.search.Search(b.ctx); err != nil {
			return doneMsg{err: err}
		}
		return resultsMsg(b.search.State())
	}
}

// operation runs fn in the background and reports its completion.
func (b *statefulBubble) operation(refresh bool, fn func() error) tea.Cmd {
	return func() tea.Msg {
		return doneMsg{refresh: refresh, err: fn()}
	}
}

func (b *statefulBubble) playVideo(video string) tea.Cmd {
	return b.operation(false, func() error { return b.player.PlayVideo(b.ctx, video) })
}

func (b *statefulBubble) seek(interval float64) tea.Cmd {
	return b.operation(false, func() error { return b.player.Seek(b.ctx, interval) })
}

func (b *statefulBubble) togglePause() tea.Cmd {
	return b.operation(false, func() error { return b.player.TogglePause(b.ctx) })
}

func (b *statefulBubble) deleteVideo(video string) tea.Cmd {
	return b.operation(true, func() error { return b.player.DeleteVideo(b.ctx, video) })
}

func (b *statefulBubble) renameVideo(video, newName string) tea.Cmd {
	return b.operation(true, func() error { return b.player.RenameVideo(b.ctx, video, newName) })
}

func (b *statefulBubble) convertVideo(video, conversion string) tea.Cmd {
	return b.operation(true, func() error { return b.player.ConvertVideo(b.ctx, video, conversion) })
}

func (b *statefulBubble) download(item api.SearchResult) tea.Cmd {
	return b.operation(false, func() error {
		added, err := b.tasks.Download(b.ctx, item)
		if added {
			b.bridge.Alert(alert.Info, "Download started: "+item.Title)
		}
		return err
	})
}

func (b *statefulBubble) openLink(link string) tea.Cmd {
	return b.operation(false, func() error { return open.URL(link) })
}

func (b *statefulBubble) terminate(task api.TaskState) tea.Cmd {
	return b.operation(true, func() error {
		_, err := b.tasks.Delete(b.ctx, task)
		return err
	})
}

// waitForBridge delivers the next alert or question raised by a background operation.
func (b *statefulBubble) waitForBridge() tea.Cmd {
	return b.bridge.Next()
}

func (b *statefulBubble) waitForRemote() tea.Cmd {
	updates := b.monitor.Updates()
	return func() tea.Msg {
		select {
		case <-updates:
			return remoteMsg{}
		case <-b.ctx.Done():
			return nil
		}
	}
}

func (b *statefulBubble) tick() tea.Cmd {
	return tea.Tick(b.pollInterval, func(time.Time) tea.Msg {
		return pollMsg{}
	})
}

// failed turns an operation error into a notification, unless it was shown already.
func failed(err error) tea.Cmd {
	if err == nil || errors.Is(err, control.ErrAlerted) || errors.Is(err, search.ErrNoResults) {
		return nil
	}
	return ui.Notify(alert.Error, err.Error())
}

func toItems[T any](values []T) []list.Item {
	return lo.Map(values, func(_ T, i int) list.Item {
		return &listItem{internal: &values[i]}
	})
}
