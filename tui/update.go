package tui

import (
	bubblesKey "github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/samber/mo"
	"github.com/tvremote/tvremote/alert"
	"github.com/tvremote/tvremote/api"
	"github.com/tvremote/tvremote/internal/ui"
	"github.com/tvremote/tvremote/query"
	"github.com/tvremote/tvremote/search"
)

func (b *statefulBubble) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	if cmd := b.notifier.Update(msg); cmd != nil {
		cmds = append(cmds, cmd)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		b.resize(msg.Width, msg.Height)
	case ui.NotifyMsg:
		return b, tea.Batch(append(cmds, b.waitForBridge())...)
	case ui.QuestionMsg:
		if b.question != nil {
			// one question at a time
			msg.Answer <- false
			cmds = append(cmds, ui.Notify(alert.Warning, "Finish the pending question first"))
			return b, tea.Batch(append(cmds, b.waitForBridge())...)
		}
		b.question = &msg
		b.newState(confirmState)
		return b, tea.Batch(append(cmds, b.waitForBridge())...)
	case remoteMsg:
		return b, b.waitForRemote()
	case pollMsg:
		switch b.state {
		case videosState:
			cmds = append(cmds, b.loadCollection())
		case tasksState:
			cmds = append(cmds, b.loadTasks())
		}
		return b, tea.Batch(append(cmds, b.tick())...)
	case doneMsg:
		b.stopLoading()
		if b.state == loadingState {
			b.previousState()
		}
		cmds = append(cmds, failed(msg.err))
		if msg.refresh && msg.err == nil {
			cmds = append(cmds, b.refresh())
		}
		return b, tea.Batch(cmds...)
	case tea.KeyMsg:
		if bubblesKey.Matches(msg, b.keymap.forceQuit) {
			b.answer(false)
			return b, tea.Quit
		}
	}

	var cmd tea.Cmd
	switch b.state {
	case loadingState:
		cmd = b.updateLoading(msg)
	case videosState:
		cmd = b.updateVideos(msg)
	case detailsState:
		cmd = b.updateDetails(msg)
	case searchState:
		cmd = b.updateSearch(msg)
	case resultsState:
		cmd = b.updateResults(msg)
	case tasksState:
		cmd = b.updateTasks(msg)
	case conversionsState:
		cmd = b.updateConversions(msg)
	case renameState:
		cmd = b.updateRename(msg)
	case confirmState:
		cmd = b.updateConfirm(msg)
	case errorState:
		cmd = b.updateError(msg)
	}

	return b, tea.Batch(append(cmds, cmd)...)
}

// refresh reloads whatever the current top level view shows.
func (b *statefulBubble) refresh() tea.Cmd {
	switch b.state {
	case tasksState:
		return b.loadTasks()
	case detailsState:
		b.previousState()
		return b.loadCollection()
	default:
		return b.loadCollection()
	}
}

// tab handles the keys switching between videos, search and tasks. It reports whether msg was one.
func (b *statefulBubble) tab(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch {
	case bubblesKey.Matches(msg, b.keymap.videosTab):
		b.switchTab(videosState)
		return b.loadCollection(), true
	case bubblesKey.Matches(msg, b.keymap.searchTab):
		b.switchTab(searchState)
		return b.inputC.Focus(), true
	case bubblesKey.Matches(msg, b.keymap.tasksTab):
		b.switchTab(tasksState)
		return b.loadTasks(), true
	}
	return nil, false
}

func (b *statefulBubble) updateLoading(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if bubblesKey.Matches(msg, b.keymap.back) {
			b.stopLoading()
			b.previousState()
			return nil
		}
	case videoMsg:
		b.stopLoading()
		b.selected = mo.Some(api.VideoDetails(msg))
		b.setState(detailsState)
		return nil
	case conversionsMsg:
		b.stopLoading()
		cmd := b.conversionsC.SetItems(toItems([]api.Conversion(msg)))
		b.conversionsC.Title = "Convert " + b.target
		b.setState(conversionsState)
		if len(msg) == 0 {
			return tea.Batch(cmd, b.conversionsC.NewStatusMessage("No conversions available"))
		}
		return cmd
	}

	var cmd tea.Cmd
	b.spinnerC, cmd = b.spinnerC.Update(msg)
	return cmd
}

func (b *statefulBubble) selectedEntry() *entry {
	item, ok := b.videosC.SelectedItem().(*listItem)
	if !ok {
		return nil
	}
	e, _ := item.internal.(*entry)
	return e
}

func (b *statefulBubble) updateVideos(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case collectionMsg:
		b.listing = api.CollectionDetails(msg)
		items := make([]list.Item, 0)
		for _, e := range entries(b.listing) {
			items = append(items, &listItem{internal: e})
		}
		b.videosC.Title = "Videos"
		if b.listing.Collection != "" {
			b.videosC.Title = b.listing.Collection
		}
		cmd := b.videosC.SetItems(items)
		if len(b.listing.Errors) > 0 {
			return tea.Batch(cmd, b.videosC.NewStatusMessage(b.listing.Errors[0]))
		}
		return cmd
	case tea.KeyMsg:
		if cmd, ok := b.tab(msg); ok {
			return cmd
		}

		e := b.selectedEntry()
		switch {
		case bubblesKey.Matches(msg, b.keymap.back):
			if b.listing.Collection != "" {
				b.player.SetCollection(b.listing.ParentCollection)
				return b.loadCollection()
			}
			return nil
		case bubblesKey.Matches(msg, b.keymap.refresh):
			return b.loadCollection()
		case e == nil:
		case bubblesKey.Matches(msg, b.keymap.confirm):
			if e.kind != videoEntry {
				b.player.SetCollection(e.name)
				b.videosC.ResetSelected()
				return b.loadCollection()
			}
			b.newState(loadingState)
			return tea.Batch(b.startLoading("Loading "+e.name), b.loadVideo(e.name))
		case e.kind != videoEntry:
		case bubblesKey.Matches(msg, b.keymap.play):
			return b.playVideo(e.name)
		case bubblesKey.Matches(msg, b.keymap.remove):
			return b.deleteVideo(e.name)
		case bubblesKey.Matches(msg, b.keymap.rename):
			return b.startRename(e.name)
		case bubblesKey.Matches(msg, b.keymap.convert):
			return b.startConvert(e.name)
		}
	}

	var cmd tea.Cmd
	b.videosC, cmd = b.videosC.Update(msg)
	return cmd
}

func (b *statefulBubble) startRename(video string) tea.Cmd {
	b.target = video
	b.renameC.SetValue(video)
	b.renameC.CursorEnd()
	b.newState(renameState)
	return b.renameC.Focus()
}

func (b *statefulBubble) startConvert(video string) tea.Cmd {
	b.target = video
	b.newState(loadingState)
	return tea.Batch(b.startLoading("Loading conversions"), b.loadConversions())
}

func (b *statefulBubble) updateDetails(msg tea.Msg) tea.Cmd {
	video, ok := b.selected.Get()
	if !ok {
		b.previousState()
		return nil
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}

	switch {
	case bubblesKey.Matches(keyMsg, b.keymap.back):
		b.selected = mo.None[api.VideoDetails]()
		b.previousState()
	case bubblesKey.Matches(keyMsg, b.keymap.play, b.keymap.confirm):
		return b.playVideo(video.Video)
	case bubblesKey.Matches(keyMsg, b.keymap.togglePause):
		return b.togglePause()
	case bubblesKey.Matches(keyMsg, b.keymap.seekBack):
		return b.seek(-b.seekStep)
	case bubblesKey.Matches(keyMsg, b.keymap.seekForward):
		return b.seek(b.seekStep)
	case bubblesKey.Matches(keyMsg, b.keymap.remove):
		return b.deleteVideo(video.Video)
	case bubblesKey.Matches(keyMsg, b.keymap.rename):
		return b.startRename(video.Video)
	case bubblesKey.Matches(keyMsg, b.keymap.convert):
		return b.startConvert(video.Video)
	}
	return nil
}

func (b *statefulBubble) updateSearch(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case resultsMsg:
		b.stopLoading()
		cmd := b.resultsC.SetItems(toItems(msg.Results))
		b.resultsC.Title = "Results for " + msg.LastSearch
		b.newState(resultsState)
		if len(msg.Results) == 0 {
			return tea.Batch(cmd, b.resultsC.NewStatusMessage("No results"))
		}
		return cmd
	case tea.KeyMsg:
		switch {
		case bubblesKey.Matches(msg, b.keymap.back):
			b.inputC.Blur()
			b.switchTab(videosState)
			return b.loadCollection()
		case bubblesKey.Matches(msg, b.keymap.acceptSearchSuggestion):
			if s, ok := b.searchSuggestion.Get(); ok {
				b.inputC.SetValue(s)
				b.inputC.CursorEnd()
				b.search.Dispatch(search.SetTerm(s))
				b.searchSuggestion = mo.None[string]()
			}
			return nil
		case bubblesKey.Matches(msg, b.keymap.switchEngine):
			next := api.YouTube
			if b.search.State().Engine == api.YouTube {
				next = api.PirateBay
			}
			b.search.Dispatch(search.SetEngine(next))
			return nil
		case bubblesKey.Matches(msg, b.keymap.confirm):
			if b.loading || b.search.State().Term == "" {
				return nil
			}
			return tea.Batch(b.startLoading("Searching"), b.runSearch())
		}
	}

	var cmd tea.Cmd
	b.inputC, cmd = b.inputC.Update(msg)

	term := b.inputC.Value()
	if term != b.search.State().Term {
		b.search.Dispatch(search.SetTerm(term))
		b.searchSuggestion = query.Suggest(term)
	}
	if b.loading {
		var spin tea.Cmd
		b.spinnerC, spin = b.spinnerC.Update(msg)
		cmd = tea.Batch(cmd, spin)
	}
	return cmd
}

func (b *statefulBubble) updateResults(msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if cmd, ok := b.tab(msg); ok {
			return cmd
		}

		switch {
		case bubblesKey.Matches(msg, b.keymap.back):
			b.previousState()
			return b.inputC.Focus()
		case bubblesKey.Matches(msg, b.keymap.download):
			if item, ok := b.resultsC.SelectedItem().(*listItem); ok {
				return b.download(*item.internal.(*api.SearchResult))
			}
			return nil
		case bubblesKey.Matches(msg, b.keymap.openLink):
			if item, ok := b.resultsC.SelectedItem().(*listItem); ok {
				return b.openLink(item.internal.(*api.SearchResult).Link)
			}
			return nil
		}
	}

	var cmd tea.Cmd
	b.resultsC, cmd = b.resultsC.Update(msg)
	return cmd
}

func (b *statefulBubble) updateTasks(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tasksMsg:
		return b.tasksC.SetItems(toItems([]api.TaskState(msg)))
	case tea.KeyMsg:
		if cmd, ok := b.tab(msg); ok {
			return cmd
		}

		switch {
		case bubblesKey.Matches(msg, b.keymap.back):
			b.switchTab(videosState)
			return b.loadCollection()
		case bubblesKey.Matches(msg, b.keymap.refresh):
			return b.loadTasks()
		case bubblesKey.Matches(msg, b.keymap.remove, b.keymap.confirm):
			if item, ok := b.tasksC.SelectedItem().(*listItem); ok {
				return b.terminate(*item.internal.(*api.TaskState))
			}
			return nil
		}
	}

	var cmd tea.Cmd
	b.tasksC, cmd = b.tasksC.Update(msg)
	return cmd
}

func (b *statefulBubble) updateConversions(msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case bubblesKey.Matches(msg, b.keymap.back):
			b.previousState()
			return nil
		case bubblesKey.Matches(msg, b.keymap.confirm):
			item, ok := b.conversionsC.SelectedItem().(*listItem)
			if !ok {
				return nil
			}
			b.previousState()
			return b.convertVideo(b.target, item.internal.(*api.Conversion).Name)
		}
	}

	var cmd tea.Cmd
	b.conversionsC, cmd = b.conversionsC.Update(msg)
	return cmd
}

func (b *statefulBubble) updateRename(msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case bubblesKey.Matches(msg, b.keymap.back):
			b.renameC.Blur()
			b.previousState()
			return nil
		case bubblesKey.Matches(msg, b.keymap.confirm):
			newName := b.renameC.Value()
			b.renameC.Blur()
			b.previousState()
			if newName == "" || newName == b.target {
				return nil
			}
			return b.renameVideo(b.target, newName)
		}
	}

	var cmd tea.Cmd
	b.renameC, cmd = b.renameC.Update(msg)
	return cmd
}

// answer replies to the pending question, if any.
func (b *statefulBubble) answer(ok bool) {
	if b.question == nil {
		return
	}
	b.question.Answer <- ok
	b.question = nil
}

func (b *statefulBubble) updateConfirm(msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case bubblesKey.Matches(msg, b.keymap.yes):
			b.answer(true)
			b.previousState()
		case bubblesKey.Matches(msg, b.keymap.no):
			b.answer(false)
			b.previousState()
		}
	}
	return nil
}

func (b *statefulBubble) updateError(msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case bubblesKey.Matches(msg, b.keymap.back):
			b.lastError = nil
			b.previousState()
		case bubblesKey.Matches(msg, b.keymap.quit):
			return tea.Quit
		}
	}
	return nil
}
