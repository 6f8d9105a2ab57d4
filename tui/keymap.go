package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/tvremote/tvremote/color"
	"github.com/tvremote/tvremote/style"
)

type statefulKeymap struct {
	state state

	quit, forceQuit,
	confirm, back,
	yes, no,
	up, down, left, right,
	top, bottom,
	videosTab, searchTab, tasksTab,
	play, togglePause, seekBack, seekForward,
	remove, rename, convert,
	acceptSearchSuggestion, switchEngine,
	download, openLink, refresh,
	showHelp key.Binding
}

func (k *statefulKeymap) setState(newState state) {
	k.state = newState
}

func newStatefulKeymap() *statefulKeymap {
	return &statefulKeymap{
		quit:                   bind("q", "quit", "q"),
		forceQuit:              bind("ctrl+c", "quit", "ctrl+c", "ctrl+d"),
		confirm:                bind("enter", "open", "enter"),
		back:                   bind("esc", "back", "esc"),
		yes:                    bind("y", "yes", "y", "Y", "enter"),
		no:                     bind("n", "no", "n", "N", "esc"),
		up:                     bind("↑", "up", "up", "k"),
		down:                   bind("↓", "down", "down", "j"),
		left:                   bind("←", "left", "left", "h"),
		right:                  bind("→", "right", "right", "l"),
		top:                    bind("g", "top", "g"),
		bottom:                 bind("G", "bottom", "G"),
		videosTab:              bind("1", "videos", "1"),
		searchTab:              bind("2", "find", "2", "/"),
		tasksTab:               bind("3", "tasks", "3"),
		play:                   bind(style.Fg(color.Orange)("p"), style.Fg(color.Orange)("play"), "p"),
		togglePause:            bind("space", "pause/resume", " "),
		seekBack:               bind("←", "rewind", "left", "h", "["),
		seekForward:            bind("→", "forward", "right", "l", "]"),
		remove:                 bind("d", "delete", "d"),
		rename:                 bind("r", "rename", "r"),
		convert:                bind("c", "convert", "c"),
		acceptSearchSuggestion: bind("tab", "accept search suggestion", "tab"),
		switchEngine:           bind("ctrl+e", "switch engine", "ctrl+e"),
		openLink:               bind("o", "open link", "o"),
		download:               bind("enter", "download", "enter"),
		refresh:                bind("R", "refresh", "R", "ctrl+r"),
		showHelp:               bind("?", "help", "?"),
	}
}

// bind makes a binding for keys whose help shows shortcut.
func bind(shortcut, desc string, keys ...string) key.Binding {
	return key.NewBinding(key.WithKeys(keys...), key.WithHelp(shortcut, desc))
}

func (k *statefulKeymap) help() ([]key.Binding, []key.Binding) {
	h := func(bindings ...key.Binding) []key.Binding {
		return bindings
	}

	to2 := func(a []key.Binding) ([]key.Binding, []key.Binding) {
		return a, a
	}

	tabs := h(k.videosTab, k.searchTab, k.tasksTab)

	switch k.state {
	case loadingState:
		return to2(h(k.forceQuit, k.back))
	case videosState:
		return h(k.confirm, k.play, k.back), append(h(k.confirm, k.play, k.remove, k.rename, k.convert, k.refresh, k.back), tabs...)
	case detailsState:
		return to2(h(k.play, k.seekBack, k.togglePause, k.seekForward, k.remove, k.rename, k.convert, k.back))
	case searchState:
		return to2(h(withDescription(k.confirm, "search"), k.acceptSearchSuggestion, k.switchEngine, k.back, k.forceQuit))
	case resultsState:
		return h(k.download, k.openLink, k.back), append(h(k.download, k.openLink, k.back), tabs...)
	case tasksState:
		return h(withDescription(k.remove, "terminate"), k.back), append(h(withDescription(k.remove, "terminate"), k.refresh, k.back), tabs...)
	case conversionsState:
		return to2(h(withDescription(k.confirm, "convert"), k.back))
	case renameState:
		return to2(h(withDescription(k.confirm, "rename"), k.back))
	case confirmState:
		return to2(h(k.yes, k.no))
	case errorState:
		return to2(h(k.back, k.quit))
	default:
		return to2(h())
	}
}

func (k *statefulKeymap) ShortHelp() []key.Binding {
	short, _ := k.help()
	return short
}

func (k *statefulKeymap) FullHelp() [][]key.Binding {
	_, full := k.help()
	return [][]key.Binding{full}
}

func (k *statefulKeymap) forList() list.KeyMap {
	return list.KeyMap{
		CursorUp:             k.up,
		CursorDown:           k.down,
		NextPage:             k.right,
		PrevPage:             k.left,
		GoToStart:            k.top,
		GoToEnd:              k.bottom,
		ClearFilter:          k.back,
		CancelWhileFiltering: k.back,
		AcceptWhileFiltering: k.confirm,
		ShowFullHelp:         k.showHelp,
		CloseFullHelp:        k.showHelp,
		Quit:                 k.quit,
		ForceQuit:            k.forceQuit,
	}
}

func withDescription(k key.Binding, description string) key.Binding {
	return key.NewBinding(
		key.WithKeys(k.Keys()...),
		key.WithHelp(k.Help().Key, description),
	)
}
