package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

func (b *statefulBubble) Init() tea.Cmd {
	cmds := []tea.Cmd{b.waitForBridge(), b.waitForRemote(), b.tick()}

	switch b.state {
	case searchState:
		cmds = append(cmds, textinput.Blink, b.inputC.Focus())
	case tasksState:
		cmds = append(cmds, b.loadTasks())
	default:
		cmds = append(cmds, b.loadCollection())
	}

	return tea.Batch(cmds...)
}
