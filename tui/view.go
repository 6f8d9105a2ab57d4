package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/reflow/wrap"
	"github.com/tvremote/tvremote/api"
	"github.com/tvremote/tvremote/color"
	"github.com/tvremote/tvremote/icon"
	"github.com/tvremote/tvremote/style"
	"github.com/tvremote/tvremote/util"
)

var (
	listExtraPaddingStyle = lipgloss.NewStyle().Padding(1, 2, 1, 0)
	paddingStyle          = lipgloss.NewStyle().Padding(1, 2)
)

func (b *statefulBubble) View() string {
	var output string

	switch b.state {
	case loadingState:
		output = b.viewLoading()
	case videosState:
		output = listExtraPaddingStyle.Render(b.videosC.View())
	case detailsState:
		output = b.viewDetails()
	case searchState:
		output = b.viewSearch()
	case resultsState:
		output = listExtraPaddingStyle.Render(b.resultsC.View())
	case tasksState:
		output = listExtraPaddingStyle.Render(b.tasksC.View())
	case conversionsState:
		output = listExtraPaddingStyle.Render(b.conversionsC.View())
	case renameState:
		output = b.viewRename()
	case confirmState:
		output = b.viewConfirm()
	case errorState:
		output = b.viewError()
	default:
		output = "Unknown state"
	}

	return b.notifier.View(output)
}

func (b *statefulBubble) viewLoading() string {
	return b.renderLines(
		true,
		[]string{
			style.Title("Loading"),
			"",
			b.spinnerC.View() + " " + b.progressStatus,
		},
	)
}

func (b *statefulBubble) viewSearch() string {
	state := b.search.State()

	engines := make([]string, 0, 2)
	for _, engine := range []api.SearchEngine{api.YouTube, api.PirateBay} {
		if engine == state.Engine {
			engines = append(engines, style.Tag(style.Base, style.AccentColor)(string(engine)))
		} else {
			engines = append(engines, style.Faint(string(engine)))
		}
	}

	lines := []string{
		style.Title("Find"),
		"",
		b.inputC.View(),
	}
	if s, ok := b.searchSuggestion.Get(); ok && s != state.Term {
		lines = append(lines, style.Faint(icon.Get(icon.Search)+" "+s))
	} else {
		lines = append(lines, "")
	}
	lines = append(lines, "", strings.Join(engines, " "))

	if b.loading {
		lines = append(lines, "", b.spinnerC.View()+" "+b.progressStatus)
	} else if state.LastSearch != "" {
		lines = append(lines, "", style.Faint("Last search: "+state.LastSearch))
	}

	return b.renderLines(true, lines)
}

func (b *statefulBubble) viewDetails() string {
	video, ok := b.selected.Get()
	if !ok {
		return ""
	}

	title := util.FileStem(video.Video)
	if video.Series.SeriesTitle != "" {
		title = video.Series.SeriesTitle
	}

	lines := []string{
		style.Title(style.Truncate(util.Max(b.width-2, 10))(title)),
		"",
	}

	if s := video.Series; s.Season != "" || s.Episode != "" {
		episode := fmt.Sprintf("Season %s, Episode %s", s.Season, s.Episode)
		if s.EpisodeTitle != "" {
			episode += ": " + s.EpisodeTitle
		}
		lines = append(lines, style.Fg(color.Purple)(episode))
	}

	if m := video.Metadata; m.Width > 0 || m.Duration > 0 {
		var parts []string
		if m.Width > 0 && m.Height > 0 {
			parts = append(parts, fmt.Sprintf("%dx%d", m.Width, m.Height))
		}
		if m.Duration > 0 {
			parts = append(parts, util.SecondsToTimeString(int(m.Duration)))
		}
		if m.AudioTracks > 1 {
			parts = append(parts, util.Quantify(m.AudioTracks, "audio track", "audio tracks"))
		}
		lines = append(lines, style.Faint(strings.Join(parts, " • ")))
	}

	if video.Description != "" {
		lines = append(lines, "", wordwrap.String(video.Description, util.Max(b.width, 20)))
	}

	lines = append(lines, "", b.viewRemote(video), "", b.viewControls())
	return b.renderLines(true, lines)
}

// viewRemote shows the progress reported by the surface when it plays the displayed video.
func (b *statefulBubble) viewRemote(video api.VideoDetails) string {
	state, ok := b.monitor.Progress(video.Collection, video.Video).Get()
	if !ok {
		return style.Faint(icon.Get(icon.TV) + " not playing")
	}

	return fmt.Sprintf("%s %s %s / %s",
		icon.Get(icon.TV),
		b.progressC.ViewAs(state.Percent()),
		util.Clock(state.CurrentTime),
		util.Clock(state.Duration),
	)
}

func (b *statefulBubble) viewControls() string {
	step := fmt.Sprintf("%.0fs", b.seekStep)
	controls := []string{
		style.Faint("←") + " -" + step,
		icon.Get(icon.Play) + icon.Get(icon.Pause),
		"+" + step + " " + style.Faint("→"),
	}
	return strings.Join(controls, "   ")
}

func (b *statefulBubble) viewRename() string {
	return b.renderLines(false, []string{
		style.Title("Rename"),
		"",
		style.Fg(color.Purple)(b.target),
		"",
		b.renameC.View(),
		"",
		style.Faint("(Enter to confirm, Esc to cancel)"),
	})
}

func (b *statefulBubble) viewConfirm() string {
	question := ""
	if b.question != nil {
		question = b.question.Text
	}
	return b.renderLines(true, []string{
		style.Title("Confirm"),
		"",
		icon.Get(icon.Question) + " " + wordwrap.String(question, util.Max(b.width-2, 20)),
	})
}

func (b *statefulBubble) viewError() string {
	errorStyle := lipgloss.NewStyle().Foreground(style.ErrorColor).Bold(true)
	msg := "unknown error"
	if b.lastError != nil {
		msg = b.lastError.Error()
	}
	return b.renderLines(
		true,
		[]string{
			style.ErrorTitle("Error"),
			"",
			icon.Get(icon.Fail) + " An error occurred:",
			"",
			wrap.String(errorStyle.Render(msg), util.Max(b.width, 20)),
		},
	)
}

func (b *statefulBubble) renderLines(addHelp bool, lines []string) string {
	h := len(lines)
	l := strings.Join(lines, "\n")
	if addHelp {
		if b.height > h {
			l += strings.Repeat("\n", b.height-h)
		}
		l += b.helpC.View(b.keymap)
	}

	return paddingStyle.Render(l)
}
