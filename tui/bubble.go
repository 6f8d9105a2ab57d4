package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	bubblesKey "github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/viper"
	"github.com/tvremote/tvremote/api"
	"github.com/tvremote/tvremote/control"
	"github.com/tvremote/tvremote/internal/ui"
	"github.com/tvremote/tvremote/key"
	"github.com/tvremote/tvremote/poll"
	"github.com/tvremote/tvremote/remote"
	"github.com/tvremote/tvremote/search"
	"github.com/tvremote/tvremote/style"
	"github.com/tvremote/tvremote/tasks"
	"github.com/tvremote/tvremote/util"
)

type statefulBubble struct {
	state         state
	statesHistory util.Stack[state]
	loading       bool

	keymap *statefulKeymap

	// components
	spinnerC     spinner.Model
	inputC       textinput.Model
	renameC      textinput.Model
	videosC      list.Model
	resultsC     list.Model
	tasksC       list.Model
	conversionsC list.Model
	progressC    progress.Model
	helpC        help.Model

	ctx      context.Context
	player   *control.VideoPlayer
	search   *search.Store
	tasks    *tasks.Manager
	monitor  *remote.Monitor
	bridge   *ui.Bridge
	notifier *ui.Model

	listing  api.CollectionDetails
	selected mo.Option[api.VideoDetails]
	// target is the video the rename, convert and confirm states act on.
	target   string
	question *ui.QuestionMsg

	progressStatus   string
	searchSuggestion mo.Option[string]
	lastError        error

	seekStep     float64
	pollInterval time.Duration

	width, height int
}

func (b *statefulBubble) raiseError(err error) {
	b.lastError = err
	b.newState(errorState)
}

func (b *statefulBubble) setState(s state) {
	b.state = s
	b.keymap.setState(s)
}

func (b *statefulBubble) newState(s state) {
	if b.state == s {
		return
	}

	if !lo.Contains(transient, b.state) {
		b.statesHistory.Push(b.state)
	}

	b.setState(s)
}

func (b *statefulBubble) previousState() {
	if previous, ok := b.statesHistory.Pop(); ok {
		b.setState(previous)
	}
}

// switchTab replaces the navigation history with a single top level state.
func (b *statefulBubble) switchTab(s state) {
	b.statesHistory = nil
	b.setState(s)
}

func (b *statefulBubble) resize(width, height int) {
	x, y := paddingStyle.GetFrameSize()
	xx, yy := listExtraPaddingStyle.GetFrameSize()

	listWidth := width - xx
	listHeight := height - yy

	for _, l := range []*list.Model{&b.videosC, &b.resultsC, &b.tasksC, &b.conversionsC} {
		l.SetSize(listWidth, listHeight)
		l.Help.Width = listWidth
	}

	b.progressC.Width = util.Min(listWidth, 60)
	b.renameC.Width = listWidth
	b.inputC.Width = listWidth

	b.width = width - x
	b.height = height - y
	b.helpC.Width = listWidth
}

func (b *statefulBubble) startLoading(status string) tea.Cmd {
	b.loading = true
	b.progressStatus = status
	return tea.Batch(b.spinnerC.Tick, b.videosC.StartSpinner(), b.resultsC.StartSpinner())
}

func (b *statefulBubble) stopLoading() {
	b.loading = false
	b.progressStatus = ""
	b.videosC.StopSpinner()
	b.resultsC.StopSpinner()
}

// deps are the collaborators of the bubble, separated from Options so tests can pass fakes.
type deps struct {
	player  *control.VideoPlayer
	search  *search.Store
	tasks   *tasks.Manager
	monitor *remote.Monitor
	bridge  *ui.Bridge
}

func newBubble(ctx context.Context, options *Options) *statefulBubble {
	bridge := ui.NewBridge(16)
	sess := options.Session

	var videoPlayer *control.VideoPlayer
	if options.Surface != nil {
		videoPlayer = sess.Local(options.Collection, options.Surface, control.WithAlerter(bridge), control.WithAsker(bridge))
	} else {
		videoPlayer = sess.Player(options.Collection, control.WithAlerter(bridge), control.WithAsker(bridge))
	}

	return newBubbleWith(ctx, deps{
		player:  videoPlayer,
		search:  search.NewStore(api.SearchEngine(viper.GetString(key.SearchEngine)), sess.API(), bridge),
		tasks:   tasks.New(sess.API(), bridge),
		monitor: remote.NewMonitor(),
		bridge:  bridge,
	})
}

func newBubbleWith(ctx context.Context, d deps) *statefulBubble {
	keymap := newStatefulKeymap()
	bubble := statefulBubble{
		statesHistory: util.Stack[state]{},
		keymap:        keymap,

		ctx:      ctx,
		player:   d.player,
		search:   d.search,
		tasks:    d.tasks,
		monitor:  d.monitor,
		bridge:   d.bridge,
		notifier: &ui.Model{},

		seekStep:     float64(viper.GetInt(key.RemoteSeekStep)),
		pollInterval: poll.Interval(),
	}
	if bubble.seekStep <= 0 {
		bubble.seekStep = 15
	}

	makeList := func(title string, background lipgloss.Color) list.Model {
		delegate := list.NewDefaultDelegate()
		delegate.Styles.SelectedTitle = lipgloss.NewStyle().
			Border(lipgloss.ThickBorder(), false, false, false, true).
			BorderForeground(style.AccentColor).
			Foreground(style.AccentColor).
			Padding(0, 0, 0, 1)
		delegate.Styles.NormalTitle = delegate.Styles.NormalTitle.Foreground(lipgloss.Color("7"))
		delegate.Styles.SelectedDesc = delegate.Styles.SelectedTitle

		listC := list.New([]list.Item{}, delegate, 0, 0)
		listC.KeyMap = bubble.keymap.forList()
		listC.AdditionalShortHelpKeys = bubble.keymap.ShortHelp
		listC.AdditionalFullHelpKeys = func() []bubblesKey.Binding {
			return bubble.keymap.FullHelp()[0]
		}
		listC.Title = title
		listC.Styles.Title = lipgloss.NewStyle().Foreground(style.Base).Background(background).Padding(0, 1)
		listC.Styles.NoItems = paddingStyle
		listC.StatusMessageLifetime = time.Hour * 999
		listC.SetShowPagination(false)
		listC.SetShowStatusBar(false)
		listC.SetFilteringEnabled(false)

		return listC
	}

	bubble.helpC = help.New()

	bubble.spinnerC = spinner.New()
	bubble.spinnerC.Spinner = spinner.Dot
	bubble.spinnerC.Style = lipgloss.NewStyle().Foreground(style.AccentColor)

	bubble.inputC = textinput.New()
	bubble.inputC.Placeholder = "Search"
	bubble.inputC.CharLimit = 120
	bubble.inputC.Prompt = "> "

	bubble.renameC = textinput.New()
	bubble.renameC.CharLimit = 255
	bubble.renameC.Prompt = "New name: "

	bubble.progressC = progress.New(progress.WithDefaultGradient())

	bubble.videosC = makeList("Videos", style.VideosColor)
	bubble.resultsC = makeList("Results", style.ResultsColor)
	bubble.tasksC = makeList("Tasks", style.TasksColor)
	bubble.conversionsC = makeList("Conversions", style.ConversionsColor)

	if w, h, err := util.TerminalSize(); err == nil {
		bubble.resize(w, h)
	}

	return &bubble
}
