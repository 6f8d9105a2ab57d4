package tui

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/tvremote/tvremote/api"
	"github.com/tvremote/tvremote/control"
	"github.com/tvremote/tvremote/filesystem"
	"github.com/tvremote/tvremote/internal/ui"
	"github.com/tvremote/tvremote/message"
	"github.com/tvremote/tvremote/remote"
	"github.com/tvremote/tvremote/search"
	"github.com/tvremote/tvremote/tasks"
)

func init() {
	filesystem.SetMemMapFs()
}

type fakeAPI struct {
	mu     sync.Mutex
	bodies map[string]string
	calls  []string
}

func (f *fakeAPI) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
}

func (f *fakeAPI) Get(_ context.Context, path string, out any) error {
	f.record("GET " + path)
	return json.Unmarshal([]byte(f.bodies[path]), out)
}

func (f *fakeAPI) Post(_ context.Context, path string, _ any) (*api.Reply, error) {
	f.record("POST " + path)
	return &api.Reply{Code: 200}, nil
}

func (f *fakeAPI) Put(_ context.Context, path string, _ any) (*api.Reply, error) {
	f.record("PUT " + path)
	return &api.Reply{Code: 200}, nil
}

func (f *fakeAPI) Delete(_ context.Context, path string) (*api.Reply, error) {
	f.record("DELETE " + path)
	return &api.Reply{Code: 204}, nil
}

func (f *fakeAPI) Host() string { return "tv.lan:4000" }

func newTestBubble(f *fakeAPI) *statefulBubble {
	bridge := ui.NewBridge(4)
	b := newBubbleWith(context.Background(), deps{
		player:  control.New(f, "", control.WithAlerter(bridge), control.WithAsker(bridge)),
		search:  search.NewStore(api.YouTube, f, bridge),
		tasks:   tasks.New(f, bridge),
		monitor: remote.NewMonitor(),
		bridge:  bridge,
	})
	b.resize(100, 40)
	b.setState(videosState)
	return b
}

func press(b *statefulBubble, keys string) tea.Cmd {
	_, cmd := b.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(keys)})
	return cmd
}

func enter(b *statefulBubble) tea.Cmd {
	_, cmd := b.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return cmd
}

func TestBubble(t *testing.T) {
	Convey("Given the controller interface", t, func() {
		f := &fakeAPI{bodies: map[string]string{
			"media":        `{"Collection":{"collection":"","parent_collection":"","child_collections":["films"],"videos":["intro.mp4"],"errors":[]}}`,
			"media/films":  `{"Collection":{"collection":"films","parent_collection":"","child_collections":[],"videos":["dune.mkv"],"errors":[]}}`,
			"media/intro.mp4": `{"Video":{"video":"intro.mp4","collection":"","description":"An intro","series":{},"thumbnail":"","metadata":{"duration":125,"width":1920,"height":1080,"audioTracks":1}}}`,
			"tasks":        `{"results":[{"key":"1","name":"dune.mkv","taskType":"transmission","eta":60,"percentDone":0.25}],"error":null}`,
		}}
		b := newTestBubble(f)

		b.Update(b.loadCollection()())

		Convey("The root collection is listed", func() {
			items := b.videosC.Items()
			So(items, ShouldHaveLength, 2)
			So(items[0].(*listItem).FilterValue(), ShouldEqual, "films")
			So(items[1].(*listItem).FilterValue(), ShouldEqual, "intro.mp4")
		})

		Convey("Opening a collection changes the current collection", func() {
			cmd := enter(b)
			So(b.player.Collection(), ShouldEqual, "films")
			b.Update(cmd())
			So(b.videosC.Items(), ShouldHaveLength, 2)
			So(b.videosC.Title, ShouldEqual, "films")

			Convey("and esc goes to its parent", func() {
				_, cmd := b.Update(tea.KeyMsg{Type: tea.KeyEsc})
				So(b.player.Collection(), ShouldEqual, "")
				b.Update(cmd())
				So(b.videosC.Items(), ShouldHaveLength, 2)
			})
		})

		Convey("Opening a video shows its details", func() {
			b.videosC.Select(1)
			So(enter(b), ShouldNotBeNil)
			So(b.state, ShouldEqual, loadingState)

			b.Update(b.loadVideo("intro.mp4")())
			So(b.state, ShouldEqual, detailsState)
			So(b.View(), ShouldContainSubstring, "1920x1080")
			So(b.View(), ShouldContainSubstring, "not playing")

			Convey("with the remote progress of the same video", func() {
				b.monitor.Observe(message.State{CurrentTime: 62, Duration: 125, Collection: "", Video: "intro.mp4"})
				So(b.View(), ShouldContainSubstring, "1:02 / 2:05")
			})

			Convey("and the controls drive the remote surface", func() {
				press(b, "p")()
				b.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
				So(f.calls, ShouldContain, "POST remote/play")
			})

			Convey("esc returns to the listing", func() {
				b.Update(tea.KeyMsg{Type: tea.KeyEsc})
				So(b.state, ShouldEqual, videosState)
			})
		})

		Convey("Deleting asks through the confirm view", func() {
			b.videosC.Select(1)
			cmd := press(b, "d")

			done := make(chan tea.Msg, 1)
			go func() { done <- cmd() }()

			question := b.waitForBridge()()
			b.Update(question)
			So(b.state, ShouldEqual, confirmState)
			So(b.View(), ShouldContainSubstring, `Delete video "intro.mp4?"`)

			press(b, "y")
			So(b.state, ShouldEqual, videosState)
			So(<-done, ShouldResemble, doneMsg{refresh: true})
			So(f.calls, ShouldContain, "DELETE media/intro.mp4")
		})

		Convey("The tasks tab lists tasks", func() {
			cmd := press(b, "3")
			So(b.state, ShouldEqual, tasksState)
			b.Update(cmd())
			So(b.tasksC.Items(), ShouldHaveLength, 1)
			So(b.tasksC.Items()[0].(*listItem).Description(), ShouldContainSubstring, "1 min (25.00%)")
		})

		Convey("Searching fills the results", func() {
			f.bodies["search/youtube?q=dune"] = `{"results":[{"title":"Dune trailer","description":"","link":"https://y/1","engine":"youtube"}],"error":null}`
			press(b, "2")
			So(b.state, ShouldEqual, searchState)

			press(b, "dune")
			So(b.search.State().Term, ShouldEqual, "dune")

			cmd := enter(b)
			So(cmd, ShouldNotBeNil)
			b.Update(b.runSearch()())
			So(b.state, ShouldEqual, resultsState)
			So(b.resultsC.Items(), ShouldHaveLength, 1)
			So(strings.Contains(b.resultsC.Title, "dune"), ShouldBeTrue)
		})
	})
}
