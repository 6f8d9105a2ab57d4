package search

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/tvremote/tvremote/alert"
	"github.com/tvremote/tvremote/api"
)

type fakeAPI struct {
	paths []string
	body  string
	err   error
}

func (f *fakeAPI) Get(_ context.Context, path string, out any) error {
	f.paths = append(f.paths, path)
	if f.err != nil {
		return f.err
	}
	return json.Unmarshal([]byte(f.body), out)
}

func (f *fakeAPI) Post(context.Context, string, any) (*api.Reply, error) { return nil, nil }
func (f *fakeAPI) Put(context.Context, string, any) (*api.Reply, error)  { return nil, nil }
func (f *fakeAPI) Delete(context.Context, string) (*api.Reply, error)    { return nil, nil }
func (f *fakeAPI) Host() string                                          { return "localhost" }

var dune = api.SearchResult{Title: "Dune", Link: "magnet:?xt=1", Engine: api.PirateBay}

func TestReduce(t *testing.T) {
	Convey("Given an initial state", t, func() {
		initial := State{Engine: api.YouTube}

		Convey("Each kind changes one field", func() {
			So(Reduce(initial, SetTerm("dune")).Term, ShouldEqual, "dune")
			So(Reduce(initial, SetEngine(api.PirateBay)).Engine, ShouldEqual, api.PirateBay)
			So(Reduce(initial, SetLastSearch("dune")).LastSearch, ShouldEqual, "dune")
			So(Reduce(initial, SetResults([]api.SearchResult{dune})).Results, ShouldResemble, []api.SearchResult{dune})
		})

		Convey("Other fields are kept", func() {
			s := Reduce(Reduce(initial, SetTerm("dune")), SetEngine(api.PirateBay))
			So(s, ShouldResemble, State{Term: "dune", Engine: api.PirateBay})
		})

		Convey("An unknown kind returns the state unchanged", func() {
			So(Reduce(initial, Action{Kind: "CLEAR"}), ShouldResemble, initial)
		})

		Convey("The input state is not modified", func() {
			Reduce(initial, SetTerm("dune"))
			So(initial.Term, ShouldBeEmpty)
		})
	})
}

func TestClient(t *testing.T) {
	Convey("Given the search clients", t, func() {
		f := &fakeAPI{}
		var alerts []string
		alerter := alert.AlerterFunc(func(_ alert.Level, msg string) { alerts = append(alerts, msg) })
		ctx := context.Background()

		Convey("They query their own endpoint with an escaped term", func() {
			f.body = `{"results":[],"error":null}`
			_, _ = NewPirate(f, alerter).Query(ctx, "dune part two")
			_, _ = NewYoutube(f, alerter).Query(ctx, "dune&trailer")
			So(f.paths, ShouldResemble, []string{"search/pirate?q=dune+part+two", "search/youtube?q=dune%26trailer"})
		})

		Convey("Results are returned", func() {
			f.body = `{"results":[{"title":"Dune","description":"","link":"magnet:?xt=1","engine":"piratebay"}],"error":null}`
			results, err := NewPirate(f, alerter).Query(ctx, "dune")
			So(err, ShouldBeNil)
			So(results, ShouldResemble, []api.SearchResult{dune})
			So(alerts, ShouldBeEmpty)
		})

		Convey("An engine error becomes an info alert", func() {
			f.body = `{"results":null,"error":"rate limited"}`
			_, err := NewYoutube(f, alerter).Query(ctx, "dune")
			So(errors.Is(err, ErrNoResults), ShouldBeTrue)
			So(alerts, ShouldResemble, []string{"rate limited"})
		})

		Convey("Transport errors are returned without an alert", func() {
			f.err = errors.New("boom")
			_, err := NewYoutube(f, alerter).Query(ctx, "dune")
			So(err, ShouldEqual, f.err)
			So(alerts, ShouldBeEmpty)
		})

		Convey("ForName rejects unknown engines", func() {
			c, err := ForName(api.YouTube, f, nil)
			So(err, ShouldBeNil)
			So(c.Name(), ShouldEqual, api.YouTube)

			_, err = ForName("bing", f, nil)
			So(errors.Is(err, ErrUnknownEngine), ShouldBeTrue)
		})
	})
}

type searcherFunc func(context.Context, string) ([]api.SearchResult, error)

func (f searcherFunc) Query(ctx context.Context, term string) ([]api.SearchResult, error) {
	return f(ctx, term)
}

func TestStore(t *testing.T) {
	Convey("Given a store", t, func() {
		var queried []string
		var answer error
		store := NewStoreWith(api.PirateBay, func(name api.SearchEngine) (Searcher, error) {
			if name != api.PirateBay {
				return nil, ErrUnknownEngine
			}
			return searcherFunc(func(_ context.Context, term string) ([]api.SearchResult, error) {
				queried = append(queried, term)
				if answer != nil {
					return nil, answer
				}
				return []api.SearchResult{dune}, nil
			}), nil
		})

		var seen []State
		store.Subscribe(func(s State) { seen = append(seen, s) })
		ctx := context.Background()

		Convey("A blank term does not search", func() {
			store.Dispatch(SetTerm("  "))
			So(store.Search(ctx), ShouldBeNil)
			So(queried, ShouldBeEmpty)
		})

		Convey("A search records the term and results", func() {
			store.Dispatch(SetTerm("dune"))
			So(store.Search(ctx), ShouldBeNil)
			So(queried, ShouldResemble, []string{"dune"})
			So(store.State(), ShouldResemble, State{Term: "dune", Engine: api.PirateBay, LastSearch: "dune", Results: []api.SearchResult{dune}})
			So(seen, ShouldHaveLength, 2)
		})

		Convey("A failed search keeps the previous results", func() {
			store.Dispatch(SetResults([]api.SearchResult{dune}), SetTerm("arrival"))
			answer = ErrNoResults
			So(store.Search(ctx), ShouldEqual, ErrNoResults)
			So(store.State().Results, ShouldResemble, []api.SearchResult{dune})
			So(store.State().LastSearch, ShouldBeEmpty)
		})

		Convey("An unknown engine fails", func() {
			store.Dispatch(SetTerm("dune"), SetEngine("bing"))
			So(store.Search(ctx), ShouldEqual, ErrUnknownEngine)
		})
	})
}
