// Package search keeps the state of the search view and runs searches against the engines of the media server.
package search

import "github.com/tvremote/tvremote/api"

// ActionKind names what an Action changes.
type ActionKind string

const (
	Term       ActionKind = "TERM"
	Engine     ActionKind = "ENGINE"
	Results    ActionKind = "RESULTS"
	LastSearch ActionKind = "LAST_SEARCH"
)

// State of the search view.
type State struct {
	Term       string
	Engine     api.SearchEngine
	Results    []api.SearchResult
	LastSearch string
}

// Action is one change to State. Text carries the payload of every kind except Results.
type Action struct {
	Kind    ActionKind
	Text    string
	Results []api.SearchResult
}

func SetTerm(term string) Action {
	return Action{Kind: Term, Text: term}
}

func SetEngine(engine api.SearchEngine) Action {
	return Action{Kind: Engine, Text: string(engine)}
}

func SetResults(results []api.SearchResult) Action {
	return Action{Kind: Results, Results: results}
}

func SetLastSearch(term string) Action {
	return Action{Kind: LastSearch, Text: term}
}

// Reduce returns the state after action. Unknown kinds leave the state unchanged.
func Reduce(state State, action Action) State {
	switch action.Kind {
	case Term:
		state.Term = action.Text
	case Engine:
		state.Engine = api.SearchEngine(action.Text)
	case Results:
		state.Results = action.Results
	case LastSearch:
		state.LastSearch = action.Text
	}
	return state
}
