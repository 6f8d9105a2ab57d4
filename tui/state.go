package tui

type state int

const (
	loadingState state = iota
	errorState
	videosState
	detailsState
	searchState
	resultsState
	tasksState
	conversionsState
	renameState
	confirmState
)

// transient states are never pushed to the navigation history.
var transient = []state{loadingState, confirmState, errorState}
