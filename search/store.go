package search

import (
	"context"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/tvremote/tvremote/alert"
	"github.com/tvremote/tvremote/api"
	"github.com/tvremote/tvremote/log"
)

// Store holds the search State and applies actions to it.
type Store struct {
	mu        sync.RWMutex
	state     State
	listeners []func(State)

	searcher func(api.SearchEngine) (Searcher, error)
	log      logrus.FieldLogger
}

// NewStore starts from the given engine. Searches go through the Media API.
func NewStore(engine api.SearchEngine, adaptor api.Adaptor, alerts alert.Alerter) *Store {
	return NewStoreWith(engine, func(name api.SearchEngine) (Searcher, error) {
		return ForName(name, adaptor, alerts)
	})
}

// NewStoreWith resolves engines with lookup.
func NewStoreWith(engine api.SearchEngine, lookup func(api.SearchEngine) (Searcher, error)) *Store {
	return &Store{
		state:    State{Engine: engine},
		searcher: lookup,
		log:      log.For("search"),
	}
}

// State returns a snapshot.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Subscribe calls fn after every dispatched action.
func (s *Store) Subscribe(fn func(State)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// Dispatch applies actions in order.
func (s *Store) Dispatch(actions ...Action) {
	s.mu.Lock()
	for _, a := range actions {
		s.state = Reduce(s.state, a)
	}
	state := s.state
	listeners := s.listeners
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(state)
	}
}

// Search queries the current engine with the current term. A blank term does nothing.
// On success the term becomes the last search and the results replace the previous ones.
func (s *Store) Search(ctx context.Context) error {
	state := s.State()
	if strings.TrimSpace(state.Term) == "" {
		return nil
	}

	engine, err := s.searcher(state.Engine)
	if err != nil {
		s.log.Error(err)
		return err
	}

	results, err := engine.Query(ctx, state.Term)
	if err != nil {
		return err
	}

	s.Dispatch(SetLastSearch(state.Term), SetResults(results))
	return nil
}
