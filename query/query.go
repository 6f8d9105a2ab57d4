// Package query remembers past search terms and suggests them back while typing.
package query

import (
	"strings"
	"sync"
	"time"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/metafates/gache"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/viper"
	"github.com/tvremote/tvremote/filesystem"
	"github.com/tvremote/tvremote/key"
	"github.com/tvremote/tvremote/where"
	"golang.org/x/exp/slices"
)

type record struct {
	Uses     int       `json:"uses"`
	Term     string    `json:"term"`
	Engine   string    `json:"engine"`
	LastUsed time.Time `json:"last_used"`
}

var (
	history = gache.New[map[string]*record](&gache.Options{
		Path:       where.Queries(),
		FileSystem: &filesystem.GacheFs{},
	})

	mu      sync.Mutex
	matches = make(map[string][]*record)
)

// Remember stores a submitted search term for engine, or bumps its use count.
func Remember(term, engine string) error {
	term = normalize(term)
	if term == "" {
		return nil
	}

	mu.Lock()
	defer mu.Unlock()

	stored, expired, err := history.Get()
	if expired || err != nil || stored == nil {
		stored = make(map[string]*record)
	}

	r, ok := stored[term]
	if !ok {
		r = &record{Term: term}
		stored[term] = r
	}
	r.Uses++
	r.Engine = engine
	r.LastUsed = time.Now()

	matches = make(map[string][]*record)
	return history.Set(stored)
}

// Suggest returns the best remembered term for a partial input.
func Suggest(partial string) mo.Option[string] {
	all := SuggestMany(partial)
	if len(all) == 0 {
		return mo.None[string]()
	}
	return mo.Some(all[0])
}

// SuggestMany returns remembered terms fuzzily matching partial, most used first.
func SuggestMany(partial string) []string {
	if !viper.GetBool(key.SearchShowQuerySuggestions) {
		return []string{}
	}

	partial = normalize(partial)

	mu.Lock()
	defer mu.Unlock()

	found, ok := matches[partial]
	if !ok {
		stored, expired, err := history.Get()
		if err != nil || expired || stored == nil {
			return []string{}
		}

		for _, r := range stored {
			if fuzzy.Match(partial, r.Term) {
				found = append(found, r)
			}
		}

		slices.SortFunc(found, func(a, b *record) int {
			if a.Uses != b.Uses {
				return b.Uses - a.Uses
			}
			return b.LastUsed.Compare(a.LastUsed)
		})
		matches[partial] = found
	}

	return lo.Map(found, func(r *record, _ int) string {
		return r.Term
	})
}

// LastEngine returns the engine term was last searched with.
func LastEngine(term string) mo.Option[string] {
	mu.Lock()
	defer mu.Unlock()

	stored, expired, err := history.Get()
	if err != nil || expired || stored == nil {
		return mo.None[string]()
	}
	if r, ok := stored[normalize(term)]; ok && r.Engine != "" {
		return mo.Some(r.Engine)
	}
	return mo.None[string]()
}

// Forget drops all remembered terms.
func Forget() error {
	mu.Lock()
	defer mu.Unlock()

	matches = make(map[string][]*record)
	return history.Set(make(map[string]*record))
}

func normalize(term string) string {
	return strings.Join(strings.Fields(strings.ToLower(term)), " ")
}
