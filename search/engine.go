package search

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/sirupsen/logrus"
	"github.com/tvremote/tvremote/alert"
	"github.com/tvremote/tvremote/api"
	"github.com/tvremote/tvremote/log"
)

var (
	// ErrUnknownEngine is returned by ForName.
	ErrUnknownEngine = errors.New("unknown search engine")
	// ErrNoResults is returned when the engine answered with an error instead of results.
	ErrNoResults = errors.New("no results")
)

// Searcher runs a query.
type Searcher interface {
	Query(ctx context.Context, term string) ([]api.SearchResult, error)
}

// Client queries one search endpoint of the Media API.
type Client struct {
	name   api.SearchEngine
	path   string
	api    api.Adaptor
	alerts alert.Alerter
	log    logrus.FieldLogger
}

// NewPirate searches torrents.
func NewPirate(adaptor api.Adaptor, alerts alert.Alerter) *Client {
	return newClient(api.PirateBay, "search/pirate", adaptor, alerts)
}

// NewYoutube searches videos.
func NewYoutube(adaptor api.Adaptor, alerts alert.Alerter) *Client {
	return newClient(api.YouTube, "search/youtube", adaptor, alerts)
}

// ForName returns the client of a named engine.
func ForName(name api.SearchEngine, adaptor api.Adaptor, alerts alert.Alerter) (*Client, error) {
	switch name {
	case api.PirateBay:
		return NewPirate(adaptor, alerts), nil
	case api.YouTube:
		return NewYoutube(adaptor, alerts), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownEngine, name)
	}
}

func newClient(name api.SearchEngine, path string, adaptor api.Adaptor, alerts alert.Alerter) *Client {
	if alerts == nil {
		alerts = alert.AlerterFunc(func(alert.Level, string) {})
	}
	return &Client{
		name:   name,
		path:   path,
		api:    adaptor,
		alerts: alerts,
		log:    log.For("search").WithField("engine", name),
	}
}

// Name of the engine.
func (c *Client) Name() api.SearchEngine {
	return c.name
}

// Query returns the results for term. An error reported by the engine is shown as an info alert.
func (c *Client) Query(ctx context.Context, term string) ([]api.SearchResult, error) {
	var answer api.ResultsMessage[api.SearchResult]
	if err := c.api.Get(ctx, c.path+"?q="+url.QueryEscape(term), &answer); err != nil {
		c.log.WithError(err).Error("search failed")
		return nil, err
	}

	if answer.Results != nil {
		return answer.Results, nil
	}
	if answer.Error != nil {
		c.alerts.Alert(alert.Info, *answer.Error)
		return nil, fmt.Errorf("%w: %s", ErrNoResults, *answer.Error)
	}
	return []api.SearchResult{}, nil
}
