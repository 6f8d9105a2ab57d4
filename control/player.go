// Package control is the single entry point views use to drive playback and manage media,
// whether the instance is a controller or embeds the playback surface itself.
package control

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/tvremote/tvremote/alert"
	"github.com/tvremote/tvremote/api"
	"github.com/tvremote/tvremote/log"
	"github.com/tvremote/tvremote/message"
)

// ErrAlerted wraps errors that were already shown to the user.
var ErrAlerted = errors.New("already reported")

const unreachable = "Could not reach the media server"

// Option configures a VideoPlayer.
type Option func(*VideoPlayer)

func WithAlerter(a alert.Alerter) Option {
	return func(p *VideoPlayer) { p.alerts = a }
}

func WithAsker(a alert.Asker) Option {
	return func(p *VideoPlayer) { p.asker = a }
}

func WithLogger(l logrus.FieldLogger) Option {
	return func(p *VideoPlayer) { p.log = l }
}

// WithRemoteAddress sets the destination hint of remote commands.
func WithRemoteAddress(addr string) Option {
	return func(p *VideoPlayer) { p.remoteAddress = addr }
}

// WithSurface makes playback commands go straight to a local surface instead of the Media API.
func WithSurface(h message.Handler) Option {
	return func(p *VideoPlayer) { p.surface = h }
}

// WithCollectionHook is called whenever the current collection changes.
func WithCollectionHook(fn func(string)) Option {
	return func(p *VideoPlayer) { p.onCollection = fn }
}

// VideoPlayer drives playback and edits the media of one collection.
type VideoPlayer struct {
	api           api.Adaptor
	alerts        alert.Alerter
	asker         alert.Asker
	log           logrus.FieldLogger
	remoteAddress string
	surface       message.Handler
	onCollection  func(string)

	mu         sync.Mutex
	collection string
}

// New returns a player bound to collection. Without WithAsker every confirmation is declined.
func New(adaptor api.Adaptor, collection string, opts ...Option) *VideoPlayer {
	p := &VideoPlayer{
		api:        adaptor,
		alerts:     alert.AlerterFunc(func(alert.Level, string) {}),
		asker:      alert.Fixed{Answer: false},
		log:        log.For("player"),
		collection: collection,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Collection returns the current collection.
func (p *VideoPlayer) Collection() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.collection
}

// SetCollection changes the current collection.
func (p *VideoPlayer) SetCollection(collection string) {
	p.mu.Lock()
	p.collection = collection
	p.mu.Unlock()

	if p.onCollection != nil {
		p.onCollection(collection)
	}
}

// PlayVideo starts video of the current collection on the surface.
func (p *VideoPlayer) PlayVideo(ctx context.Context, video string) error {
	collection := p.Collection()
	play := message.Play{
		URL:        MediaURL(p.api.Host(), collection, video),
		Collection: collection,
		Video:      video,
	}
	return p.command(ctx, "remote/play", play)
}

// Seek moves remote playback by interval seconds.
func (p *VideoPlayer) Seek(ctx context.Context, interval float64) error {
	return p.command(ctx, "remote/control", message.Seek{Interval: interval})
}

// TogglePause pauses or resumes remote playback.
func (p *VideoPlayer) TogglePause(ctx context.Context) error {
	return p.command(ctx, "remote/control", message.TogglePause{})
}

func (p *VideoPlayer) command(ctx context.Context, path string, m message.Message) error {
	if p.surface != nil {
		message.Dispatch(m, p.surface)
		return nil
	}

	reply, err := p.api.Post(ctx, path, message.RemoteCommand{RemoteAddress: p.remoteAddress, Message: m})
	if err != nil {
		return p.fail(err, unreachable)
	}
	if !reply.OK() {
		return p.rejected(reply, fmt.Sprintf("%s was rejected", m.Kind()))
	}
	p.warnErrors(reply)
	return nil
}

// DeleteVideo deletes name from the current collection after confirmation.
func (p *VideoPlayer) DeleteVideo(ctx context.Context, name string) error {
	return p.confirmed(ctx, fmt.Sprintf("Delete video %q", name+"?"), func() (*api.Reply, error) {
		return p.api.Delete(ctx, p.mediaPath(name))
	}, fmt.Sprintf("cannot delete video %q", name))
}

// RenameVideo renames name to newName after confirmation.
func (p *VideoPlayer) RenameVideo(ctx context.Context, name, newName string) error {
	return p.confirmed(ctx, fmt.Sprintf("Rename video %q to %q", name, newName+"?"), func() (*api.Reply, error) {
		return p.api.Put(ctx, p.mediaPath(name), api.RenameRequest{NewName: newName})
	}, fmt.Sprintf("cannot rename video %q", name))
}

// ConvertVideo starts conversion on name after confirmation.
func (p *VideoPlayer) ConvertVideo(ctx context.Context, name, conversion string) error {
	return p.confirmed(ctx, fmt.Sprintf("Convert video %q using %q", name, conversion+"?"), func() (*api.Reply, error) {
		return p.api.Post(ctx, p.mediaPath(name), api.ConversionRequest{Name: conversion})
	}, fmt.Sprintf("cannot convert video %q", name))
}

func (p *VideoPlayer) confirmed(ctx context.Context, question string, call func() (*api.Reply, error), failure string) error {
	ok, err := p.asker.Ask(ctx, question)
	if err != nil {
		p.log.WithError(err).Debug("confirmation aborted")
		return nil
	}
	if !ok {
		return nil
	}

	reply, err := call()
	if err != nil {
		return p.fail(err, unreachable)
	}
	if !reply.OK() {
		return p.rejected(reply, failure)
	}
	p.warnErrors(reply)
	return nil
}

// FetchDetails returns a collection listing or, with a video, its details.
// Empty arguments are left out of the path.
func (p *VideoPlayer) FetchDetails(ctx context.Context, video, collection string) (api.MediaDetails, error) {
	var details api.MediaDetails
	if err := p.api.Get(ctx, joinPath("media", collection, video), &details); err != nil {
		var status *api.StatusError
		if errors.As(err, &status) && status.Message != "" {
			return details, p.fail(err, status.Message)
		}
		return details, p.fail(err, unreachable)
	}

	if details.Error != nil {
		p.alerts.Alert(alert.Error, *details.Error)
		return details, fmt.Errorf("%w: %s", ErrAlerted, *details.Error)
	}
	return details, nil
}

// FetchCollection returns the listing of the current collection.
func (p *VideoPlayer) FetchCollection(ctx context.Context) (api.MediaDetails, error) {
	return p.FetchDetails(ctx, "", p.Collection())
}

// GetAvailableConversions lists the conversions of the server. It never fails.
func (p *VideoPlayer) GetAvailableConversions(ctx context.Context) []api.Conversion {
	var out api.ResultsMessage[api.Conversion]
	if err := p.api.Get(ctx, "conversion", &out); err != nil {
		p.log.WithError(err).Error("conversions are unavailable")
		return []api.Conversion{}
	}
	if out.Error != nil {
		p.log.Errorf("conversions are unavailable: %s", *out.Error)
		return []api.Conversion{}
	}
	if out.Results == nil {
		return []api.Conversion{}
	}
	return out.Results
}

func (p *VideoPlayer) mediaPath(name string) string {
	return joinPath("media", p.Collection(), name)
}

// fail logs err and shows msg.
func (p *VideoPlayer) fail(err error, msg string) error {
	p.log.WithError(err).Error(msg)
	p.alerts.Alert(alert.Error, msg)
	return fmt.Errorf("%w: %w", ErrAlerted, err)
}

func (p *VideoPlayer) rejected(reply *api.Reply, failure string) error {
	msg := reply.Message()
	if msg == "" {
		msg = reply.Status
	}
	text := fmt.Sprintf("%s: %q", failure, msg)
	p.log.WithField("status", reply.Code).Error(text)
	p.alerts.Alert(alert.Error, text)
	return fmt.Errorf("%w: %w", ErrAlerted, &api.StatusError{Code: reply.Code, Status: reply.Status, Message: msg})
}

// warnErrors surfaces errors listed in an otherwise successful GeneralResponse.
func (p *VideoPlayer) warnErrors(reply *api.Reply) {
	var general api.GeneralResponse
	if len(reply.Body) == 0 || reply.Decode(&general) != nil || len(general.Errors) == 0 {
		return
	}
	msg := strings.Join(general.Errors, "\n")
	p.log.Warn(msg)
	p.alerts.Alert(alert.Warning, msg)
}

func joinPath(segments ...string) string {
	parts := make([]string, 0, len(segments))
	for _, s := range segments {
		if s = strings.Trim(s, "/"); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, "/")
}

// MediaURL returns the streaming URL of a video on host.
func MediaURL(host, collection, video string) string {
	u := url.URL{Scheme: "http", Host: host, Path: "/api/" + joinPath("media", collection, video)}
	return u.String()
}
