package session

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/tvremote/tvremote/alert"
	"github.com/tvremote/tvremote/api"
	"github.com/tvremote/tvremote/channel"
	"github.com/tvremote/tvremote/config"
	"github.com/tvremote/tvremote/constant"
	"github.com/tvremote/tvremote/control"
	"github.com/tvremote/tvremote/key"
	"github.com/tvremote/tvremote/log"
	"github.com/tvremote/tvremote/message"
	"github.com/tvremote/tvremote/player"
	"github.com/tvremote/tvremote/remote"
)

// Options are everything a Session is built from.
type Options struct {
	Signals Signals
	Markers []string
	// Forced skips detection when set.
	Forced *Mode

	API     api.Adaptor
	Builder channel.Builder
	Logger  logrus.FieldLogger
	Alerts  alert.Alerter
	Asker   alert.Asker

	RemoteAddress  string
	ReconnectDelay time.Duration
	Greeting       string
	ReportInterval time.Duration
}

// FromConfig fills Options from the configuration.
func FromConfig(alerts alert.Alerter, asker alert.Asker) Options {
	host := config.Host()
	opts := Options{
		Signals: Signals{
			Query:     viper.GetString(key.SessionQuery),
			UserAgent: viper.GetString(key.SessionUserAgent),
		},
		Markers:        viper.GetStringSlice(key.SessionTVMarkers),
		API:            api.New(host, nil),
		Builder:        channel.Dial(channel.Endpoint(host), http.Header{"User-Agent": {constant.UserAgent}}),
		Logger:         log.For("session"),
		Alerts:         alerts,
		Asker:          asker,
		RemoteAddress:  viper.GetString(key.RemoteAddress),
		ReconnectDelay: config.Seconds(key.RemoteReconnectDelay),
		Greeting:       viper.GetString(key.RemoteGreeting),
		ReportInterval: config.Millis(key.RemoteReportInterval),
	}
	if mode, ok := ParseMode(viper.GetString(key.SessionMode)); ok {
		opts.Forced = &mode
	}
	return opts
}

// Session is created once at startup and handed to every view.
type Session struct {
	opts     Options
	once     sync.Once
	mode     Mode
	channels channel.Holder
	log      logrus.FieldLogger
}

// New returns a session. The mode is decided on first use.
func New(opts Options) *Session {
	if opts.Logger == nil {
		opts.Logger = log.For("session")
	}
	if opts.Alerts == nil {
		opts.Alerts = alert.AlerterFunc(func(alert.Level, string) {})
	}
	if opts.Asker == nil {
		opts.Asker = alert.Fixed{Answer: false}
	}
	if opts.Markers == nil {
		opts.Markers = DefaultTVMarkers
	}
	return &Session{opts: opts, log: opts.Logger}
}

// Mode returns the role of this instance. It is decided exactly once.
func (s *Session) Mode() Mode {
	s.once.Do(func() {
		if s.opts.Forced != nil {
			s.mode = *s.opts.Forced
		} else {
			s.mode = Detect(s.opts.Signals, s.opts.Markers)
		}
		s.log.WithField("mode", s.mode.String()).Info("session mode decided")
	})
	return s.mode
}

func (s *Session) API() api.Adaptor           { return s.opts.API }
func (s *Session) Alerts() alert.Alerter      { return s.opts.Alerts }
func (s *Session) Asker() alert.Asker         { return s.opts.Asker }
func (s *Session) Logger() logrus.FieldLogger { return s.log }

// Player returns a façade bound to collection. Extra options are applied last.
func (s *Session) Player(collection string, opts ...control.Option) *control.VideoPlayer {
	base := []control.Option{
		control.WithAlerter(s.opts.Alerts),
		control.WithAsker(s.opts.Asker),
		control.WithRemoteAddress(s.opts.RemoteAddress),
	}
	return control.New(s.opts.API, collection, append(base, opts...)...)
}

// Connect returns the shared remote control channel, building it on first call.
// Later calls reuse the live channel and ignore receive.
func (s *Session) Connect(receive channel.Receiver) *channel.Channel {
	return s.channels.Acquire(s.opts.Builder, receive,
		channel.WithReconnectDelay(s.opts.ReconnectDelay),
		channel.WithGreeting(lo.Ternary(s.opts.Greeting != "", s.opts.Greeting, constant.Greeting)),
		channel.WithLogger(log.For("channel")),
	)
}

// Channel returns the shared channel, which may be nil.
func (s *Session) Channel() *channel.Channel {
	return s.channels.Current()
}

// Watch connects and feeds every inbound message to monitor.
func (s *Session) Watch(monitor *remote.Monitor) *channel.Channel {
	return s.Connect(monitor.Observe)
}

// Surface builds the playback surface on p and binds it to the shared channel, so remote
// commands drive p and its position is reported back.
func (s *Session) Surface(p player.Player, opts ...remote.SurfaceOption) *remote.Surface {
	base := []remote.SurfaceOption{
		remote.WithAlerter(s.opts.Alerts),
		remote.WithReportInterval(s.opts.ReportInterval),
	}
	surface := remote.NewSurface(p, append(base, opts...)...)
	surface.Bind(s.Connect(surface.Receive))
	return surface
}

// Serve runs a new surface on p until ctx is done.
func (s *Session) Serve(ctx context.Context, p player.Player, opts ...remote.SurfaceOption) error {
	return s.Run(ctx, s.Surface(p, opts...))
}

// Run applies player events to surface until ctx is done, then closes the channel.
func (s *Session) Run(ctx context.Context, surface *remote.Surface) error {
	defer s.Close()

	err := surface.Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// Close closes the shared channel.
func (s *Session) Close() {
	s.channels.Close(0, "session closed")
}

// Local returns a façade whose playback commands go to handler directly, for a controller
// embedded in the playback surface.
func (s *Session) Local(collection string, handler message.Handler, opts ...control.Option) *control.VideoPlayer {
	return s.Player(collection, append([]control.Option{control.WithSurface(handler)}, opts...)...)
}
