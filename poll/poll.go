// Package poll refreshes data on a fixed interval until its context ends.
package poll

import (
	"context"
	"time"

	"github.com/spf13/viper"
	"github.com/tvremote/tvremote/config"
	"github.com/tvremote/tvremote/key"
)

// DefaultInterval is used when poll.interval is not positive.
const DefaultInterval = 2 * time.Second

// Interval returns the configured refresh interval.
func Interval() time.Duration {
	if viper.GetInt(key.PollInterval) <= 0 {
		return DefaultInterval
	}
	return config.Seconds(key.PollInterval)
}

// Every calls fn immediately and then once per interval until ctx is done.
// Calls never overlap: a slow fn delays the next tick.
func Every(ctx context.Context, interval time.Duration, fn func(context.Context)) {
	if interval <= 0 {
		interval = DefaultInterval
	}

	if ctx.Err() != nil {
		return
	}
	fn(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			fn(ctx)
		}
	}
}

// Start runs Every in a goroutine and returns the function stopping it.
// The stop function waits for a running fn to return.
func Start(parent context.Context, interval time.Duration, fn func(context.Context)) (stop func()) {
	ctx, cancel := context.WithCancel(parent)
	done := make(chan struct{})
	go func() {
		defer close(done)
		Every(ctx, interval, fn)
	}()

	return func() {
		cancel()
		<-done
	}
}
