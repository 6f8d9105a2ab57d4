// Package log wires logrus to a daily log file and hands component loggers to the rest of the application.
package log

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	logrus "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/tvremote/tvremote/filesystem"
	"github.com/tvremote/tvremote/key"
	"github.com/tvremote/tvremote/where"
)

// active is set when entries go somewhere: a log file or a hook.
var active atomic.Bool

// Setup configures the standard logger from logs.write, logs.level and logs.json.
// With logs.write off entries are discarded, unless a hook is added later.
func Setup() error {
	logrus.SetLevel(level())
	if viper.GetBool(key.LogsJson) {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{DisableColors: true, FullTimestamp: true})
	}

	if !viper.GetBool(key.LogsWrite) {
		logrus.SetOutput(io.Discard)
		return nil
	}

	out, err := today()
	if err != nil {
		return err
	}
	logrus.SetOutput(out)
	active.Store(true)
	return nil
}

func level() logrus.Level {
	parsed, err := logrus.ParseLevel(viper.GetString(key.LogsLevel))
	if err != nil {
		return logrus.InfoLevel
	}
	return parsed
}

// today opens the log file of the current day for appending.
func today() (io.Writer, error) {
	path := filepath.Join(where.Logs(), time.Now().Format("2006-01-02")+".log")
	f, err := filesystem.API().OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return f, nil
}

// AddHook attaches a hook to the standard logger, e.g. the media server log shipper.
func AddHook(hook logrus.Hook) {
	logrus.AddHook(hook)
	active.Store(true)
}

// For returns a logger tagged with the given component name.
func For(component string) logrus.FieldLogger {
	return logrus.WithField("component", component)
}

func gated(fn func(...interface{})) func(...interface{}) {
	return func(args ...interface{}) {
		if active.Load() {
			fn(args...)
		}
	}
}

func gatedf(fn func(string, ...interface{})) func(string, ...interface{}) {
	return func(format string, args ...interface{}) {
		if active.Load() {
			fn(format, args...)
		}
	}
}

// Package level shortcuts. They do nothing until Setup opened a file or a hook was added.
var (
	Error  = gated(logrus.Error)
	Warnf  = gatedf(logrus.Warnf)
	Debugf = gatedf(logrus.Debugf)
)
