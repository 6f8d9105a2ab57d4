// Package where resolves the directories tvremote reads from and writes to.
package where

import (
	"os"
	"path/filepath"

	"github.com/samber/lo"
	"github.com/tvremote/tvremote/constant"
	"github.com/tvremote/tvremote/filesystem"
)

// EnvConfigPath overrides the configuration directory.
const EnvConfigPath = "TVREMOTE_CONFIG_PATH"

// dir joins elem and creates the result on the current backend.
func dir(elem ...string) string {
	path := filepath.Join(elem...)
	lo.Must0(filesystem.API().MkdirAll(path, os.ModePerm))
	return path
}

// Config returns the configuration directory, honouring TVREMOTE_CONFIG_PATH.
func Config() string {
	if custom := os.Getenv(EnvConfigPath); custom != "" {
		return dir(custom)
	}
	return dir(lo.Must(os.UserConfigDir()), constant.App)
}

// Cache falls back to ./cache when the user has no cache directory.
func Cache() string {
	base, err := os.UserCacheDir()
	if err != nil {
		return dir(".", "cache", constant.App)
	}
	return dir(base, constant.App)
}

// Logs returns the directory holding the daily log files.
func Logs() string {
	return dir(Config(), "logs")
}

// Queries returns the file remembering past search terms.
func Queries() string {
	return filepath.Join(Cache(), "queries.json")
}

// Temp holds the mpv IPC socket.
func Temp() string {
	return dir(os.TempDir(), constant.App)
}
