package player

import (
	"fmt"
	"os/exec"
	"runtime"

	"github.com/tvremote/tvremote/constant"
)

var lookPath = exec.LookPath

// MissingError reports a player backend whose executable is not on PATH.
type MissingError struct {
	Binary string
}

func (e *MissingError) Error() string {
	return fmt.Sprintf("%s was not found in PATH", e.Binary)
}

// InstallHint suggests a command installing the binary on this platform, or "".
func (e *MissingError) InstallHint() string {
	switch runtime.GOOS {
	case constant.Darwin:
		return "brew install " + e.Binary
	case constant.Linux:
		return "sudo apt install " + e.Binary
	case constant.Windows:
		return "scoop install " + e.Binary
	default:
		return ""
	}
}

// Check reports whether the backend registered under name can run here.
func Check(name string) error {
	binary := name
	switch name {
	case "", "mpv":
		binary = "mpv"
	default:
		return fmt.Errorf("unknown player %q", name)
	}

	if _, err := lookPath(binary); err != nil {
		return &MissingError{Binary: binary}
	}
	return nil
}
