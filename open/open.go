// Package open hands links to the desktop's default handler, e.g. a search result page in the browser.
package open

import (
	"fmt"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/tvremote/tvremote/constant"
)

// Command returns the process that opens link on goos.
func Command(goos, link string) (*exec.Cmd, error) {
	switch goos {
	case constant.Windows:
		rundll := filepath.Join(os.Getenv("SYSTEMROOT"), "System32", "rundll32.exe")
		return exec.Command(rundll, "url.dll,FileProtocolHandler", link), nil
	case constant.Darwin:
		return exec.Command("open", link), nil
	case constant.Linux:
		return exec.Command("xdg-open", link), nil
	case constant.Android:
		return exec.Command("termux-open-url", link), nil
	default:
		return nil, fmt.Errorf("unsupported OS: %s", goos)
	}
}

// URL opens an absolute http(s) or magnet link without waiting for the handler.
func URL(link string) error {
	u, err := url.Parse(link)
	if err != nil {
		return err
	}
	switch u.Scheme {
	case "http", "https", "magnet":
	default:
		return fmt.Errorf("refusing to open %q link", u.Scheme)
	}

	cmd, err := Command(runtime.GOOS, link)
	if err != nil {
		return err
	}
	return cmd.Start()
}
