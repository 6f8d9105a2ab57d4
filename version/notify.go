package version

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/viper"
	"github.com/tvremote/tvremote/color"
	"github.com/tvremote/tvremote/constant"
	"github.com/tvremote/tvremote/key"
	"github.com/tvremote/tvremote/log"
	"github.com/tvremote/tvremote/style"
)

// Notify writes a notice to w when a newer release exists. Failures are only logged.
func Notify(ctx context.Context, w io.Writer) {
	if !viper.GetBool(key.CliVersionCheck) {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	newest, err := Latest(ctx)
	if err != nil {
		log.Debugf("version check failed: %s", err)
		return
	}
	if cmp, err := Compare(newest, constant.Version); err != nil || cmp <= 0 {
		return
	}

	_, _ = fmt.Fprintf(w, "\n%s New version is available %s %s\n%s\n\n",
		style.Fg(color.Green)("▇▇▇"),
		style.Bold(newest),
		style.Faint(fmt.Sprintf("(You're on %s)", constant.Version)),
		style.Faint("https://github.com/tvremote/tvremote/releases/tag/v"+newest),
	)
}
