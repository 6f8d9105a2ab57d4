package cmd

import (
	"strings"

	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/cobra"
	"github.com/tvremote/tvremote/color"
	"github.com/tvremote/tvremote/style"
	"github.com/tvremote/tvremote/where"
)

// location is a directory or file `tvremote where` can print.
type location struct {
	title     string
	path      func() string
	shorthand mo.Option[string]
	hidden    bool
}

func (l location) flag() string {
	return strings.ToLower(l.title)
}

var locations = []location{
	{title: "Config", path: where.Config, shorthand: mo.Some("c")},
	{title: "Logs", path: where.Logs, shorthand: mo.Some("l")},
	{title: "Cache", path: where.Cache},
	{title: "Queries", path: where.Queries, shorthand: mo.Some("q"), hidden: true},
	{title: "Temp", path: where.Temp, hidden: true},
}

func init() {
	rootCmd.AddCommand(whereCmd)

	flags := whereCmd.Flags()
	for _, l := range locations {
		flags.BoolP(l.flag(), l.shorthand.OrEmpty(), false, "print the "+strings.ToLower(l.title)+" path only")
		if l.hidden {
			lo.Must0(flags.MarkHidden(l.flag()))
		}
	}

	whereCmd.MarkFlagsMutuallyExclusive(lo.Map(locations, func(l location, _ int) string {
		return l.flag()
	})...)
}

var whereCmd = &cobra.Command{
	Use:   "where",
	Short: "Show the paths tvremote reads and writes",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if l, ok := lo.Find(locations, func(l location) bool {
			return lo.Must(cmd.Flags().GetBool(l.flag()))
		}); ok {
			cmd.Println(l.path())
			return
		}

		heading := style.New().Bold(true).Foreground(color.HiPurple).Render
		flag := style.Fg(color.Yellow)
		shown := lo.Reject(locations, func(l location, _ int) bool { return l.hidden })
		for i, l := range shown {
			if i > 0 {
				cmd.Println()
			}
			cmd.Println(heading(l.title+"?"), flag("--"+l.flag()))
			cmd.Println(l.path())
		}
	},
}
