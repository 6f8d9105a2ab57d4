// Package cmd implements the tvremote command-line interface.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"

	cc "github.com/ivanpirog/coloredcobra"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tvremote/tvremote/alert"
	"github.com/tvremote/tvremote/api"
	"github.com/tvremote/tvremote/color"
	"github.com/tvremote/tvremote/config"
	"github.com/tvremote/tvremote/constant"
	"github.com/tvremote/tvremote/control"
	"github.com/tvremote/tvremote/icon"
	"github.com/tvremote/tvremote/key"
	"github.com/tvremote/tvremote/log"
	"github.com/tvremote/tvremote/network"
	"github.com/tvremote/tvremote/search"
	"github.com/tvremote/tvremote/session"
	"github.com/tvremote/tvremote/style"
	"github.com/tvremote/tvremote/tui"
	"github.com/tvremote/tvremote/version"
)

func init() {
	rootCmd.SetOut(os.Stdout)
	rootCmd.Flags().BoolP("version", "v", false, "Print the application version")

	rootCmd.PersistentFlags().StringP("icons", "I", "", "Icons variant")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("icons", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return icon.AvailableVariants(), cobra.ShellCompDirectiveDefault
	}))
	lo.Must0(viper.BindPFlag(key.IconsVariant, rootCmd.PersistentFlags().Lookup("icons")))

	rootCmd.PersistentFlags().StringP("host", "H", "", "Media server host and port")
	lo.Must0(viper.BindPFlag(key.ServerHost, rootCmd.PersistentFlags().Lookup("host")))

	rootCmd.PersistentFlags().BoolP("yes", "y", false, "Answer yes to every confirmation")

	rootCmd.Flags().StringP("collection", "c", "", "Collection to open")
	rootCmd.Flags().StringP("search", "s", "", "Start with a search for this term")

	helpFunc := rootCmd.HelpFunc()
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		helpFunc(cmd, args)
		version.Notify(context.Background(), cmd.OutOrStdout())
	})
}

var rootCmd = &cobra.Command{
	Use:   constant.App,
	Short: "Remote control for your media server",
	Long: constant.AsciiArtLogo + "\n" +
		style.New().Italic(true).Foreground(color.HiPurple).Render("    - Browse, play and manage the videos of your media server"),
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		network.SetTimeout(config.Seconds(key.ServerTimeout))
		shipLogs()
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if shipper != nil {
			shipper.Close()
		}
	},
	Run: func(cmd *cobra.Command, args []string) {
		if cmd.Flags().Changed("version") {
			versionCmd.Run(versionCmd, args)
			return
		}

		sess := newSession(cmd)
		if sess.Mode() == session.Surface {
			handleErr(serve(sess))
			return
		}
		defer sess.Close()

		ctx, stop := interruptible()
		defer stop()

		options := tui.Options{
			Session:    sess,
			Collection: lo.Must(cmd.Flags().GetString("collection")),
			Search:     lo.Must(cmd.Flags().GetString("search")),
		}
		handleErr(tui.Run(ctx, &options))
	},
}

// Execute runs the root command.
func Execute() {
	if viper.GetBool(key.CliColored) {
		cc.Init(&cc.Config{
			RootCmd:       rootCmd,
			Headings:      cc.HiCyan + cc.Bold + cc.Underline,
			Commands:      cc.HiYellow + cc.Bold,
			Example:       cc.Italic,
			ExecName:      cc.Bold,
			Flags:         cc.Bold,
			FlagsDataType: cc.Italic + cc.HiBlue,
		})
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

var shipper *api.LogHook

// shipLogs forwards log entries to the media server when logs.ship is on.
func shipLogs() {
	if !viper.GetBool(key.LogsShip) || shipper != nil {
		return
	}

	level, err := logrus.ParseLevel(viper.GetString(key.LogsLevel))
	if err != nil {
		level = logrus.InfoLevel
	}
	shipper = api.NewLogHook(api.New(config.Host(), nil), level)
	log.AddHook(shipper)
}

// newSession builds a session printing alerts on stderr and asking on the terminal.
func newSession(cmd *cobra.Command) *session.Session {
	var asker alert.Asker = alert.Survey{}
	if lo.Must(cmd.Flags().GetBool("yes")) {
		asker = alert.Fixed{Answer: true}
	}
	return session.New(session.FromConfig(&alert.Terminal{Out: os.Stderr}, asker))
}

// interruptible returns a context cancelled on Ctrl+C.
func interruptible() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

func handleErr(err error) {
	if err == nil {
		return
	}

	log.Error(err)
	// already printed by the alerter
	if !errors.Is(err, control.ErrAlerted) && !errors.Is(err, search.ErrNoResults) {
		_, _ = fmt.Fprintf(os.Stderr, "%s %s\n", icon.Get(icon.Fail), strings.Trim(err.Error(), " \n"))
	}
	if shipper != nil {
		shipper.Close()
	}
	os.Exit(1)
}
