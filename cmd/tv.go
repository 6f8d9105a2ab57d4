package cmd

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tvremote/tvremote/color"
	"github.com/tvremote/tvremote/control"
	"github.com/tvremote/tvremote/icon"
	"github.com/tvremote/tvremote/key"
	"github.com/tvremote/tvremote/log"
	"github.com/tvremote/tvremote/player"
	"github.com/tvremote/tvremote/remote"
	"github.com/tvremote/tvremote/session"
	"github.com/tvremote/tvremote/style"
	"github.com/tvremote/tvremote/tui"
	"github.com/tvremote/tvremote/util"
)

func init() {
	rootCmd.AddCommand(tvCmd)
	tvCmd.Flags().StringP("player", "p", "", "Media player backend")
	_ = viper.BindPFlag(key.Player, tvCmd.Flags().Lookup("player"))
	tvCmd.Flags().BoolP("browse", "b", false, "Browse and play videos from this terminal while serving")
	tvCmd.Flags().StringP("collection", "c", "", "Collection to open first when browsing")
}

var tvCmd = &cobra.Command{
	Use:     "tv",
	Aliases: []string{"surface"},
	Short:   "Run the playback surface",
	Long:    "Play whatever the remote controls send over the shared channel and report the position back.",
	Run: func(cmd *cobra.Command, args []string) {
		browse := lo.Must(cmd.Flags().GetBool("browse"))
		if !browse {
			handleErr(serve(newSession(cmd)))
			return
		}
		handleErr(serveAndBrowse(newSession(cmd), lo.Must(cmd.Flags().GetString("collection"))))
	},
}

// startPlayer checks and starts the configured backend.
func startPlayer() (player.Player, error) {
	name := viper.GetString(key.Player)
	if err := player.Check(name); err != nil {
		var missing *player.MissingError
		if errors.As(err, &missing) {
			fmt.Println(missingPlayerBox(missing))
			return nil, fmt.Errorf("%w: %w", control.ErrAlerted, err)
		}
		return nil, err
	}
	return player.New(name, log.For("player"))
}

// serve runs the playback surface until interrupted.
func serve(sess *session.Session) error {
	p, err := startPlayer()
	if err != nil {
		return err
	}
	defer util.Ignore(p.Close)

	ctx, stop := interruptible()
	defer stop()

	fmt.Printf("%s Waiting for remote commands %s\n", icon.Get(icon.TV), style.Faint("(Ctrl+C to stop)"))
	return sess.Serve(ctx, p, remote.WithStateChange(func(state remote.PlayState) {
		fmt.Printf("%s %s\n", style.Fg(color.Purple)(icon.Get(icon.Remote)), state)
	}))
}

// serveAndBrowse runs the playback surface behind the video browser. Videos picked in the
// browser play on this surface without a round trip through the media server.
func serveAndBrowse(sess *session.Session, collection string) error {
	p, err := startPlayer()
	if err != nil {
		return err
	}
	defer util.Ignore(p.Close)

	ctx, stop := interruptible()
	defer stop()

	surface := sess.Surface(p)
	served := make(chan error, 1)
	go func() { served <- sess.Run(ctx, surface) }()

	err = tui.Run(ctx, &tui.Options{Session: sess, Collection: collection, Surface: surface})
	stop()
	return errors.Join(err, <-served)
}

func missingPlayerBox(missing *player.MissingError) string {
	lines := []string{
		style.New().Bold(true).Foreground(color.HiRed).Render(icon.Get(icon.Fail) + " Missing player"),
		"",
		fmt.Sprintf("The playback surface needs %s, which was not found in your PATH.", missing.Binary),
	}
	if hint := missing.InstallHint(); hint != "" {
		lines = append(lines, "", "Install it with", "  "+style.Bold(hint))
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(color.HiRed).
		Padding(1, 2).
		Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}
