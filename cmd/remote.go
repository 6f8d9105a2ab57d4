package cmd

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/tvremote/tvremote/color"
	"github.com/tvremote/tvremote/icon"
	"github.com/tvremote/tvremote/message"
	"github.com/tvremote/tvremote/style"
	"github.com/tvremote/tvremote/util"
)

func init() {
	rootCmd.AddCommand(playCmd)
	playCmd.Flags().StringP("collection", "c", "", "Collection of the video")

	rootCmd.AddCommand(seekCmd)
	rootCmd.AddCommand(pauseCmd)

	rootCmd.AddCommand(listenCmd)
	listenCmd.Flags().BoolP("json", "j", false, "Print raw JSON messages")
}

var playCmd = &cobra.Command{
	Use:   "play <video>",
	Short: "Play a video on the remote surface",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, stop := interruptible()
		defer stop()

		collection := lo.Must(cmd.Flags().GetString("collection"))
		handleErr(newSession(cmd).Player(collection).PlayVideo(ctx, args[0]))
		fmt.Printf("%s Playing %s\n", icon.Get(icon.Play), style.Fg(color.Purple)(args[0]))
	},
}

var seekCmd = &cobra.Command{
	Use:     "seek <seconds>",
	Short:   "Seek the remote surface by a relative number of seconds",
	Example: "  tvremote seek -- -30",
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		interval, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			handleErr(fmt.Errorf("invalid interval %q", args[0]))
		}

		ctx, stop := interruptible()
		defer stop()
		handleErr(newSession(cmd).Player("").Seek(ctx, interval))
	},
}

var pauseCmd = &cobra.Command{
	Use:     "pause",
	Aliases: []string{"resume"},
	Short:   "Pause or resume the remote surface",
	Args:    cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, stop := interruptible()
		defer stop()
		handleErr(newSession(cmd).Player("").TogglePause(ctx))
	},
}

var listenCmd = &cobra.Command{
	Use:   "listen",
	Short: "Print the messages arriving over the remote control channel",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		asJSON := lo.Must(cmd.Flags().GetBool("json"))

		ctx, stop := interruptible()
		defer stop()

		sess := newSession(cmd)
		sess.Connect(func(m message.Message) {
			if asJSON {
				data, _ := json.Marshal(message.ToWire(m))
				cmd.Println(string(data))
				return
			}
			cmd.Println(describe(m))
		})
		defer sess.Close()

		<-ctx.Done()
	},
}

// describe renders a message as one human readable line.
func describe(m message.Message) string {
	kind := style.Fg(color.ForKind(m.Kind()))(string(m.Kind()))
	switch v := m.(type) {
	case message.Play:
		return fmt.Sprintf("%s %s %s", icon.Get(icon.Play), kind, v.URL)
	case message.Seek:
		return fmt.Sprintf("%s %s %+.0fs", icon.Get(icon.Remote), kind, v.Interval)
	case message.State:
		return fmt.Sprintf("%s %s %s %s %s / %s", icon.Get(icon.TV), kind, v.Video,
			style.Progress(v.Percent(), 20), util.Clock(v.CurrentTime), util.Clock(v.Duration))
	case message.Command:
		return fmt.Sprintf("%s %s %s", icon.Get(icon.Remote), kind, v.Command)
	case message.Error:
		return fmt.Sprintf("%s %s %s", style.Fg(color.Red)(icon.Get(icon.Fail)), kind, v.Message)
	default:
		return fmt.Sprintf("%s %s", icon.Get(icon.Remote), kind)
	}
}
