package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/tvremote/tvremote/api"
	"github.com/tvremote/tvremote/color"
	"github.com/tvremote/tvremote/control"
	"github.com/tvremote/tvremote/icon"
	"github.com/tvremote/tvremote/style"
	"github.com/tvremote/tvremote/util"
)

func init() {
	rootCmd.AddCommand(mediaCmd)
	mediaCmd.PersistentFlags().StringP("collection", "c", "", "Collection to work in")

	mediaCmd.AddCommand(mediaLsCmd)
	mediaLsCmd.Flags().BoolP("json", "j", false, "Output as JSON")

	mediaCmd.AddCommand(mediaInfoCmd)
	mediaInfoCmd.Flags().BoolP("json", "j", false, "Output as JSON")

	mediaCmd.AddCommand(mediaRmCmd, mediaMvCmd, mediaConvertCmd, mediaConversionsCmd)
}

func mediaPlayer(cmd *cobra.Command) *control.VideoPlayer {
	return newSession(cmd).Player(lo.Must(cmd.Flags().GetString("collection")))
}

func printJSON(cmd *cobra.Command, v any) {
	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	handleErr(encoder.Encode(v))
}

var mediaCmd = &cobra.Command{
	Use:   "media",
	Short: "Browse and edit the videos of the media server",
}

var mediaLsCmd = &cobra.Command{
	Use:     "ls",
	Aliases: []string{"list"},
	Short:   "List a collection",
	Args:    cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, stop := interruptible()
		defer stop()

		details, err := mediaPlayer(cmd).FetchCollection(ctx)
		handleErr(err)
		if details.Collection == nil {
			handleErr(fmt.Errorf("the media server did not return a collection"))
		}
		listing := *details.Collection

		if lo.Must(cmd.Flags().GetBool("json")) {
			printJSON(cmd, listing)
			return
		}

		for _, c := range listing.ChildCollections {
			cmd.Println(style.Fg(color.Blue)(icon.Get(icon.Folder) + " " + c))
		}
		for _, v := range listing.Videos {
			cmd.Println(icon.Get(icon.Video) + " " + v)
		}
		for _, e := range listing.Errors {
			cmd.Println(style.Fg(color.Yellow)(icon.Get(icon.Warn) + " " + e))
		}
		if len(listing.ChildCollections)+len(listing.Videos) == 0 {
			cmd.Println(style.Faint("empty collection"))
		}
	},
}

var mediaInfoCmd = &cobra.Command{
	Use:   "info <video>",
	Short: "Show the details of a video",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, stop := interruptible()
		defer stop()

		p := mediaPlayer(cmd)
		details, err := p.FetchDetails(ctx, args[0], p.Collection())
		handleErr(err)
		if details.Video == nil {
			handleErr(fmt.Errorf("the media server did not return a video"))
		}

		if lo.Must(cmd.Flags().GetBool("json")) {
			printJSON(cmd, details.Video)
			return
		}
		cmd.Println(videoInfo(*details.Video))
	},
}

func videoInfo(v api.VideoDetails) string {
	label := style.Fg(color.Purple)
	lines := []string{style.Bold(v.Video)}

	if s := v.Series; s.SeriesTitle != "" {
		lines = append(lines, fmt.Sprintf("%s %s S%sE%s %s", label("Series"), s.SeriesTitle, s.Season, s.Episode, s.EpisodeTitle))
	}
	if m := v.Metadata; m.Duration > 0 {
		lines = append(lines, fmt.Sprintf("%s %s", label("Duration"), util.SecondsToTimeString(int(m.Duration))))
	}
	if m := v.Metadata; m.Width > 0 {
		lines = append(lines, fmt.Sprintf("%s %dx%d, %s", label("Video"), m.Width, m.Height, util.Quantify(m.AudioTracks, "audio track", "audio tracks")))
	}
	if v.Description != "" {
		lines = append(lines, "", v.Description)
	}
	return strings.Join(lines, "\n")
}

var mediaRmCmd = &cobra.Command{
	Use:     "rm <video>",
	Aliases: []string{"delete"},
	Short:   "Delete a video",
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, stop := interruptible()
		defer stop()
		handleErr(mediaPlayer(cmd).DeleteVideo(ctx, args[0]))
	},
}

var mediaMvCmd = &cobra.Command{
	Use:     "mv <video> <new name>",
	Aliases: []string{"rename"},
	Short:   "Rename a video",
	Args:    cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, stop := interruptible()
		defer stop()
		handleErr(mediaPlayer(cmd).RenameVideo(ctx, args[0], args[1]))
	},
}

var mediaConvertCmd = &cobra.Command{
	Use:   "convert <video> <conversion>",
	Short: "Start converting a video",
	Args:  cobra.ExactArgs(2),
	ValidArgsFunction: func(cmd *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
		if len(args) != 1 {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		ctx, stop := interruptible()
		defer stop()
		names := lo.Map(mediaPlayer(cmd).GetAvailableConversions(ctx), func(c api.Conversion, _ int) string {
			return c.Name
		})
		return names, cobra.ShellCompDirectiveNoFileComp
	},
	Run: func(cmd *cobra.Command, args []string) {
		ctx, stop := interruptible()
		defer stop()
		handleErr(mediaPlayer(cmd).ConvertVideo(ctx, args[0], args[1]))
	},
}

var mediaConversionsCmd = &cobra.Command{
	Use:   "conversions",
	Short: "List the conversions the server offers",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, stop := interruptible()
		defer stop()

		conversions := mediaPlayer(cmd).GetAvailableConversions(ctx)
		if len(conversions) == 0 {
			cmd.Println(style.Faint("no conversions available"))
			return
		}
		for _, c := range conversions {
			cmd.Printf("%s %s\n", style.Fg(color.Purple)(c.Name), style.Faint(c.Description))
		}
	},
}
