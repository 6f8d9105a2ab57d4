package cmd

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tvremote/tvremote/api"
	"github.com/tvremote/tvremote/color"
	"github.com/tvremote/tvremote/icon"
	"github.com/tvremote/tvremote/key"
	"github.com/tvremote/tvremote/log"
	"github.com/tvremote/tvremote/open"
	"github.com/tvremote/tvremote/query"
	"github.com/tvremote/tvremote/search"
	"github.com/tvremote/tvremote/style"
	"github.com/tvremote/tvremote/tasks"
)

func init() {
	rootCmd.AddCommand(searchCmd)
	searchCmd.Flags().StringP("engine", "e", "", "Search engine: youtube or piratebay")
	lo.Must0(searchCmd.RegisterFlagCompletionFunc("engine", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{string(api.YouTube), string(api.PirateBay)}, cobra.ShellCompDirectiveNoFileComp
	}))
	searchCmd.Flags().BoolP("json", "j", false, "Output as JSON")
	searchCmd.Flags().IntP("download", "d", 0, "Download the result with this number")
	searchCmd.Flags().IntP("open", "o", 0, "Open the link of the result with this number")
	searchCmd.MarkFlagsMutuallyExclusive("download", "open", "json")
}

// engineFor picks the flag, then the engine last used with term, then the configured default.
func engineFor(cmd *cobra.Command, term string) api.SearchEngine {
	if engine := lo.Must(cmd.Flags().GetString("engine")); engine != "" {
		return api.SearchEngine(engine)
	}
	if engine, ok := query.LastEngine(term).Get(); ok {
		return api.SearchEngine(engine)
	}
	return api.SearchEngine(viper.GetString(key.SearchEngine))
}

// pick returns result n, counted from 1.
func pick(results []api.SearchResult, n int) api.SearchResult {
	if n < 1 || n > len(results) {
		handleErr(fmt.Errorf("no result number %d, there are %d", n, len(results)))
	}
	return results[n-1]
}

var searchCmd = &cobra.Command{
	Use:   "search <term...>",
	Short: "Search videos to download",
	Args:  cobra.MinimumNArgs(1),
	ValidArgsFunction: func(_ *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		partial := strings.Join(append(args, toComplete), " ")
		return query.SuggestMany(partial), cobra.ShellCompDirectiveNoFileComp
	},
	Run: func(cmd *cobra.Command, args []string) {
		term := strings.Join(args, " ")
		engine := engineFor(cmd, term)

		ctx, stop := interruptible()
		defer stop()

		sess := newSession(cmd)
		store := search.NewStore(engine, sess.API(), sess.Alerts())
		store.Dispatch(search.SetTerm(term))
		handleErr(store.Search(ctx))

		if err := query.Remember(term, string(engine)); err != nil {
			log.Warnf("search term not remembered: %s", err)
		}

		results := store.State().Results
		switch {
		case lo.Must(cmd.Flags().GetBool("json")):
			printJSON(cmd, results)
		case cmd.Flags().Changed("download"):
			result := pick(results, lo.Must(cmd.Flags().GetInt("download")))
			added, err := tasks.New(sess.API(), sess.Asker()).Download(ctx, result)
			handleErr(err)
			if added {
				cmd.Printf("%s Download started: %s\n", icon.Get(icon.Success), result.Title)
			}
		case cmd.Flags().Changed("open"):
			handleErr(open.URL(pick(results, lo.Must(cmd.Flags().GetInt("open"))).Link))
		default:
			if len(results) == 0 {
				cmd.Println(style.Faint("no results"))
				return
			}
			for i, r := range results {
				cmd.Printf("%s %s\n", style.Fg(color.Yellow)(fmt.Sprintf("%3d", i+1)), r.Title)
				if r.Description != "" {
					cmd.Printf("    %s\n", style.Faint(r.Description))
				}
			}
		}
	},
}
