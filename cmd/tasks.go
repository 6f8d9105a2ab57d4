package cmd

import (
	"context"
	"fmt"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/tvremote/tvremote/api"
	"github.com/tvremote/tvremote/color"
	"github.com/tvremote/tvremote/icon"
	"github.com/tvremote/tvremote/poll"
	"github.com/tvremote/tvremote/style"
	"github.com/tvremote/tvremote/tasks"
)

func init() {
	rootCmd.AddCommand(tasksCmd)
	tasksCmd.AddCommand(tasksLsCmd, tasksRmCmd)
	tasksLsCmd.Flags().BoolP("watch", "w", false, "Refresh the list until interrupted")
	tasksLsCmd.Flags().BoolP("json", "j", false, "Output as JSON")
	tasksLsCmd.MarkFlagsMutuallyExclusive("watch", "json")
}

var tasksCmd = &cobra.Command{
	Use:   "tasks",
	Short: "Manage downloads and conversions running on the media server",
}

func printTasks(cmd *cobra.Command, running []api.TaskState) {
	if len(running) == 0 {
		cmd.Println(style.Faint("no tasks"))
		return
	}
	for _, t := range running {
		name := t.DisplayName
		if name == "" {
			name = t.Name
		}
		status := style.Fg(color.Yellow)(icon.Get(icon.Task))
		switch {
		case t.Finished:
			status = style.Fg(color.Green)(icon.Get(icon.Success))
		case t.ErrorString != "":
			status = style.Fg(color.Red)(icon.Get(icon.Fail))
		}
		cmd.Printf("%s %s %s\n", status, style.Faint(fmt.Sprintf("[%s/%s]", t.TaskType, t.Key)), name)
		cmd.Printf("  %s\n", style.Faint(tasks.Summary(t)))
	}
}

var tasksLsCmd = &cobra.Command{
	Use:     "ls",
	Aliases: []string{"list"},
	Short:   "List tasks",
	Args:    cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, stop := interruptible()
		defer stop()

		manager := tasks.New(newSession(cmd).API(), nil)

		if !lo.Must(cmd.Flags().GetBool("watch")) {
			running, err := manager.List(ctx)
			handleErr(err)
			if lo.Must(cmd.Flags().GetBool("json")) {
				printJSON(cmd, running)
				return
			}
			printTasks(cmd, running)
			return
		}

		poll.Every(ctx, poll.Interval(), func(ctx context.Context) {
			running, err := manager.List(ctx)
			if err != nil {
				return
			}
			// clear the screen before each refresh
			cmd.Print("\033[H\033[2J")
			printTasks(cmd, running)
		})
	},
}

var tasksRmCmd = &cobra.Command{
	Use:     "rm <key>",
	Aliases: []string{"terminate"},
	Short:   "Terminate a task",
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, stop := interruptible()
		defer stop()

		sess := newSession(cmd)
		manager := tasks.New(sess.API(), sess.Asker())
		running, err := manager.List(ctx)
		handleErr(err)

		task, ok := lo.Find(running, func(t api.TaskState) bool { return t.Key == args[0] })
		if !ok {
			handleErr(fmt.Errorf("no task with key %q", args[0]))
		}

		deleted, err := manager.Delete(ctx, task)
		handleErr(err)
		if deleted {
			cmd.Printf("%s Terminated %s\n", icon.Get(icon.Success), task.Name)
		}
	},
}
