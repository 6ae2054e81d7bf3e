package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"task-tracker/services/taskctl/core"
	"task-tracker/services/taskctl/ui"
)

var startCmd = &cobra.Command{
	Use:   "start <id>",
	Short: "Start a timing session on a task",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		toggleSession(args[0], true)
	},
}

var stopCmd = &cobra.Command{
	Use:   "stop <id>",
	Short: "Stop the running session, adding the elapsed time",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		toggleSession(args[0], false)
	},
}

func toggleSession(arg string, turnedOn bool) {
	ctx := context.Background()
	id := resolveTaskID(ctx, arg)

	if !turnedOn {
		// stopping a task without a session is a no-op worth flagging
		for _, t := range store.Tasks() {
			if t.ID == id && t.State != core.StateDoing {
				fatal("task %s has no running session", ui.ShortID(id))
			}
		}
	}

	updated, err := store.ToggleSession(ctx, id, turnedOn)
	if err != nil {
		fatal("%v", err)
	}

	fmt.Print(ui.RenderTask(updated))
}
