package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"task-tracker/services/taskctl/ui"
)

var doneCmd = &cobra.Command{
	Use:   "done <id>",
	Short: "Toggle a task's completion (closing any running session)",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		id := resolveTaskID(ctx, args[0])

		updated, err := store.ToggleDone(ctx, id)
		if err != nil {
			fatal("%v", err)
		}

		fmt.Print(ui.RenderTask(updated))
	},
}
