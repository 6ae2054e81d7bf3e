package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"task-tracker/services/taskctl/core"
	"task-tracker/services/taskctl/ui"
)

var addCmd = &cobra.Command{
	Use:     "add <title>",
	Aliases: []string{"new"},
	Short:   "Create a new task",
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		description, _ := cmd.Flags().GetString("description")
		start, _ := cmd.Flags().GetBool("start")

		draft := core.TaskDraft{
			Title:       args[0],
			Description: description,
			State:       core.StateTodo,
		}
		if start {
			draft.State = core.StateDoing
		}

		created, err := store.NewTask(context.Background(), draft)
		if err != nil {
			fatal("%v", err)
		}

		fmt.Print(ui.RenderTask(created))
	},
}

func init() {
	addCmd.Flags().StringP("description", "d", "", "task description")
	addCmd.Flags().Bool("start", false, "start a timing session immediately")
}
