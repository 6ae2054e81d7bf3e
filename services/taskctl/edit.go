package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"task-tracker/services/taskctl/core"
	"task-tracker/services/taskctl/ui"
)

var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit fields of a task",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		id := resolveTaskID(ctx, args[0])

		var p core.TaskPatch

		if cmd.Flags().Changed("title") {
			v, _ := cmd.Flags().GetString("title")
			p.Title = &v
		}
		if cmd.Flags().Changed("description") {
			v, _ := cmd.Flags().GetString("description")
			p.Description = &v
		}
		if cmd.Flags().Changed("state") {
			v, _ := cmd.Flags().GetString("state")
			state, err := parseState(v)
			if err != nil {
				fatal("%v", err)
			}
			p.State = &state
		}
		if cmd.Flags().Changed("spent") {
			v, _ := cmd.Flags().GetInt64("spent")
			if v < 0 {
				fatal("--spent cannot be negative")
			}
			p.TimeSpent = &v
		}

		if p.Title == nil && p.Description == nil && p.State == nil && p.TimeSpent == nil {
			fatal("nothing to update")
		}

		updated, err := store.UpdateTask(ctx, id, p)
		if err != nil {
			fatal("%v", err)
		}

		fmt.Print(ui.RenderTask(updated))
	},
}

func init() {
	editCmd.Flags().String("title", "", "new title")
	editCmd.Flags().StringP("description", "d", "", "new description")
	editCmd.Flags().String("state", "", "new state (todo|doing|done)")
	editCmd.Flags().Int64("spent", 0, "accumulated time in seconds")
}
