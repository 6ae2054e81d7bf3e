package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"task-tracker/services/taskctl/core"
	"task-tracker/services/taskctl/ui"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List tasks, optionally filtered and sorted",
	Run: func(cmd *cobra.Command, args []string) {
		filter, err := filterFromFlags(cmd)
		if err != nil {
			fatal("%v", err)
		}

		if err := store.SetFilter(context.Background(), filter); err != nil {
			fatal("%v", err)
		}

		fmt.Print(ui.RenderTasks(store.Tasks()))
	},
}

func init() {
	listCmd.Flags().Bool("hide-done", false, "hide completed tasks")
	listCmd.Flags().String("state", "", "only tasks in this state (todo|doing|done)")
	listCmd.Flags().String("title", "", "only tasks whose title contains this text")
	listCmd.Flags().String("from", "", "only tasks created on or after this date (YYYY-MM-DD)")
	listCmd.Flags().String("to", "", "only tasks created on or before this date (YYYY-MM-DD)")
	listCmd.Flags().String("sort", "", "sort key (created|title|state|done|spent)")
	listCmd.Flags().Bool("asc", false, "sort ascending instead of descending")
}

func filterFromFlags(cmd *cobra.Command) (core.TaskFilter, error) {
	var f core.TaskFilter

	if hide, _ := cmd.Flags().GetBool("hide-done"); hide {
		show := false
		f.ShowDoneTasks = &show
	}

	if v, _ := cmd.Flags().GetString("state"); v != "" {
		state, err := parseState(v)
		if err != nil {
			return core.TaskFilter{}, err
		}
		f.FilterByState = state
	}

	f.FilterByTitle, _ = cmd.Flags().GetString("title")

	if v, _ := cmd.Flags().GetString("from"); v != "" {
		from, err := time.Parse("2006-01-02", v)
		if err != nil {
			return core.TaskFilter{}, fmt.Errorf("invalid --from date %q", v)
		}
		f.FilterByDateFrom = &from
	}
	if v, _ := cmd.Flags().GetString("to"); v != "" {
		to, err := time.Parse("2006-01-02", v)
		if err != nil {
			return core.TaskFilter{}, fmt.Errorf("invalid --to date %q", v)
		}
		f.FilterByDateTo = &to
	}

	if v, _ := cmd.Flags().GetString("sort"); v != "" {
		switch strings.ToLower(v) {
		case "created":
			f.SortBy = core.SortByCreatedAt
		case "title":
			f.SortBy = core.SortByTitle
		case "state":
			f.SortBy = core.SortByState
		case "done":
			f.SortBy = core.SortByDone
		case "spent":
			f.SortBy = core.SortByTimeSpent
		default:
			return core.TaskFilter{}, fmt.Errorf("unknown sort key %q", v)
		}
	}

	if asc, _ := cmd.Flags().GetBool("asc"); asc {
		f.SortDirection = core.SortAsc
	}

	return f, nil
}

func parseState(s string) (core.TaskState, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "todo":
		return core.StateTodo, nil
	case "doing":
		return core.StateDoing, nil
	case "done":
		return core.StateDone, nil
	default:
		return "", fmt.Errorf("unknown state %q", s)
	}
}
