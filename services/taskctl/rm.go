package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var rmCmd = &cobra.Command{
	Use:   "rm [ids...]",
	Short: "Delete tasks by id, or every task with --all",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		all, _ := cmd.Flags().GetBool("all")

		if all {
			if len(args) > 0 {
				fatal("cannot combine ids with --all")
			}
			res, err := store.RemoveAll(ctx)
			if err != nil {
				fatal("%v", err)
			}
			fmt.Printf("deleted %d task(s)\n", res.DeletedCount)
			return
		}

		if len(args) == 0 {
			fatal("ids required (or use --all)")
		}

		for _, arg := range args {
			store.Select(resolveTaskID(ctx, arg))
		}

		res, err := store.RemoveSelected(ctx)
		if err != nil {
			fatal("%v", err)
		}
		fmt.Printf("deleted %d task(s)\n", res.DeletedCount)
	},
}

func init() {
	rmCmd.Flags().Bool("all", false, "delete every task")
}
