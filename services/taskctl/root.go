package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"task-tracker/services/taskctl/adapters/api"
	"task-tracker/services/taskctl/config"
	"task-tracker/services/taskctl/core"
)

var (
	configPath string

	appLog *slog.Logger
	store  *core.Store
)

var rootCmd = &cobra.Command{
	Use:   "taskctl",
	Short: "Manage and time tasks against the task-tracker service",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		cfg := config.MustLoad(configPath)
		appLog = mustMakeLogger(cfg.LogLevel)

		client := api.NewClient(cfg.Endpoint, cfg.Timeout, appLog)
		store = core.NewStore(appLog, client)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "taskctl configuration file")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(doneCmd)
	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(stopCmd)
	rootCmd.AddCommand(rmCmd)
}

// fatal prints the single user-facing error line and exits.
func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

// resolveTaskID refreshes the store and matches a full id or a unique
// prefix of one.
func resolveTaskID(ctx context.Context, arg string) string {
	if err := store.Refresh(ctx); err != nil {
		fatal("%v", err)
	}

	var match string
	for _, t := range store.Tasks() {
		if t.ID == arg {
			return t.ID
		}
		if strings.HasPrefix(t.ID, arg) {
			if match != "" {
				fatal("id prefix %q is ambiguous", arg)
			}
			match = t.ID
		}
	}
	if match == "" {
		fatal("no task with id %q", arg)
	}
	return match
}

func mustMakeLogger(levelStr string) *slog.Logger {
	var level slog.Level
	switch levelStr {
	case "DEBUG":
		level = slog.LevelDebug
	case "INFO":
		level = slog.LevelInfo
	case "ERROR":
		level = slog.LevelError
	default:
		level = slog.LevelError
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	return slog.New(handler)
}
