package main

import (
	"log/slog"

	"mad-sand/internal/app"

	"github.com/spf13/cobra"
)

var logLevel string

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "sand-bench",
		Short:        "Headless runner for the sand simulation",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	root.AddCommand(newRunCmd(), newMaterialsCmd())
	return root
}

func loggerFor(cmd *cobra.Command) *slog.Logger {
	return app.NewLogger(cmd.ErrOrStderr(), logLevel)
}
