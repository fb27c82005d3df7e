package main

import (
	"github.com/spf13/cobra"

	"retention-workers/internal/common/logger"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "risk-cli",
		Short:         "Assess a student's dropout risk from the terminal",
		Long:          "risk-cli scores a student record with the dropout classifier and prints the risk tier, contributing factors and intervention plan.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().String("log-level", "warn", "Log level (debug, info, warn, error)")

	root.AddCommand(newAssessCmd())
	root.AddCommand(fieldsCmd())
	root.AddCommand(versionCmd())
	return root
}

// newLogger writes to stderr so stdout stays clean for --json.
func newLogger(cmd *cobra.Command) logger.Logger {
	level, _ := cmd.Flags().GetString("log-level")
	return logger.NewZapAdapter(logger.New(level, "console", "stderr"))
}
