package cmd

import (
	"github.com/spf13/cobra"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates and returns the root cobra command for stagehand
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stagehand",
		Short: "Deterministic task runner for test automation",
		Long: `Stagehand executes plans of shell tasks with composable execution
control: per-task delays, timeouts, and environment-gated skipping.

It parses plan files (YAML or Markdown), builds each task through the
execution engine's decorator pipeline, and runs the plan either
synchronously or on a worker pool, always reporting results in plan
order regardless of completion order.`,
		Version: Version,
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage: true,
	}

	cmd.AddCommand(NewRunCommand())
	cmd.AddCommand(NewValidateCommand())

	return cmd
}
