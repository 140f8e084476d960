package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/harrison/stagehand"
	"github.com/harrison/stagehand/internal/config"
	"github.com/harrison/stagehand/internal/display"
	"github.com/harrison/stagehand/internal/ident"
	"github.com/harrison/stagehand/internal/parser"
)

// NewRunCommand creates the run command
func NewRunCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <plan-file>",
		Short: "Execute a plan of shell tasks",
		Long: `Execute a plan file (YAML or Markdown).

Tasks run in plan order on the calling goroutine by default, or on a
worker pool with --concurrent. Results are always reported in plan
order. With --fail-fast the run stops at the first failing task;
in concurrent mode remaining tasks are asked to cancel, and tasks that
ignore the request finish in the background with their outcomes
discarded.

Configuration is loaded from .stagehand/config.yaml if present.
CLI flags override configuration file settings.

Examples:
  stagehand run plan.yaml
  stagehand run --concurrent plan.md
  stagehand run --concurrent --fail-fast plan.yaml
  stagehand run --quiet plan.yaml            # summary only
  stagehand run --config custom.yaml plan.md`,
		Args: cobra.ExactArgs(1),
		RunE: runCommand,
	}

	cmd.Flags().Bool("concurrent", false, "Execute tasks on a worker pool")
	cmd.Flags().Bool("fail-fast", false, "Stop the run at the first failing task")
	cmd.Flags().String("config", "", "Path to config file (default: .stagehand/config.yaml)")
	cmd.Flags().Bool("no-color", false, "Disable colored output")
	cmd.Flags().Bool("quiet", false, "Print only the run summary")

	return cmd
}

// runCommand implements the run command logic
func runCommand(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("concurrent") {
		cfg.Concurrent, _ = cmd.Flags().GetBool("concurrent")
	}
	if cmd.Flags().Changed("fail-fast") {
		cfg.FailFast, _ = cmd.Flags().GetBool("fail-fast")
	}
	if cmd.Flags().Changed("no-color") {
		cfg.NoColor, _ = cmd.Flags().GetBool("no-color")
	}
	if cmd.Flags().Changed("quiet") {
		cfg.Quiet, _ = cmd.Flags().GetBool("quiet")
	}

	spec, err := parser.ParseFile(args[0])
	if err != nil {
		return err
	}
	if spec.Defaults.Delay == 0 {
		spec.Defaults.Delay = cfg.DefaultDelay
	}
	if spec.Defaults.Timeout == 0 {
		spec.Defaults.Timeout = cfg.DefaultTimeout
	}
	spec.ApplyDefaults()

	plan, err := buildPlan(spec)
	if err != nil {
		return err
	}

	policy := stagehand.PolicyStandard
	if cfg.FailFast {
		policy = stagehand.PolicyFailFast
	}
	var runner stagehand.Runner
	if cfg.Concurrent {
		runner = stagehand.NewConcurrentRunner(policy)
	} else {
		runner = stagehand.NewSynchronousRunner(policy)
	}

	// Ctrl-C requests cancellation; the engine reports the aborted run as
	// an infrastructure failure listing the tasks that completed.
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reporter := display.NewReporter(cmd.OutOrStdout(), cfg.NoColor, cfg.Quiet)
	runID := ident.NewRunID()

	start := time.Now()
	results, err := runner.Run(ctx, plan)
	if err != nil {
		reporter.RunAborted(runID, err)
		return fmt.Errorf("run %s aborted", runID)
	}

	failed := 0
	for _, result := range results {
		reporter.TaskResult(result)
		if !result.Success() {
			failed++
		}
	}
	reporter.Summary(runID, plan.Size(), results, time.Since(start))

	if failed > 0 {
		return fmt.Errorf("%d of %d tasks failed", failed, plan.Size())
	}
	if len(results) < plan.Size() {
		return fmt.Errorf("run stopped early: %d of %d tasks completed", len(results), plan.Size())
	}
	return nil
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	configPath, _ := cmd.Flags().GetString("config")
	if configPath != "" {
		cfg, err := config.LoadConfig(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", configPath, err)
		}
		return cfg, nil
	}
	cfg, err := config.LoadConfigFromDir(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}
