package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harrison/stagehand/internal/parser"
)

// NewValidateCommand creates the validate command
func NewValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <plan-file>",
		Short: "Validate a plan file without executing it",
		Long: `Parse and validate a plan file (YAML or Markdown), reporting the
tasks it defines. Nothing is executed.`,
		Args: cobra.ExactArgs(1),
		RunE: validateCommand,
	}
}

// validateCommand implements the validate command logic
func validateCommand(cmd *cobra.Command, args []string) error {
	spec, err := parser.ParseFile(args[0])
	if err != nil {
		return err
	}

	// Building exercises the same validation a run would.
	plan, err := buildPlan(spec)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Plan %q is valid: %d task(s)\n", spec.Name, plan.Size())
	for _, task := range plan.Tasks() {
		fmt.Fprintf(cmd.OutOrStdout(), "  - %s\n", task.ID())
	}
	return nil
}
