package cmd

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/harrison/stagehand"
	"github.com/harrison/stagehand/internal/ident"
	"github.com/harrison/stagehand/internal/models"
)

// buildPlan turns a parsed plan spec into an engine plan. Each task runs its
// command through the shell; spec settings become decorators: the timeout
// bounds the command itself (innermost), the delay precedes it, and the
// environment gate is checked first of all (outermost).
func buildPlan(spec *models.PlanSpec) (*stagehand.Plan, error) {
	tasks := make([]*stagehand.Task, 0, len(spec.Tasks))
	for i, ts := range spec.Tasks {
		name := ts.Name
		if name == "" {
			name = ident.TaskID(i)
		}

		builder := stagehand.NewTask(name, shellExecutable(ts.Command, ts.Dir))
		if ts.Timeout > 0 {
			builder = builder.WithTimeout(ts.Timeout)
		}
		if ts.Delay > 0 {
			builder = builder.WithDelay(ts.Delay)
		}
		if ts.SkipIfEnv != "" {
			env := ts.SkipIfEnv
			builder = builder.WithShortCircuit(func() bool {
				return os.Getenv(env) != ""
			})
		}

		task, err := builder.Build()
		if err != nil {
			return nil, fmt.Errorf("task %d: %w", i+1, err)
		}
		tasks = append(tasks, task)
	}
	return stagehand.NewPlan(tasks...)
}

// shellExecutable wraps a shell command as an engine unit of work. The
// command's combined output is the produced value; a non-zero exit becomes
// the captured failure, with the output attached for diagnostics.
func shellExecutable(command, dir string) stagehand.Executable {
	return func(ctx context.Context) (any, error) {
		sh := exec.CommandContext(ctx, "sh", "-c", command)
		sh.Dir = dir

		output, err := sh.CombinedOutput()
		text := strings.TrimRight(string(output), "\n")
		if err != nil {
			if text != "" {
				return nil, fmt.Errorf("%w\n%s", err, text)
			}
			return nil, err
		}
		return text, nil
	}
}
