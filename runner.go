package stagehand

import (
	"context"
	"time"
)

// ExecutionPolicy defines how a run responds to individual task failures.
type ExecutionPolicy int

const (
	// PolicyStandard continues attempting remaining tasks regardless of
	// individual failures. This is the default execution policy.
	PolicyStandard ExecutionPolicy = iota

	// PolicyFailFast stops attempting further tasks once one has failed.
	PolicyFailFast
)

// String returns the string representation of ExecutionPolicy.
func (p ExecutionPolicy) String() string {
	switch p {
	case PolicyStandard:
		return "standard"
	case PolicyFailFast:
		return "fail-fast"
	default:
		return "unknown"
	}
}

// Runner is a stateless engine that executes plans under a fixed execution
// policy and returns ordered results.
//
// The position of each result always matches the task's position in the
// originating plan, for every strategy, independent of actual execution
// order. Task failures are captured in results and never escape a run; the
// only error a runner returns is a *RunError describing a failure of the
// execution substrate itself, which aborts the remainder of the run. Under
// PolicyFailFast the returned results may be a truncated subset of the plan,
// still in plan order.
//
// Runners retain no state between runs and never modify plans or tasks.
type Runner interface {
	// Run executes the plan and blocks until the run completes or
	// terminates under the configured execution policy.
	Run(ctx context.Context, plan *Plan) ([]*Result, error)

	// RunTask executes a single task. Convenience for a one-task plan.
	RunTask(ctx context.Context, task *Task) (*Result, error)

	// RunTasks executes the given tasks in order. Convenience wrapper;
	// for repeated execution, group tasks into a Plan.
	RunTasks(ctx context.Context, tasks ...*Task) ([]*Result, error)
}

// NewSynchronousRunner creates a runner that executes tasks one at a time on
// the calling goroutine, each completing fully before the next begins.
func NewSynchronousRunner(policy ExecutionPolicy) Runner {
	return &synchronousRunner{policy: policy}
}

// NewConcurrentRunner creates a runner that executes tasks on a worker pool
// sized to the minimum of the task count and available CPUs.
func NewConcurrentRunner(policy ExecutionPolicy) Runner {
	return &concurrentRunner{policy: policy}
}

// executeTask is the per-task contract shared by both strategies: stamp a
// start instant, invoke the composed executable, stamp an end instant, and
// capture the outcome. Task-originated failures, panics included, never
// escape this function.
//
// Short-circuited attempts never entered the task body, so their stamps are
// collapsed to the start instant and Started reports false.
func executeTask(ctx context.Context, task *Task) *Result {
	start := time.Now()
	value, err := protect(ctx, task.executable)
	end := time.Now()
	if IsShortCircuited(err) {
		end = start
	}
	return newResult(task, start, end, err, value)
}

// runSingle funnels a one-task convenience call through plan execution.
func runSingle(ctx context.Context, r Runner, task *Task) (*Result, error) {
	if task == nil {
		return nil, ErrNilTask
	}
	plan, err := NewPlan(task)
	if err != nil {
		return nil, err
	}
	results, err := r.Run(ctx, plan)
	if err != nil {
		return nil, err
	}
	if len(results) != 1 {
		return nil, &RunError{Message: "invariant violation: single-task run produced no result"}
	}
	return results[0], nil
}

// runCollection funnels a task-collection convenience call through a plan.
func runCollection(ctx context.Context, r Runner, tasks []*Task) ([]*Result, error) {
	plan, err := NewPlan(tasks...)
	if err != nil {
		return nil, err
	}
	return r.Run(ctx, plan)
}

// completedIDs lists, in plan order, the ids of tasks that produced results.
func completedIDs(results []*Result) []string {
	ids := make([]string, 0, len(results))
	for _, result := range results {
		if result != nil {
			ids = append(ids, result.Task().ID())
		}
	}
	return ids
}
