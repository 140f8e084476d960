package stagehand

import (
	"context"
	"runtime"
)

// concurrentRunner executes tasks on a worker pool.
//
// Every task is handed to the pool eagerly at the start of the run; start
// order, completion order, and timing are nondeterministic. Completions are
// drained as they finish and written into a slot keyed by the task's plan
// position, so the returned list is always ordered by plan position.
//
// Under PolicyFailFast the first failing completion cancels the run context.
// Cancellation is advisory: tasks that ignore it may still complete in the
// background, but their outcomes are discarded and the returned list holds
// strictly the results collected before cancellation, possibly a proper
// subset of the plan, still in plan order. Tasks the pool never started
// produce no result at all.
type concurrentRunner struct {
	policy ExecutionPolicy
}

// indexedResult pairs a completed result with its plan position.
type indexedResult struct {
	index  int
	result *Result
}

func (r *concurrentRunner) Run(ctx context.Context, plan *Plan) ([]*Result, error) {
	if plan == nil {
		return nil, ErrNilPlan
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if plan.IsEmpty() {
		return []*Result{}, nil
	}

	tasks := plan.tasks
	slots := make([]*Result, len(tasks))

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Eager submission: every plan position is queued before any worker
	// starts draining.
	jobs := make(chan int, len(tasks))
	for i := range tasks {
		jobs <- i
	}
	close(jobs)

	// Buffered to plan size so workers finishing after an early return can
	// deliver and exit instead of leaking.
	completions := make(chan indexedResult, len(tasks))

	workers := min(len(tasks), runtime.NumCPU())
	for w := 0; w < workers; w++ {
		go func() {
			for idx := range jobs {
				if runCtx.Err() != nil {
					// Canceled before start: this task never runs and
					// contributes no result.
					return
				}
				completions <- indexedResult{index: idx, result: executeTask(runCtx, tasks[idx])}
			}
		}()
	}

	for collected := 0; collected < len(tasks); collected++ {
		select {
		case c := <-completions:
			slots[c.index] = c.result
			if !c.result.Success() && r.policy == PolicyFailFast {
				cancel()
				return completedResults(slots), nil
			}
		case <-ctx.Done():
			cancel()
			return nil, &RunError{
				Message:   "run canceled while awaiting task completion",
				Err:       ctx.Err(),
				Completed: completedIDs(slots),
			}
		}
	}
	return completedResults(slots), nil
}

func (r *concurrentRunner) RunTask(ctx context.Context, task *Task) (*Result, error) {
	return runSingle(ctx, r, task)
}

func (r *concurrentRunner) RunTasks(ctx context.Context, tasks ...*Task) ([]*Result, error) {
	return runCollection(ctx, r, tasks)
}

// completedResults compacts the slot array, preserving plan order and
// eliding positions that never produced a result.
func completedResults(slots []*Result) []*Result {
	out := make([]*Result, 0, len(slots))
	for _, result := range slots {
		if result != nil {
			out = append(out, result)
		}
	}
	return out
}
