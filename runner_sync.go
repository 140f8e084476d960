package stagehand

import "context"

// synchronousRunner executes tasks in plan order on the calling goroutine.
//
// Each task fully completes before the next begins; there is no overlap or
// interleaving. Under PolicyFailFast, execution stops after the first failing
// result and no further tasks are attempted; the runner never interrupts a
// task already in progress. Cancellation of the run context observed between
// tasks aborts the run as an infrastructure failure, not a task result.
type synchronousRunner struct {
	policy ExecutionPolicy
}

func (r *synchronousRunner) Run(ctx context.Context, plan *Plan) ([]*Result, error) {
	if plan == nil {
		return nil, ErrNilPlan
	}
	if ctx == nil {
		ctx = context.Background()
	}

	results := make([]*Result, 0, plan.Size())
	for _, task := range plan.tasks {
		if err := ctx.Err(); err != nil {
			return nil, &RunError{
				Message:   "run canceled while iterating plan",
				Err:       err,
				Completed: completedIDs(results),
			}
		}

		result := executeTask(ctx, task)
		results = append(results, result)

		if !result.Success() && r.policy == PolicyFailFast {
			break
		}
	}
	return results, nil
}

func (r *synchronousRunner) RunTask(ctx context.Context, task *Task) (*Result, error) {
	return runSingle(ctx, r, task)
}

func (r *synchronousRunner) RunTasks(ctx context.Context, tasks ...*Task) ([]*Result, error) {
	return runCollection(ctx, r, tasks)
}
