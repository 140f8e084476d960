package stagehand

import "time"

// Result is an immutable snapshot of a single task execution attempt.
//
// A result is created exactly once by a runner, immediately after the
// attempt completes, and is independent of both the task's lifetime and any
// other attempt: one task may accumulate many results over time.
type Result struct {
	task      *Task
	startTime time.Time
	endTime   time.Time
	err       error
	value     any
}

func newResult(task *Task, start, end time.Time, err error, value any) *Result {
	return &Result{task: task, startTime: start, endTime: end, err: err, value: value}
}

// Task returns the task this result describes. The same task instance may be
// associated with many results.
func (r *Result) Task() *Task {
	return r.task
}

// StartTime returns the moment the execution attempt began. If execution
// never began, the value equals EndTime.
func (r *Result) StartTime() time.Time {
	return r.startTime
}

// EndTime returns the moment the execution attempt ended. Always at or after
// StartTime.
func (r *Result) EndTime() time.Time {
	return r.endTime
}

// Duration returns the attempted execution time: the span between StartTime
// and EndTime, zero when execution never began.
func (r *Result) Duration() time.Duration {
	return r.endTime.Sub(r.startTime)
}

// Err returns the failure captured during the attempt, or nil on success.
// The error may originate from the task body or from a decorator (timeout,
// short-circuit, interrupted delay).
func (r *Result) Err() error {
	return r.err
}

// Value returns the value produced by the attempt. A nil value does not by
// itself indicate failure; the task may simply have produced nothing.
func (r *Result) Value() any {
	return r.value
}

// Success reports whether the attempt completed without a captured failure.
// False does not imply the task body ran: short-circuited attempts are
// failures too.
func (r *Result) Success() bool {
	return r.err == nil
}

// Started reports whether execution of the task body was ever entered,
// derived from the start and end stamps being distinct. False does not imply
// failure semantics beyond "the work never began".
func (r *Result) Started() bool {
	return r.startTime.Before(r.endTime)
}
