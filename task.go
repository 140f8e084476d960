package stagehand

import (
	"context"
	"fmt"
)

// Executable is a single unit of work: it produces a value or fails with an
// error. The supplied context carries the advisory cancellation signal;
// well-behaved executables observe ctx.Done() during blocking work, but the
// engine never forces termination on those that do not.
type Executable func(ctx context.Context) (any, error)

// Decorator transforms one executable into another. Decorators are the
// composition primitive of the engine: they wrap invocation behavior without
// ever invoking anything themselves. They are applied exactly once, at build
// time, and the produced composition is frozen into the task.
//
// Decorators should control whether, when, or how the wrapped executable
// runs. They must tolerate composition in arbitrary caller-defined order and
// must not assume anything about runner scheduling.
type Decorator func(next Executable) Executable

// Condition is a zero-argument predicate evaluated once per execution
// attempt by the short-circuit decorator.
type Condition func() bool

// Task is a named, immutable unit of work produced by a TaskBuilder.
//
// Only the builder creates tasks and only runners execute them; callers hold
// tasks purely as handles. A task may be executed any number of times, by any
// number of runners, sequentially or concurrently.
type Task struct {
	id         string
	executable Executable
}

// ID returns the stable identifier of this task. Repeated calls return the
// same value.
func (t *Task) ID() string {
	return t.id
}

// Equal reports whether other represents the same logical task. Two tasks
// with the same id are considered the same logical task, independent of
// behavior.
func (t *Task) Equal(other *Task) bool {
	if t == nil || other == nil {
		return t == other
	}
	return t.id == other.id
}

// String returns a short description of the task for diagnostics.
func (t *Task) String() string {
	return fmt.Sprintf("task %q", t.id)
}
