package stagehand

import (
	"fmt"
	"strings"
	"time"
)

// TaskBuilder incrementally defines how a single Task executes. It records
// decorators in call order and, on Build, folds them left-to-right over the
// base executable: the first decorator added becomes the innermost wrapper,
// the last added becomes the outermost and is invoked first.
//
// Each builder defines at most one task. Configuration mistakes (nil
// arguments, negative delay, non-positive timeout) are detected at the
// offending call and recorded; Build surfaces the first one. A builder is
// consumed by a successful Build; every later Build fails with
// ErrBuilderConsumed, so a task is never silently rebuilt.
//
// Builders are mutable during construction and must not be shared across
// goroutines.
type TaskBuilder struct {
	id         string
	executable Executable
	decorators []Decorator
	err        error // first configuration error, surfaced by Build
	built      bool
}

// NewTask starts the definition of a task with the given identifier and base
// unit of work. The id is trimmed; a blank id or nil executable is recorded
// as a configuration error and reported by Build.
func NewTask(id string, executable Executable) *TaskBuilder {
	b := &TaskBuilder{id: strings.TrimSpace(id), executable: executable}
	if b.id == "" {
		b.fail(ErrBlankTaskID)
	}
	if executable == nil {
		b.fail(ErrNilExecutable)
	}
	return b
}

// With appends an arbitrary decorator to the task definition. The decorator
// is not copied and may carry caller-owned state; the engine neither
// inspects nor protects it.
func (b *TaskBuilder) With(decorator Decorator) *TaskBuilder {
	if !b.mutable() {
		return b
	}
	if decorator == nil {
		return b.fail(ErrNilDecorator)
	}
	b.decorators = append(b.decorators, decorator)
	return b
}

// WithDelay appends a fixed blocking pause before task execution. A zero
// delay is an identity transform; a negative delay is a configuration error.
func (b *TaskBuilder) WithDelay(delay time.Duration) *TaskBuilder {
	if !b.mutable() {
		return b
	}
	if delay < 0 {
		return b.fail(fmt.Errorf("with delay %v: %w", delay, ErrNegativeDelay))
	}
	b.decorators = append(b.decorators, delayDecorator(delay))
	return b
}

// WithTimeout appends an execution time limit for a single task invocation.
// The limit must be positive.
func (b *TaskBuilder) WithTimeout(timeout time.Duration) *TaskBuilder {
	if !b.mutable() {
		return b
	}
	if timeout <= 0 {
		return b.fail(fmt.Errorf("with timeout %v: %w", timeout, ErrNonPositiveTimeout))
	}
	b.decorators = append(b.decorators, timeoutDecorator(timeout))
	return b
}

// WithShortCircuit appends a conditional execution guard. The condition is
// evaluated at invocation time, once per attempt; when it reports true the
// task body is never entered and the attempt fails with ErrShortCircuited.
func (b *TaskBuilder) WithShortCircuit(condition Condition) *TaskBuilder {
	if !b.mutable() {
		return b
	}
	if condition == nil {
		return b.fail(ErrNilCondition)
	}
	b.decorators = append(b.decorators, shortCircuitDecorator(condition))
	return b
}

// Build composes the recorded decorators over the base executable, marks the
// builder consumed, and returns the finished immutable Task. Building only
// composes; nothing is executed.
//
// Build fails with the first recorded configuration error, or with
// ErrBuilderConsumed if a task was already built.
func (b *TaskBuilder) Build() (*Task, error) {
	if b.built {
		return nil, ErrBuilderConsumed
	}
	if b.err != nil {
		return nil, fmt.Errorf("build task %q: %w", b.id, b.err)
	}
	composed := b.executable
	for _, decorator := range b.decorators {
		composed = decorator(composed)
	}
	b.built = true
	return &Task{id: b.id, executable: composed}, nil
}

// mutable reports whether the builder still accepts configuration calls.
// Calls after Build are recorded as the consumed error so the misuse is not
// silently ignored when the first Build succeeded.
func (b *TaskBuilder) mutable() bool {
	if b.built {
		b.err = ErrBuilderConsumed
		return false
	}
	return b.err == nil
}

func (b *TaskBuilder) fail(err error) *TaskBuilder {
	if b.err == nil {
		b.err = err
	}
	return b
}
