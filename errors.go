package stagehand

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Validation errors reported by the builder, plan factory, and runner
// constructors. They are always raised before any execution is attempted.
var (
	// ErrBlankTaskID indicates a task id that is empty or whitespace-only.
	ErrBlankTaskID = errors.New("task id must not be blank")

	// ErrNilExecutable indicates a nil unit of work.
	ErrNilExecutable = errors.New("executable must not be nil")

	// ErrNilDecorator indicates a nil decorator passed to With.
	ErrNilDecorator = errors.New("decorator must not be nil")

	// ErrNegativeDelay indicates a negative delay duration.
	ErrNegativeDelay = errors.New("delay must not be negative")

	// ErrNonPositiveTimeout indicates a zero or negative timeout duration.
	ErrNonPositiveTimeout = errors.New("timeout must be positive")

	// ErrNilCondition indicates a nil short-circuit condition.
	ErrNilCondition = errors.New("short-circuit condition must not be nil")

	// ErrBuilderConsumed indicates a builder that has already built its task.
	ErrBuilderConsumed = errors.New("builder has already been used to build a task")

	// ErrNilTask indicates a nil task in a plan or runner call.
	ErrNilTask = errors.New("task must not be nil")

	// ErrNilPlan indicates a nil plan passed to a runner.
	ErrNilPlan = errors.New("plan must not be nil")
)

// ErrShortCircuited is the failure captured when a task's short-circuit
// condition evaluated to true and the task body was never entered.
var ErrShortCircuited = errors.New("task execution was short-circuited")

// TimeoutError is the failure captured when a task's execution time limit
// elapsed before the task completed. The underlying work was asked to cancel
// but may still be running if it ignored the request.
type TimeoutError struct {
	Limit time.Duration // Configured execution time limit
}

// Error implements the error interface for TimeoutError.
func (e *TimeoutError) Error() string {
	return fmt.Sprintf("task execution timed out after %v", e.Limit)
}

// Unwrap returns context.DeadlineExceeded to support error wrapping.
func (e *TimeoutError) Unwrap() error {
	return context.DeadlineExceeded
}

// PanicError is the failure captured when a task's executable panicked.
// The panic is confined to the task's result and never unwinds the runner.
type PanicError struct {
	Value any // Value recovered from the panic
}

// Error implements the error interface for PanicError.
func (e *PanicError) Error() string {
	return fmt.Sprintf("task panicked: %v", e.Value)
}

// RunError reports a failure of the execution substrate itself: the run
// context was canceled while awaiting completions, or an internal consistency
// check failed. It aborts the remainder of the run and is the only error a
// runner returns; individual task failures are always captured in results
// instead.
type RunError struct {
	Message   string   // Human-readable description of the failure
	Err       error    // Underlying cause (optional)
	Completed []string // Ids of tasks that completed before the run aborted
}

// Error implements the error interface for RunError.
func (e *RunError) Error() string {
	var sb strings.Builder
	sb.WriteString(e.Message)
	if e.Err != nil {
		sb.WriteString(fmt.Sprintf(": %v", e.Err))
	}
	if len(e.Completed) > 0 {
		sb.WriteString("\ncompleted tasks:")
		for _, id := range e.Completed {
			sb.WriteString(fmt.Sprintf("\n  - %s", id))
		}
	}
	return sb.String()
}

// Unwrap returns the underlying cause for error wrapping support.
func (e *RunError) Unwrap() error {
	return e.Err
}

// IsTimeoutError checks if the error is or wraps a TimeoutError or
// context.DeadlineExceeded.
func IsTimeoutError(err error) bool {
	if err == nil {
		return false
	}
	var te *TimeoutError
	if errors.As(err, &te) {
		return true
	}
	return errors.Is(err, context.DeadlineExceeded)
}

// IsShortCircuited checks if the error is or wraps ErrShortCircuited.
func IsShortCircuited(err error) bool {
	return errors.Is(err, ErrShortCircuited)
}

// IsRunError checks if the error is or wraps a RunError.
func IsRunError(err error) bool {
	if err == nil {
		return false
	}
	var re *RunError
	return errors.As(err, &re)
}
