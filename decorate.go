package stagehand

import (
	"context"
	"time"
)

// delayDecorator applies a fixed blocking pause before the inner executable
// is invoked. The pause counts as part of the task's execution time; it is
// not a scheduling mechanism and does not defer submission by the runner.
//
// Cancellation during the pause aborts the attempt before the inner
// executable is entered, and the cancellation cause is captured as the
// attempt's failure. A zero delay returns the executable unchanged.
func delayDecorator(delay time.Duration) Decorator {
	return func(next Executable) Executable {
		if delay == 0 {
			return next
		}
		return func(ctx context.Context) (any, error) {
			timer := time.NewTimer(delay)
			defer timer.Stop()
			select {
			case <-timer.C:
			case <-ctx.Done():
				return nil, ctx.Err()
			}
			return next(ctx)
		}
	}
}

// timeoutDecorator enforces an execution time limit on a single invocation.
//
// The inner executable runs on a dedicated, single-use worker goroutine with
// its own derived context; the worker is never pooled or reused, which bounds
// a hung task's impact to that one disposable worker. The invoking goroutine
// blocks until the worker completes, the limit elapses, or its own context is
// canceled. In the latter two cases the worker is asked to cancel
// (advisory); work that ignores the request keeps running in the background
// and its eventual outcome is discarded.
//
// Errors produced by the inner executable are surfaced as-is, never wrapped
// in a scheduling error.
func timeoutDecorator(timeout time.Duration) Decorator {
	return func(next Executable) Executable {
		return func(ctx context.Context) (any, error) {
			workerCtx, cancel := context.WithCancel(ctx)
			defer cancel()

			// Buffered so an abandoned worker can deliver and exit.
			done := make(chan attempt, 1)
			go func() {
				value, err := protect(workerCtx, next)
				done <- attempt{value: value, err: err}
			}()

			timer := time.NewTimer(timeout)
			defer timer.Stop()

			select {
			case a := <-done:
				return a.value, a.err
			case <-timer.C:
				cancel()
				return nil, &TimeoutError{Limit: timeout}
			case <-ctx.Done():
				cancel()
				return nil, ctx.Err()
			}
		}
	}
}

// shortCircuitDecorator gates execution on a condition evaluated at
// invocation time. When the condition reports true the inner executable is
// never entered and the attempt fails with ErrShortCircuited; otherwise the
// inner outcome passes through unchanged. The decorator keeps no state of
// its own.
func shortCircuitDecorator(condition Condition) Decorator {
	return func(next Executable) Executable {
		return func(ctx context.Context) (any, error) {
			if condition() {
				return nil, ErrShortCircuited
			}
			return next(ctx)
		}
	}
}

// attempt carries one executable invocation outcome across goroutines.
type attempt struct {
	value any
	err   error
}

// protect invokes an executable and converts a panic into a *PanicError so
// task-originated failures never unwind engine goroutines.
func protect(ctx context.Context, fn Executable) (value any, err error) {
	defer func() {
		if r := recover(); r != nil {
			value = nil
			err = &PanicError{Value: r}
		}
	}()
	return fn(ctx)
}
