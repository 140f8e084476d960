// Package stagehand is a deterministic task execution engine for test
// automation.
//
// Callers define named tasks through a single-use builder, attach
// execution-control decorators (delay, timeout, short-circuit, or arbitrary
// custom wrappers), group tasks into an immutable Plan, and hand the plan to
// a Runner. Runners execute either synchronously on the calling goroutine or
// concurrently on a worker pool, and always return results in plan order
// regardless of completion order.
//
// Failures are split into three kinds: task failures are captured in the
// task's Result and never escape a run; infrastructure failures abort the
// run and are returned as a *RunError; configuration mistakes are reported
// before any execution starts. Cancellation is always advisory: the engine
// signals a task's context but never terminates work that ignores it.
package stagehand
