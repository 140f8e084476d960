package stagehand

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sleepTask(t *testing.T, id string, d time.Duration, value any) *Task {
	t.Helper()
	task, err := NewTask(id, func(ctx context.Context) (any, error) {
		select {
		case <-time.After(d):
			return value, nil
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}).Build()
	require.NoError(t, err)
	return task
}

// End to end: plan order is restored no matter which task physically
// finishes first.
func TestConcurrent_ResultsOrderedByPlanPosition(t *testing.T) {
	boom := errors.New("boom")
	a := sleepTask(t, "a", 10*time.Millisecond, "ok")
	b, err := NewTask("b", failTask(boom)).Build()
	require.NoError(t, err)
	c := sleepTask(t, "c", 10*time.Millisecond, "ok")

	plan, err := NewPlan(a, b, c)
	require.NoError(t, err)

	results, err := NewConcurrentRunner(PolicyStandard).Run(context.Background(), plan)
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, "a", results[0].Task().ID())
	assert.Equal(t, "b", results[1].Task().ID())
	assert.Equal(t, "c", results[2].Task().ID())

	assert.True(t, results[0].Success())
	assert.Equal(t, "ok", results[0].Value())
	assert.ErrorIs(t, results[1].Err(), boom)
	assert.True(t, results[2].Success())
	assert.Equal(t, "ok", results[2].Value())
}

func TestConcurrent_StandardAlwaysReturnsFullPlan(t *testing.T) {
	var tasks []*Task
	for _, id := range []string{"t0", "t1", "t2", "t3", "t4", "t5", "t6", "t7"} {
		delay := time.Duration(len(tasks)%3) * 5 * time.Millisecond
		tasks = append(tasks, sleepTask(t, id, delay, id))
	}

	results, err := NewConcurrentRunner(PolicyStandard).RunTasks(context.Background(), tasks...)
	require.NoError(t, err)
	require.Len(t, results, len(tasks))
	for i, result := range results {
		assert.Equal(t, tasks[i].ID(), result.Task().ID())
		assert.True(t, result.Success())
	}
}

func TestConcurrent_FailFastReturnsSubsetInAscendingOrder(t *testing.T) {
	boom := errors.New("boom")
	failing, err := NewTask("failing", failTask(boom)).Build()
	require.NoError(t, err)

	// The trailing tasks park until canceled, so their outcomes can only be
	// discarded, never collected before the failure.
	plan, err := NewPlan(
		failing,
		sleepTask(t, "slow-1", 5*time.Second, nil),
		sleepTask(t, "slow-2", 5*time.Second, nil),
		sleepTask(t, "slow-3", 5*time.Second, nil),
	)
	require.NoError(t, err)

	start := time.Now()
	results, err := NewConcurrentRunner(PolicyFailFast).Run(context.Background(), plan)
	require.NoError(t, err)
	assert.Less(t, time.Since(start), time.Second, "fail-fast must not wait for parked tasks")

	require.NotEmpty(t, results)
	assert.LessOrEqual(t, len(results), plan.Size())

	// The failing result is present and positions ascend in plan order.
	positions := make([]int, 0, len(results))
	byID := map[string]int{"failing": 0, "slow-1": 1, "slow-2": 2, "slow-3": 3}
	sawFailure := false
	for _, result := range results {
		positions = append(positions, byID[result.Task().ID()])
		if !result.Success() {
			sawFailure = true
			assert.ErrorIs(t, result.Err(), boom)
		}
	}
	assert.True(t, sawFailure)
	assert.True(t, sort.IntsAreSorted(positions), "results must ascend by plan position: %v", positions)
}

func TestConcurrent_OrchestratorCancellationIsARunError(t *testing.T) {
	release := make(chan struct{})
	defer close(release)

	parked, err := NewTask("parked", func(ctx context.Context) (any, error) {
		<-release
		return nil, nil
	}).Build()
	require.NoError(t, err)

	plan, err := NewPlan(sleepTask(t, "quick", time.Millisecond, "ok"), parked)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	results, err := NewConcurrentRunner(PolicyStandard).Run(ctx, plan)
	assert.Nil(t, results)
	require.Error(t, err)

	var re *RunError
	require.ErrorAs(t, err, &re)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Contains(t, re.Completed, "quick", "the run error enumerates completed tasks for diagnostics")
	assert.Contains(t, re.Error(), "quick")
}

func TestConcurrent_EmptyPlan(t *testing.T) {
	results, err := NewConcurrentRunner(PolicyFailFast).Run(context.Background(), EmptyPlan())
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestConcurrent_TaskFailuresNeverEscape(t *testing.T) {
	panicking, err := NewTask("panics", func(ctx context.Context) (any, error) {
		panic("kaboom")
	}).Build()
	require.NoError(t, err)

	results, err := NewConcurrentRunner(PolicyStandard).
		RunTasks(context.Background(), panicking, buildTask(t, "fine"))
	require.NoError(t, err)
	require.Len(t, results, 2)

	var pe *PanicError
	require.ErrorAs(t, results[0].Err(), &pe)
	assert.True(t, results[1].Success())
}

func TestConcurrent_PlanReusableAndSharedAcrossRuns(t *testing.T) {
	plan, err := NewPlan(
		sleepTask(t, "a", time.Millisecond, "a"),
		sleepTask(t, "b", time.Millisecond, "b"),
	)
	require.NoError(t, err)

	runner := NewConcurrentRunner(PolicyStandard)
	done := make(chan error, 2)
	for i := 0; i < 2; i++ {
		go func() {
			results, err := runner.Run(context.Background(), plan)
			if err == nil && len(results) != 2 {
				err = errors.New("unexpected result count")
			}
			done <- err
		}()
	}
	for i := 0; i < 2; i++ {
		require.NoError(t, <-done)
	}
}
