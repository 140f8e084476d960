package cmd

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunCommand_AllTasksPass(t *testing.T) {
	path := writePlan(t, "pass.yaml", `
tasks:
  - name: greet
    command: echo hello
  - name: noop
    command: true
`)

	out, err := execute(t, "run", "--no-color", path)
	require.NoError(t, err)
	assert.Contains(t, out, "✓ greet")
	assert.Contains(t, out, "✓ noop")
	assert.Contains(t, out, "Planned:   2")
	assert.Contains(t, out, "Completed: 2")
	assert.Contains(t, out, "Failed:    0")
}

func TestRunCommand_FailingTaskSetsExitError(t *testing.T) {
	path := writePlan(t, "fail.yaml", `
tasks:
  - name: good
    command: true
  - name: bad
    command: exit 7
`)

	out, err := execute(t, "run", "--no-color", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2 tasks failed")
	assert.Contains(t, out, "✗ bad")
}

func TestRunCommand_FailFastStopsEarly(t *testing.T) {
	path := writePlan(t, "failfast.yaml", `
tasks:
  - name: bad
    command: exit 1
  - name: never
    command: echo reached
`)

	out, err := execute(t, "run", "--no-color", "--fail-fast", path)
	require.Error(t, err)
	assert.Contains(t, out, "✗ bad")
	assert.NotContains(t, out, "never")
	assert.Contains(t, out, "Completed: 1")
}

func TestRunCommand_ConcurrentKeepsPlanOrder(t *testing.T) {
	path := writePlan(t, "concurrent.yaml", `
tasks:
  - name: slow
    command: sleep 0.2
  - name: quick
    command: true
`)

	out, err := execute(t, "run", "--no-color", "--concurrent", path)
	require.NoError(t, err)
	assert.Less(t, strings.Index(out, "✓ slow"), strings.Index(out, "✓ quick"),
		"results print in plan order even when completion order differs")
}

func TestRunCommand_QuietPrintsSummaryOnly(t *testing.T) {
	path := writePlan(t, "quiet.yaml", `
tasks:
  - name: greet
    command: echo hello
`)

	out, err := execute(t, "run", "--no-color", "--quiet", path)
	require.NoError(t, err)
	assert.NotContains(t, out, "✓ greet")
	assert.Contains(t, out, "Completed: 1")
}

func TestRunCommand_ConfigFileSetsFailFast(t *testing.T) {
	path := writePlan(t, "cfg.yaml", `
tasks:
  - name: bad
    command: exit 1
  - name: after
    command: echo reached
`)
	cfgPath := writePlan(t, "config.yaml", "fail_fast: true\n")

	out, err := execute(t, "run", "--no-color", "--config", cfgPath, path)
	require.Error(t, err)
	assert.NotContains(t, out, "after")
	assert.Contains(t, out, "Completed: 1")
}
