package parser

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const markdownPlan = `---
plan:
  name: nightly
  defaults:
    timeout: 10m
---

# Nightly checks

Free-form prose is ignored.

## build

- delay: 250ms

` + "```sh\ngo build ./...\n```" + `

## integration

- timeout: 30m
- skip-if-env: SKIP_INTEGRATION
- dir: ./it

` + "```sh\ngo test -tags=integration ./...\n```" + `
`

func TestMarkdownParser_FullPlan(t *testing.T) {
	spec, err := NewMarkdownParser().Parse(strings.NewReader(markdownPlan))
	require.NoError(t, err)

	assert.Equal(t, "nightly", spec.Name)
	assert.Equal(t, 10*time.Minute, spec.Defaults.Timeout)
	require.Len(t, spec.Tasks, 2)

	build := spec.Tasks[0]
	assert.Equal(t, "build", build.Name)
	assert.Equal(t, "go build ./...", build.Command)
	assert.Equal(t, 250*time.Millisecond, build.Delay)

	integration := spec.Tasks[1]
	assert.Equal(t, "integration", integration.Name)
	assert.Equal(t, "go test -tags=integration ./...", integration.Command)
	assert.Equal(t, 30*time.Minute, integration.Timeout)
	assert.Equal(t, "SKIP_INTEGRATION", integration.SkipIfEnv)
	assert.Equal(t, "./it", integration.Dir)
}

func TestMarkdownParser_NoFrontmatter(t *testing.T) {
	input := "## only\n\n```sh\necho hi\n```\n"
	spec, err := NewMarkdownParser().Parse(strings.NewReader(input))
	require.NoError(t, err)

	assert.Empty(t, spec.Name)
	require.Len(t, spec.Tasks, 1)
	assert.Equal(t, "only", spec.Tasks[0].Name)
	assert.Equal(t, "echo hi", spec.Tasks[0].Command)
}

func TestMarkdownParser_UnknownListKeysIgnored(t *testing.T) {
	input := "## t\n\n- owner: qa team\n- timeout: 1m\n\n```sh\ntrue\n```\n"
	spec, err := NewMarkdownParser().Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, spec.Tasks, 1)
	assert.Equal(t, time.Minute, spec.Tasks[0].Timeout)
}

func TestMarkdownParser_BadDurationInList(t *testing.T) {
	input := "## t\n\n- delay: soonish\n\n```sh\ntrue\n```\n"
	_, err := NewMarkdownParser().Parse(strings.NewReader(input))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid delay")
}

func TestMarkdownParser_MalformedFrontmatter(t *testing.T) {
	input := "---\nplan: [\n---\n## t\n\n```sh\ntrue\n```\n"
	_, err := NewMarkdownParser().Parse(strings.NewReader(input))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "frontmatter")
}
