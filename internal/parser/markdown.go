package parser

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
	"gopkg.in/yaml.v3"

	"github.com/harrison/stagehand/internal/models"
)

// MarkdownParser parses Markdown plan files.
//
// An optional YAML frontmatter block sets the plan name and defaults. Each
// level-2 heading starts a task named by the heading text; the first fenced
// code block under the heading is the task's command, and `key: value` list
// items set per-task settings (delay, timeout, skip-if-env, dir).
type MarkdownParser struct {
	markdown goldmark.Markdown
}

// NewMarkdownParser creates a new Markdown plan parser
func NewMarkdownParser() *MarkdownParser {
	return &MarkdownParser{
		markdown: goldmark.New(),
	}
}

// frontmatter mirrors the optional YAML block at the top of a plan file.
type frontmatter struct {
	Plan struct {
		Name     string `yaml:"name"`
		Defaults struct {
			Delay   string `yaml:"delay"`
			Timeout string `yaml:"timeout"`
		} `yaml:"defaults"`
	} `yaml:"plan"`
}

// Parse reads a Markdown plan document into a PlanSpec.
func (p *MarkdownParser) Parse(r io.Reader) (*models.PlanSpec, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read content: %w", err)
	}

	spec := &models.PlanSpec{}
	content, fm := extractFrontmatter(content)
	if fm != nil {
		if err := applyFrontmatter(fm, spec); err != nil {
			return nil, fmt.Errorf("failed to parse frontmatter: %w", err)
		}
	}

	doc := p.markdown.Parser().Parse(text.NewReader(content))
	tasks, err := extractTasks(doc, content)
	if err != nil {
		return nil, err
	}
	spec.Tasks = tasks
	return spec, nil
}

// extractFrontmatter splits an optional leading "---" delimited YAML block
// from the document body. Returns the body and the frontmatter bytes (nil
// when absent).
func extractFrontmatter(content []byte) (body, fm []byte) {
	if !bytes.HasPrefix(content, []byte("---\n")) && !bytes.HasPrefix(content, []byte("---\r\n")) {
		return content, nil
	}
	rest := content[bytes.IndexByte(content, '\n')+1:]
	end := bytes.Index(rest, []byte("\n---"))
	if end < 0 {
		return content, nil
	}
	fm = rest[:end]
	body = rest[end+len("\n---"):]
	return body, fm
}

func applyFrontmatter(fm []byte, spec *models.PlanSpec) error {
	var parsed frontmatter
	if err := yaml.Unmarshal(fm, &parsed); err != nil {
		return err
	}
	spec.Name = parsed.Plan.Name
	var err error
	if spec.Defaults.Delay, err = parseDuration("default delay", parsed.Plan.Defaults.Delay); err != nil {
		return err
	}
	if spec.Defaults.Timeout, err = parseDuration("default timeout", parsed.Plan.Defaults.Timeout); err != nil {
		return err
	}
	return nil
}

// extractTasks walks the document AST collecting one task per level-2
// heading.
func extractTasks(doc ast.Node, source []byte) ([]models.TaskSpec, error) {
	var tasks []models.TaskSpec
	var current *models.TaskSpec
	var walkErr error

	err := ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch node := n.(type) {
		case *ast.Heading:
			if node.Level != 2 {
				return ast.WalkContinue, nil
			}
			if current != nil {
				tasks = append(tasks, *current)
			}
			current = &models.TaskSpec{Name: extractText(node, source)}

		case *ast.FencedCodeBlock:
			if current != nil && current.Command == "" {
				current.Command = strings.TrimRight(extractLines(node, source), "\n")
			}

		case *ast.ListItem:
			if current == nil {
				return ast.WalkContinue, nil
			}
			if err := applySetting(current, extractText(node, source)); err != nil {
				walkErr = err
				return ast.WalkStop, nil
			}
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		return nil, err
	}
	if walkErr != nil {
		return nil, walkErr
	}
	if current != nil {
		tasks = append(tasks, *current)
	}
	return tasks, nil
}

// applySetting parses a "key: value" list item into a task setting. Unknown
// keys are ignored so plans can carry free-form notes.
func applySetting(task *models.TaskSpec, item string) error {
	key, value, found := strings.Cut(item, ":")
	if !found {
		return nil
	}
	key = strings.ToLower(strings.TrimSpace(key))
	value = strings.TrimSpace(value)

	var err error
	switch key {
	case "delay":
		task.Delay, err = parseDuration("delay", value)
	case "timeout":
		task.Timeout, err = parseDuration("timeout", value)
	case "skip-if-env", "skip_if_env":
		task.SkipIfEnv = value
	case "dir":
		task.Dir = value
	}
	if err != nil {
		return fmt.Errorf("task %q: %w", task.Name, err)
	}
	return nil
}

// extractText collects the raw text of a node's inline children.
func extractText(n ast.Node, source []byte) string {
	var sb strings.Builder
	var walk func(ast.Node)
	walk = func(node ast.Node) {
		for c := node.FirstChild(); c != nil; c = c.NextSibling() {
			if txt, ok := c.(*ast.Text); ok {
				sb.Write(txt.Segment.Value(source))
				continue
			}
			walk(c)
		}
	}
	walk(n)
	return strings.TrimSpace(sb.String())
}

// extractLines collects the raw lines of a block node.
func extractLines(n ast.Node, source []byte) string {
	var sb strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		segment := lines.At(i)
		sb.Write(segment.Value(source))
	}
	return sb.String()
}
