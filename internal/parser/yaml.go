package parser

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/harrison/stagehand/internal/models"
)

// YAMLParser parses YAML plan files.
//
// Expected shape:
//
//	plan:
//	  name: smoke
//	  defaults:
//	    timeout: 2m
//	tasks:
//	  - name: build
//	    command: go build ./...
//	    delay: 500ms
//	    timeout: 5m
//	    skip_if_env: SKIP_BUILD
type YAMLParser struct{}

// NewYAMLParser creates a new YAML plan parser
func NewYAMLParser() *YAMLParser {
	return &YAMLParser{}
}

// yamlPlan mirrors the plan-file shape with string durations, converted
// after decoding.
type yamlPlan struct {
	Plan struct {
		Name     string `yaml:"name"`
		Defaults struct {
			Delay   string `yaml:"delay"`
			Timeout string `yaml:"timeout"`
		} `yaml:"defaults"`
	} `yaml:"plan"`
	Tasks []yamlTask `yaml:"tasks"`
}

type yamlTask struct {
	Name      string `yaml:"name"`
	Command   string `yaml:"command"`
	Dir       string `yaml:"dir"`
	Delay     string `yaml:"delay"`
	Timeout   string `yaml:"timeout"`
	SkipIfEnv string `yaml:"skip_if_env"`
}

// Parse decodes a YAML plan document into a PlanSpec.
func (p *YAMLParser) Parse(r io.Reader) (*models.PlanSpec, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read content: %w", err)
	}

	var raw yamlPlan
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	spec := &models.PlanSpec{Name: raw.Plan.Name}
	if spec.Defaults.Delay, err = parseDuration("default delay", raw.Plan.Defaults.Delay); err != nil {
		return nil, err
	}
	if spec.Defaults.Timeout, err = parseDuration("default timeout", raw.Plan.Defaults.Timeout); err != nil {
		return nil, err
	}

	for i, rt := range raw.Tasks {
		task := models.TaskSpec{
			Name:      rt.Name,
			Command:   rt.Command,
			Dir:       rt.Dir,
			SkipIfEnv: rt.SkipIfEnv,
		}
		if task.Delay, err = parseDuration("delay", rt.Delay); err != nil {
			return nil, fmt.Errorf("task %d: %w", i+1, err)
		}
		if task.Timeout, err = parseDuration("timeout", rt.Timeout); err != nil {
			return nil, fmt.Errorf("task %d: %w", i+1, err)
		}
		spec.Tasks = append(spec.Tasks, task)
	}
	return spec, nil
}
