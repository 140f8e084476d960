package models

import (
	"fmt"
	"time"
)

// TaskSpec describes one task as declared in a plan file.
type TaskSpec struct {
	// Name identifies the task in output. Optional; the runner assigns a
	// generated name when blank.
	Name string
	// Command is the shell command to run. Required.
	Command string
	// Dir is the working directory for the command. Empty means the
	// process's current directory.
	Dir string
	// Delay is an optional pause before the command starts.
	Delay time.Duration
	// Timeout bounds the command's execution time. Zero means unbounded.
	Timeout time.Duration
	// SkipIfEnv names an environment variable; when it is set to a
	// non-empty value the task is short-circuited instead of run.
	SkipIfEnv string
}

// Validate checks that the task spec is well formed.
func (t *TaskSpec) Validate() error {
	if t.Command == "" {
		return fmt.Errorf("task %q: command is required", t.Name)
	}
	if t.Delay < 0 {
		return fmt.Errorf("task %q: delay must not be negative", t.Name)
	}
	if t.Timeout < 0 {
		return fmt.Errorf("task %q: timeout must not be negative", t.Name)
	}
	return nil
}

// Defaults holds plan-level settings applied to tasks that do not set
// their own.
type Defaults struct {
	Delay   time.Duration
	Timeout time.Duration
}

// PlanSpec is a parsed plan file: an ordered list of tasks plus
// plan-level defaults.
type PlanSpec struct {
	Name     string
	Defaults Defaults
	Tasks    []TaskSpec
}

// Validate checks the plan and every task in it.
func (p *PlanSpec) Validate() error {
	if len(p.Tasks) == 0 {
		return fmt.Errorf("plan %q has no tasks", p.Name)
	}
	for i := range p.Tasks {
		if err := p.Tasks[i].Validate(); err != nil {
			return err
		}
	}
	return nil
}

// ApplyDefaults copies plan-level defaults onto tasks that leave the
// corresponding setting unset. Explicit per-task values win.
func (p *PlanSpec) ApplyDefaults() {
	for i := range p.Tasks {
		if p.Tasks[i].Delay == 0 {
			p.Tasks[i].Delay = p.Defaults.Delay
		}
		if p.Tasks[i].Timeout == 0 {
			p.Tasks[i].Timeout = p.Defaults.Timeout
		}
	}
}
