package stagehand

import "fmt"

// Plan is an immutable, ordered collection of tasks to execute.
//
// A plan answers only what should be executed, independent of how or when.
// It preserves task order exactly as given at construction, allows duplicate
// and shared task references, and may be reused across any number of runs;
// each run is independent and produces a new result set. A plan never tracks
// execution progress; the moment it starts caring about scheduling or
// failures it stops being a plan and starts being a runner.
type Plan struct {
	tasks []*Task
}

// emptyPlan is the canonical empty instance returned by EmptyPlan.
var emptyPlan = &Plan{}

// NewPlan creates a plan from the given tasks. The slice is copied
// defensively; nil elements are rejected. An empty argument list is allowed,
// though EmptyPlan is the preferred way to express it. Whether "nothing to
// run" is an error is an execution concern, not a planning concern.
func NewPlan(tasks ...*Task) (*Plan, error) {
	if len(tasks) == 0 {
		return emptyPlan, nil
	}
	copied := make([]*Task, len(tasks))
	for i, task := range tasks {
		if task == nil {
			return nil, fmt.Errorf("plan task at index %d: %w", i, ErrNilTask)
		}
		copied[i] = task
	}
	return &Plan{tasks: copied}, nil
}

// EmptyPlan returns the canonical plan containing no tasks.
func EmptyPlan() *Plan {
	return emptyPlan
}

// Tasks returns the planned tasks in the order they were added. The returned
// slice is a copy; mutating it does not affect the plan.
func (p *Plan) Tasks() []*Task {
	out := make([]*Task, len(p.tasks))
	copy(out, p.tasks)
	return out
}

// Size returns the number of tasks in this plan.
func (p *Plan) Size() int {
	return len(p.tasks)
}

// IsEmpty reports whether this plan contains no tasks.
func (p *Plan) IsEmpty() bool {
	return len(p.tasks) == 0
}
