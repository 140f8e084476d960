// Package ident generates stable identifiers for runs and unnamed tasks.
package ident

import (
	"fmt"

	"github.com/google/uuid"
)

// NewRunID returns a unique identifier for a single execution run.
func NewRunID() string {
	return uuid.New().String()
}

// TaskID returns a generated identifier for a task that has no name of its
// own, keyed by its position in the plan so the id stays readable.
func TaskID(position int) string {
	return fmt.Sprintf("task-%d-%s", position+1, uuid.New().String()[:8])
}
