// Package task provides task records, workload files, and the indexed
// priority queue that orders tasks for scheduling.
//
// Tasks carry a numeric priority (higher = more urgent) and are identified
// by a stable ID. The queue pairs a binary max-heap with a position map from
// task ID to heap index, so changing a task's priority or removing it by
// identity costs O(log n) instead of an O(n) scan.
package task

import "cmp"

// Task represents a unit of work competing for scheduler time.
// ID is the task's identity for as long as it is queued. Priority is the
// mutable ordering key. ArrivalTime and Deadline are measured in scheduler
// ticks; Deadline is informational and never affects ordering. Payload is
// opaque and untouched by the heap logic.
type Task struct {
	ID          string `yaml:"id" json:"id"`
	Priority    int    `yaml:"priority" json:"priority"`
	ArrivalTime int    `yaml:"arrival_time" json:"arrival_time"`
	Deadline    *int   `yaml:"deadline,omitempty" json:"deadline,omitempty"`
	Payload     string `yaml:"payload,omitempty" json:"payload,omitempty"`
}

// HasDeadline reports whether the task declares a deadline.
func (t *Task) HasDeadline() bool {
	return t.Deadline != nil
}

// MissedDeadline reports whether execution at the given tick lands after the
// task's deadline. Tasks without a deadline never miss.
func (t *Task) MissedDeadline(tick int) bool {
	return t.Deadline != nil && tick > *t.Deadline
}

// Compare orders tasks by extraction precedence: higher priority first, ties
// broken by earlier arrival, then by smaller ID. The result is negative when
// a runs before b and positive when b runs before a.
func Compare(a, b *Task) int {
	if c := cmp.Compare(b.Priority, a.Priority); c != 0 {
		return c
	}
	if c := cmp.Compare(a.ArrivalTime, b.ArrivalTime); c != 0 {
		return c
	}
	return cmp.Compare(a.ID, b.ID)
}

// Before reports whether a is extracted ahead of b.
func Before(a, b *Task) bool {
	return Compare(a, b) < 0
}

// ValidationError represents a task or workload validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return e.Field + ": " + e.Message
	}
	return e.Message
}
