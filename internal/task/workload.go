package task

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// WorkloadVersion is the workload file format version this build reads.
const WorkloadVersion = 1

// Workload is a named batch of task records fed to the scheduler.
// Workload files are YAML documents with a version header, an optional name,
// and a list of tasks.
type Workload struct {
	Version int     `yaml:"version" json:"version"`
	Name    string  `yaml:"name,omitempty" json:"name,omitempty"`
	Tasks   []*Task `yaml:"tasks" json:"tasks"`
}

// ParseWorkloadFile reads and parses a workload file from disk.
func ParseWorkloadFile(path string) (*Workload, error) {
	content, err := os.ReadFile(path) // #nosec G304 - path is supplied by the user on the command line
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	return ParseWorkload(content)
}

// ParseWorkload parses YAML workload content and validates it.
func ParseWorkload(content []byte) (*Workload, error) {
	var w Workload
	if err := yaml.Unmarshal(content, &w); err != nil {
		return nil, fmt.Errorf("parse workload: %w", err)
	}

	if err := w.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	return &w, nil
}

// Validate checks the workload header and every task record.
// A missing version defaults to the current format. Task IDs must be unique
// within the workload, since the scheduler inserts every record into a
// single queue.
func (w *Workload) Validate() error {
	// Default version if empty
	if w.Version == 0 {
		w.Version = WorkloadVersion
	}

	if w.Version != WorkloadVersion {
		return &ValidationError{
			Field:   "version",
			Message: fmt.Sprintf("unsupported value %d: this build reads version %d", w.Version, WorkloadVersion),
		}
	}

	if len(w.Tasks) == 0 {
		return &ValidationError{
			Field:   "tasks",
			Message: "must list at least one task",
		}
	}

	seen := make(map[string]int, len(w.Tasks))
	for i, t := range w.Tasks {
		if err := validateTask(i, t); err != nil {
			return err
		}
		if prev, ok := seen[t.ID]; ok {
			return &ValidationError{
				Field:   fmt.Sprintf("tasks[%d].id", i),
				Message: fmt.Sprintf("%q already used by tasks[%d]", t.ID, prev),
			}
		}
		seen[t.ID] = i
	}

	return nil
}

// validateTask checks required fields and values for a single record.
func validateTask(i int, t *Task) error {
	if t == nil {
		return &ValidationError{
			Field:   fmt.Sprintf("tasks[%d]", i),
			Message: "task is null",
		}
	}

	if t.ID == "" {
		return &ValidationError{
			Field:   fmt.Sprintf("tasks[%d].id", i),
			Message: "is required",
		}
	}

	if t.ArrivalTime < 0 {
		return &ValidationError{
			Field:   fmt.Sprintf("tasks[%d].arrival_time", i),
			Message: fmt.Sprintf("must not be negative (got %d)", t.ArrivalTime),
		}
	}

	if t.Deadline != nil && *t.Deadline < t.ArrivalTime {
		return &ValidationError{
			Field:   fmt.Sprintf("tasks[%d].deadline", i),
			Message: fmt.Sprintf("%d is before arrival time %d", *t.Deadline, t.ArrivalTime),
		}
	}

	return nil
}

// WriteWorkloadFile writes the workload to path as YAML.
func WriteWorkloadFile(w *Workload, path string) error {
	content, err := SerializeWorkload(w)
	if err != nil {
		return err
	}

	return os.WriteFile(path, []byte(content), 0600)
}

// SerializeWorkload returns the workload as a YAML document.
func SerializeWorkload(w *Workload) (string, error) {
	if w == nil {
		return "", fmt.Errorf("workload is nil")
	}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(w); err != nil {
		return "", fmt.Errorf("marshal workload: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return "", fmt.Errorf("close encoder: %w", err)
	}

	return buf.String(), nil
}
