package sched

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/akeeley/heapsched/internal/task"
)

// Entry records one task execution.
type Entry struct {
	// Tick is the clock value the task executed at
	Tick int `json:"tick"`

	// Task is the executed record
	Task *task.Task `json:"task"`

	// Waited is how many ticks the task spent queued before executing
	Waited int `json:"waited"`
}

// Trace is the ordered record of a whole run: one entry per task, in
// non-decreasing tick order.
type Trace []Entry

// TraceStats summarizes a trace for reporting.
type TraceStats struct {
	// Executed is the number of recorded executions
	Executed int `json:"executed"`

	// Missed counts executions that landed after the task's deadline
	Missed int `json:"missed"`

	// FinalTick is the tick of the last execution
	FinalTick int `json:"final_tick"`

	// TotalWait is the sum of queue waits across executions
	TotalWait int `json:"total_wait"`

	// MaxWait is the longest single queue wait
	MaxWait int `json:"max_wait"`
}

// Stats aggregates the trace in one pass.
func (tr Trace) Stats() *TraceStats {
	stats := &TraceStats{}
	for _, e := range tr {
		stats.Executed++
		if e.Task.MissedDeadline(e.Tick) {
			stats.Missed++
		}
		stats.TotalWait += e.Waited
		if e.Waited > stats.MaxWait {
			stats.MaxWait = e.Waited
		}
		stats.FinalTick = e.Tick
	}
	return stats
}

// AvgWait returns the mean queue wait across executions.
func (s *TraceStats) AvgWait() float64 {
	if s.Executed == 0 {
		return 0
	}
	return float64(s.TotalWait) / float64(s.Executed)
}

// WriteFile writes the trace to path as indented JSON atomically.
func (tr Trace) WriteFile(path string) error {
	data, err := json.MarshalIndent(tr, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal trace: %w", err)
	}

	dir := filepath.Dir(path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("create trace directory: %w", err)
		}
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0600); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("rename temp file: %w", err)
	}

	return nil
}
