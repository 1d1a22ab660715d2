// Package sched runs task workloads against the indexed priority queue on a
// discrete clock.
//
// Time advances in integer ticks. At each tick the scheduler inserts every
// task whose arrival time has come, then extracts and executes exactly one
// task. The run ends when no arrivals remain and the queue is empty, so each
// task executes exactly once. Idle stretches are skipped: when the queue is
// empty the clock jumps straight to the next arrival, which leaves the trace
// unchanged.
package sched

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/akeeley/heapsched/internal/task"
)

// ErrMaxTicks reports a run stopped by the safety cap before it drained.
var ErrMaxTicks = errors.New("max ticks exceeded")

// StepResult describes one eventful tick.
type StepResult struct {
	// Tick is the clock value the step ran at
	Tick int

	// Arrived lists the tasks inserted at this tick, in workload order
	Arrived []*task.Task

	// Executed is the execution recorded at this tick
	Executed Entry

	// Pending is the number of queued tasks after the step
	Pending int
}

// Scheduler drives a workload to completion one tick at a time.
// It is not safe for concurrent use.
type Scheduler struct {
	queue    *task.Queue
	arrivals map[int][]*task.Task
	ticks    []int // sorted keys of arrivals, consumed in order
	nextIdx  int
	clock    int
	total    int
	maxTicks int
	trace    Trace
	done     bool
	err      error
}

// New builds a scheduler over the given tasks. maxTicks caps the clock as a
// safety limit; 0 means no cap.
func New(tasks []*task.Task, maxTicks int) *Scheduler {
	arrivals := make(map[int][]*task.Task)
	for _, rec := range tasks {
		arrivals[rec.ArrivalTime] = append(arrivals[rec.ArrivalTime], rec)
	}

	ticks := make([]int, 0, len(arrivals))
	for t := range arrivals {
		ticks = append(ticks, t)
	}
	slices.Sort(ticks)

	return &Scheduler{
		queue:    task.NewQueue(),
		arrivals: arrivals,
		ticks:    ticks,
		total:    len(tasks),
		maxTicks: maxTicks,
		trace:    Trace{},
	}
}

// Step advances the clock to the next eventful tick: due arrivals are
// inserted, then one task is extracted and executed. It returns false when
// the run is over; Err reports whether it ended early.
func (s *Scheduler) Step() (StepResult, bool) {
	if s.done {
		return StepResult{}, false
	}

	// Jump over idle time when nothing is queued.
	if s.queue.IsEmpty() {
		if s.nextIdx >= len(s.ticks) {
			s.done = true
			return StepResult{}, false
		}
		if next := s.ticks[s.nextIdx]; next > s.clock {
			s.clock = next
		}
	}

	if s.maxTicks > 0 && s.clock >= s.maxTicks {
		s.fail(fmt.Errorf("clock reached %d with %d tasks left: %w",
			s.clock, s.total-len(s.trace), ErrMaxTicks))
		return StepResult{}, false
	}

	res := StepResult{Tick: s.clock}

	for s.nextIdx < len(s.ticks) && s.ticks[s.nextIdx] <= s.clock {
		group := s.arrivals[s.ticks[s.nextIdx]]
		for _, rec := range group {
			if err := s.queue.Insert(rec); err != nil {
				s.fail(fmt.Errorf("insert %s at tick %d: %w", rec.ID, s.clock, err))
				return StepResult{}, false
			}
			slog.Debug("task arrived",
				"id", rec.ID, "priority", rec.Priority, "tick", s.clock)
		}
		res.Arrived = append(res.Arrived, group...)
		s.nextIdx++
	}

	top, err := s.queue.ExtractMax()
	if err != nil {
		// A step only runs with work queued or arrivals due.
		s.fail(fmt.Errorf("extract at tick %d: %w", s.clock, err))
		return StepResult{}, false
	}

	entry := Entry{Tick: s.clock, Task: top, Waited: s.clock - top.ArrivalTime}
	s.trace = append(s.trace, entry)
	res.Executed = entry
	res.Pending = s.queue.Len()

	slog.Debug("task executed",
		"id", top.ID, "priority", top.Priority, "tick", s.clock, "waited", entry.Waited)

	s.clock++
	return res, true
}

// Run drives Step until the workload drains and returns the trace. On error
// the trace covers the steps completed before the failure.
func (s *Scheduler) Run() (Trace, error) {
	for {
		if _, ok := s.Step(); !ok {
			break
		}
	}
	if s.err != nil {
		return s.trace, s.err
	}

	stats := s.trace.Stats()
	slog.Info("schedule complete",
		"tasks", stats.Executed, "final_tick", stats.FinalTick, "missed_deadlines", stats.Missed)
	return s.trace, nil
}

func (s *Scheduler) fail(err error) {
	s.err = err
	s.done = true
}

// Done reports whether the run is over.
func (s *Scheduler) Done() bool {
	return s.done
}

// Err returns the error that stopped the run early, if any.
func (s *Scheduler) Err() error {
	return s.err
}

// Clock returns the current tick.
func (s *Scheduler) Clock() int {
	return s.clock
}

// Total returns the number of tasks the scheduler was built with.
func (s *Scheduler) Total() int {
	return s.total
}

// Trace returns the executions recorded so far. The slice is live; callers
// must not modify it.
func (s *Scheduler) Trace() Trace {
	return s.trace
}

// Pending returns the queued tasks in heap order.
func (s *Scheduler) Pending() []*task.Task {
	return s.queue.Snapshot()
}
