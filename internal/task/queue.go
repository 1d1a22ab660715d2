package task

import (
	"errors"
	"fmt"
)

// ErrEmptyQueue is returned by ExtractMax and PeekMax when the queue holds
// no tasks.
var ErrEmptyQueue = errors.New("queue is empty")

// DuplicateIDError reports an Insert whose task ID is already queued.
type DuplicateIDError struct {
	ID string
}

func (e *DuplicateIDError) Error() string {
	return fmt.Sprintf("task %q is already in the queue", e.ID)
}

// UnknownIDError reports a key change or removal naming a task that is not
// in the queue.
type UnknownIDError struct {
	ID string
}

func (e *UnknownIDError) Error() string {
	return fmt.Sprintf("task %q is not in the queue", e.ID)
}

// InvalidKeyChangeError reports a key change whose direction contradicts the
// operation that was called. The queue rejects the change instead of
// redirecting it to the other operation.
type InvalidKeyChangeError struct {
	ID        string
	Op        string // "increase" or "decrease"
	Current   int
	Requested int
}

func (e *InvalidKeyChangeError) Error() string {
	return fmt.Sprintf("cannot %s priority of task %q from %d to %d",
		e.Op, e.ID, e.Current, e.Requested)
}

// Queue is a max-heap priority queue over task records, indexed by task ID.
//
// Alongside the heap array the queue keeps a map from task ID to heap index.
// Both are rewritten by the same swap whenever records move, so the map is
// never out of sync with the array between operations. The tree relation is
// index-derived: children of i live at 2i+1 and 2i+2, the parent at (i-1)/2.
//
// The queue is not safe for concurrent use; callers that share one across
// goroutines must serialize access themselves.
type Queue struct {
	heap []*Task
	pos  map[string]int // task ID -> index into heap
}

// NewQueue creates an empty queue.
func NewQueue() *Queue {
	return &Queue{
		pos: make(map[string]int),
	}
}

// Len returns the number of queued tasks.
func (q *Queue) Len() int {
	return len(q.heap)
}

// IsEmpty reports whether the queue holds no tasks.
func (q *Queue) IsEmpty() bool {
	return len(q.heap) == 0
}

// Contains reports whether a task with the given ID is queued.
func (q *Queue) Contains(id string) bool {
	_, ok := q.pos[id]
	return ok
}

// Insert adds a task to the queue.
// Returns a *DuplicateIDError if a task with the same ID is already queued;
// the queue is unchanged on error.
func (q *Queue) Insert(t *Task) error {
	if t == nil {
		return fmt.Errorf("task is nil")
	}
	if t.ID == "" {
		return &ValidationError{Field: "id", Message: "is required"}
	}
	if _, ok := q.pos[t.ID]; ok {
		return &DuplicateIDError{ID: t.ID}
	}

	q.heap = append(q.heap, t)
	q.pos[t.ID] = len(q.heap) - 1
	q.siftUp(len(q.heap) - 1)
	return nil
}

// PeekMax returns the task ExtractMax would return, without removing it.
// Returns ErrEmptyQueue if the queue is empty.
func (q *Queue) PeekMax() (*Task, error) {
	if len(q.heap) == 0 {
		return nil, ErrEmptyQueue
	}
	return q.heap[0], nil
}

// ExtractMax removes and returns the task that precedes all others. The last
// record takes the root's slot and sifts down to its place.
// Returns ErrEmptyQueue if the queue is empty.
func (q *Queue) ExtractMax() (*Task, error) {
	if len(q.heap) == 0 {
		return nil, ErrEmptyQueue
	}

	top := q.heap[0]
	delete(q.pos, top.ID)

	last := len(q.heap) - 1
	moved := q.heap[last]
	q.heap[last] = nil // release the slot
	q.heap = q.heap[:last]

	if last > 0 {
		q.heap[0] = moved
		q.pos[moved.ID] = 0
		q.siftDown(0)
	}

	return top, nil
}

// IncreaseKey raises the priority of the task with the given ID to
// newPriority and restores the heap ordering from its position upward.
// Returns a *UnknownIDError if the ID is not queued, or a
// *InvalidKeyChangeError if newPriority is below the current priority; the
// queue is unchanged on error.
func (q *Queue) IncreaseKey(id string, newPriority int) error {
	i, ok := q.pos[id]
	if !ok {
		return &UnknownIDError{ID: id}
	}
	if newPriority < q.heap[i].Priority {
		return &InvalidKeyChangeError{
			ID:        id,
			Op:        "increase",
			Current:   q.heap[i].Priority,
			Requested: newPriority,
		}
	}

	q.heap[i].Priority = newPriority
	q.siftUp(i)
	return nil
}

// DecreaseKey lowers the priority of the task with the given ID to
// newPriority and restores the heap ordering from its position downward.
// Returns a *UnknownIDError if the ID is not queued, or a
// *InvalidKeyChangeError if newPriority is above the current priority; the
// queue is unchanged on error.
func (q *Queue) DecreaseKey(id string, newPriority int) error {
	i, ok := q.pos[id]
	if !ok {
		return &UnknownIDError{ID: id}
	}
	if newPriority > q.heap[i].Priority {
		return &InvalidKeyChangeError{
			ID:        id,
			Op:        "decrease",
			Current:   q.heap[i].Priority,
			Requested: newPriority,
		}
	}

	q.heap[i].Priority = newPriority
	q.siftDown(i)
	return nil
}

// Remove takes the task with the given ID out of the queue regardless of its
// position and returns it. The last record takes the vacated slot and is
// sifted in whichever direction its priority requires.
// Returns a *UnknownIDError if the ID is not queued.
func (q *Queue) Remove(id string) (*Task, error) {
	i, ok := q.pos[id]
	if !ok {
		return nil, &UnknownIDError{ID: id}
	}

	removed := q.heap[i]
	delete(q.pos, id)

	last := len(q.heap) - 1
	moved := q.heap[last]
	q.heap[last] = nil
	q.heap = q.heap[:last]

	if i < last {
		q.heap[i] = moved
		q.pos[moved.ID] = i
		if !q.siftDown(i) {
			q.siftUp(i)
		}
	}

	return removed, nil
}

// Clear empties the queue.
func (q *Queue) Clear() {
	q.heap = nil
	q.pos = make(map[string]int)
}

// Snapshot returns the queued tasks in heap-array order. The slice is a
// copy; the records are shared.
func (q *Queue) Snapshot() []*Task {
	out := make([]*Task, len(q.heap))
	copy(out, q.heap)
	return out
}

// swap exchanges the records at heap indexes i and j and rewrites both
// position-map entries in the same step. Every structural move in the queue
// goes through here.
func (q *Queue) swap(i, j int) {
	q.heap[i], q.heap[j] = q.heap[j], q.heap[i]
	q.pos[q.heap[i].ID] = i
	q.pos[q.heap[j].ID] = j
}

// siftUp moves the record at index i toward the root until its parent
// precedes it.
func (q *Queue) siftUp(i int) {
	for i > 0 {
		parent := (i - 1) / 2
		if !Before(q.heap[i], q.heap[parent]) {
			break
		}
		q.swap(i, parent)
		i = parent
	}
}

// siftDown moves the record at index i toward the leaves, swapping with the
// earlier-extracted child until neither child precedes it. It reports
// whether the record moved.
func (q *Queue) siftDown(i int) bool {
	start := i
	n := len(q.heap)
	for {
		child := 2*i + 1
		if child >= n {
			break
		}
		if right := child + 1; right < n && Before(q.heap[right], q.heap[child]) {
			child = right
		}
		if !Before(q.heap[child], q.heap[i]) {
			break
		}
		q.swap(i, child)
		i = child
	}
	return i != start
}
