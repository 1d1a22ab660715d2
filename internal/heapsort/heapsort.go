// Package heapsort implements an in-place comparison sort built on a binary
// max-heap.
//
// The sort runs in two phases: a bottom-up build of the max-heap over the
// full slice, then repeated extraction of the root into the shrinking tail
// until the active region is a single element. The tree relation is purely
// index-derived: for index i, the children live at 2i+1 and 2i+2 and the
// parent at (i-1)/2. Build is O(n), extraction is O(n log n).
package heapsort

import (
	"cmp"
	"fmt"
)

// ComparisonError reports an element that is not ordered with respect to
// itself, which makes a total ordering of the input impossible. Among the
// types cmp.Ordered admits, the only such value is a floating-point NaN.
type ComparisonError struct {
	Index int
}

func (e *ComparisonError) Error() string {
	return fmt.Sprintf("element at index %d is not comparable", e.Index)
}

// Sort sorts items in place into ascending order.
// It returns a *ComparisonError if the input contains an incomparable
// element; the check runs before any element is moved, so on error the
// input is unchanged. Equal keys are handled without assuming strict
// ordering, and the ordering is not stable.
func Sort[T cmp.Ordered](items []T) error {
	if err := checkComparable(items); err != nil {
		return err
	}

	n := len(items)
	if n <= 1 {
		return nil
	}

	buildMaxHeap(items)

	// Repeatedly move the max to the boundary and re-heap the rest.
	for end := n - 1; end > 0; end-- {
		items[0], items[end] = items[end], items[0]
		siftDown(items, 0, end)
	}

	return nil
}

// Sorted returns a sorted copy of items, leaving the input untouched.
func Sorted[T cmp.Ordered](items []T) ([]T, error) {
	out := make([]T, len(items))
	copy(out, items)
	if err := Sort(out); err != nil {
		return nil, err
	}
	return out, nil
}

// checkComparable rejects values that do not equal themselves. IEEE-754 NaN
// is the only such value for the ordered kinds.
func checkComparable[T cmp.Ordered](items []T) error {
	for i, v := range items {
		if v != v {
			return &ComparisonError{Index: i}
		}
	}
	return nil
}

// buildMaxHeap establishes the heap property bottom-up, sifting down from
// the last parent (n/2 - 1) to the root. Nodes at height h cost O(h) and
// there are n/2^(h+1) of them, so the total work is O(n).
func buildMaxHeap[T cmp.Ordered](items []T) {
	n := len(items)
	for i := n/2 - 1; i >= 0; i-- {
		siftDown(items, i, n)
	}
}

// siftDown pushes the element at root toward the leaves until no child
// within [0, end) is larger. end is exclusive.
func siftDown[T cmp.Ordered](items []T, root, end int) {
	for {
		child := 2*root + 1
		if child >= end {
			return
		}
		if right := child + 1; right < end && items[right] > items[child] {
			child = right
		}
		if items[child] <= items[root] {
			return
		}
		items[root], items[child] = items[child], items[root]
		root = child
	}
}
