// Package bench compares the heap sort against textbook alternatives on
// generated datasets.
//
// The harness is measurement scaffolding around a plain sort interface: it
// generates data in several shapes, times each algorithm over repeated
// trials, and reports the median. It shares no state with the heap
// structures it measures.
package bench

import (
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/akeeley/heapsched/internal/heapsort"
)

// DefaultTrials is how many times each measurement repeats; the median is
// reported.
const DefaultTrials = 7

// DefaultSizes returns the input sizes a bare run measures.
func DefaultSizes() []int {
	return []int{1_000, 5_000, 10_000, 20_000}
}

// SortFunc sorts into a new slice, leaving its input untouched.
type SortFunc func([]int) ([]int, error)

// Algorithm pairs a display name with the sort under measurement.
type Algorithm struct {
	Name string
	Fn   SortFunc
}

// Algorithms returns the sorts under comparison, heap sort first.
func Algorithms() []Algorithm {
	return []Algorithm{
		{Name: "Heapsort", Fn: heapsort.Sorted[int]},
		{Name: "Quicksort (rand)", Fn: func(a []int) ([]int, error) { return QuickSort(a), nil }},
		{Name: "Merge Sort", Fn: func(a []int) ([]int, error) { return MergeSort(a), nil }},
	}
}

// Measure times fn on fresh copies of data and returns the median wall-clock
// milliseconds over the given number of trials. Every trial's output is
// checked against the standard library sort; a wrong or failed sort aborts
// the measurement.
func Measure(fn SortFunc, data []int, trials int) (float64, error) {
	if trials <= 0 {
		trials = DefaultTrials
	}

	want := slices.Clone(data)
	slices.Sort(want)

	times := make([]float64, 0, trials)
	for trial := 0; trial < trials; trial++ {
		arr := slices.Clone(data)

		start := time.Now()
		out, err := fn(arr)
		elapsed := time.Since(start)

		if err != nil {
			return 0, fmt.Errorf("sort failed on trial %d: %w", trial+1, err)
		}
		if !slices.Equal(out, want) {
			return 0, fmt.Errorf("incorrect output on trial %d", trial+1)
		}
		times = append(times, float64(elapsed.Nanoseconds())/1e6)
	}

	return median(times), nil
}

// median assumes at least one sample. Even counts average the middle pair.
func median(samples []float64) float64 {
	slices.Sort(samples)
	n := len(samples)
	if n%2 == 1 {
		return samples[n/2]
	}
	return (samples[n/2-1] + samples[n/2]) / 2
}

// Result is one cell of the comparison: an algorithm timed on one dataset.
type Result struct {
	Kind      Kind    `json:"kind"`
	Size      int     `json:"size"`
	Algorithm string  `json:"algorithm"`
	Millis    float64 `json:"millis"`
}

// Options configure a comparison run. Zero-value fields fall back to the
// defaults.
type Options struct {
	Sizes  []int
	Kinds  []Kind
	Trials int
}

// Run measures every algorithm on every (kind, size) dataset and returns the
// results in report order: kinds outermost, then sizes, then algorithms.
// All algorithms within a cell sort the same generated data.
func Run(opts Options) ([]Result, error) {
	sizes := opts.Sizes
	if len(sizes) == 0 {
		sizes = DefaultSizes()
	}
	kinds := opts.Kinds
	if len(kinds) == 0 {
		kinds = Kinds()
	}
	trials := opts.Trials
	if trials <= 0 {
		trials = DefaultTrials
	}

	results := make([]Result, 0, len(kinds)*len(sizes)*len(Algorithms()))
	for _, kind := range kinds {
		for _, n := range sizes {
			data, err := Generate(n, kind)
			if err != nil {
				return nil, err
			}

			for _, algo := range Algorithms() {
				ms, err := Measure(algo.Fn, data, trials)
				if err != nil {
					return nil, fmt.Errorf("%s on %s n=%d: %w", algo.Name, kind, n, err)
				}
				slog.Debug("measured sort",
					"algorithm", algo.Name, "kind", kind, "n", n, "millis", ms)
				results = append(results, Result{
					Kind:      kind,
					Size:      n,
					Algorithm: algo.Name,
					Millis:    ms,
				})
			}
		}
	}

	return results, nil
}
