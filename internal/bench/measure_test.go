package bench

import (
	"slices"
	"strings"
	"testing"
)

func TestMeasure(t *testing.T) {
	data, err := Generate(500, KindRandom)
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}

	ms, err := Measure(func(a []int) ([]int, error) {
		out := slices.Clone(a)
		slices.Sort(out)
		return out, nil
	}, data, 3)
	if err != nil {
		t.Fatalf("Measure() error: %v", err)
	}
	if ms < 0 {
		t.Errorf("Measure() = %v ms, want non-negative", ms)
	}
}

func TestMeasure_RejectsWrongOutput(t *testing.T) {
	data := []int{3, 1, 2}

	_, err := Measure(func(a []int) ([]int, error) {
		return a, nil // unsorted passthrough
	}, data, 3)

	if err == nil {
		t.Fatal("Measure() should reject a sort that returns wrong output")
	}
	if !strings.Contains(err.Error(), "incorrect output") {
		t.Errorf("error = %v, want incorrect output", err)
	}
}

func TestMeasure_DefaultTrials(t *testing.T) {
	calls := 0
	_, err := Measure(func(a []int) ([]int, error) {
		calls++
		out := slices.Clone(a)
		slices.Sort(out)
		return out, nil
	}, []int{2, 1}, 0)
	if err != nil {
		t.Fatalf("Measure() error: %v", err)
	}
	if calls != DefaultTrials {
		t.Errorf("Measure() ran %d trials, want %d", calls, DefaultTrials)
	}
}

func TestMedian(t *testing.T) {
	tests := []struct {
		name    string
		samples []float64
		want    float64
	}{
		{"single", []float64{4.0}, 4.0},
		{"odd", []float64{9.0, 1.0, 5.0}, 5.0},
		{"even", []float64{1.0, 2.0, 3.0, 10.0}, 2.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := median(slices.Clone(tt.samples)); got != tt.want {
				t.Errorf("median(%v) = %v, want %v", tt.samples, got, tt.want)
			}
		})
	}
}

func TestRun(t *testing.T) {
	opts := Options{
		Sizes:  []int{16, 64},
		Kinds:  []Kind{KindRandom, KindFewUnique},
		Trials: 2,
	}

	results, err := Run(opts)
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	algos := Algorithms()
	want := len(opts.Sizes) * len(opts.Kinds) * len(algos)
	if len(results) != want {
		t.Fatalf("Run() returned %d results, want %d", len(results), want)
	}

	// Report order: kinds outermost, then sizes, then algorithms.
	i := 0
	for _, kind := range opts.Kinds {
		for _, n := range opts.Sizes {
			for _, algo := range algos {
				r := results[i]
				if r.Kind != kind || r.Size != n || r.Algorithm != algo.Name {
					t.Errorf("results[%d] = %s/%d/%s, want %s/%d/%s",
						i, r.Kind, r.Size, r.Algorithm, kind, n, algo.Name)
				}
				if r.Millis < 0 {
					t.Errorf("results[%d].Millis = %v, want non-negative", i, r.Millis)
				}
				i++
			}
		}
	}
}

func TestRun_Defaults(t *testing.T) {
	// Zero-value options fall back to the standard grid; trim the sizes so
	// the test stays quick but let kinds and trials default.
	results, err := Run(Options{Sizes: []int{8}})
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	want := len(Kinds()) * len(Algorithms())
	if len(results) != want {
		t.Errorf("Run() returned %d results, want %d", len(results), want)
	}
}

func TestRun_UnknownKind(t *testing.T) {
	if _, err := Run(Options{Sizes: []int{8}, Kinds: []Kind{"gaussian"}}); err == nil {
		t.Error("Run() should reject unknown kinds")
	}
}
