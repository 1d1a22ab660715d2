package cli

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/akeeley/heapsched/internal/heapsort"
)

func TestSortValues_Ints(t *testing.T) {
	got, err := sortValues([]string{"3", "1", "4", "1", "5", "9", "2", "6"})
	if err != nil {
		t.Fatalf("sortValues() error: %v", err)
	}

	want := []string{"1", "1", "2", "3", "4", "5", "6", "9"}
	if !slices.Equal(got, want) {
		t.Errorf("sortValues() = %v, want %v", got, want)
	}
}

func TestSortValues_Floats(t *testing.T) {
	// One non-integer value switches the whole sort to floating point
	got, err := sortValues([]string{"2.5", "-1", "0.25"})
	if err != nil {
		t.Fatalf("sortValues() error: %v", err)
	}

	want := []string{"-1", "0.25", "2.5"}
	if !slices.Equal(got, want) {
		t.Errorf("sortValues() = %v, want %v", got, want)
	}
}

func TestSortValues_NaN(t *testing.T) {
	_, err := sortValues([]string{"1", "NaN", "3"})
	if err == nil {
		t.Fatal("sortValues() should reject NaN")
	}

	var cmpErr *heapsort.ComparisonError
	if !errors.As(err, &cmpErr) {
		t.Errorf("error = %v, want ComparisonError", err)
	}
}

func TestSortValues_NotANumber(t *testing.T) {
	if _, err := sortValues([]string{"1", "apple"}); err == nil {
		t.Error("sortValues() should reject non-numeric input")
	}
}

func TestParseInts(t *testing.T) {
	if got, ok := parseInts([]string{"-3", "0", "12"}); !ok || !slices.Equal(got, []int{-3, 0, 12}) {
		t.Errorf("parseInts() = %v, %v", got, ok)
	}

	if _, ok := parseInts([]string{"1", "2.5"}); ok {
		t.Error("parseInts() should fail on a float")
	}
}

func TestRunSort_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "values.txt")
	if err := os.WriteFile(path, []byte("5 3\n9\n1\n"), 0600); err != nil {
		t.Fatalf("write values: %v", err)
	}

	sortFile = path
	defer func() { sortFile = "" }()

	if err := runSort(nil, nil); err != nil {
		t.Errorf("runSort() error: %v", err)
	}
}

func TestRunSort_NoValues(t *testing.T) {
	if err := runSort(nil, nil); err == nil {
		t.Error("runSort() with no values should error")
	}
}
