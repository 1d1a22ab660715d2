package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/akeeley/heapsched/internal/heapsort"
)

var sortFile string

var sortCmd = &cobra.Command{
	Use:   "sort [values...]",
	Short: "Sort values with the heap sort",
	Long: `Sort numeric values in ascending order using the binary max-heap.

Values come from the arguments, or whitespace-separated from a file
with --file. When every value parses as an integer the sort runs on
integers; otherwise everything is parsed as floating point.

Examples:
  heapsched sort 3 1 4 1 5 9 2 6
  heapsched sort 2.5 1e3 -0.25
  heapsched sort --file values.txt`,
	Args: cobra.ArbitraryArgs,
	RunE: runSort,
}

func init() {
	sortCmd.Flags().StringVarP(&sortFile, "file", "f", "", "Read values from a file instead of the arguments")
	rootCmd.AddCommand(sortCmd)
}

func runSort(cmd *cobra.Command, args []string) error {
	if _, err := loadConfig(cmd); err != nil {
		return err
	}

	values := args
	if sortFile != "" {
		content, err := os.ReadFile(sortFile) // #nosec G304 - path is supplied by the user on the command line
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", sortFile, err)
		}
		values = strings.Fields(string(content))
	}

	if len(values) == 0 {
		return fmt.Errorf("no values to sort: pass them as arguments or with --file")
	}

	sorted, err := sortValues(values)
	if err != nil {
		return err
	}

	fmt.Println(strings.Join(sorted, " "))
	return nil
}

// sortValues sorts the values as integers when every one parses as an
// integer, falling back to floating point otherwise.
func sortValues(values []string) ([]string, error) {
	if ints, ok := parseInts(values); ok {
		if err := heapsort.Sort(ints); err != nil {
			return nil, err
		}
		out := make([]string, len(ints))
		for i, v := range ints {
			out[i] = strconv.Itoa(v)
		}
		return out, nil
	}

	floats := make([]float64, len(values))
	for i, v := range values {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("value %q is not a number", v)
		}
		floats[i] = f
	}
	if err := heapsort.Sort(floats); err != nil {
		return nil, err
	}

	out := make([]string, len(floats))
	for i, v := range floats {
		out[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	return out, nil
}

// parseInts attempts to parse every value as an integer; ok is false as soon
// as one of them is not.
func parseInts(values []string) ([]int, bool) {
	ints := make([]int, len(values))
	for i, v := range values {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, false
		}
		ints[i] = n
	}
	return ints, true
}
