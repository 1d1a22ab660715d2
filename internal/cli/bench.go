package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/akeeley/heapsched/internal/bench"
	"github.com/akeeley/heapsched/internal/config"
)

var (
	benchSizes  []int
	benchKinds  []string
	benchTrials int
	benchOutput string
)

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Compare the heap sort against other algorithms",
	Long: `Benchmark the heap sort against randomized quicksort and merge sort.

Each algorithm is timed on generated datasets of several sizes and
distributions (random, sorted, reverse, few_unique). Measurements
repeat over multiple trials and report the median wall-clock time in
milliseconds.`,
	RunE: runBench,
}

func init() {
	benchCmd.Flags().IntSliceVar(&benchSizes, "sizes", nil, "Input sizes to measure")
	benchCmd.Flags().StringSliceVar(&benchKinds, "kinds", nil, "Data distributions (random, sorted, reverse, few_unique)")
	benchCmd.Flags().IntVar(&benchTrials, "trials", 0, "Trials per measurement (median reported)")
	benchCmd.Flags().StringVarP(&benchOutput, "output", "o", "", "Output format (table, json)")
	rootCmd.AddCommand(benchCmd)
}

func runBench(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	opts, err := benchOptions(cfg)
	if err != nil {
		return err
	}

	results, err := bench.Run(opts)
	if err != nil {
		return fmt.Errorf("benchmark failed: %w", err)
	}

	output := cfg.Output
	if benchOutput != "" {
		output = benchOutput
	}

	switch output {
	case "json":
		return printBenchJSON(results)
	default:
		return printBenchTable(results)
	}
}

// benchOptions resolves command flags over the configured benchmark settings.
func benchOptions(cfg *config.Config) (bench.Options, error) {
	sizes := cfg.Bench.Sizes
	if len(benchSizes) > 0 {
		sizes = benchSizes
	}

	names := cfg.Bench.Kinds
	if len(benchKinds) > 0 {
		names = benchKinds
	}
	kinds := make([]bench.Kind, len(names))
	for i, name := range names {
		kind, err := bench.ParseKind(name)
		if err != nil {
			return bench.Options{}, err
		}
		kinds[i] = kind
	}

	trials := cfg.Bench.Trials
	if benchTrials > 0 {
		trials = benchTrials
	}

	return bench.Options{Sizes: sizes, Kinds: kinds, Trials: trials}, nil
}

func printBenchTable(results []bench.Result) error {
	algos := bench.Algorithms()
	cols := len(algos)

	// Results arrive kind by kind, size by size, algorithm by algorithm, so
	// every consecutive group of cols entries is one table row.
	if len(results)%cols != 0 {
		return fmt.Errorf("unexpected result count %d", len(results))
	}

	var currentKind bench.Kind
	var w *tabwriter.Writer

	for i := 0; i < len(results); i += cols {
		row := results[i : i+cols]

		if w == nil || row[0].Kind != currentKind {
			if w != nil {
				if err := w.Flush(); err != nil {
					return err
				}
				fmt.Println()
			}
			currentKind = row[0].Kind
			fmt.Printf("=== Data distribution: %s ===\n", currentKind)

			w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			header := "SIZE"
			rule := "----"
			for _, algo := range algos {
				header += "\t" + algo.Name
				rule += "\t" + strings.Repeat("-", len(algo.Name))
			}
			fmt.Fprintln(w, header)
			fmt.Fprintln(w, rule)
		}

		fastest := 0
		for j := 1; j < len(row); j++ {
			if row[j].Millis < row[fastest].Millis {
				fastest = j
			}
		}

		line := strconv.Itoa(row[0].Size)
		for j, r := range row {
			cell := fmt.Sprintf("%.3f ms", r.Millis)
			if j == fastest && isTerminal() {
				cell = color.GreenString(cell)
			}
			line += "\t" + cell
		}
		fmt.Fprintln(w, line)
	}

	if w != nil {
		return w.Flush()
	}
	return nil
}

func printBenchJSON(results []bench.Result) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(results)
}
