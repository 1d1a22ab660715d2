package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/akeeley/heapsched/internal/sched"
	"github.com/akeeley/heapsched/internal/task"
)

var (
	runOutput   string
	runTraceOut string
	runMaxTicks int
)

var runCmd = &cobra.Command{
	Use:   "run <workload.yaml>",
	Short: "Run a workload and print its execution trace",
	Long: `Run a workload file through the scheduler.

Tasks are inserted at their arrival ticks and executed one per tick,
highest priority first; ties go to the earlier arrival, then the
smaller ID. The resulting trace shows when each task ran and how long
it waited in the queue.`,
	Args: cobra.ExactArgs(1),
	RunE: runRun,
}

func init() {
	runCmd.Flags().StringVarP(&runOutput, "output", "o", "", "Output format (table, json)")
	runCmd.Flags().StringVar(&runTraceOut, "trace-out", "", "Write the trace to a JSON file")
	runCmd.Flags().IntVar(&runMaxTicks, "max-ticks", 0, "Stop if the clock reaches this tick (0 = no cap)")
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	workload, err := task.ParseWorkloadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to load workload %s: %w", args[0], err)
	}

	maxTicks := cfg.Scheduler.MaxTicks
	if cmd != nil && cmd.Flags().Changed("max-ticks") {
		maxTicks = runMaxTicks
	}

	trace, runErr := sched.New(workload.Tasks, maxTicks).Run()

	if runTraceOut != "" {
		if err := trace.WriteFile(runTraceOut); err != nil {
			return fmt.Errorf("failed to write trace: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Wrote trace to %s\n", runTraceOut)
	}

	output := cfg.Output
	if runOutput != "" {
		output = runOutput
	}

	switch output {
	case "json":
		if err := printTraceJSON(trace); err != nil {
			return err
		}
	default:
		if err := printTraceTable(workload, trace); err != nil {
			return err
		}
	}

	// A run stopped early still prints the trace it produced.
	return runErr
}

func printTraceTable(w *task.Workload, trace sched.Trace) error {
	if w.Name != "" {
		fmt.Printf("Workload: %s\n\n", w.Name)
	}

	if len(trace) == 0 {
		fmt.Println("No tasks executed.")
		return nil
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "TICK\tTASK\tPRIORITY\tWAITED\tDEADLINE\tPAYLOAD")
	fmt.Fprintln(tw, "----\t----\t--------\t------\t--------\t-------")

	for _, e := range trace {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%s\t%s\n",
			e.Tick,
			e.Task.ID,
			colorPriority(e.Task.Priority),
			e.Waited,
			deadlineCell(e),
			e.Task.Payload,
		)
	}

	if err := tw.Flush(); err != nil {
		return err
	}

	stats := trace.Stats()
	fmt.Printf("\n%d tasks executed, final tick %d, avg wait %.1f, max wait %d",
		stats.Executed, stats.FinalTick, stats.AvgWait(), stats.MaxWait)
	if stats.Missed > 0 {
		missed := fmt.Sprintf("%d missed deadlines", stats.Missed)
		if isTerminal() {
			missed = color.RedString(missed)
		}
		fmt.Printf(", %s", missed)
	}
	fmt.Println()

	return nil
}

func printTraceJSON(trace sched.Trace) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(trace)
}

// colorPriority highlights urgent work in terminal output.
func colorPriority(p int) string {
	s := strconv.Itoa(p)
	if !isTerminal() {
		return s
	}

	switch {
	case p >= 8:
		return color.RedString(s)
	case p >= 4:
		return color.YellowString(s)
	default:
		return s
	}
}

// deadlineCell renders the deadline column: "-" for tasks without one, and a
// marked value when the task executed past it.
func deadlineCell(e sched.Entry) string {
	if !e.Task.HasDeadline() {
		return "-"
	}

	cell := strconv.Itoa(*e.Task.Deadline)
	if e.Task.MissedDeadline(e.Tick) {
		cell += " (missed)"
		if isTerminal() {
			return color.RedString(cell)
		}
	}
	return cell
}

// isTerminal checks if stdout is a terminal (TTY).
// This is used to determine whether to use colors in output.
func isTerminal() bool {
	fileInfo, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return (fileInfo.Mode() & os.ModeCharDevice) != 0
}
