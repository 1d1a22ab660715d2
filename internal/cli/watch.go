package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/akeeley/heapsched/internal/task"
	"github.com/akeeley/heapsched/internal/tui"
)

var watchMaxTicks int

var watchCmd = &cobra.Command{
	Use:     "watch <workload.yaml>",
	Aliases: []string{"ui", "tui"},
	Short:   "Play a workload back in an interactive TUI",
	Long: `Play a workload through the scheduler in an interactive terminal UI.

Playback advances one tick at a time, showing the queue contents,
arrivals, and the growing execution trace as they happen.

Keys:
  space - Play / pause
  n     - Single step
  + / - - Faster / slower
  r     - Restart from tick zero
  ?     - Toggle help
  q     - Quit`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().IntVar(&watchMaxTicks, "max-ticks", 0, "Stop if the clock reaches this tick (0 = no cap)")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
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
		maxTicks = watchMaxTicks
	}

	model := tui.NewModel(workload, maxTicks)

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run watch: %w", err)
	}

	return nil
}
