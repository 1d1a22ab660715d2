package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/akeeley/heapsched/internal/config"
	"github.com/akeeley/heapsched/internal/task"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize heapsched in the current directory",
	Long: `Create a default heapsched.yaml and a sample workload file.

Safe to run multiple times - will not overwrite existing files.`,
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite existing files")
	rootCmd.AddCommand(initCmd)
}

func runInit(_ *cobra.Command, _ []string) error {
	// Create config if not exists (or if --force)
	configPath := "heapsched.yaml"
	if _, err := os.Stat(configPath); os.IsNotExist(err) || initForce {
		if err := config.WriteDefault(configPath); err != nil {
			return fmt.Errorf("failed to create config: %w", err)
		}
		fmt.Printf("Created %s\n", configPath)
	} else {
		fmt.Printf("Config %s already exists, skipping\n", configPath)
	}

	// Create a sample workload the run and watch commands can use directly
	workloadPath := "workload.yaml"
	if _, err := os.Stat(workloadPath); os.IsNotExist(err) || initForce {
		if err := task.WriteWorkloadFile(sampleWorkload(), workloadPath); err != nil {
			return fmt.Errorf("failed to create workload: %w", err)
		}
		fmt.Printf("Created %s\n", workloadPath)
	} else {
		fmt.Printf("Workload %s already exists, skipping\n", workloadPath)
	}

	fmt.Println("\nHeapsched initialized successfully!")
	fmt.Println("\nNext steps:")
	fmt.Println("  heapsched run workload.yaml    # Run the sample workload")
	fmt.Println("  heapsched watch workload.yaml  # Play it back in the TUI")
	fmt.Println("  heapsched bench                # Compare sort algorithms")

	return nil
}

func sampleWorkload() *task.Workload {
	deadline := func(d int) *int { return &d }

	return &task.Workload{
		Version: task.WorkloadVersion,
		Name:    "sample",
		Tasks: []*task.Task{
			{ID: "ingest", Priority: 5, ArrivalTime: 0, Payload: "pull source data"},
			{ID: "index", Priority: 9, ArrivalTime: 1, Deadline: deadline(4), Payload: "rebuild search index"},
			{ID: "compact", Priority: 3, ArrivalTime: 1, Payload: "compact cold storage"},
			{ID: "report", Priority: 7, ArrivalTime: 3, Deadline: deadline(6), Payload: "nightly usage report"},
			{ID: "cleanup", Priority: 1, ArrivalTime: 5, Payload: "drop temp files"},
		},
	}
}
