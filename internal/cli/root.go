package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/akeeley/heapsched/internal/config"
	"github.com/akeeley/heapsched/internal/logging"
)

// Version information - set at build time via ldflags
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	logLevelFlag  string
	logFormatFlag string
)

var rootCmd = &cobra.Command{
	Use:   "heapsched",
	Short: "Priority task scheduling on a binary max-heap",
	Long: `Heapsched runs task workloads through an indexed max-heap priority
queue on a discrete clock, producing a tick-by-tick execution trace.

Workloads are YAML files listing tasks with priorities, arrival times,
and optional deadlines. The same heap powers a standalone sort command
and a benchmark comparing it against other sorting algorithms.`,
	SilenceUsage: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("heapsched %s\n", version)
		fmt.Printf("  commit: %s\n", commit)
		fmt.Printf("  built:  %s\n", date)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormatFlag, "log-format", "", "Log format (pretty, json, text)")
}

// loadConfig merges configuration sources with any logging flags set on cmd
// and installs the global logger from the result.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	loader := config.NewLoader()
	if cmd != nil {
		if cmd.Flags().Changed("log-level") {
			loader.SetOverride("log.level", logLevelFlag)
		}
		if cmd.Flags().Changed("log-format") {
			loader.SetOverride("log.format", logFormatFlag)
		}
	}

	cfg, err := loader.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logging.Init(logging.ParseFormat(cfg.Log.Format), logging.ParseLevel(cfg.Log.Level))
	return cfg, nil
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersionInfo sets version information from build flags
func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
}

// GetRootCmd returns the root command for testing and subcommand registration
func GetRootCmd() *cobra.Command {
	return rootCmd
}
