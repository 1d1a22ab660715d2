package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Version != "1" {
		t.Errorf("expected version '1', got '%s'", cfg.Version)
	}

	if cfg.Output != "table" {
		t.Errorf("expected output 'table', got '%s'", cfg.Output)
	}

	if cfg.Log.Level != "info" {
		t.Errorf("expected log level 'info', got '%s'", cfg.Log.Level)
	}

	if cfg.Log.Format != "pretty" {
		t.Errorf("expected log format 'pretty', got '%s'", cfg.Log.Format)
	}

	if cfg.Scheduler.MaxTicks != 0 {
		t.Errorf("expected max_ticks 0, got %d", cfg.Scheduler.MaxTicks)
	}

	if len(cfg.Bench.Sizes) != 4 {
		t.Errorf("expected 4 bench sizes, got %d", len(cfg.Bench.Sizes))
	}

	if len(cfg.Bench.Kinds) != 4 {
		t.Errorf("expected 4 bench kinds, got %d", len(cfg.Bench.Kinds))
	}

	if cfg.Bench.Trials != 7 {
		t.Errorf("expected 7 bench trials, got %d", cfg.Bench.Trials)
	}
}

func TestWriteAndLoad(t *testing.T) {
	// Create temp directory
	tmpDir, err := os.MkdirTemp("", "heapsched-config-test")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	// Write default config
	configPath := filepath.Join(tmpDir, "heapsched.yaml")
	if err := WriteDefault(configPath); err != nil {
		t.Fatalf("failed to write default config: %v", err)
	}

	// Verify file exists
	if !Exists(configPath) {
		t.Fatal("config file should exist after writing")
	}

	// Load the config
	loader := NewLoader()
	cfg, err := loader.LoadFromPath(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Verify loaded values match defaults
	defaults := DefaultConfig()
	if cfg.Version != defaults.Version {
		t.Errorf("loaded version '%s' != default '%s'", cfg.Version, defaults.Version)
	}

	if cfg.Output != defaults.Output {
		t.Errorf("loaded output '%s' != default '%s'", cfg.Output, defaults.Output)
	}

	if cfg.Bench.Trials != defaults.Bench.Trials {
		t.Errorf("loaded trials %d != default %d", cfg.Bench.Trials, defaults.Bench.Trials)
	}
}

func TestLoadWithOverrides(t *testing.T) {
	// Create temp directory
	tmpDir, err := os.MkdirTemp("", "heapsched-config-test")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	// Write default config
	configPath := filepath.Join(tmpDir, "heapsched.yaml")
	if err := WriteDefault(configPath); err != nil {
		t.Fatalf("failed to write default config: %v", err)
	}

	// Load with overrides
	loader := NewLoader()
	loader.SetOverride("scheduler.max_ticks", 500)
	loader.SetOverride("output", "json")

	cfg, err := loader.LoadFromPath(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Verify overrides applied
	if cfg.Scheduler.MaxTicks != 500 {
		t.Errorf("expected max_ticks override to be 500, got %d", cfg.Scheduler.MaxTicks)
	}

	if cfg.Output != "json" {
		t.Errorf("expected output override to be 'json', got '%s'", cfg.Output)
	}
}

func TestValidation(t *testing.T) {
	tests := []struct {
		name        string
		modify      func(*Config)
		expectError bool
		errorField  string
	}{
		{
			name:        "valid config",
			modify:      func(c *Config) {},
			expectError: false,
		},
		{
			name: "invalid version",
			modify: func(c *Config) {
				c.Version = "2"
			},
			expectError: true,
			errorField:  "Version",
		},
		{
			name: "unknown output",
			modify: func(c *Config) {
				c.Output = "csv"
			},
			expectError: true,
			errorField:  "Output",
		},
		{
			name: "unknown log level",
			modify: func(c *Config) {
				c.Log.Level = "verbose"
			},
			expectError: true,
			errorField:  "Level",
		},
		{
			name: "negative max_ticks",
			modify: func(c *Config) {
				c.Scheduler.MaxTicks = -1
			},
			expectError: true,
			errorField:  "MaxTicks",
		},
		{
			name: "trials too low",
			modify: func(c *Config) {
				c.Bench.Trials = 0
			},
			expectError: true,
			errorField:  "Trials",
		},
		{
			name: "trials too high",
			modify: func(c *Config) {
				c.Bench.Trials = 1000
			},
			expectError: true,
			errorField:  "Trials",
		},
		{
			name: "empty sizes",
			modify: func(c *Config) {
				c.Bench.Sizes = nil
			},
			expectError: true,
			errorField:  "Sizes",
		},
		{
			name: "zero size entry",
			modify: func(c *Config) {
				c.Bench.Sizes = []int{1000, 0}
			},
			expectError: true,
			errorField:  "Sizes",
		},
		{
			name: "unknown kind",
			modify: func(c *Config) {
				c.Bench.Kinds = []string{"random", "gaussian"}
			},
			expectError: true,
			errorField:  "Kinds",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)

			loader := NewLoader()
			err := loader.Validate(cfg)

			if tt.expectError && err == nil {
				t.Errorf("expected validation error for %s, got nil", tt.errorField)
			}

			if !tt.expectError && err != nil {
				t.Errorf("unexpected validation error: %v", err)
			}
		})
	}
}

func TestValidationErrorMessages(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Version = "2" // Invalid

	loader := NewLoader()
	err := loader.Validate(cfg)

	if err == nil {
		t.Fatal("expected validation error")
	}

	errs, ok := err.(ValidationErrors)
	if !ok {
		t.Fatalf("expected ValidationErrors, got %T", err)
	}

	if len(errs) == 0 {
		t.Fatal("expected at least one validation error")
	}

	// Check that error message is user-friendly
	errMsg := errs[0].Message
	if errMsg == "" {
		t.Error("validation error message should not be empty")
	}
}

func TestConfigMerging(t *testing.T) {
	// Create temp directory structure
	tmpDir, err := os.MkdirTemp("", "heapsched-config-test")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	// Save current dir and change to temp dir
	origDir, _ := os.Getwd()
	os.Chdir(tmpDir)
	defer os.Chdir(origDir)

	// Create project config with different values
	projectConfig := `version: "1"
output: "json"
log:
  level: "debug"
  format: "text"
scheduler:
  max_ticks: 10000
bench:
  sizes:
    - 100
    - 200
  kinds:
    - sorted
  trials: 3
`

	if err := os.WriteFile("heapsched.yaml", []byte(projectConfig), 0644); err != nil {
		t.Fatalf("failed to write project config: %v", err)
	}

	// Load config
	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Verify project config values were loaded
	if cfg.Output != "json" {
		t.Errorf("expected output 'json', got '%s'", cfg.Output)
	}

	if cfg.Log.Level != "debug" {
		t.Errorf("expected log level 'debug', got '%s'", cfg.Log.Level)
	}

	if cfg.Scheduler.MaxTicks != 10000 {
		t.Errorf("expected max_ticks 10000, got %d", cfg.Scheduler.MaxTicks)
	}

	if len(cfg.Bench.Sizes) != 2 || cfg.Bench.Sizes[0] != 100 {
		t.Errorf("expected bench sizes [100 200], got %v", cfg.Bench.Sizes)
	}

	if cfg.Bench.Trials != 3 {
		t.Errorf("expected trials 3, got %d", cfg.Bench.Trials)
	}
}

func TestConfigMergingPartial(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "heapsched-config-test")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	origDir, _ := os.Getwd()
	os.Chdir(tmpDir)
	defer os.Chdir(origDir)

	// A config that only sets one key keeps defaults for the rest
	partial := `version: "1"
scheduler:
  max_ticks: 64
`

	if err := os.WriteFile("heapsched.yaml", []byte(partial), 0644); err != nil {
		t.Fatalf("failed to write project config: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Scheduler.MaxTicks != 64 {
		t.Errorf("expected max_ticks 64, got %d", cfg.Scheduler.MaxTicks)
	}

	defaults := DefaultConfig()
	if cfg.Output != defaults.Output {
		t.Errorf("expected default output '%s', got '%s'", defaults.Output, cfg.Output)
	}

	if cfg.Bench.Trials != defaults.Bench.Trials {
		t.Errorf("expected default trials %d, got %d", defaults.Bench.Trials, cfg.Bench.Trials)
	}
}

func TestFindProjectConfig(t *testing.T) {
	// Create temp directory
	tmpDir, err := os.MkdirTemp("", "heapsched-config-test")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	// Save current dir and change to temp dir
	origDir, _ := os.Getwd()
	os.Chdir(tmpDir)
	defer os.Chdir(origDir)

	// Test no config found
	loader := NewLoader()
	if path := loader.findProjectConfig(); path != "" {
		t.Errorf("expected no config found, got '%s'", path)
	}

	// Create heapsched.yaml
	if err := WriteDefault("heapsched.yaml"); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	if path := loader.findProjectConfig(); path != "heapsched.yaml" {
		t.Errorf("expected 'heapsched.yaml', got '%s'", path)
	}

	// Remove heapsched.yaml and create .heapsched/config.yaml
	os.Remove("heapsched.yaml")
	os.MkdirAll(".heapsched", 0755)
	if err := WriteDefault(filepath.Join(".heapsched", "config.yaml")); err != nil {
		t.Fatalf("failed to write alt config: %v", err)
	}

	if path := loader.findProjectConfig(); path != filepath.Join(".heapsched", "config.yaml") {
		t.Errorf("expected '.heapsched/config.yaml', got '%s'", path)
	}
}

func TestGlobalConfigPath(t *testing.T) {
	path := GlobalConfigPath()

	if path == "" {
		t.Skip("could not determine home directory")
	}

	if !filepath.IsAbs(path) {
		t.Errorf("expected absolute path, got '%s'", path)
	}
}
