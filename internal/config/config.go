// Package config provides configuration management for heapsched.
//
// Configuration is loaded from multiple sources with the following precedence
// (highest to lowest):
//  1. CLI flags (set via SetOverride)
//  2. Project config: ./heapsched.yaml or ./.heapsched/config.yaml
//  3. Global config: ~/.config/heapsched/config.yaml
//  4. Built-in defaults
//
// The package uses Viper for configuration merging and supports automatic
// environment variable binding with the HEAPSCHED_ prefix.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config represents the heapsched.yaml configuration file.
type Config struct {
	// Version is the configuration schema version (currently "1")
	Version string `yaml:"version" mapstructure:"version" validate:"required,eq=1"`

	// Output selects how command results are rendered
	Output string `yaml:"output" mapstructure:"output" validate:"required,oneof=table json"`

	// Log configures the process-wide logger
	Log LogConfig `yaml:"log" mapstructure:"log"`

	// Scheduler contains settings for workload runs
	Scheduler SchedulerConfig `yaml:"scheduler" mapstructure:"scheduler"`

	// Bench contains settings for sort comparison runs
	Bench BenchConfig `yaml:"bench" mapstructure:"bench"`
}

// LogConfig controls log verbosity and encoding.
type LogConfig struct {
	// Level is the minimum level that gets emitted
	Level string `yaml:"level" mapstructure:"level" validate:"required,oneof=debug info warn error"`

	// Format is the output encoding: pretty (tint), json, or text
	Format string `yaml:"format" mapstructure:"format" validate:"required,oneof=pretty json text"`
}

// SchedulerConfig contains settings for workload runs.
type SchedulerConfig struct {
	// MaxTicks caps how far the clock may advance in a single run.
	// Zero means no cap.
	MaxTicks int `yaml:"max_ticks" mapstructure:"max_ticks" validate:"gte=0"`
}

// BenchConfig contains settings for sort comparison runs.
type BenchConfig struct {
	// Sizes are the input lengths each algorithm is measured on
	Sizes []int `yaml:"sizes" mapstructure:"sizes" validate:"min=1,dive,gte=1"`

	// Kinds are the data distributions to generate
	Kinds []string `yaml:"kinds" mapstructure:"kinds" validate:"min=1,dive,oneof=random sorted reverse few_unique"`

	// Trials is how many times each measurement repeats; the median is kept
	Trials int `yaml:"trials" mapstructure:"trials" validate:"gte=1,lte=101"`
}

// ValidationError represents a configuration validation error with field details.
type ValidationError struct {
	Field   string
	Tag     string
	Value   interface{}
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	msgs := make([]string, 0, len(e))
	for _, err := range e {
		msgs = append(msgs, err.Message)
	}
	return strings.Join(msgs, "; ")
}

// Loader handles configuration loading from multiple sources.
type Loader struct {
	v         *viper.Viper
	validator *validator.Validate
	overrides map[string]interface{}
}

// NewLoader creates a new configuration loader.
func NewLoader() *Loader {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix("HEAPSCHED")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return &Loader{
		v:         v,
		validator: validator.New(),
		overrides: make(map[string]interface{}),
	}
}

// SetOverride sets a CLI override value that takes highest precedence.
// Use dot notation for nested keys (e.g., "scheduler.max_ticks").
func (l *Loader) SetOverride(key string, value interface{}) {
	l.overrides[key] = value
}

// Load reads configuration from all sources and returns the merged result.
// It searches for config files in the following order:
//  1. ./heapsched.yaml
//  2. ./.heapsched/config.yaml
//  3. ~/.config/heapsched/config.yaml
//
// All found configs are merged with CLI overrides taking highest precedence.
func (l *Loader) Load() (*Config, error) {
	// Start with defaults
	cfg := DefaultConfig()
	l.setDefaults()

	// Load global config (~/.config/heapsched/config.yaml)
	globalPath := l.globalConfigPath()
	if globalPath != "" && fileExists(globalPath) {
		if err := l.loadConfigFile(globalPath); err != nil {
			return nil, fmt.Errorf("failed to load global config %s: %w", globalPath, err)
		}
	}

	// Load project config (./heapsched.yaml or ./.heapsched/config.yaml)
	projectPath := l.findProjectConfig()
	if projectPath != "" {
		if err := l.loadConfigFile(projectPath); err != nil {
			return nil, fmt.Errorf("failed to load project config %s: %w", projectPath, err)
		}
	}

	// Apply CLI overrides (highest precedence)
	for key, value := range l.overrides {
		l.v.Set(key, value)
	}

	// Unmarshal into config struct
	if err := l.v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Validate the config
	if err := l.Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFromPath loads configuration from a specific file path.
// This is useful for testing or when a config path is explicitly specified.
func (l *Loader) LoadFromPath(path string) (*Config, error) {
	l.setDefaults()

	if err := l.loadConfigFile(path); err != nil {
		return nil, err
	}

	// Apply CLI overrides
	for key, value := range l.overrides {
		l.v.Set(key, value)
	}

	cfg := &Config{}
	if err := l.v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := l.Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the configuration against the schema.
// Returns ValidationErrors with detailed information about any issues.
func (l *Loader) Validate(cfg *Config) error {
	var errs ValidationErrors

	// Validate struct tags
	err := l.validator.Struct(cfg)
	if err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			for _, e := range validationErrs {
				errs = append(errs, ValidationError{
					Field:   e.Namespace(),
					Tag:     e.Tag(),
					Value:   e.Value(),
					Message: formatValidationError(e),
				})
			}
		} else {
			return fmt.Errorf("validation error: %w", err)
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

func (l *Loader) setDefaults() {
	defaults := DefaultConfig()

	l.v.SetDefault("version", defaults.Version)
	l.v.SetDefault("output", defaults.Output)
	l.v.SetDefault("log.level", defaults.Log.Level)
	l.v.SetDefault("log.format", defaults.Log.Format)
	l.v.SetDefault("scheduler.max_ticks", defaults.Scheduler.MaxTicks)
	l.v.SetDefault("bench.sizes", defaults.Bench.Sizes)
	l.v.SetDefault("bench.kinds", defaults.Bench.Kinds)
	l.v.SetDefault("bench.trials", defaults.Bench.Trials)
}

func (l *Loader) loadConfigFile(path string) error {
	l.v.SetConfigFile(path)
	return l.v.MergeInConfig()
}

func (l *Loader) globalConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "heapsched", "config.yaml")
}

func (l *Loader) findProjectConfig() string {
	// Check ./heapsched.yaml first
	if fileExists("heapsched.yaml") {
		return "heapsched.yaml"
	}

	// Check ./.heapsched/config.yaml
	altPath := filepath.Join(".heapsched", "config.yaml")
	if fileExists(altPath) {
		return altPath
	}

	return ""
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func formatValidationError(e validator.FieldError) string {
	field := e.Namespace()
	// Remove the "Config." prefix for cleaner messages
	field = strings.TrimPrefix(field, "Config.")

	switch e.Tag() {
	case "required":
		return fmt.Sprintf("'%s' is required", field)
	case "eq":
		return fmt.Sprintf("'%s' must be '%s' (got '%v')", field, e.Param(), e.Value())
	case "oneof":
		return fmt.Sprintf("'%s' must be one of [%s] (got '%v')", field, e.Param(), e.Value())
	case "min":
		return fmt.Sprintf("'%s' must have at least %s entries", field, e.Param())
	case "gte":
		return fmt.Sprintf("'%s' must be at least %s (got '%v')", field, e.Param(), e.Value())
	case "lte":
		return fmt.Sprintf("'%s' must be at most %s (got '%v')", field, e.Param(), e.Value())
	default:
		return fmt.Sprintf("'%s' failed validation '%s'", field, e.Tag())
	}
}

// DefaultConfig returns a new Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Version: "1",
		Output:  "table",
		Log: LogConfig{
			Level:  "info",
			Format: "pretty",
		},
		Scheduler: SchedulerConfig{
			MaxTicks: 0,
		},
		Bench: BenchConfig{
			Sizes:  []int{1000, 5000, 10000, 20000},
			Kinds:  []string{"random", "sorted", "reverse", "few_unique"},
			Trials: 7,
		},
	}
}

// WriteDefault writes the default configuration to the specified path.
func WriteDefault(path string) error {
	cfg := DefaultConfig()
	return Write(cfg, path)
}

// Write writes the configuration to the specified path.
func Write(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	// Ensure directory exists
	dir := filepath.Dir(path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return err
		}
	}

	return os.WriteFile(path, data, 0600)
}

// Load is a convenience function that creates a Loader and loads the config.
// For more control over loading behavior, use NewLoader() directly.
func Load() (*Config, error) {
	return NewLoader().Load()
}

// Exists checks if a configuration file exists at the given path.
func Exists(path string) bool {
	return fileExists(path)
}

// GlobalConfigPath returns the path to the global configuration file.
func GlobalConfigPath() string {
	return NewLoader().globalConfigPath()
}

// FindProjectConfig returns the path to the project configuration file,
// or an empty string if no project config is found.
func FindProjectConfig() string {
	return NewLoader().findProjectConfig()
}
