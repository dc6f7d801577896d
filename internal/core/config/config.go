// Package config handles configuration loading and validation for taskdeck.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/colonyops/taskdeck/internal/core/task"
)

// Config holds the application configuration.
type Config struct {
	Defaults DefaultsConfig `yaml:"defaults"`
	Bus      BusConfig      `yaml:"bus"`
	DataDir  string         `yaml:"-"` // set by caller, not from config file
}

// DefaultsConfig holds default values applied to new tasks.
type DefaultsConfig struct {
	// Priority assigned to new tasks when none is given.
	Priority string `yaml:"priority"`
	// DueInDays is the default due date offset for interactive forms.
	DueInDays int `yaml:"due_in_days"`
}

// BusConfig tunes the in-process event bus.
type BusConfig struct {
	// Buffer is the dispatch channel size; events beyond it are dropped.
	Buffer int `yaml:"buffer"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Defaults: DefaultsConfig{
			Priority:  string(task.PriorityMedium),
			DueInDays: 1,
		},
		Bus: BusConfig{
			Buffer: 64,
		},
	}
}

// Load reads configuration from the given path and sets the data directory.
// If configPath is empty or doesn't exist, returns defaults with the provided dataDir.
func Load(configPath, dataDir string) (*Config, error) {
	cfg := DefaultConfig()
	cfg.DataDir = dataDir

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}

			// Re-set dataDir since Unmarshal may have cleared it
			cfg.DataDir = dataDir
		}
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.Defaults.Priority == "" {
		c.Defaults.Priority = defaults.Defaults.Priority
	}
	if c.Defaults.DueInDays == 0 {
		c.Defaults.DueInDays = defaults.Defaults.DueInDays
	}
	if c.Bus.Buffer == 0 {
		c.Bus.Buffer = defaults.Bus.Buffer
	}
}

// DefaultPriority returns the configured default priority for new tasks.
func (c *Config) DefaultPriority() task.Priority {
	return task.Priority(c.Defaults.Priority)
}
