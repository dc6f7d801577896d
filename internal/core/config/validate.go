package config

import (
	"fmt"

	"github.com/hay-kot/criterio"

	"github.com/colonyops/taskdeck/internal/core/task"
)

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	return criterio.ValidateStruct(
		criterio.Run("defaults.priority", c.Defaults.Priority, validPriority),
		criterio.Run("defaults.due_in_days", c.Defaults.DueInDays, nonNegative),
		criterio.Run("bus.buffer", c.Bus.Buffer, positive),
		criterio.Run("data_dir", c.DataDir, nonEmpty),
	)
}

func validPriority(p string) error {
	if !task.Priority(p).IsValid() {
		return fmt.Errorf("must be one of low, medium, high; got %q", p)
	}
	return nil
}

func nonNegative(n int) error {
	if n < 0 {
		return fmt.Errorf("must not be negative")
	}
	return nil
}

func positive(n int) error {
	if n < 1 {
		return fmt.Errorf("must be at least 1")
	}
	return nil
}

func nonEmpty(s string) error {
	if s == "" {
		return fmt.Errorf("cannot be empty")
	}
	return nil
}
