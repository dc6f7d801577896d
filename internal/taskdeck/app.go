// Package taskdeck wires the task store, settings, and event bus into
// the services consumed by the CLI and TUI.
package taskdeck

import (
	"github.com/colonyops/taskdeck/internal/core/config"
	"github.com/colonyops/taskdeck/internal/core/eventbus"
	"github.com/colonyops/taskdeck/internal/core/kv"
	"github.com/colonyops/taskdeck/internal/core/task"
	"github.com/rs/zerolog"
)

// App is the central entry point for all taskdeck operations.
// Commands and TUI consume App instead of cherry-picking raw dependencies.
type App struct {
	Tasks    *TaskService
	Settings *SettingsService

	Config *config.Config
	Bus    *eventbus.EventBus
}

// NewApp constructs an App from explicit dependencies.
func NewApp(store kv.KV, cfg *config.Config, bus *eventbus.EventBus, log zerolog.Logger) *App {
	taskStore := task.NewStore(store, log)
	taskStore.Load()

	return &App{
		Tasks:    NewTaskService(taskStore, bus, log),
		Settings: NewSettingsService(store, bus, log),
		Config:   cfg,
		Bus:      bus,
	}
}
