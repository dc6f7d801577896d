// Package eventbus provides a typed publish/subscribe event bus for
// cross-component communication within taskdeck.
package eventbus

import (
	"github.com/colonyops/taskdeck/internal/core/notify"
	"github.com/colonyops/taskdeck/internal/core/task"
)

// Event identifies an event type on the bus.
type Event string

// All event types, sorted A-Z.
const (
	EventNotificationPublished Event = "notification.published"
	EventPersistFailed         Event = "persist.failed"
	EventTaskCreated           Event = "task.created"
	EventTaskDeleted           Event = "task.deleted"
	EventTaskToggled           Event = "task.toggled"
	EventTaskUpdated           Event = "task.updated"
	EventTasksChanged          Event = "tasks.changed"
	EventThemeChanged          Event = "theme.changed"
)

// TaskCreatedPayload is emitted when a new task is added.
type TaskCreatedPayload struct {
	Task *task.Task
}

// TaskUpdatedPayload is emitted when a task's fields are edited.
type TaskUpdatedPayload struct {
	Task *task.Task
}

// TaskDeletedPayload is emitted when a task is removed.
type TaskDeletedPayload struct {
	ID string
}

// TaskToggledPayload is emitted when a task's status is flipped.
type TaskToggledPayload struct {
	Task *task.Task
}

// TasksChangedPayload is emitted after every successful store mutation,
// once the persistence attempt has completed. It carries no data;
// listeners re-read the store.
type TasksChangedPayload struct{}

// ThemeChangedPayload is emitted when the dark-mode preference flips.
type ThemeChangedPayload struct {
	Dark bool
}

// PersistFailedPayload is emitted when a storage write fails. The
// in-memory mutation has already been applied.
type PersistFailedPayload struct {
	Op  string
	Err string
}

// NotificationPublishedPayload is the user-facing toast stream.
type NotificationPublishedPayload struct {
	Level   notify.Level
	Message string
}
