package taskdeck

import (
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/colonyops/taskdeck/internal/core/eventbus"
	"github.com/colonyops/taskdeck/internal/core/task"
)

// TaskService wraps the task store with event publishing. Every
// successful mutation publishes its typed event followed by
// tasks.changed, in that order, after the persistence attempt has
// completed. A persistence failure does not suppress the events: the
// in-memory state did change and listeners must refresh, but the
// failure is additionally published so the UI can surface it.
type TaskService struct {
	store *task.Store
	bus   *eventbus.EventBus
	log   zerolog.Logger
}

// NewTaskService creates a new TaskService.
func NewTaskService(store *task.Store, bus *eventbus.EventBus, log zerolog.Logger) *TaskService {
	return &TaskService{
		store: store,
		bus:   bus,
		log:   log.With().Str("component", "task-service").Logger(),
	}
}

// Add creates a new task from the draft.
func (s *TaskService) Add(draft task.Draft) (task.Task, error) {
	t, err := s.store.Add(draft)
	if err != nil && !errors.Is(err, task.ErrNotPersisted) {
		return task.Task{}, err
	}

	s.reportPersist("add", err)
	s.bus.PublishTaskCreated(eventbus.TaskCreatedPayload{Task: &t})
	s.bus.PublishTasksChanged(eventbus.TasksChangedPayload{})

	return t, err
}

// Update applies a patch to an existing task.
func (s *TaskService) Update(id string, patch task.Patch) (task.Task, error) {
	t, err := s.store.Update(id, patch)
	if err != nil && !errors.Is(err, task.ErrNotPersisted) {
		return task.Task{}, err
	}

	s.reportPersist("edit", err)
	s.bus.PublishTaskUpdated(eventbus.TaskUpdatedPayload{Task: &t})
	s.bus.PublishTasksChanged(eventbus.TasksChangedPayload{})

	return t, err
}

// Remove deletes a task. Removing a nonexistent id is a no-op and
// publishes nothing.
func (s *TaskService) Remove(id string) error {
	removed, err := s.store.Remove(id)
	if err != nil && !errors.Is(err, task.ErrNotPersisted) {
		return err
	}
	if !removed {
		s.log.Debug().Str("id", id).Msg("remove of unknown task id, ignoring")
		return nil
	}

	s.reportPersist("delete", err)
	s.bus.PublishTaskDeleted(eventbus.TaskDeletedPayload{ID: id})
	s.bus.PublishTasksChanged(eventbus.TasksChangedPayload{})

	return err
}

// Toggle flips a task between pending and completed.
func (s *TaskService) Toggle(id string) (task.Task, error) {
	t, err := s.store.Toggle(id)
	if err != nil && !errors.Is(err, task.ErrNotPersisted) {
		return task.Task{}, err
	}

	s.reportPersist("toggle", err)
	s.bus.PublishTaskToggled(eventbus.TaskToggledPayload{Task: &t})
	s.bus.PublishTasksChanged(eventbus.TasksChangedPayload{})

	return t, err
}

// Get returns a single task by id.
func (s *TaskService) Get(id string) (task.Task, error) {
	return s.store.Get(id)
}

// List returns the full collection, newest first.
func (s *TaskService) List() []task.Task {
	return s.store.List()
}

// Filtered returns the tasks matching the selection at the current time.
func (s *TaskService) Filtered(sel task.Selection) []task.Task {
	return task.Filter(s.store.List(), sel, time.Now())
}

// Stats returns aggregate counts over the full collection at the
// current time.
func (s *TaskService) Stats() task.Summary {
	return task.Stats(s.store.List(), time.Now())
}

func (s *TaskService) reportPersist(op string, err error) {
	if err == nil {
		return
	}
	s.bus.PublishPersistFailed(eventbus.PersistFailedPayload{Op: op, Err: err.Error()})
}
