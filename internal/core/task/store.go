package task

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/colonyops/taskdeck/internal/core/kv"
	"github.com/colonyops/taskdeck/pkg/randid"
)

// StorageKey is the key the full task list is persisted under.
const StorageKey = "tasks"

var (
	// ErrEmptyTitle is returned when a title is empty after trimming.
	ErrEmptyTitle = errors.New("task title cannot be empty")
	// ErrNotFound is returned when a task id does not exist.
	ErrNotFound = errors.New("task not found")
	// ErrInvalidPriority is returned for an unknown priority value.
	ErrInvalidPriority = errors.New("invalid task priority")
	// ErrNotPersisted marks a storage write failure. The in-memory list
	// already reflects the mutation; only durability is in doubt.
	ErrNotPersisted = errors.New("task list not persisted")
)

// Store is the single source of truth for the task collection. It owns
// the in-memory list (newest first) and rewrites the full list to the
// key-value store on every mutation.
//
// Mutations are optimistic: the in-memory list is updated before the
// persistence attempt, and a failed write surfaces as ErrNotPersisted
// without rolling back. The in-session view stays consistent even when
// the disk is full.
type Store struct {
	mu    sync.RWMutex
	tasks []Task

	kv  kv.KV
	log zerolog.Logger
	now func() time.Time
}

// NewStore creates a task store backed by the given key-value store.
func NewStore(store kv.KV, log zerolog.Logger) *Store {
	return &Store{
		kv:  store,
		log: log.With().Str("component", "task-store").Logger(),
		now: time.Now,
	}
}

// Load reads the persisted collection. Absent or corrupt data degrades
// to an empty collection; Load never fails the caller.
func (s *Store) Load() {
	s.mu.Lock()
	defer s.mu.Unlock()

	var tasks []Task
	err := s.kv.Get(StorageKey, &tasks)
	switch {
	case err == nil:
		s.tasks = tasks
	case errors.Is(err, kv.ErrNotFound):
		s.tasks = nil
	default:
		s.log.Warn().Err(err).Msg("corrupt task data, starting with empty list")
		s.tasks = nil
	}
}

// List returns a snapshot of the full collection, newest first.
func (s *Store) List() []Task {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Get returns a task by id. Returns ErrNotFound if absent.
func (s *Store) Get(id string) (Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, t := range s.tasks {
		if t.ID == id {
			return t, nil
		}
	}
	return Task{}, fmt.Errorf("get %q: %w", id, ErrNotFound)
}

// Add validates the draft, assigns id and creation time, prepends the
// task, and persists. Validation failures leave the collection
// unchanged; a persistence failure returns the created task alongside
// an ErrNotPersisted error.
func (s *Store) Add(draft Draft) (Task, error) {
	title := strings.TrimSpace(draft.Title)
	if title == "" {
		return Task{}, ErrEmptyTitle
	}

	priority := draft.Priority
	if priority == "" {
		priority = PriorityMedium
	}
	if !priority.IsValid() {
		return Task{}, fmt.Errorf("%w: %q", ErrInvalidPriority, priority)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	t := Task{
		ID:          newID(now),
		Title:       title,
		Description: draft.Description,
		DueDate:     draft.DueDate,
		Priority:    priority,
		Status:      StatusPending,
		CreatedAt:   now,
	}

	s.tasks = append([]Task{t}, s.tasks...)
	return t, s.persistLocked()
}

// Update merges the patch onto the task with the given id, validates
// the result, and persists. Returns ErrNotFound for a missing id and
// ErrEmptyTitle when the merged title is empty.
func (s *Store) Update(id string, patch Patch) (Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexLocked(id)
	if idx < 0 {
		return Task{}, fmt.Errorf("update %q: %w", id, ErrNotFound)
	}

	merged := patch.Apply(s.tasks[idx])
	merged.Title = strings.TrimSpace(merged.Title)
	if merged.Title == "" {
		return Task{}, ErrEmptyTitle
	}
	if !merged.Priority.IsValid() {
		return Task{}, fmt.Errorf("%w: %q", ErrInvalidPriority, merged.Priority)
	}

	s.tasks[idx] = merged
	return merged, s.persistLocked()
}

// Remove deletes the task with the given id. Removing a nonexistent id
// is a harmless no-op; the returned bool reports whether anything was
// removed.
func (s *Store) Remove(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexLocked(id)
	if idx < 0 {
		return false, nil
	}

	s.tasks = append(s.tasks[:idx], s.tasks[idx+1:]...)
	return true, s.persistLocked()
}

// Toggle flips the status of the task with the given id between
// pending and completed. Returns ErrNotFound for a missing id.
func (s *Store) Toggle(id string) (Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexLocked(id)
	if idx < 0 {
		return Task{}, fmt.Errorf("toggle %q: %w", id, ErrNotFound)
	}

	s.tasks[idx].Status = s.tasks[idx].Status.Toggled()
	return s.tasks[idx], s.persistLocked()
}

func (s *Store) indexLocked(id string) int {
	for i, t := range s.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// persistLocked rewrites the full collection to the key-value store.
// Callers must hold the write lock.
func (s *Store) persistLocked() error {
	if err := s.kv.Set(StorageKey, s.tasks); err != nil {
		s.log.Error().Err(err).Msg("persist task list")
		return fmt.Errorf("%w: %w", ErrNotPersisted, err)
	}
	return nil
}

// newID derives a unique id from the creation instant plus a random
// suffix, so two tasks created in the same instant never collide.
func newID(now time.Time) string {
	return strconv.FormatInt(now.UnixNano(), 36) + randid.Generate(4)
}
