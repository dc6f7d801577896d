package taskdeck

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/taskdeck/internal/core/eventbus"
	"github.com/colonyops/taskdeck/internal/core/eventbus/testbus"
	"github.com/colonyops/taskdeck/internal/core/kv"
	"github.com/colonyops/taskdeck/internal/core/task"
	"github.com/colonyops/taskdeck/internal/store/jsonfile"
)

func newTestService(t *testing.T) (*TaskService, *testbus.Bus) {
	t.Helper()

	store := jsonfile.New(filepath.Join(t.TempDir(), "taskdeck.json"))
	tb := testbus.New(t)

	taskStore := task.NewStore(store, zerolog.Nop())
	taskStore.Load()

	return NewTaskService(taskStore, tb.EventBus, zerolog.Nop()), tb
}

func TestTaskService_AddPublishesEvents(t *testing.T) {
	svc, tb := newTestService(t)

	created, err := svc.Add(task.Draft{Title: "buy milk"})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	tb.AssertPublished(t, eventbus.EventTaskCreated)
	tb.AssertPublished(t, eventbus.EventTasksChanged)
}

func TestTaskService_AddValidationPublishesNothing(t *testing.T) {
	svc, tb := newTestService(t)

	_, err := svc.Add(task.Draft{Title: "   "})
	assert.ErrorIs(t, err, task.ErrEmptyTitle)

	tb.AssertNotPublished(t, eventbus.EventTaskCreated, 50*time.Millisecond)
	tb.AssertNotPublished(t, eventbus.EventTasksChanged, 0)
}

func TestTaskService_UpdatePublishesEvents(t *testing.T) {
	svc, tb := newTestService(t)

	created, err := svc.Add(task.Draft{Title: "draft"})
	require.NoError(t, err)
	tb.Reset()

	title := "final"
	updated, err := svc.Update(created.ID, task.Patch{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "final", updated.Title)

	tb.AssertPublished(t, eventbus.EventTaskUpdated)
	tb.AssertPublished(t, eventbus.EventTasksChanged)
}

func TestTaskService_RemoveUnknownIDPublishesNothing(t *testing.T) {
	svc, tb := newTestService(t)

	require.NoError(t, svc.Remove("no-such-id"))

	tb.AssertNotPublished(t, eventbus.EventTaskDeleted, 50*time.Millisecond)
	tb.AssertNotPublished(t, eventbus.EventTasksChanged, 0)
}

func TestTaskService_RemovePublishesEvents(t *testing.T) {
	svc, tb := newTestService(t)

	created, err := svc.Add(task.Draft{Title: "doomed"})
	require.NoError(t, err)
	tb.Reset()

	require.NoError(t, svc.Remove(created.ID))

	tb.AssertPublished(t, eventbus.EventTaskDeleted)
	tb.AssertPublished(t, eventbus.EventTasksChanged)
	assert.Empty(t, svc.List())
}

func TestTaskService_TogglePublishesStatus(t *testing.T) {
	svc, tb := newTestService(t)

	created, err := svc.Add(task.Draft{Title: "flip"})
	require.NoError(t, err)
	tb.Reset()

	toggled, err := svc.Toggle(created.ID)
	require.NoError(t, err)
	assert.Equal(t, task.StatusCompleted, toggled.Status)

	tb.AssertPublished(t, eventbus.EventTaskToggled)
}

// failKV wraps a kv.KV and fails every write.
type failKV struct {
	kv.KV
}

func (f *failKV) Set(string, any) error {
	return errors.New("quota exceeded")
}

func TestTaskService_PersistFailureStillNotifies(t *testing.T) {
	tb := testbus.New(t)
	store := &failKV{KV: jsonfile.New(filepath.Join(t.TempDir(), "taskdeck.json"))}

	taskStore := task.NewStore(store, zerolog.Nop())
	taskStore.Load()
	svc := NewTaskService(taskStore, tb.EventBus, zerolog.Nop())

	created, err := svc.Add(task.Draft{Title: "ghost"})
	require.ErrorIs(t, err, task.ErrNotPersisted)

	// Optimistic in-memory update: the task exists for this session.
	require.Len(t, svc.List(), 1)
	assert.Equal(t, created.ID, svc.List()[0].ID)

	// Listeners are told both about the change and the failed write.
	tb.AssertPublished(t, eventbus.EventTaskCreated)
	tb.AssertPublished(t, eventbus.EventTasksChanged)
	tb.AssertPublished(t, eventbus.EventPersistFailed)
}

func TestTaskService_FilteredAndStats(t *testing.T) {
	svc, _ := newTestService(t)

	a, err := svc.Add(task.Draft{Title: "old", DueDate: "2000-01-01", Priority: task.PriorityHigh})
	require.NoError(t, err)
	_, err = svc.Add(task.Draft{Title: "future", DueDate: "2099-01-01"})
	require.NoError(t, err)

	overdue := svc.Filtered(task.SelectionOverdue)
	require.Len(t, overdue, 1)
	assert.Equal(t, a.ID, overdue[0].ID)

	sum := svc.Stats()
	assert.Equal(t, 2, sum.Total)
	assert.Equal(t, sum.Total, sum.Completed+sum.Pending)
	assert.Equal(t, 1, sum.Overdue)
}
