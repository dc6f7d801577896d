package tui

import (
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/taskdeck/internal/core/config"
	"github.com/colonyops/taskdeck/internal/core/eventbus"
	"github.com/colonyops/taskdeck/internal/core/notify"
	"github.com/colonyops/taskdeck/internal/core/task"
	"github.com/colonyops/taskdeck/internal/store/jsonfile"
	"github.com/colonyops/taskdeck/internal/taskdeck"
)

func newTestModel(t *testing.T, drafts ...task.Draft) Model {
	t.Helper()

	store := jsonfile.New(filepath.Join(t.TempDir(), "taskdeck.json"))
	cfg := config.DefaultConfig()
	bus := eventbus.New(16)
	app := taskdeck.NewApp(store, &cfg, bus, zerolog.Nop())

	for _, d := range drafts {
		_, err := app.Tasks.Add(d)
		require.NoError(t, err)
	}

	return New(Deps{App: app})
}

func keyPress(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	out, ok := next.(Model)
	require.True(t, ok)
	return out
}

func TestModel_CycleFilterWraps(t *testing.T) {
	m := newTestModel(t)

	assert.Equal(t, task.SelectionAll, m.selection())

	for range task.Selections() {
		m = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	}
	assert.Equal(t, task.SelectionAll, m.selection(), "full cycle returns to start")

	m = update(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, task.SelectionOverdue, m.selection(), "backwards wraps to the end")
}

func TestModel_CursorClamps(t *testing.T) {
	m := newTestModel(t,
		task.Draft{Title: "one"},
		task.Draft{Title: "two"},
	)

	m = update(t, m, keyPress('k'))
	assert.Equal(t, 0, m.cursor, "cannot move above the first row")

	m = update(t, m, keyPress('j'))
	assert.Equal(t, 1, m.cursor)

	m = update(t, m, keyPress('j'))
	assert.Equal(t, 1, m.cursor, "cannot move past the last row")
}

func TestModel_ToggleKeyFlipsTask(t *testing.T) {
	m := newTestModel(t, task.Draft{Title: "flip me"})

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	got, ok := m.selected()
	require.True(t, ok)
	assert.Equal(t, task.StatusCompleted, got.Status)
	assert.Equal(t, 1, m.summary.Completed, "stats refresh with the toggle")
}

func TestModel_DeleteKeyRemovesAndReclampsCursor(t *testing.T) {
	m := newTestModel(t,
		task.Draft{Title: "newest"},
		task.Draft{Title: "oldest"},
	)

	m = update(t, m, keyPress('j'))
	require.Equal(t, 1, m.cursor)

	m = update(t, m, keyPress('d'))
	assert.Len(t, m.visible, 1)
	assert.Equal(t, 0, m.cursor, "cursor pulled back into range")

	m = update(t, m, keyPress('d'))
	assert.Empty(t, m.visible)

	// Delete on an empty list is a no-op.
	m = update(t, m, keyPress('d'))
	assert.Empty(t, m.visible)
}

func TestModel_FilterChangeResetsCursor(t *testing.T) {
	m := newTestModel(t,
		task.Draft{Title: "a"},
		task.Draft{Title: "b"},
		task.Draft{Title: "c"},
	)

	m = update(t, m, keyPress('j'))
	m = update(t, m, keyPress('j'))
	require.Equal(t, 2, m.cursor)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, task.SelectionPending, m.selection())
	assert.Equal(t, 0, m.cursor)
}

func TestModel_ToastLifecycle(t *testing.T) {
	m := newTestModel(t)

	m = update(t, m, NotificationMsg{Notification: notify.Notification{
		Level:   notify.LevelSuccess,
		Message: "task added",
	}})
	require.NotNil(t, m.toast)

	// A stale expiry must not clear a newer toast.
	m = update(t, m, NotificationMsg{Notification: notify.Notification{
		Level:   notify.LevelInfo,
		Message: "second",
	}})
	m = update(t, m, clearToastMsg{seq: m.toastSeq - 1})
	require.NotNil(t, m.toast)
	assert.Equal(t, "second", m.toast.Message)

	m = update(t, m, clearToastMsg{seq: m.toastSeq})
	assert.Nil(t, m.toast)
}

func TestModel_TasksChangedRefreshes(t *testing.T) {
	m := newTestModel(t)
	require.Empty(t, m.visible)

	_, err := m.deps.App.Tasks.Add(task.Draft{Title: "out of band"})
	require.NoError(t, err)

	m = update(t, m, TasksChangedMsg{})
	assert.Len(t, m.visible, 1)
	assert.Equal(t, 1, m.summary.Total)
}

func TestWindow(t *testing.T) {
	tests := []struct {
		name      string
		cursor    int
		total     int
		height    int
		wantStart int
		wantEnd   int
	}{
		{name: "fits entirely", cursor: 0, total: 3, height: 10, wantStart: 0, wantEnd: 3},
		{name: "cursor at top", cursor: 0, total: 20, height: 5, wantStart: 0, wantEnd: 5},
		{name: "cursor centered", cursor: 10, total: 20, height: 5, wantStart: 8, wantEnd: 13},
		{name: "cursor at bottom", cursor: 19, total: 20, height: 5, wantStart: 15, wantEnd: 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := window(tt.cursor, tt.total, tt.height)
			assert.Equal(t, tt.wantStart, start)
			assert.Equal(t, tt.wantEnd, end)
		})
	}
}
