package task

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/taskdeck/internal/core/kv"
)

// memKV is an in-memory kv.KV with optional write-failure injection.
type memKV struct {
	data   map[string]json.RawMessage
	setErr error
}

func newMemKV() *memKV {
	return &memKV{data: map[string]json.RawMessage{}}
}

func (m *memKV) Get(key string, dest any) error {
	raw, ok := m.data[key]
	if !ok {
		return fmt.Errorf("get %q: %w", key, kv.ErrNotFound)
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("get %q unmarshal: %w", key, err)
	}
	return nil
}

func (m *memKV) Set(key string, value any) error {
	if m.setErr != nil {
		return m.setErr
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.data[key] = raw
	return nil
}

func (m *memKV) Delete(key string) error {
	delete(m.data, key)
	return nil
}

func (m *memKV) Has(key string) (bool, error) {
	_, ok := m.data[key]
	return ok, nil
}

func (m *memKV) ListKeys() ([]string, error) {
	keys := make([]string, 0, len(m.data))
	for k := range m.data {
		keys = append(keys, k)
	}
	return keys, nil
}

func newTestStore(t *testing.T) (*Store, *memKV) {
	t.Helper()

	mem := newMemKV()
	s := NewStore(mem, zerolog.Nop())

	// Deterministic, strictly increasing clock so CreatedAt comparisons
	// survive a JSON round trip (no monotonic reading, no wall drift).
	tick := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time {
		tick = tick.Add(time.Second)
		return tick
	}

	return s, mem
}

func TestStore_AddAssignsFields(t *testing.T) {
	s, _ := newTestStore(t)

	got, err := s.Add(Draft{Title: "  write report  ", Description: "quarterly", DueDate: "2024-03-10"})
	require.NoError(t, err)

	assert.NotEmpty(t, got.ID)
	assert.Equal(t, "write report", got.Title, "title is trimmed")
	assert.Equal(t, "quarterly", got.Description)
	assert.Equal(t, "2024-03-10", got.DueDate)
	assert.Equal(t, PriorityMedium, got.Priority, "priority defaults to medium")
	assert.Equal(t, StatusPending, got.Status)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestStore_AddRejectsEmptyTitle(t *testing.T) {
	tests := []struct {
		name  string
		title string
	}{
		{"empty", ""},
		{"spaces", "   "},
		{"tabs and newlines", "\t\n "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, mem := newTestStore(t)

			_, err := s.Add(Draft{Title: tt.title})
			assert.ErrorIs(t, err, ErrEmptyTitle)
			assert.Empty(t, s.List(), "collection unchanged after rejected add")
			assert.Empty(t, mem.data, "nothing persisted after rejected add")
		})
	}
}

func TestStore_AddRejectsUnknownPriority(t *testing.T) {
	s, _ := newTestStore(t)

	_, err := s.Add(Draft{Title: "task", Priority: "urgent"})
	assert.ErrorIs(t, err, ErrInvalidPriority)
	assert.Empty(t, s.List())
}

func TestStore_AddNewestFirst(t *testing.T) {
	s, _ := newTestStore(t)

	a, err := s.Add(Draft{Title: "A"})
	require.NoError(t, err)
	b, err := s.Add(Draft{Title: "B"})
	require.NoError(t, err)

	list := s.List()
	require.Len(t, list, 2)
	assert.Equal(t, b.ID, list[0].ID, "newest task comes first")
	assert.Equal(t, a.ID, list[1].ID)
}

func TestStore_AddUniqueIDs(t *testing.T) {
	s, _ := newTestStore(t)

	// Pin the clock so every add happens at the same instant; the
	// random suffix alone must keep ids distinct.
	at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return at }

	seen := make(map[string]bool)
	for i := range 100 {
		got, err := s.Add(Draft{Title: fmt.Sprintf("task %d", i)})
		require.NoError(t, err)
		assert.False(t, seen[got.ID], "duplicate id %q", got.ID)
		seen[got.ID] = true
	}
}

func TestStore_Update(t *testing.T) {
	s, _ := newTestStore(t)

	created, err := s.Add(Draft{Title: "original", Description: "desc", DueDate: "2024-03-10"})
	require.NoError(t, err)

	newTitle := "renamed"
	newPriority := PriorityHigh
	got, err := s.Update(created.ID, Patch{Title: &newTitle, Priority: &newPriority})
	require.NoError(t, err)

	assert.Equal(t, "renamed", got.Title)
	assert.Equal(t, PriorityHigh, got.Priority)
	assert.Equal(t, "desc", got.Description, "unpatched fields preserved")
	assert.Equal(t, "2024-03-10", got.DueDate)
	assert.Equal(t, created.CreatedAt, got.CreatedAt, "createdAt is immutable")
	assert.Equal(t, created.ID, got.ID)

	list := s.List()
	require.Len(t, list, 1)
	assert.Equal(t, got, list[0])
}

func TestStore_UpdateRejectsEmptyTitle(t *testing.T) {
	s, _ := newTestStore(t)

	created, err := s.Add(Draft{Title: "keep me"})
	require.NoError(t, err)

	empty := "   "
	_, err = s.Update(created.ID, Patch{Title: &empty})
	assert.ErrorIs(t, err, ErrEmptyTitle)

	got, err := s.Get(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "keep me", got.Title, "collection unchanged after rejected update")
}

func TestStore_UpdateMissingID(t *testing.T) {
	s, _ := newTestStore(t)

	title := "anything"
	_, err := s.Update("nope", Patch{Title: &title})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_RemoveIsIdempotent(t *testing.T) {
	s, _ := newTestStore(t)

	created, err := s.Add(Draft{Title: "doomed"})
	require.NoError(t, err)

	removed, err := s.Remove(created.ID)
	require.NoError(t, err)
	assert.True(t, removed)
	assert.Empty(t, s.List())

	removed, err = s.Remove(created.ID)
	require.NoError(t, err)
	assert.False(t, removed, "second remove is a no-op")
	assert.Empty(t, s.List())
}

func TestStore_ToggleInvolution(t *testing.T) {
	s, _ := newTestStore(t)

	created, err := s.Add(Draft{Title: "flip me", Description: "desc", DueDate: "2024-03-10"})
	require.NoError(t, err)

	once, err := s.Toggle(created.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, once.Status)

	twice, err := s.Toggle(created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, twice, "double toggle restores the task exactly")
}

func TestStore_ToggleMissingID(t *testing.T) {
	s, _ := newTestStore(t)

	_, err := s.Toggle("nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_PersistFailureIsOptimistic(t *testing.T) {
	s, mem := newTestStore(t)
	mem.setErr = errors.New("quota exceeded")

	got, err := s.Add(Draft{Title: "still here"})
	require.ErrorIs(t, err, ErrNotPersisted)

	list := s.List()
	require.Len(t, list, 1, "in-memory list reflects the mutation despite the write failure")
	assert.Equal(t, got.ID, list[0].ID)
}

func TestStore_LoadAbsentData(t *testing.T) {
	s, _ := newTestStore(t)
	s.Load()
	assert.Empty(t, s.List())
}

func TestStore_LoadCorruptData(t *testing.T) {
	s, mem := newTestStore(t)
	mem.data[StorageKey] = json.RawMessage(`{"not":"an array"`)

	s.Load()
	assert.Empty(t, s.List(), "corrupt data degrades to an empty collection")
}

func TestStore_PersistenceRoundTrip(t *testing.T) {
	s, mem := newTestStore(t)

	_, err := s.Add(Draft{Title: "first", Description: "a", DueDate: "2024-03-10", Priority: PriorityLow})
	require.NoError(t, err)
	_, err = s.Add(Draft{Title: "second", Description: "b", DueDate: "2024-04-01", Priority: PriorityHigh})
	require.NoError(t, err)
	_, err = s.Toggle(s.List()[0].ID)
	require.NoError(t, err)

	reloaded := NewStore(mem, zerolog.Nop())
	reloaded.Load()

	assert.Equal(t, s.List(), reloaded.List(), "round trip preserves order and every field")
}

func TestStore_WireFormat(t *testing.T) {
	s, mem := newTestStore(t)

	_, err := s.Add(Draft{Title: "wire", DueDate: "2024-03-10"})
	require.NoError(t, err)

	var raw []map[string]any
	require.NoError(t, json.Unmarshal(mem.data[StorageKey], &raw))
	require.Len(t, raw, 1)

	for _, field := range []string{"id", "title", "description", "dueDate", "priority", "status", "createdAt"} {
		assert.Contains(t, raw[0], field)
	}
	assert.Equal(t, "pending", raw[0]["status"])
	assert.Equal(t, "medium", raw[0]["priority"])
	assert.Equal(t, "2024-03-10", raw[0]["dueDate"])
}
