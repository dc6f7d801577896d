package task

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(s string) time.Time {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func ids(tasks []Task) []string {
	out := make([]string, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.ID)
	}
	return out
}

func TestIsOverdue(t *testing.T) {
	now := time.Date(2024, 3, 15, 13, 30, 0, 0, time.UTC)

	tests := []struct {
		name    string
		dueDate string
		want    bool
	}{
		{"yesterday", "2024-03-14", true},
		{"far past", "2000-01-01", true},
		{"today is not overdue", "2024-03-15", false},
		{"tomorrow", "2024-03-16", false},
		{"far future", "2099-01-01", false},
		{"malformed date", "not-a-date", false},
		{"empty date", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsOverdue(tt.dueDate, now))
		})
	}
}

func TestIsOverdue_TimeOfDayIrrelevant(t *testing.T) {
	// Date-only comparison: the due day itself never counts as overdue,
	// no matter how late in the day "now" is.
	lateNight := time.Date(2024, 3, 15, 23, 59, 59, 0, time.UTC)
	assert.False(t, IsOverdue("2024-03-15", lateNight))
	assert.True(t, IsOverdue("2024-03-14", time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)))
}

func TestFilter(t *testing.T) {
	now := date("2024-01-01")
	tasks := []Task{
		{ID: "1", Status: StatusPending, Priority: PriorityHigh, DueDate: "2000-01-01"},
		{ID: "2", Status: StatusCompleted, Priority: PriorityLow, DueDate: "2099-01-01"},
	}

	tests := []struct {
		sel  Selection
		want []string
	}{
		{SelectionAll, []string{"1", "2"}},
		{SelectionPending, []string{"1"}},
		{SelectionCompleted, []string{"2"}},
		{SelectionHigh, []string{"1"}},
		{SelectionOverdue, []string{"1"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.sel), func(t *testing.T) {
			assert.Equal(t, tt.want, ids(Filter(tasks, tt.sel, now)))
		})
	}
}

func TestFilter_CompletedNeverOverdue(t *testing.T) {
	now := date("2024-01-01")
	tasks := []Task{
		{ID: "1", Status: StatusCompleted, DueDate: "2000-01-01"},
	}

	assert.Empty(t, Filter(tasks, SelectionOverdue, now), "a completed task is excluded from overdue even with a past due date")
	assert.Equal(t, 0, Stats(tasks, now).Overdue)
}

func TestFilter_PreservesOrder(t *testing.T) {
	now := date("2024-01-01")
	tasks := []Task{
		{ID: "c", Status: StatusPending},
		{ID: "a", Status: StatusPending},
		{ID: "b", Status: StatusCompleted},
		{ID: "d", Status: StatusPending},
	}

	assert.Equal(t, []string{"c", "a", "d"}, ids(Filter(tasks, SelectionPending, now)))
}

func TestFilter_UnknownSelectionBehavesLikeAll(t *testing.T) {
	now := date("2024-01-01")
	tasks := []Task{{ID: "1"}, {ID: "2"}}

	assert.Equal(t, []string{"1", "2"}, ids(Filter(tasks, Selection("bogus"), now)))
}

func TestFilter_DoesNotAliasInput(t *testing.T) {
	now := date("2024-01-01")
	tasks := []Task{{ID: "1", Title: "original"}}

	got := Filter(tasks, SelectionAll, now)
	got[0].Title = "changed"

	assert.Equal(t, "original", tasks[0].Title)
}

func TestStats(t *testing.T) {
	now := date("2024-06-01")
	tasks := []Task{
		{ID: "1", Status: StatusPending, DueDate: "2024-05-01"},  // pending, overdue
		{ID: "2", Status: StatusPending, DueDate: "2024-07-01"},  // pending
		{ID: "3", Status: StatusCompleted, DueDate: "2024-05-01"}, // completed, past date
		{ID: "4", Status: StatusCompleted, DueDate: "2024-07-01"}, // completed
		{ID: "5", Status: StatusPending, DueDate: ""},            // pending, no due date
	}

	sum := Stats(tasks, now)

	assert.Equal(t, Summary{Total: 5, Completed: 2, Pending: 3, Overdue: 1}, sum)
}

func TestStats_Consistency(t *testing.T) {
	now := date("2024-06-01")

	collections := [][]Task{
		nil,
		{{ID: "1", Status: StatusPending, DueDate: "2000-01-01"}},
		{
			{ID: "1", Status: StatusPending, DueDate: "2000-01-01"},
			{ID: "2", Status: StatusPending, DueDate: "2099-01-01"},
			{ID: "3", Status: StatusCompleted, DueDate: "2000-01-01"},
		},
	}

	for _, tasks := range collections {
		sum := Stats(tasks, now)
		assert.Equal(t, sum.Total, sum.Completed+sum.Pending)
		assert.LessOrEqual(t, sum.Overdue, sum.Pending)
	}
}

func TestSelection_IsValid(t *testing.T) {
	for _, sel := range Selections() {
		assert.True(t, sel.IsValid(), "selection %q", sel)
	}
	assert.False(t, Selection("bogus").IsValid())
	assert.False(t, Selection("").IsValid())
}
