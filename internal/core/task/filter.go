package task

import "time"

// Selection names a filtered view of the task list. Selections are
// UI-local state and are never persisted.
type Selection string

const (
	SelectionAll       Selection = "all"
	SelectionPending   Selection = "pending"
	SelectionCompleted Selection = "completed"
	SelectionHigh      Selection = "high"
	SelectionOverdue   Selection = "overdue"
)

// Selections returns all selections in display order.
func Selections() []Selection {
	return []Selection{
		SelectionAll,
		SelectionPending,
		SelectionCompleted,
		SelectionHigh,
		SelectionOverdue,
	}
}

// IsValid reports whether s is a known selection.
func (s Selection) IsValid() bool {
	switch s {
	case SelectionAll, SelectionPending, SelectionCompleted, SelectionHigh, SelectionOverdue:
		return true
	}
	return false
}

// Summary holds aggregate counts over the full task list.
type Summary struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
	Pending   int `json:"pending"`
	Overdue   int `json:"overdue"`
}

// IsOverdue reports whether a due date lies strictly before now.
// The comparison is date-only: both sides are truncated to their
// calendar date, so a task due today is not overdue until tomorrow.
// Unparseable due dates are never overdue.
//
// The helper is status-agnostic; callers exclude completed tasks.
func IsOverdue(dueDate string, now time.Time) bool {
	due, err := time.Parse(DateLayout, dueDate)
	if err != nil {
		return false
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return due.Before(today)
}

// Filter returns the subsequence of tasks matching the selection,
// preserving input order. An unknown selection behaves like
// SelectionAll.
func Filter(tasks []Task, sel Selection, now time.Time) []Task {
	if sel == SelectionAll || !sel.IsValid() {
		out := make([]Task, len(tasks))
		copy(out, tasks)
		return out
	}

	out := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if matches(t, sel, now) {
			out = append(out, t)
		}
	}
	return out
}

func matches(t Task, sel Selection, now time.Time) bool {
	switch sel {
	case SelectionPending:
		return t.Status == StatusPending
	case SelectionCompleted:
		return t.Status == StatusCompleted
	case SelectionHigh:
		return t.Priority == PriorityHigh
	case SelectionOverdue:
		return t.Status != StatusCompleted && IsOverdue(t.DueDate, now)
	}
	return true
}

// Stats computes aggregate counts over the full task list using the
// same predicates as Filter.
func Stats(tasks []Task, now time.Time) Summary {
	sum := Summary{Total: len(tasks)}
	for _, t := range tasks {
		switch t.Status {
		case StatusCompleted:
			sum.Completed++
		default:
			sum.Pending++
			if IsOverdue(t.DueDate, now) {
				sum.Overdue++
			}
		}
	}
	return sum
}
