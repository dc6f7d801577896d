// Package validate provides shared validation functions.
package validate

import (
	"fmt"
	"strings"
	"time"

	"github.com/hay-kot/criterio"
)

// Title validates a task title is non-empty after trimming whitespace.
func Title(title string) error {
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("title is required")
	}
	return nil
}

// TitleField returns a criterio field error for task titles.
func TitleField(field, title string) error {
	return criterio.Run(field, title, Title)
}

// DueDate validates a due date is in YYYY-MM-DD form.
func DueDate(date string) error {
	if date == "" {
		return fmt.Errorf("due date is required")
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return fmt.Errorf("due date must be YYYY-MM-DD, got %q", date)
	}
	return nil
}

// DueDateField returns a criterio field error for due dates.
func DueDateField(field, date string) error {
	return criterio.Run(field, date, DueDate)
}
