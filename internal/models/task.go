package models

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrInvalidDueDate      = errors.New("due date must be a YYYY-MM-DD date or TBD")
	ErrInvalidStatusFilter = errors.New("status must be one of all, pending, completed")
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"

	// PriorityTBD only appears on AI suggestions; it never reaches the store.
	PriorityTBD Priority = "TBD"
)

// IsCanonical reports whether p is one of low, medium or high.
func (p Priority) IsCanonical() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Normalize maps p onto a canonical priority. Placeholders and unknown
// values become medium, the default of the task form.
func (p Priority) Normalize() Priority {
	normalized := Priority(strings.ToLower(strings.TrimSpace(string(p))))
	if normalized.IsCanonical() {
		return normalized
	}
	return PriorityMedium
}

// DueDate is either empty, a calendar date in DateLayout, or DueDateTBD.
type DueDate string

const (
	DueDateTBD DueDate = "TBD"
	DateLayout         = "2006-01-02"
)

// ParseDueDate accepts an empty string, "TBD" in any case, a calendar date
// or an RFC 3339 timestamp (reduced to its date part).
func ParseDueDate(value string) (DueDate, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", nil
	}
	if strings.EqualFold(value, string(DueDateTBD)) {
		return DueDateTBD, nil
	}
	if t, err := time.Parse(DateLayout, value); err == nil {
		return DueDate(t.Format(DateLayout)), nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return DueDate(t.Format(DateLayout)), nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidDueDate, value)
}

// Time returns the calendar date, if one is set.
func (d DueDate) Time() (time.Time, bool) {
	t, err := time.Parse(DateLayout, string(d))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Task is a persisted unit of work.
type Task struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	DueDate     DueDate  `json:"dueDate"`
	Priority    Priority `json:"priority"`
	IsCompleted bool     `json:"isCompleted"`
}

// TaskDraft is a task that has not been given an id yet.
type TaskDraft struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	DueDate     DueDate  `json:"dueDate"`
	Priority    Priority `json:"priority"`
}

// Draft returns the editable fields of t.
func (t Task) Draft() TaskDraft {
	return TaskDraft{
		Title:       t.Title,
		Description: t.Description,
		DueDate:     t.DueDate,
		Priority:    t.Priority,
	}
}

// TaskStats holds the counts shown above a task list.
type TaskStats struct {
	Total     int `json:"total"`
	Pending   int `json:"pending"`
	Completed int `json:"completed"`
}

type StatusFilter string

const (
	StatusAll       StatusFilter = "all"
	StatusPending   StatusFilter = "pending"
	StatusCompleted StatusFilter = "completed"
)

// ParseStatusFilter parses a status filter; an empty value means all.
func ParseStatusFilter(value string) (StatusFilter, error) {
	switch StatusFilter(strings.ToLower(strings.TrimSpace(value))) {
	case "", StatusAll:
		return StatusAll, nil
	case StatusPending:
		return StatusPending, nil
	case StatusCompleted:
		return StatusCompleted, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStatusFilter, value)
}

// Matches reports whether task passes the filter.
func (f StatusFilter) Matches(task Task) bool {
	switch f {
	case StatusCompleted:
		return task.IsCompleted
	case StatusPending:
		return !task.IsCompleted
	default:
		return true
	}
}
