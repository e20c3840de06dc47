// Package domain contains the core business entities for Pomo:
// the timer engine, tasks, and session records. These are independent
// of any external frameworks or infrastructure.
package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Common domain errors.
var (
	ErrEmptyTaskTitle  = errors.New("task title cannot be empty")
	ErrTaskNotFound    = errors.New("task not found")
	ErrInvalidPriority = errors.New("invalid priority")
	ErrInvalidEstimate = errors.New("estimated pomodoros must be positive")
)

// Priority is the urgency bucket of a task.
type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

// Rank returns the sort rank of a priority, lower sorts first.
// Unknown priorities sort last.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	case PriorityLow:
		return 2
	default:
		return 3
	}
}

// ParsePriority validates a priority string. Matching is
// case-insensitive so CLI flags can use lowercase values.
func ParsePriority(s string) (Priority, error) {
	for _, p := range []Priority{PriorityHigh, PriorityMedium, PriorityLow} {
		if strings.EqualFold(s, string(p)) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidPriority, s)
}

// Task represents a unit of work tracked against pomodoro sessions.
// IDs are assigned by the task store and are never reused.
type Task struct {
	ID                 int       `json:"id"`
	Title              string    `json:"title"`
	Priority           Priority  `json:"priority"`
	EstimatedPomodoros int       `json:"estimated_pomodoros"`
	CompletedPomodoros int       `json:"completed_pomodoros"`
	Completed          bool      `json:"completed"`
	CreatedAt          time.Time `json:"created_at"`
}

// NewTask creates a task with the given identity and attributes.
// CreatedAt is set once here and never changes afterwards.
func NewTask(id int, title string, priority Priority, estimated int, now time.Time) (*Task, error) {
	if title == "" {
		return nil, ErrEmptyTaskTitle
	}
	if _, err := ParsePriority(string(priority)); err != nil {
		return nil, err
	}
	if estimated < 1 {
		return nil, ErrInvalidEstimate
	}

	return &Task{
		ID:                 id,
		Title:              title,
		Priority:           priority,
		EstimatedPomodoros: estimated,
		CreatedAt:          now,
	}, nil
}

// TaskEdit describes a partial update; nil fields are left untouched.
type TaskEdit struct {
	Title     *string
	Priority  *Priority
	Estimated *int
}

// Apply copies the non-nil fields of the edit onto the task.
func (t *Task) Apply(edit TaskEdit) {
	if edit.Title != nil && *edit.Title != "" {
		t.Title = *edit.Title
	}
	if edit.Priority != nil {
		t.Priority = *edit.Priority
	}
	if edit.Estimated != nil && *edit.Estimated > 0 {
		t.EstimatedPomodoros = *edit.Estimated
	}
}

// ProgressLabel returns completed/estimated as a string like "2/5".
func (t *Task) ProgressLabel() string {
	return fmt.Sprintf("%d/%d", t.CompletedPomodoros, t.EstimatedPomodoros)
}
