package domain

import (
	"errors"
	"testing"
	"time"
)

func TestNewTask(t *testing.T) {
	now := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	task, err := NewTask(1, "Write report", PriorityHigh, 3, now)
	if err != nil {
		t.Fatalf("NewTask() error = %v", err)
	}

	if task.ID != 1 {
		t.Errorf("ID = %d, want 1", task.ID)
	}
	if task.CompletedPomodoros != 0 {
		t.Errorf("CompletedPomodoros = %d, want 0", task.CompletedPomodoros)
	}
	if task.Completed {
		t.Error("new task should not be completed")
	}
	if !task.CreatedAt.Equal(now) {
		t.Errorf("CreatedAt = %v, want %v", task.CreatedAt, now)
	}
}

func TestNewTask_Validation(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name      string
		title     string
		priority  Priority
		estimated int
		wantErr   error
	}{
		{"empty title", "", PriorityHigh, 1, ErrEmptyTaskTitle},
		{"bad priority", "x", Priority("urgent"), 1, ErrInvalidPriority},
		{"zero estimate", "x", PriorityLow, 0, ErrInvalidEstimate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTask(1, tt.title, tt.priority, tt.estimated, now)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("NewTask() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestPriority_Rank(t *testing.T) {
	if !(PriorityHigh.Rank() < PriorityMedium.Rank() && PriorityMedium.Rank() < PriorityLow.Rank()) {
		t.Error("priority ranks must order High < Medium < Low")
	}
	if Priority("bogus").Rank() <= PriorityLow.Rank() {
		t.Error("unknown priority must sort last")
	}
}

func TestTask_Apply(t *testing.T) {
	now := time.Now()
	task, _ := NewTask(1, "Original", PriorityMedium, 2, now)

	title := "Renamed"
	priority := PriorityHigh
	task.Apply(TaskEdit{Title: &title, Priority: &priority})

	if task.Title != "Renamed" {
		t.Errorf("Title = %q, want %q", task.Title, "Renamed")
	}
	if task.Priority != PriorityHigh {
		t.Errorf("Priority = %v, want %v", task.Priority, PriorityHigh)
	}
	if task.EstimatedPomodoros != 2 {
		t.Errorf("EstimatedPomodoros = %d, want 2 (absent field untouched)", task.EstimatedPomodoros)
	}

	empty := ""
	task.Apply(TaskEdit{Title: &empty})
	if task.Title != "Renamed" {
		t.Error("empty title edit must be ignored")
	}
}

func TestTask_ProgressLabel(t *testing.T) {
	task, _ := NewTask(1, "x", PriorityLow, 5, time.Now())
	task.CompletedPomodoros = 2

	if got := task.ProgressLabel(); got != "2/5" {
		t.Errorf("ProgressLabel() = %q, want %q", got, "2/5")
	}
}
