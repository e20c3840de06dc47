package cmd

import (
	"path/filepath"
	"testing"

	"github.com/xvierd/pomo/internal/config"
	"github.com/xvierd/pomo/internal/domain"
	"github.com/xvierd/pomo/internal/store"
)

// setupTestStores points the package globals at stores in a temp
// directory so RunE handlers can be exercised directly.
func setupTestStores(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	clock := domain.SystemClock()

	var err error
	taskStore, err = store.OpenTasks(filepath.Join(dir, "tasks.json"), clock)
	if err != nil {
		t.Fatalf("OpenTasks: %v", err)
	}
	statsLog, err = store.OpenStats(filepath.Join(dir, "stats.json"), clock)
	if err != nil {
		t.Fatalf("OpenStats: %v", err)
	}
	appConfig = config.DefaultConfig()
	sessionHist = nil
	jsonOutput = false
}

func TestAddCmd(t *testing.T) {
	t.Run("command structure", func(t *testing.T) {
		if addCmd.Use != "add [title]" {
			t.Errorf("addCmd.Use = %q, want %q", addCmd.Use, "add [title]")
		}
		if addCmd.Args == nil {
			t.Error("addCmd.Args should be set")
		}
	})

	t.Run("priority flag registered", func(t *testing.T) {
		flag := addCmd.Flags().Lookup("priority")
		if flag == nil {
			t.Fatal("addCmd should have --priority flag")
		}
		if flag.Shorthand != "p" {
			t.Errorf("priority flag shorthand = %q, want %q", flag.Shorthand, "p")
		}
	})

	t.Run("estimate flag registered", func(t *testing.T) {
		if addCmd.Flags().Lookup("estimate") == nil {
			t.Error("addCmd should have --estimate flag")
		}
	})
}

func TestAddCmd_ValidateArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr bool
	}{
		{"no args", []string{}, true},
		{"single word", []string{"task"}, false},
		{"multi word", []string{"write", "project", "report"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := addCmd.Args(addCmd, tt.args)
			if tt.wantErr && err == nil {
				t.Error("expected error but got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestAddCmd_CreatesTask(t *testing.T) {
	setupTestStores(t)
	addPriority = "high"
	addEstimate = 3

	if err := addCmd.RunE(addCmd, []string{"Fix", "login", "bug"}); err != nil {
		t.Fatalf("RunE: %v", err)
	}

	tasks := taskStore.All()
	if len(tasks) != 1 {
		t.Fatalf("got %d tasks, want 1", len(tasks))
	}
	if tasks[0].Title != "Fix login bug" {
		t.Errorf("title = %q, want %q", tasks[0].Title, "Fix login bug")
	}
	if tasks[0].Priority != domain.PriorityHigh {
		t.Errorf("priority = %q, want high", tasks[0].Priority)
	}
	if tasks[0].EstimatedPomodoros != 3 {
		t.Errorf("estimate = %d, want 3", tasks[0].EstimatedPomodoros)
	}
}

func TestAddCmd_RejectsInvalidPriority(t *testing.T) {
	setupTestStores(t)
	addPriority = "urgent"
	addEstimate = 1

	if err := addCmd.RunE(addCmd, []string{"task"}); err == nil {
		t.Error("expected error for invalid priority")
	}
	addPriority = "medium"
}
