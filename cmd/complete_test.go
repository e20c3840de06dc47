package cmd

import (
	"testing"

	"github.com/xvierd/pomo/internal/domain"
)

func TestCompleteCmd_MarksTaskCompleted(t *testing.T) {
	setupTestStores(t)
	task, err := taskStore.Add("Write report", domain.PriorityMedium, 2)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	if err := completeCmd.RunE(completeCmd, []string{"1"}); err != nil {
		t.Fatalf("RunE: %v", err)
	}

	got, err := taskStore.Get(task.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !got.Completed {
		t.Error("task should be completed")
	}
}

func TestCompleteCmd_InvalidID(t *testing.T) {
	setupTestStores(t)

	if err := completeCmd.RunE(completeCmd, []string{"abc"}); err == nil {
		t.Error("expected error for non-numeric id")
	}
	if err := completeCmd.RunE(completeCmd, []string{"42"}); err == nil {
		t.Error("expected error for unknown id")
	}
}

func TestDeleteCmd_RemovesTask(t *testing.T) {
	setupTestStores(t)
	task, err := taskStore.Add("Throwaway", domain.PriorityLow, 1)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	if err := deleteCmd.RunE(deleteCmd, []string{"1"}); err != nil {
		t.Fatalf("RunE: %v", err)
	}

	if _, err := taskStore.Get(task.ID); err == nil {
		t.Error("task should be gone after delete")
	}
}

func TestCompleteAndDeleteCmds_RequireOneArg(t *testing.T) {
	for _, cmd := range []struct {
		name string
		args func([]string) error
	}{
		{"complete", func(a []string) error { return completeCmd.Args(completeCmd, a) }},
		{"delete", func(a []string) error { return deleteCmd.Args(deleteCmd, a) }},
	} {
		if err := cmd.args([]string{}); err == nil {
			t.Errorf("%s should reject zero args", cmd.name)
		}
		if err := cmd.args([]string{"1", "2"}); err == nil {
			t.Errorf("%s should reject two args", cmd.name)
		}
		if err := cmd.args([]string{"1"}); err != nil {
			t.Errorf("%s should accept one arg: %v", cmd.name, err)
		}
	}
}
