package cmd

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/xvierd/pomo/internal/adapters/history"
	"github.com/xvierd/pomo/internal/domain"
)

func TestStatsCmd_Structure(t *testing.T) {
	if statsCmd.Use != "stats" {
		t.Errorf("statsCmd.Use = %q, want %q", statsCmd.Use, "stats")
	}
	if statsCmd.Flags().Lookup("date") == nil {
		t.Error("statsCmd should have --date flag")
	}
}

func TestStatsCmd_RejectsBadDate(t *testing.T) {
	setupTestStores(t)
	statsDate = "yesterday"
	defer func() { statsDate = "" }()

	if err := statsCmd.RunE(statsCmd, nil); err == nil {
		t.Error("expected error for malformed date")
	}
}

func TestRenderWeekChart(t *testing.T) {
	setupTestStores(t)

	hist, err := history.NewMemory()
	if err != nil {
		t.Fatalf("NewMemory: %v", err)
	}
	defer hist.Close()
	sessionHist = hist
	defer func() { sessionHist = nil }()

	t.Run("empty history renders nothing", func(t *testing.T) {
		if got := renderWeekChart(); got != "" {
			t.Errorf("expected empty chart, got %q", got)
		}
	})

	t.Run("recorded sessions produce a chart", func(t *testing.T) {
		rec := domain.NewSessionRecord("Write report", domain.SessionWork, 25*time.Minute, time.Now())
		if err := hist.Record(context.Background(), rec); err != nil {
			t.Fatalf("Record: %v", err)
		}

		got := renderWeekChart()
		if got == "" {
			t.Fatal("expected a rendered chart")
		}
		label := time.Now().Format("Mon 02")
		if !strings.Contains(got, strings.Fields(label)[0]) {
			t.Errorf("chart should label today (%s):\n%s", label, got)
		}
	})
}

func TestHistoryCmd_LimitFlag(t *testing.T) {
	flag := historyCmd.Flags().Lookup("limit")
	if flag == nil {
		t.Fatal("historyCmd should have --limit flag")
	}
	if flag.Shorthand != "n" {
		t.Errorf("limit flag shorthand = %q, want %q", flag.Shorthand, "n")
	}
	if flag.DefValue != "10" {
		t.Errorf("limit default = %q, want %q", flag.DefValue, "10")
	}
}
