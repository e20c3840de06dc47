package tui

// Key-flow tests exercise complete interactions through Update rather
// than poking at model fields, so regressions in key dispatch or
// completion side effects fail fast here.

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/xvierd/pomo/internal/domain"
	"github.com/xvierd/pomo/internal/store"
)

type stubClock struct {
	now time.Time
}

func (c *stubClock) Now() time.Time          { return c.now }
func (c *stubClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

type stubNotifier struct {
	kinds       []domain.NotifyKind
	completions int
}

func (n *stubNotifier) Notify(kind domain.NotifyKind) { n.kinds = append(n.kinds, kind) }
func (n *stubNotifier) SessionComplete(finished, next domain.SessionType) {
	n.completions++
}

func key(s string) tea.Msg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func newTestModel(t *testing.T) (Model, *stubClock, *stubNotifier) {
	t.Helper()
	dir := t.TempDir()
	clock := &stubClock{now: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)}

	tasks, err := store.OpenTasks(filepath.Join(dir, "tasks.json"), clock)
	if err != nil {
		t.Fatalf("OpenTasks() error = %v", err)
	}
	stats, err := store.OpenStats(filepath.Join(dir, "stats.json"), clock)
	if err != nil {
		t.Fatalf("OpenStats() error = %v", err)
	}

	notifier := &stubNotifier{}
	m := NewModel(Options{
		Engine:   domain.NewEngine(clock, domain.DefaultDurations()),
		Tasks:    tasks,
		Stats:    stats,
		Notifier: notifier,
	})
	m.width = 80
	m.height = 24
	return m, clock, notifier
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	result, _ := m.Update(msg)
	updated, ok := result.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", result)
	}
	return updated
}

func TestStartKey_BeginsRunning(t *testing.T) {
	m, _, notifier := newTestModel(t)

	m = update(t, m, key("s"))

	if m.engine.State != domain.StateRunning {
		t.Errorf("expected running after [s], got %s", m.engine.State)
	}
	if len(notifier.kinds) != 1 || notifier.kinds[0] != domain.NotifyStart {
		t.Errorf("expected single start cue, got %v", notifier.kinds)
	}
}

func TestStartKey_TogglesPauseAndResume(t *testing.T) {
	m, clock, notifier := newTestModel(t)

	m = update(t, m, key("s"))
	clock.Advance(time.Minute)
	m = update(t, m, key("s"))

	if m.engine.State != domain.StatePaused {
		t.Errorf("expected paused after second [s], got %s", m.engine.State)
	}

	clock.Advance(time.Hour) // pause length must not matter
	m = update(t, m, key("s"))

	if m.engine.State != domain.StateRunning {
		t.Errorf("expected running after third [s], got %s", m.engine.State)
	}
	m = update(t, m, tickMsg(clock.now))
	if got := m.engine.Remaining; got != 24*60 {
		t.Errorf("expected 24:00 remaining after resume, got %d seconds", got)
	}

	want := []domain.NotifyKind{domain.NotifyStart, domain.NotifyPause, domain.NotifyPause}
	if len(notifier.kinds) != len(want) {
		t.Fatalf("expected cues %v, got %v", want, notifier.kinds)
	}
	for i := range want {
		if notifier.kinds[i] != want[i] {
			t.Errorf("cue %d: expected %s, got %s", i, want[i], notifier.kinds[i])
		}
	}
}

func TestSkipKey_CompletesWorkSession(t *testing.T) {
	m, _, notifier := newTestModel(t)

	m = update(t, m, key("s"))
	m = update(t, m, key("k"))

	if m.engine.Session != domain.SessionShortBreak {
		t.Errorf("expected short break after skip, got %s", m.engine.Session)
	}
	if m.engine.State != domain.StateStopped {
		t.Error("next session must not auto-start")
	}
	if notifier.completions != 1 {
		t.Errorf("expected one completion notification, got %d", notifier.completions)
	}
	if last := notifier.kinds[len(notifier.kinds)-1]; last != domain.NotifyCompletion {
		t.Errorf("expected completion cue, got %s", last)
	}

	// Pomodoro recorded under the sentinel label when no task is active.
	today := m.stats.Today()
	if today.TotalPomodoros != 1 || today.Tasks[store.NoTaskLabel] != 1 {
		t.Errorf("expected one pomodoro under %q, got %+v", store.NoTaskLabel, today)
	}
}

func TestNaturalExpiry_CreditsActiveTask(t *testing.T) {
	m, clock, _ := newTestModel(t)

	task, _ := m.tasks.Add("Write report", domain.PriorityHigh, 2)
	if err := m.tasks.SetActive(&task.ID); err != nil {
		t.Fatalf("SetActive() error = %v", err)
	}

	m = update(t, m, key("s"))
	clock.Advance(25 * time.Minute)
	m = update(t, m, tickMsg(clock.now))

	got, _ := m.tasks.Get(task.ID)
	if got.CompletedPomodoros != 1 {
		t.Errorf("expected task credited one pomodoro, got %d", got.CompletedPomodoros)
	}
	if m.stats.Today().Tasks["Write report"] != 1 {
		t.Errorf("expected stats entry for task title, got %+v", m.stats.Today())
	}
}

func TestBreakCompletion_RecordsNothing(t *testing.T) {
	m, _, _ := newTestModel(t)

	m = update(t, m, key("k")) // finish work, now short break
	before := m.stats.Today().TotalPomodoros

	m = update(t, m, key("k")) // finish the break

	if m.engine.Session != domain.SessionWork {
		t.Errorf("expected work after break, got %s", m.engine.Session)
	}
	if got := m.stats.Today().TotalPomodoros; got != before {
		t.Errorf("break completion must not record a pomodoro: %d -> %d", before, got)
	}
}

func TestNumericKey_SelectsPrioritySortedTask(t *testing.T) {
	m, _, _ := newTestModel(t)

	m.tasks.Add("A", domain.PriorityHigh, 1)
	m.tasks.Add("C", domain.PriorityMedium, 1)
	m.tasks.Add("B", domain.PriorityHigh, 1)

	// Sorted order is [A, B, C]; key 3 selects C.
	m = update(t, m, key("3"))

	active := m.tasks.Active()
	if active == nil || active.Title != "C" {
		t.Errorf("expected C active, got %+v", active)
	}
}

func TestNumericKey_OutOfRangeIsNoOp(t *testing.T) {
	m, _, _ := newTestModel(t)
	m.tasks.Add("only", domain.PriorityHigh, 1)

	m = update(t, m, key("9"))

	if m.tasks.Active() != nil {
		t.Error("out-of-range selection must not set an active task")
	}
}

func TestHelpKey_Toggles(t *testing.T) {
	m, _, _ := newTestModel(t)

	m = update(t, m, key("?"))
	if !m.showHelp {
		t.Error("expected help visible after [?]")
	}
	if view := m.View(); !strings.Contains(view, "select active task") {
		t.Error("help view should list the numeric selection command")
	}

	m = update(t, m, key("?"))
	if m.showHelp {
		t.Error("expected help hidden after second [?]")
	}
}

func TestAddForm_OpenAndCancel(t *testing.T) {
	m, _, _ := newTestModel(t)

	m = update(t, m, key("a"))
	if !m.formActive {
		t.Fatal("expected form active after [a]")
	}
	if view := m.View(); !strings.Contains(view, "Add Task") {
		t.Error("expected add form rendered")
	}

	m = update(t, m, key("esc"))
	if m.formActive {
		t.Error("expected esc to cancel the form")
	}
	if len(m.tasks.All()) != 0 {
		t.Error("cancelled form must not create a task")
	}
}

func TestTimerRunsWhileFormOpen(t *testing.T) {
	m, clock, _ := newTestModel(t)

	m = update(t, m, key("s"))
	m = update(t, m, key("a"))

	// Time spent in the dialog still counts once polling resumes.
	clock.Advance(10 * time.Minute)
	m = update(t, m, tickMsg(clock.now))

	if got := m.engine.Remaining; got != 15*60 {
		t.Errorf("expected 15:00 remaining, got %d seconds", got)
	}
}

func TestQuitKey_NoWorkQuitsImmediately(t *testing.T) {
	m, _, _ := newTestModel(t)

	result, cmd := m.Update(key("q"))
	if result.(Model).showingSummary {
		t.Error("no summary expected with zero pomodoros")
	}
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.Quit")
	}
}

func TestQuitKey_ShowsSummaryAfterWork(t *testing.T) {
	m, _, _ := newTestModel(t)

	m = update(t, m, key("k")) // one completed pomodoro
	m = update(t, m, key("q"))

	if !m.showingSummary {
		t.Fatal("expected daily summary before quit")
	}
	if view := m.View(); !strings.Contains(view, "Today's Summary") {
		t.Error("expected summary screen")
	}

	// Any key dismisses it.
	_, cmd := m.Update(key("x"))
	if cmd == nil {
		t.Fatal("expected quit command from summary")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.Quit from summary")
	}
}

func TestView_ShowsActiveTaskMarker(t *testing.T) {
	m, _, _ := newTestModel(t)

	task, _ := m.tasks.Add("Write report", domain.PriorityHigh, 2)
	m.tasks.SetActive(&task.ID)

	view := m.View()
	if !strings.Contains(view, ">[1] Write report") {
		t.Errorf("expected active marker on first task, view:\n%s", view)
	}
}

func TestView_TimeDisplay(t *testing.T) {
	m, _, _ := newTestModel(t)
	m.width = 20 // small width falls back to plain text

	if view := m.View(); !strings.Contains(view, "25:00") {
		t.Error("expected initial 25:00 display")
	}
}

func TestLongBreakAfterFourthWorkSession(t *testing.T) {
	m, _, _ := newTestModel(t)

	// Work, break, work, break... the fourth work completion earns the
	// long break.
	for i := 0; i < 3; i++ {
		m = update(t, m, key("k")) // work done
		m = update(t, m, key("k")) // break done
	}
	m = update(t, m, key("k")) // fourth work done

	if m.engine.Session != domain.SessionLongBreak {
		t.Errorf("expected long break after fourth work session, got %s", m.engine.Session)
	}
}
