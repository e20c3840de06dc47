// Package tui provides the terminal user interface implementation
// using the Bubbletea framework.
package tui

import (
	"context"
	"reflect"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/xvierd/pomo/internal/config"
	"github.com/xvierd/pomo/internal/domain"
	"github.com/xvierd/pomo/internal/ports"
	"github.com/xvierd/pomo/internal/store"
)

// tickInterval is the polling cadence. The engine derives remaining
// time from the wall clock, so the interval only bounds redraw latency.
const tickInterval = 100 * time.Millisecond

// tickMsg is sent on every timer tick.
type tickMsg time.Time

// Options carries the components the TUI orchestrates.
type Options struct {
	Engine   *domain.Engine
	Tasks    *store.TaskStore
	Stats    *store.StatsLog
	Notifier ports.Notifier
	History  ports.History
	Git      *ports.GitInfo
	Theme    *config.ThemeConfig

	// Warnings are non-fatal startup problems (for example a malformed
	// data file that fell back to empty state), shown in the footer.
	Warnings []string
}

// Model represents the TUI state.
type Model struct {
	engine   *domain.Engine
	tasks    *store.TaskStore
	stats    *store.StatsLog
	notifier ports.Notifier
	history  ports.History
	gitInfo  *ports.GitInfo
	theme    config.ThemeConfig
	warnings []string

	progress progress.Model
	width    int
	height   int

	showHelp bool

	// Form overlay state. The field values live behind pointers so they
	// survive the value copies bubbletea makes of the model.
	formActive   bool
	form         *huh.Form
	formKind     formKind
	formTitle    *string
	formPriority *string
	formEstimate *string
	formTaskID   *string

	// Daily summary shown on quit
	showingSummary bool
	summaryTicks   int
}

// NewModel creates a new TUI model and wires the engine's audible cues
// to the notifier.
func NewModel(opts Options) Model {
	title, priority, estimate, taskID := "", "", "", ""
	m := Model{
		engine:       opts.Engine,
		tasks:        opts.Tasks,
		stats:        opts.Stats,
		notifier:     opts.Notifier,
		history:      opts.History,
		gitInfo:      opts.Git,
		theme:        resolveTheme(opts.Theme),
		warnings:     opts.Warnings,
		progress:     progress.New(progress.WithDefaultGradient()),
		formTitle:    &title,
		formPriority: &priority,
		formEstimate: &estimate,
		formTaskID:   &taskID,
	}
	if m.notifier != nil {
		m.engine.SetNotify(m.notifier.Notify)
	}
	return m
}

// resolveTheme fills any empty string fields in the given ThemeConfig
// with defaults. If theme is nil, returns the full default theme.
func resolveTheme(theme *config.ThemeConfig) config.ThemeConfig {
	defaults := config.DefaultThemeConfig()
	if theme == nil {
		return defaults
	}
	resolved := *theme
	rv := reflect.ValueOf(&resolved).Elem()
	dv := reflect.ValueOf(defaults)
	for i := 0; i < rv.NumField(); i++ {
		f := rv.Field(i)
		if f.Kind() == reflect.String && f.String() == "" {
			f.SetString(dv.Field(i).String())
		}
	}
	return resolved
}

// Init initializes the TUI.
func (m Model) Init() tea.Cmd {
	return tickCmd()
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.showingSummary {
		switch msg := msg.(type) {
		case tea.KeyMsg:
			return m, tea.Quit
		case tickMsg:
			m.summaryTicks--
			if m.summaryTicks <= 0 {
				return m, tea.Quit
			}
			return m, tickCmd()
		case tea.WindowSizeMsg:
			m.width = msg.Width
			m.height = msg.Height
		}
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progress.Width = msg.Width - 4
		if m.progress.Width > 60 {
			m.progress.Width = 60
		}

	case tickMsg:
		// The engine runs even while a form overlay has the keyboard:
		// time blocked in a dialog is still accounted for.
		finished := m.engine.Session
		if m.engine.Update() {
			m.handleCompletion(finished)
		}
		return m, tickCmd()

	case tea.KeyMsg:
		if m.formActive && m.form != nil {
			return m.updateForm(msg)
		}
		return m.handleKey(msg)
	}

	if m.formActive && m.form != nil {
		// huh needs non-key messages too (cursor blink etc).
		form, cmd := m.form.Update(msg)
		if f, ok := form.(*huh.Form); ok {
			m.form = f
		}
		return m, cmd
	}

	return m, nil
}

// handleKey dispatches the single-key commands.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "q":
		return m.showDailySummaryOrQuit()

	case "s":
		if m.engine.State == domain.StateRunning {
			m.engine.Pause()
		} else {
			m.engine.Start()
		}

	case "k":
		finished := m.engine.Session
		if m.engine.Skip() {
			m.handleCompletion(finished)
		}

	case "a":
		return m.openAddForm()

	case "e":
		return m.openEditForm()

	case "c":
		return m.openCompleteForm()

	case "d":
		return m.openDeleteForm()

	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		// The selection list uses the identical sort as the rendered
		// one, so the number pressed matches the task on screen.
		idx := int(msg.String()[0]-'0') - 1
		listed := m.tasks.Incomplete(true)
		if idx < len(listed) {
			id := listed[idx].ID
			_ = m.tasks.SetActive(&id)
		}

	case "?":
		m.showHelp = !m.showHelp
	}

	return m, nil
}

// handleCompletion runs the side effects of a finished session: the
// three-chime cue, task and statistics bookkeeping for work sessions,
// and a history record.
func (m *Model) handleCompletion(finished domain.SessionType) {
	if m.notifier != nil {
		m.notifier.Notify(domain.NotifyCompletion)
		m.notifier.SessionComplete(finished, m.engine.Session)
	}

	taskTitle := ""
	if finished == domain.SessionWork {
		label := store.NoTaskLabel
		if active := m.tasks.Active(); active != nil {
			label = active.Title
			taskTitle = active.Title
			_ = m.tasks.IncrementPomodoro(active.ID)
		}
		m.stats.RecordPomodoro(label)
	}

	if m.history != nil {
		rec := domain.NewSessionRecord(taskTitle, finished, m.engine.Durations().For(finished), time.Now())
		if m.gitInfo != nil {
			rec.SetGitContext(m.gitInfo.Branch, m.gitInfo.Commit)
		}
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = m.history.Record(ctx, rec)
		}()
	}
}

func (m Model) showDailySummaryOrQuit() (tea.Model, tea.Cmd) {
	if m.stats.Today().TotalPomodoros > 0 {
		m.showingSummary = true
		m.summaryTicks = 30
		return m, tickCmd()
	}
	return m, tea.Quit
}

// tickCmd creates a command that sends a tick message.
func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
