package tui

import (
	"fmt"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/xvierd/pomo/internal/domain"
)

type formKind int

const (
	formAdd formKind = iota
	formEdit
	formComplete
	formDelete
)

// keepChoice marks a select option that leaves the field unchanged.
const keepChoice = ""

func priorityOptions(withKeep bool) []huh.Option[string] {
	opts := []huh.Option[string]{
		huh.NewOption("High", string(domain.PriorityHigh)),
		huh.NewOption("Medium", string(domain.PriorityMedium)),
		huh.NewOption("Low", string(domain.PriorityLow)),
	}
	if withKeep {
		opts = append([]huh.Option[string]{huh.NewOption("(keep current)", keepChoice)}, opts...)
	}
	return opts
}

func (m Model) taskOptions(tasks []*domain.Task) []huh.Option[string] {
	opts := make([]huh.Option[string], len(tasks))
	for i, task := range tasks {
		label := fmt.Sprintf("#%d %s (%s, %s)", task.ID, task.Title, task.Priority, task.ProgressLabel())
		opts[i] = huh.NewOption(label, strconv.Itoa(task.ID))
	}
	return opts
}

func (m Model) openAddForm() (tea.Model, tea.Cmd) {
	*m.formTitle = ""
	*m.formPriority = string(domain.PriorityMedium)
	*m.formEstimate = "1"
	m.formKind = formAdd

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Task title").Value(m.formTitle),
			huh.NewSelect[string]().Title("Priority").Options(priorityOptions(false)...).Value(m.formPriority),
			huh.NewInput().Title("Estimated pomodoros").Value(m.formEstimate),
		),
	).WithShowHelp(true).WithShowErrors(true)

	m.formActive = true
	return m, m.form.Init()
}

func (m Model) openEditForm() (tea.Model, tea.Cmd) {
	tasks := m.tasks.Incomplete(true)
	if len(tasks) == 0 {
		return m, nil
	}

	*m.formTaskID = strconv.Itoa(tasks[0].ID)
	*m.formTitle = ""
	*m.formPriority = keepChoice
	*m.formEstimate = ""
	m.formKind = formEdit

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().Title("Edit which task?").Options(m.taskOptions(tasks)...).Value(m.formTaskID),
		),
		huh.NewGroup(
			huh.NewInput().Title("New title (blank to keep)").Value(m.formTitle),
			huh.NewSelect[string]().Title("Priority").Options(priorityOptions(true)...).Value(m.formPriority),
			huh.NewInput().Title("New estimate (blank to keep)").Value(m.formEstimate),
		),
	).WithShowHelp(true).WithShowErrors(true)

	m.formActive = true
	return m, m.form.Init()
}

func (m Model) openCompleteForm() (tea.Model, tea.Cmd) {
	tasks := m.tasks.Incomplete(true)
	if len(tasks) == 0 {
		return m, nil
	}

	*m.formTaskID = strconv.Itoa(tasks[0].ID)
	m.formKind = formComplete

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().Title("Complete which task?").Options(m.taskOptions(tasks)...).Value(m.formTaskID),
		),
	).WithShowHelp(true).WithShowErrors(true)

	m.formActive = true
	return m, m.form.Init()
}

func (m Model) openDeleteForm() (tea.Model, tea.Cmd) {
	tasks := m.tasks.All()
	if len(tasks) == 0 {
		return m, nil
	}

	*m.formTaskID = strconv.Itoa(tasks[0].ID)
	m.formKind = formDelete

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().Title("Delete which task?").Options(m.taskOptions(tasks)...).Value(m.formTaskID),
		),
	).WithShowHelp(true).WithShowErrors(true)

	m.formActive = true
	return m, m.form.Init()
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Escape cancels the whole dialog.
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "esc" {
		m.formActive = false
		m.form = nil
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		m.formActive = false
		m.applyForm()
		m.form = nil
	}

	return m, cmd
}

// applyForm commits the completed dialog. Unparseable field values are
// treated as a no-op for that field rather than an error.
func (m *Model) applyForm() {
	switch m.formKind {
	case formAdd:
		if *m.formTitle == "" {
			return
		}
		priority, err := domain.ParsePriority(*m.formPriority)
		if err != nil {
			priority = domain.PriorityMedium
		}
		estimate, err := strconv.Atoi(*m.formEstimate)
		if err != nil || estimate < 1 {
			estimate = 1
		}
		_, _ = m.tasks.Add(*m.formTitle, priority, estimate)

	case formEdit:
		id, err := strconv.Atoi(*m.formTaskID)
		if err != nil {
			return
		}
		var edit domain.TaskEdit
		if *m.formTitle != "" {
			edit.Title = m.formTitle
		}
		if *m.formPriority != keepChoice {
			if priority, err := domain.ParsePriority(*m.formPriority); err == nil {
				edit.Priority = &priority
			}
		}
		if *m.formEstimate != "" {
			if estimate, err := strconv.Atoi(*m.formEstimate); err == nil && estimate > 0 {
				edit.Estimated = &estimate
			}
		}
		_ = m.tasks.Edit(id, edit)

	case formComplete:
		if id, err := strconv.Atoi(*m.formTaskID); err == nil {
			_ = m.tasks.Complete(id)
		}

	case formDelete:
		if id, err := strconv.Atoi(*m.formTaskID); err == nil {
			_ = m.tasks.Delete(id)
		}
	}
}
