package tui

import (
	"fmt"
	"sort"

	"github.com/charmbracelet/lipgloss"

	"github.com/xvierd/pomo/internal/domain"
)

// View renders the TUI.
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	if m.showingSummary {
		return m.viewDailySummary()
	}

	if m.formActive && m.form != nil {
		return m.viewForm()
	}

	var sections []string

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.theme.ColorTitle)).MarginBottom(1)
	sections = append(sections, titleStyle.Render(fmt.Sprintf("%s Pomodoro", m.theme.IconApp)))

	sections = m.viewTimer(sections)
	sections = m.viewTasks(sections)
	sections = m.viewStats(sections)

	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.ColorHelp))

	if m.gitInfo != nil && m.gitInfo.Branch != "" {
		commit := m.gitInfo.Commit
		if len(commit) > 7 {
			commit = commit[:7]
		}
		sections = append(sections, "")
		sections = append(sections, helpStyle.Render(fmt.Sprintf("%s %s (%s)", m.theme.IconGit, m.gitInfo.Branch, commit)))
	}

	for _, w := range m.warnings {
		sections = append(sections, helpStyle.Render("⚠ "+w))
	}

	sections = append(sections, "")
	if m.showHelp {
		sections = m.viewHelp(sections)
	} else {
		sections = append(sections, helpStyle.Render(m.footer()))
	}

	content := lipgloss.JoinVertical(lipgloss.Center, sections...)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

// timerColor picks the big-timer color for the current session and
// pause state.
func (m Model) timerColor() lipgloss.Color {
	if m.engine.State == domain.StatePaused {
		return lipgloss.Color(m.theme.ColorPaused)
	}
	if m.engine.Session.IsBreak() {
		return lipgloss.Color(m.theme.ColorBreak)
	}
	return lipgloss.Color(m.theme.ColorWork)
}

func (m Model) viewTimer(sections []string) []string {
	statusStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.ColorPaused))

	statusText := fmt.Sprintf("%s (%s)", m.engine.Session.Label(), m.engine.State.Label())
	sections = append(sections, statusStyle.Render(statusText))

	sections = append(sections, "")
	sections = append(sections, renderBigTime(m.engine.TimeDisplay(), m.timerColor(), m.width))

	if m.engine.State == domain.StatePaused {
		pauseBadge := lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color(m.theme.ColorPaused)).
			Padding(0, 1).
			Render(fmt.Sprintf("%s PAUSED", m.theme.IconPaused))
		sections = append(sections, "")
		sections = append(sections, pauseBadge)
	}

	sections = append(sections, "")
	sections = append(sections, m.progress.ViewAs(m.engine.Progress()))

	if m.engine.CompletedWork > 0 {
		sections = append(sections, statusStyle.Render(
			fmt.Sprintf("%d pomodoros completed this run", m.engine.CompletedWork)))
	}

	return sections
}

// maxListedTasks bounds the on-screen task list. Numeric selection
// covers the first nine.
const maxListedTasks = 9

func (m Model) viewTasks(sections []string) []string {
	taskStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.ColorTask))
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.ColorHelp))
	activeStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.theme.ColorWork))

	listed := m.tasks.Incomplete(true)
	if len(listed) == 0 {
		sections = append(sections, "")
		sections = append(sections, helpStyle.Render("No tasks — press [a] to add one"))
		return sections
	}

	sections = append(sections, "")
	sections = append(sections, taskStyle.Render(fmt.Sprintf("%s Tasks", m.theme.IconTask)))

	active := m.tasks.Active()
	shown := listed
	if len(shown) > maxListedTasks {
		shown = shown[:maxListedTasks]
	}
	for i, task := range shown {
		marker := " "
		style := taskStyle
		if active != nil && active.ID == task.ID {
			marker = ">"
			style = activeStyle
		}
		line := fmt.Sprintf("%s[%d] %s (%s, %s)", marker, i+1, task.Title, task.Priority, task.ProgressLabel())
		sections = append(sections, style.Render(line))
	}
	if rest := len(listed) - len(shown); rest > 0 {
		sections = append(sections, helpStyle.Render(fmt.Sprintf("… and %d more", rest)))
	}

	return sections
}

func (m Model) viewStats(sections []string) []string {
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.ColorHelp))

	today := m.stats.Today()
	if today.TotalPomodoros == 0 {
		return sections
	}

	sections = append(sections, "")
	sections = append(sections, helpStyle.Render(
		fmt.Sprintf("%s Today: %d pomodoros", m.theme.IconStats, today.TotalPomodoros)))

	titles := make([]string, 0, len(today.Tasks))
	for title := range today.Tasks {
		titles = append(titles, title)
	}
	sort.Strings(titles)
	for _, title := range titles {
		sections = append(sections, helpStyle.Render(fmt.Sprintf("  %s: %d", title, today.Tasks[title])))
	}

	return sections
}

func (m Model) footer() string {
	if m.engine.State == domain.StateRunning {
		return "[s] pause  [k] skip  [?] help  [q] quit"
	}
	if m.engine.State == domain.StatePaused {
		return "[s] resume  [k] skip  [?] help  [q] quit"
	}
	return "[s] start  [k] skip  [a] add  [?] help  [q] quit"
}

func (m Model) viewHelp(sections []string) []string {
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.ColorHelp))

	lines := []string{
		"s  start / pause",
		"k  skip session",
		"a  add task",
		"e  edit task",
		"c  complete task",
		"d  delete task",
		"1-9  select active task",
		"?  toggle help",
		"q  quit",
	}
	for _, l := range lines {
		sections = append(sections, helpStyle.Render(l))
	}
	return sections
}

func (m Model) viewForm() string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.theme.ColorTitle))

	var title string
	switch m.formKind {
	case formAdd:
		title = "Add Task"
	case formEdit:
		title = "Edit Task"
	case formComplete:
		title = "Complete Task"
	case formDelete:
		title = "Delete Task"
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(title),
		"",
		m.form.View(),
	)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func (m Model) viewDailySummary() string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.theme.ColorTitle)).MarginBottom(1)
	statusStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.ColorWork))
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.ColorHelp))

	var sections []string
	sections = append(sections, titleStyle.Render(fmt.Sprintf("%s Today's Summary", m.theme.IconApp)))

	today := m.stats.Today()
	sections = append(sections, statusStyle.Render(
		fmt.Sprintf("%s %d pomodoros completed", m.theme.IconStats, today.TotalPomodoros)))

	titles := make([]string, 0, len(today.Tasks))
	for title := range today.Tasks {
		titles = append(titles, title)
	}
	sort.Strings(titles)
	for _, title := range titles {
		sections = append(sections, helpStyle.Render(fmt.Sprintf("%s: %d", title, today.Tasks[title])))
	}

	sections = append(sections, "")
	sections = append(sections, helpStyle.Render("Press any key to exit"))

	content := lipgloss.JoinVertical(lipgloss.Center, sections...)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}
