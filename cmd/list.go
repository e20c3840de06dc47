package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/xvierd/pomo/internal/domain"
)

var (
	listAll    bool
	listSearch string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks",
	Long: `List tasks, sorted by priority.

By default only incomplete tasks are shown; use --all to include
completed ones, or --search to fuzzy-match by title.`,
	Aliases: []string{"ls"},
	RunE: func(cmd *cobra.Command, args []string) error {
		var tasks []*domain.Task
		switch {
		case listSearch != "":
			tasks = taskStore.Search(listSearch)
		case listAll:
			tasks = taskStore.All()
		default:
			tasks = taskStore.Incomplete(true)
		}

		if jsonOutput {
			data, err := json.MarshalIndent(tasks, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal tasks: %w", err)
			}
			fmt.Println(string(data))
			return nil
		}

		if len(tasks) == 0 {
			fmt.Println("No tasks found. Add one with 'pomo add'.")
			return nil
		}

		active := taskStore.Active()
		activeStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(appConfig.Theme.ColorTask))
		doneStyle := lipgloss.NewStyle().Faint(true)

		for _, task := range tasks {
			marker := " "
			if active != nil && task.ID == active.ID {
				marker = ">"
			}
			check := " "
			if task.Completed {
				check = "x"
			}
			line := fmt.Sprintf("%s [%s] #%d %s (%s, %s)", marker, check, task.ID, task.Title, task.Priority, task.ProgressLabel())
			switch {
			case task.Completed:
				fmt.Println(doneStyle.Render(line))
			case active != nil && task.ID == active.ID:
				fmt.Println(activeStyle.Render(line))
			default:
				fmt.Println(line)
			}
		}
		return nil
	},
}

func init() {
	listCmd.Flags().BoolVarP(&listAll, "all", "a", false, "Include completed tasks")
	listCmd.Flags().StringVarP(&listSearch, "search", "s", "", "Fuzzy-search tasks by title")
}
