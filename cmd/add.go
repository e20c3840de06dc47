package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/xvierd/pomo/internal/domain"
)

var (
	addPriority string
	addEstimate int
)

var addCmd = &cobra.Command{
	Use:   "add [title]",
	Short: "Add a new task",
	Long: `Add a new task to the task list.

Examples:
  pomo add "Write project report"
  pomo add "Fix login bug" --priority high --estimate 3`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		title := strings.Join(args, " ")

		priority, err := domain.ParsePriority(addPriority)
		if err != nil {
			return err
		}

		task, err := taskStore.Add(title, priority, addEstimate)
		if err != nil {
			return err
		}

		if jsonOutput {
			data, err := json.MarshalIndent(task, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal task: %w", err)
			}
			fmt.Println(string(data))
			return nil
		}

		fmt.Printf("Added task #%d: %s (%s, %s)\n", task.ID, task.Title, task.Priority, task.ProgressLabel())
		return nil
	},
}

func init() {
	addCmd.Flags().StringVarP(&addPriority, "priority", "p", "medium", "Task priority (high, medium, low)")
	addCmd.Flags().IntVarP(&addEstimate, "estimate", "e", 1, "Estimated number of pomodoros")
}
