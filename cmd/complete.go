package cmd

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var completeCmd = &cobra.Command{
	Use:   "complete [task-id]",
	Short: "Mark a task as completed",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid task id %q", args[0])
		}

		if err := taskStore.Complete(id); err != nil {
			return err
		}

		task, err := taskStore.Get(id)
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

		fmt.Printf("Completed task #%d: %s\n", task.ID, task.Title)
		return nil
	},
}
