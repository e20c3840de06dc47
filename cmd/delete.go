package cmd

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:     "delete [task-id]",
	Short:   "Delete a task",
	Aliases: []string{"rm"},
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid task id %q", args[0])
		}

		task, err := taskStore.Get(id)
		if err != nil {
			return err
		}
		title := task.Title

		if err := taskStore.Delete(id); err != nil {
			return err
		}

		if jsonOutput {
			data, err := json.MarshalIndent(map[string]any{"deleted": id, "title": title}, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal result: %w", err)
			}
			fmt.Println(string(data))
			return nil
		}

		fmt.Printf("Deleted task #%d: %s\n", id, title)
		return nil
	},
}
