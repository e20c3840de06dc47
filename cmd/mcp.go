package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xvierd/pomo/internal/adapters/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the MCP server for AI assistant integration",
	Long: `Run an MCP (Model Context Protocol) server over stdio, exposing
tasks and statistics to AI assistants.

Available tools:
  - list_tasks: List tasks (incomplete or all)
  - add_task: Add a new task
  - complete_task: Mark a task as completed
  - delete_task: Delete a task
  - get_today_stats: Get today's completed pomodoros by task
  - get_recent_sessions: Get recently completed sessions`,
	RunE: func(cmd *cobra.Command, args []string) error {
		server := mcp.NewServer(taskStore, statsLog, sessionHist)
		if err := server.Start(cmd.Context()); err != nil {
			return fmt.Errorf("mcp server error: %w", err)
		}
		return nil
	},
}
