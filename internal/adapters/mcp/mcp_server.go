// Package mcp provides the MCP (Model Context Protocol) server implementation.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/xvierd/pomo/internal/domain"
	"github.com/xvierd/pomo/internal/ports"
	"github.com/xvierd/pomo/internal/store"
)

// Server exposes the task list and statistics over MCP stdio.
type Server struct {
	server  *server.MCPServer
	tasks   *store.TaskStore
	stats   *store.StatsLog
	history ports.History
	ctx     context.Context
	cancel  context.CancelFunc
}

// NewServer creates a new MCP server instance.
func NewServer(tasks *store.TaskStore, stats *store.StatsLog, history ports.History) *Server {
	s := &Server{
		tasks:   tasks,
		stats:   stats,
		history: history,
	}

	s.server = server.NewMCPServer(
		"pomo",
		"1.0.0",
		server.WithLogging(),
	)

	s.registerTools()

	return s
}

// registerTools registers all available MCP tools.
func (s *Server) registerTools() {
	listTool := mcp.NewTool(
		"list_tasks",
		mcp.WithDescription("List tasks, optionally including completed ones"),
		mcp.WithString(
			"filter",
			mcp.Description("Which tasks to list: incomplete (default) or all"),
			mcp.Enum("incomplete", "all"),
		),
	)
	s.server.AddTool(listTool, s.handleListTasks)

	addTool := mcp.NewTool(
		"add_task",
		mcp.WithDescription("Add a new task to the list"),
		mcp.WithString(
			"title",
			mcp.Required(),
			mcp.Description("The title of the task"),
		),
		mcp.WithString(
			"priority",
			mcp.Description("Task priority: High, Medium (default), or Low"),
			mcp.Enum("High", "Medium", "Low"),
		),
		mcp.WithNumber(
			"estimated_pomodoros",
			mcp.Description("Estimated pomodoros to finish the task (default: 1)"),
		),
	)
	s.server.AddTool(addTool, s.handleAddTask)

	completeTool := mcp.NewTool(
		"complete_task",
		mcp.WithDescription("Mark a task as completed"),
		mcp.WithNumber(
			"task_id",
			mcp.Required(),
			mcp.Description("The numeric ID of the task to complete"),
		),
	)
	s.server.AddTool(completeTool, s.handleCompleteTask)

	deleteTool := mcp.NewTool(
		"delete_task",
		mcp.WithDescription("Delete a task from the list"),
		mcp.WithNumber(
			"task_id",
			mcp.Required(),
			mcp.Description("The numeric ID of the task to delete"),
		),
	)
	s.server.AddTool(deleteTool, s.handleDeleteTask)

	s.server.AddTool(
		mcp.NewTool(
			"get_today_stats",
			mcp.WithDescription("Get today's completed pomodoro counts, total and per task"),
		),
		s.handleGetTodayStats,
	)

	recentTool := mcp.NewTool(
		"get_recent_sessions",
		mcp.WithDescription("Get recently completed timer sessions, newest first"),
		mcp.WithNumber(
			"limit",
			mcp.Description("Maximum number of sessions to return (default: 10)"),
		),
	)
	s.server.AddTool(recentTool, s.handleGetRecentSessions)
}

// Start begins serving MCP requests via stdio.
func (s *Server) Start(ctx context.Context) error {
	s.ctx, s.cancel = context.WithCancel(ctx)
	return server.ServeStdio(s.server)
}

// Stop gracefully shuts down the server.
func (s *Server) Stop() error {
	if s.cancel != nil {
		s.cancel()
	}
	return nil
}

func taskJSON(task *domain.Task) map[string]interface{} {
	return map[string]interface{}{
		"id":                  task.ID,
		"title":               task.Title,
		"priority":            string(task.Priority),
		"estimated_pomodoros": task.EstimatedPomodoros,
		"completed_pomodoros": task.CompletedPomodoros,
		"completed":           task.Completed,
		"created_at":          task.CreatedAt.Format("2006-01-02T15:04:05"),
	}
}

func marshalResult(v interface{}) (*mcp.CallToolResult, error) {
	jsonData, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}

// handleListTasks handles the list_tasks tool.
func (s *Server) handleListTasks(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	filter := request.GetString("filter", "incomplete")

	var tasks []*domain.Task
	if filter == "all" {
		tasks = s.tasks.All()
	} else {
		tasks = s.tasks.Incomplete(true)
	}

	list := make([]map[string]interface{}, 0, len(tasks))
	for _, task := range tasks {
		list = append(list, taskJSON(task))
	}

	result := map[string]interface{}{
		"tasks":       list,
		"total_count": len(list),
	}
	if active := s.tasks.Active(); active != nil {
		result["active_task_id"] = active.ID
	}

	return marshalResult(result)
}

// handleAddTask handles the add_task tool.
func (s *Server) handleAddTask(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	title, err := request.RequireString("title")
	if err != nil {
		return mcp.NewToolResultError("title is required: " + err.Error()), nil
	}

	priority := domain.PriorityMedium
	if p := request.GetString("priority", ""); p != "" {
		priority, err = domain.ParsePriority(p)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid priority: %v", err)), nil
		}
	}

	estimated := 1
	if e := int(request.GetFloat("estimated_pomodoros", 0)); e > 0 {
		estimated = e
	}

	task, err := s.tasks.Add(title, priority, estimated)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to add task: %v", err)), nil
	}

	return marshalResult(taskJSON(task))
}

// handleCompleteTask handles the complete_task tool.
func (s *Server) handleCompleteTask(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := int(request.GetFloat("task_id", 0))
	if id == 0 {
		return mcp.NewToolResultError("task_id is required"), nil
	}

	if err := s.tasks.Complete(id); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to complete task: %v", err)), nil
	}

	task, err := s.tasks.Get(id)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load task: %v", err)), nil
	}

	return marshalResult(taskJSON(task))
}

// handleDeleteTask handles the delete_task tool.
func (s *Server) handleDeleteTask(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := int(request.GetFloat("task_id", 0))
	if id == 0 {
		return mcp.NewToolResultError("task_id is required"), nil
	}

	if err := s.tasks.Delete(id); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to delete task: %v", err)), nil
	}

	return marshalResult(map[string]interface{}{
		"deleted": id,
	})
}

// handleGetTodayStats handles the get_today_stats tool.
func (s *Server) handleGetTodayStats(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	today := s.stats.Today()

	return marshalResult(map[string]interface{}{
		"total_pomodoros": today.TotalPomodoros,
		"tasks":           today.Tasks,
	})
}

// handleGetRecentSessions handles the get_recent_sessions tool.
func (s *Server) handleGetRecentSessions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	// History is optional; the server still serves the task tools when
	// the database failed to open.
	if s.history == nil {
		return mcp.NewToolResultError("session history is unavailable"), nil
	}

	limit := int(request.GetFloat("limit", 0))
	if limit <= 0 {
		limit = 10
	}

	records, err := s.history.Recent(ctx, limit)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load sessions: %v", err)), nil
	}

	list := make([]map[string]interface{}, 0, len(records))
	for _, rec := range records {
		item := map[string]interface{}{
			"id":           rec.ID,
			"type":         string(rec.Type),
			"duration":     rec.Duration.String(),
			"started_at":   rec.StartedAt.Format("2006-01-02T15:04:05"),
			"completed_at": rec.CompletedAt.Format("2006-01-02T15:04:05"),
		}
		if rec.TaskTitle != "" {
			item["task_title"] = rec.TaskTitle
		}
		if rec.GitBranch != "" {
			item["git_branch"] = rec.GitBranch
		}
		if rec.GitCommit != "" {
			item["git_commit"] = rec.GitCommit
		}
		list = append(list, item)
	}

	return marshalResult(map[string]interface{}{
		"sessions":    list,
		"total_count": len(list),
	})
}
