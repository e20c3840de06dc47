// Package history provides a SQLite implementation of the session
// history port.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/xvierd/pomo/internal/domain"
	"github.com/xvierd/pomo/internal/ports"
)

// sqliteHistory implements ports.History using SQLite.
type sqliteHistory struct {
	db *sql.DB
}

// Ensure sqliteHistory implements ports.History.
var _ ports.History = (*sqliteHistory)(nil)

// New creates a new SQLite session history at the given path.
func New(dbPath string) (ports.History, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// WAL mode for better performance
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		return nil, fmt.Errorf("failed to set WAL mode: %w", err)
	}

	h := &sqliteHistory{db: db}
	if err := h.migrate(); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return h, nil
}

// NewMemory creates a new in-memory session history for testing.
func NewMemory() (ports.History, error) {
	return New(":memory:")
}

// migrate creates the database schema.
func (h *sqliteHistory) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS sessions (
		id TEXT PRIMARY KEY,
		task_title TEXT NOT NULL,
		type TEXT NOT NULL,
		duration_ms INTEGER NOT NULL,
		started_at DATETIME NOT NULL,
		completed_at DATETIME NOT NULL,
		git_branch TEXT,
		git_commit TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_sessions_completed ON sessions(completed_at);
	CREATE INDEX IF NOT EXISTS idx_sessions_type ON sessions(type);
	`

	if _, err := h.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}

	return nil
}

// Record appends a completed session.
func (h *sqliteHistory) Record(ctx context.Context, rec *domain.SessionRecord) error {
	query := `
		INSERT INTO sessions (
			id, task_title, type, duration_ms, started_at, completed_at,
			git_branch, git_commit
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := h.db.ExecContext(ctx, query,
		rec.ID,
		rec.TaskTitle,
		string(rec.Type),
		rec.Duration.Milliseconds(),
		rec.StartedAt,
		rec.CompletedAt,
		rec.GitBranch,
		rec.GitCommit,
	)
	if err != nil {
		return fmt.Errorf("failed to record session: %w", err)
	}

	return nil
}

// Recent returns the most recently completed sessions, newest first.
func (h *sqliteHistory) Recent(ctx context.Context, limit int) ([]*domain.SessionRecord, error) {
	query := `
		SELECT id, task_title, type, duration_ms, started_at, completed_at,
		       git_branch, git_commit
		FROM sessions
		ORDER BY completed_at DESC
		LIMIT ?
	`

	rows, err := h.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query sessions: %w", err)
	}
	defer rows.Close()

	var records []*domain.SessionRecord
	for rows.Next() {
		var rec domain.SessionRecord
		var sessionType string
		var durationMs int64
		if err := rows.Scan(
			&rec.ID,
			&rec.TaskTitle,
			&sessionType,
			&durationMs,
			&rec.StartedAt,
			&rec.CompletedAt,
			&rec.GitBranch,
			&rec.GitCommit,
		); err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		rec.Type = domain.SessionType(sessionType)
		rec.Duration = time.Duration(durationMs) * time.Millisecond
		records = append(records, &rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate sessions: %w", err)
	}

	return records, nil
}

// WorkSessionsPerDay returns completed work sessions per calendar day
// (keyed YYYY-MM-DD) since the given time.
func (h *sqliteHistory) WorkSessionsPerDay(ctx context.Context, since time.Time) (map[string]int, error) {
	query := `
		SELECT date(completed_at), COUNT(*)
		FROM sessions
		WHERE type = ? AND completed_at >= ?
		GROUP BY date(completed_at)
	`

	rows, err := h.db.QueryContext(ctx, query, string(domain.SessionWork), since)
	if err != nil {
		return nil, fmt.Errorf("failed to query sessions: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var day string
		var count int
		if err := rows.Scan(&day, &count); err != nil {
			return nil, fmt.Errorf("failed to scan count: %w", err)
		}
		counts[day] = count
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate counts: %w", err)
	}

	return counts, nil
}

// Close closes the database connection.
func (h *sqliteHistory) Close() error {
	return h.db.Close()
}
