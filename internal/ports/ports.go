// Package ports defines the interfaces between the core application and
// external infrastructure (notifications, session history, git).
package ports

import (
	"context"
	"time"

	"github.com/xvierd/pomo/internal/domain"
)

// Notifier emits audible cues for timer events. Implementations run the
// cue in the background and swallow failures; Notify never blocks the
// caller and never reports an error.
type Notifier interface {
	Notify(kind domain.NotifyKind)

	// SessionComplete announces a finished session and the one queued
	// after it, via desktop notification when available.
	SessionComplete(finished, next domain.SessionType)
}

// History persists completed sessions for reporting.
// This is a driven port (implemented by adapters).
type History interface {
	// Record appends a completed session.
	Record(ctx context.Context, rec *domain.SessionRecord) error

	// Recent returns the most recently completed sessions, newest first.
	Recent(ctx context.Context, limit int) ([]*domain.SessionRecord, error)

	// WorkSessionsPerDay returns completed work sessions per calendar
	// day (keyed YYYY-MM-DD) since the given time.
	WorkSessionsPerDay(ctx context.Context, since time.Time) (map[string]int, error)

	// Close closes the underlying store.
	Close() error
}

// GitInfo describes the repository context a session ran in.
type GitInfo struct {
	Branch string
	Commit string
}

// GitDetector resolves git context for the working directory.
// This is a driven port (implemented by adapters).
type GitDetector interface {
	// Detect scans the working directory for git context.
	Detect(ctx context.Context, workingDir string) (*GitInfo, error)

	// IsAvailable reports whether a git repository is reachable.
	IsAvailable() bool
}
