package domain

import "time"

// SessionRecord is one completed countdown session, kept in the history
// store for reporting. TaskTitle is empty for breaks and for work done
// with no active task.
type SessionRecord struct {
	ID          string
	TaskTitle   string
	Type        SessionType
	Duration    time.Duration
	StartedAt   time.Time
	CompletedAt time.Time
	GitBranch   string
	GitCommit   string
}

// NewSessionRecord builds a record for a session that completed at now
// and ran for the given duration.
func NewSessionRecord(taskTitle string, sessionType SessionType, duration time.Duration, now time.Time) *SessionRecord {
	return &SessionRecord{
		ID:          generateID(),
		TaskTitle:   taskTitle,
		Type:        sessionType,
		Duration:    duration,
		StartedAt:   now.Add(-duration),
		CompletedAt: now,
	}
}

// SetGitContext stores git information on the record.
func (r *SessionRecord) SetGitContext(branch, commit string) {
	r.GitBranch = branch
	r.GitCommit = commit
}
