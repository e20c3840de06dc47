package domain

import (
	"fmt"
	"time"
)

// SessionType represents the kind of countdown interval.
type SessionType string

const (
	SessionWork       SessionType = "work"
	SessionShortBreak SessionType = "short_break"
	SessionLongBreak  SessionType = "long_break"
)

// Label returns a human-readable name for the session type.
func (t SessionType) Label() string {
	switch t {
	case SessionWork:
		return "Work"
	case SessionShortBreak:
		return "Short Break"
	case SessionLongBreak:
		return "Long Break"
	default:
		return "Unknown"
	}
}

// IsBreak reports whether the session type is one of the break kinds.
func (t SessionType) IsBreak() bool {
	return t == SessionShortBreak || t == SessionLongBreak
}

// RunState represents whether the timer is counting down.
type RunState string

const (
	StateStopped RunState = "stopped"
	StateRunning RunState = "running"
	StatePaused  RunState = "paused"
)

// Label returns a human-readable name for the run state.
func (s RunState) Label() string {
	switch s {
	case StateStopped:
		return "Ready"
	case StateRunning:
		return "Running"
	case StatePaused:
		return "Paused"
	default:
		return "Unknown"
	}
}

// NotifyKind identifies which audible cue a timer event should produce.
type NotifyKind string

const (
	NotifyStart      NotifyKind = "start"      // one chime
	NotifyPause      NotifyKind = "pause"      // two chimes, also on resume
	NotifyCompletion NotifyKind = "completion" // three chimes
)

// Durations holds the configured length of each session type and the
// work-session cadence before a long break.
type Durations struct {
	Work               time.Duration
	ShortBreak         time.Duration
	LongBreak          time.Duration
	SessionsBeforeLong int
}

// DefaultDurations returns the standard pomodoro cadence.
func DefaultDurations() Durations {
	return Durations{
		Work:               25 * time.Minute,
		ShortBreak:         5 * time.Minute,
		LongBreak:          15 * time.Minute,
		SessionsBeforeLong: 4,
	}
}

// For returns the configured duration for a session type.
func (d Durations) For(t SessionType) time.Duration {
	switch t {
	case SessionShortBreak:
		return d.ShortBreak
	case SessionLongBreak:
		return d.LongBreak
	default:
		return d.Work
	}
}

// Engine is the countdown state machine. It never advances time on its
// own; the application loop polls Update on every tick. Remaining time
// is derived from wall-clock deltas through the Clock, so ticks lost to
// a blocked UI are still accounted for once polling resumes.
type Engine struct {
	Session   SessionType
	State     RunState
	Total     int // seconds, fixed when the session begins
	Remaining int // seconds, clamped to [0, Total]

	// CompletedWork counts work sessions finished this process.
	// Display only; daily statistics persist separately.
	CompletedWork int

	clock     Clock
	durations Durations
	startTime time.Time
	pausedAt  time.Time
	notify    func(NotifyKind)
}

// NewEngine creates an engine ready to run a work session.
func NewEngine(clock Clock, durations Durations) *Engine {
	e := &Engine{clock: clock, durations: durations}
	e.begin(SessionWork)
	return e
}

// SetNotify installs the audible-cue callback. The engine fires it on
// start, pause and resume; completion cues are the caller's concern.
func (e *Engine) SetNotify(notify func(NotifyKind)) {
	e.notify = notify
}

// Start begins a stopped session or resumes a paused one. Resuming
// shifts the start time forward by the pause duration so time already
// worked is preserved. No-op when already running.
func (e *Engine) Start() {
	switch e.State {
	case StateStopped:
		e.startTime = e.clock.Now()
		e.emit(NotifyStart)
	case StatePaused:
		e.startTime = e.startTime.Add(e.clock.Now().Sub(e.pausedAt))
		e.emit(NotifyPause)
	default:
		return
	}
	e.State = StateRunning
}

// Pause suspends a running session. No-op otherwise.
func (e *Engine) Pause() {
	if e.State != StateRunning {
		return
	}
	e.State = StatePaused
	e.pausedAt = e.clock.Now()
	e.emit(NotifyPause)
}

// Stop halts the countdown and resets remaining time. The session type
// is unchanged.
func (e *Engine) Stop() {
	e.State = StateStopped
	e.Remaining = e.Total
}

// Skip forces the current session to complete immediately, applying the
// same transition as natural expiry. It reports true exactly once so
// the caller can run its completion side effects.
func (e *Engine) Skip() bool {
	if e.State == StateRunning {
		e.startTime = e.clock.Now().Add(-time.Duration(e.Total) * time.Second)
		e.Remaining = 0
	}
	e.completeSession()
	return true
}

// Update recomputes remaining time from the wall clock. It returns true
// when the session just completed; the signal fires once per completion
// because the transition leaves the engine stopped.
func (e *Engine) Update() bool {
	if e.State != StateRunning {
		return false
	}

	elapsed := int(e.clock.Now().Sub(e.startTime).Seconds())
	e.Remaining = e.Total - elapsed
	if e.Remaining < 0 {
		e.Remaining = 0
	}

	if e.Remaining == 0 {
		e.completeSession()
		return true
	}
	return false
}

// completeSession transitions to the next session in the cycle: every
// fourth completed work session earns a long break, breaks return to
// work. The next session starts stopped; nothing auto-starts.
func (e *Engine) completeSession() {
	if e.Session == SessionWork {
		e.CompletedWork++
		if e.CompletedWork%e.durations.SessionsBeforeLong == 0 {
			e.begin(SessionLongBreak)
		} else {
			e.begin(SessionShortBreak)
		}
		return
	}
	e.begin(SessionWork)
}

func (e *Engine) begin(t SessionType) {
	e.Session = t
	e.Total = int(e.durations.For(t).Seconds())
	e.Remaining = e.Total
	e.State = StateStopped
}

// Durations returns the configured session lengths.
func (e *Engine) Durations() Durations {
	return e.durations
}

// Progress returns completion as a fraction in [0, 1].
func (e *Engine) Progress() float64 {
	if e.Total == 0 {
		return 1.0
	}
	return 1 - float64(e.Remaining)/float64(e.Total)
}

// TimeDisplay formats the remaining time as zero-padded MM:SS.
func (e *Engine) TimeDisplay() string {
	return fmt.Sprintf("%02d:%02d", e.Remaining/60, e.Remaining%60)
}

func (e *Engine) emit(kind NotifyKind) {
	if e.notify != nil {
		e.notify(kind)
	}
}
