package store

import (
	"fmt"
	"os"
	"sort"

	"github.com/xvierd/pomo/internal/domain"
)

// NoTaskLabel is the sentinel title pomodoros are recorded under when
// no task is active.
const NoTaskLabel = "No task"

// dateKey is the ISO calendar date format the statistics map is keyed by.
const dateKey = "2006-01-02"

// DayStats aggregates pomodoros recorded on one calendar date.
type DayStats struct {
	TotalPomodoros int            `json:"total_pomodoros"`
	Tasks          map[string]int `json:"tasks"`
}

// StatsLog is the per-day pomodoro ledger. Entries are only ever
// appended or incremented; past dates are never mutated.
type StatsLog struct {
	path  string
	clock domain.Clock
	days  map[string]*DayStats
}

// OpenStats loads the statistics log from path. Missing and malformed
// files both yield an empty log; a malformed file adds a non-fatal
// warning error.
func OpenStats(path string, clock domain.Clock) (*StatsLog, error) {
	s := &StatsLog{path: path, clock: clock, days: make(map[string]*DayStats)}

	err := readJSON(path, &s.days)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		s.days = make(map[string]*DayStats)
		return s, fmt.Errorf("statistics unreadable, starting empty: %w", err)
	}

	// A null tasks map is valid JSON; normalize so recording never
	// writes into a nil map.
	for date, day := range s.days {
		if day == nil {
			s.days[date] = &DayStats{Tasks: make(map[string]int)}
			continue
		}
		if day.Tasks == nil {
			day.Tasks = make(map[string]int)
		}
	}
	return s, nil
}

// RecordPomodoro counts one pomodoro against today under the given task
// title, creating today's entry if absent.
func (s *StatsLog) RecordPomodoro(taskTitle string) {
	today := s.clock.Now().Format(dateKey)

	day, ok := s.days[today]
	if !ok {
		day = &DayStats{Tasks: make(map[string]int)}
		s.days[today] = day
	}

	day.TotalPomodoros++
	day.Tasks[taskTitle]++

	_ = writeJSON(s.path, s.days)
}

// Today returns today's entry, or a zeroed default when nothing has
// been recorded yet.
func (s *StatsLog) Today() DayStats {
	if day, ok := s.days[s.clock.Now().Format(dateKey)]; ok {
		return *day
	}
	return DayStats{Tasks: map[string]int{}}
}

// Day returns the entry for an ISO date string, or a zeroed default.
func (s *StatsLog) Day(date string) DayStats {
	if day, ok := s.days[date]; ok {
		return *day
	}
	return DayStats{Tasks: map[string]int{}}
}

// Dates returns every recorded date in ascending order.
func (s *StatsLog) Dates() []string {
	out := make([]string, 0, len(s.days))
	for d := range s.days {
		out = append(out, d)
	}
	sort.Strings(out)
	return out
}
