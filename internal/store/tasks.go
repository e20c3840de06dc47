package store

import (
	"fmt"
	"os"
	"sort"

	"github.com/sahilm/fuzzy"
	"github.com/xvierd/pomo/internal/domain"
)

// taskFile is the on-disk shape of the task store.
type taskFile struct {
	NextID       int            `json:"next_id"`
	ActiveTaskID *int           `json:"active_task_id,omitempty"`
	Tasks        []*domain.Task `json:"tasks"`
}

// TaskStore owns the ordered task list, the next-id counter and the
// active-task reference. IDs strictly increase and are never reused,
// even after deletion. All mutations persist synchronously.
type TaskStore struct {
	path     string
	clock    domain.Clock
	tasks    []*domain.Task
	nextID   int
	activeID *int
}

// OpenTasks loads the task store from path. A missing file yields an
// empty store. A malformed file also yields an empty store along with a
// non-fatal warning error; callers log it and continue.
func OpenTasks(path string, clock domain.Clock) (*TaskStore, error) {
	s := &TaskStore{path: path, clock: clock, nextID: 1}

	var file taskFile
	err := readJSON(path, &file)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return s, fmt.Errorf("task store unreadable, starting empty: %w", err)
	}

	s.tasks = file.Tasks
	s.activeID = file.ActiveTaskID
	s.nextID = file.NextID
	if s.nextID < 1 {
		s.nextID = 1
	}

	// The active reference must point at an existing task.
	if s.activeID != nil {
		if _, err := s.Get(*s.activeID); err != nil {
			s.activeID = nil
		}
	}

	return s, nil
}

// save rewrites the task file. Best-effort: a failed write leaves the
// in-memory state as the source of truth.
func (s *TaskStore) save() {
	_ = writeJSON(s.path, taskFile{
		NextID:       s.nextID,
		ActiveTaskID: s.activeID,
		Tasks:        s.tasks,
	})
}

// Add creates a task with the next id and appends it.
func (s *TaskStore) Add(title string, priority domain.Priority, estimated int) (*domain.Task, error) {
	task, err := domain.NewTask(s.nextID, title, priority, estimated, s.clock.Now())
	if err != nil {
		return nil, err
	}

	s.tasks = append(s.tasks, task)
	s.nextID++
	s.save()
	return task, nil
}

// Get returns the task with the given id.
func (s *TaskStore) Get(id int) (*domain.Task, error) {
	for _, t := range s.tasks {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, fmt.Errorf("%w: id %d", domain.ErrTaskNotFound, id)
}

// Active resolves the active-task reference, or nil when unset.
func (s *TaskStore) Active() *domain.Task {
	if s.activeID == nil {
		return nil
	}
	task, err := s.Get(*s.activeID)
	if err != nil {
		return nil
	}
	return task
}

// SetActive points the active reference at an existing task, or clears
// it when id is nil.
func (s *TaskStore) SetActive(id *int) error {
	if id != nil {
		if _, err := s.Get(*id); err != nil {
			return err
		}
	}
	s.activeID = id
	s.save()
	return nil
}

// Complete marks a task done.
func (s *TaskStore) Complete(id int) error {
	task, err := s.Get(id)
	if err != nil {
		return err
	}
	task.Completed = true
	s.save()
	return nil
}

// Delete removes a task. If it was the active task, the active
// reference is cleared.
func (s *TaskStore) Delete(id int) error {
	for i, t := range s.tasks {
		if t.ID == id {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			if s.activeID != nil && *s.activeID == id {
				s.activeID = nil
			}
			s.save()
			return nil
		}
	}
	return fmt.Errorf("%w: id %d", domain.ErrTaskNotFound, id)
}

// Edit applies the non-nil fields of the edit to a task.
func (s *TaskStore) Edit(id int, edit domain.TaskEdit) error {
	task, err := s.Get(id)
	if err != nil {
		return err
	}
	task.Apply(edit)
	s.save()
	return nil
}

// IncrementPomodoro bumps a task's completed-pomodoro counter.
func (s *TaskStore) IncrementPomodoro(id int) error {
	task, err := s.Get(id)
	if err != nil {
		return err
	}
	task.CompletedPomodoros++
	s.save()
	return nil
}

// All returns every task in insertion order.
func (s *TaskStore) All() []*domain.Task {
	out := make([]*domain.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Incomplete returns the unfinished tasks. With byPriority set, the
// list is ordered High < Medium < Low, stable on insertion order —
// the same ordering the UI renders, so positional selection matches
// what the user sees.
func (s *TaskStore) Incomplete(byPriority bool) []*domain.Task {
	var out []*domain.Task
	for _, t := range s.tasks {
		if !t.Completed {
			out = append(out, t)
		}
	}
	if byPriority {
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Priority.Rank() < out[j].Priority.Rank()
		})
	}
	return out
}

// Search does a fuzzy title match over all tasks.
func (s *TaskStore) Search(query string) []*domain.Task {
	titles := make([]string, len(s.tasks))
	for i, t := range s.tasks {
		titles[i] = t.Title
	}

	matches := fuzzy.Find(query, titles)

	var out []*domain.Task
	for _, m := range matches {
		out = append(out, s.tasks[m.Index])
	}
	return out
}
