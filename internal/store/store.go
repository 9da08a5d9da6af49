package store

import (
	"sort"
	"strings"
	"time"

	"taskman/internal/domain"
	"taskman/internal/errors"
	"taskman/internal/validation"
)

// timeNow is a variable that can be replaced in tests
var timeNow = time.Now

// Sort orders accepted by TasksByPriority.
const (
	OrderDesc = "desc"
	OrderAsc  = "asc"
)

// TaskStore owns an ordered sequence of tasks and a monotonic id counter.
// Ids start at 1 and are never reused within the store's lifetime, even
// after deletion. The store assumes a single logical owner; it performs
// no locking of its own.
type TaskStore struct {
	tasks     []domain.Task
	nextID    int64
	validator *validation.TaskValidator
}

// New creates an empty task store.
func New() *TaskStore {
	return &TaskStore{
		nextID:    1,
		validator: validation.NewTaskValidator(),
	}
}

// AddTask appends a new pending task and returns it. The title is trimmed
// before the empty check and before storage; an empty or whitespace-only
// title is a validation error. An empty priority defaults to medium;
// other priority values are stored as given, lowercased, without being
// validated against the known set.
func (s *TaskStore) AddTask(title, description, priority string) (domain.Task, error) {
	cleanTitle, err := s.validator.CleanTitle(title)
	if err != nil {
		return domain.Task{}, errors.NewValidationError("invalid task title", err)
	}

	priority = strings.ToLower(strings.TrimSpace(priority))
	if priority == "" {
		priority = domain.PriorityMedium
	}

	task := domain.Task{
		ID:          s.nextID,
		Title:       cleanTitle,
		Description: s.validator.CleanDescription(description),
		Priority:    priority,
		Status:      domain.StatusPending,
		CreatedAt:   timeNow(),
	}

	s.tasks = append(s.tasks, task)
	s.nextID++
	return task, nil
}

// CompleteTask marks the task with the given id as completed and stamps
// its completion time. It returns false when no such task exists.
// Completing an already-completed task overwrites the completion time;
// callers that care should check the status first.
func (s *TaskStore) CompleteTask(id int64) bool {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			now := timeNow()
			s.tasks[i].Status = domain.StatusCompleted
			s.tasks[i].CompletedAt = &now
			return true
		}
	}
	return false
}

// DeleteTask removes the task with the given id, returning false when it
// does not exist. Deletion is permanent; the id is never reassigned.
func (s *TaskStore) DeleteTask(id int64) bool {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			return true
		}
	}
	return false
}

// Tasks returns a copy of the task sequence. The filter "all" matches
// everything; any other value is an exact status match, so unknown
// filter values yield an empty result rather than an error.
func (s *TaskStore) Tasks(filter string) []domain.Task {
	if filter == domain.StatusAll {
		return append([]domain.Task(nil), s.tasks...)
	}

	var filtered []domain.Task
	for _, task := range s.tasks {
		if task.Status == domain.Status(filter) {
			filtered = append(filtered, task)
		}
	}
	return filtered
}

// TaskByID returns the task with the given id, if present.
func (s *TaskStore) TaskByID(id int64) (domain.Task, bool) {
	for _, task := range s.tasks {
		if task.ID == id {
			return task, true
		}
	}
	return domain.Task{}, false
}

// Stats returns summary statistics for the current task sequence.
func (s *TaskStore) Stats() domain.Stats {
	return domain.NewStats(s.tasks)
}

// TasksByPriority returns the tasks ordered by priority rank. The sort is
// stable: tasks with equal rank keep their relative insertion order.
// Order is descending unless OrderAsc is given.
func (s *TaskStore) TasksByPriority(order string) []domain.Task {
	sorted := append([]domain.Task(nil), s.tasks...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if order == OrderAsc {
			return sorted[i].PriorityRank() < sorted[j].PriorityRank()
		}
		return sorted[i].PriorityRank() > sorted[j].PriorityRank()
	})
	return sorted
}

// ClearAll empties the task sequence and resets the id counter to 1.
func (s *TaskStore) ClearAll() {
	s.tasks = nil
	s.nextID = 1
}

// Len returns the number of tasks currently held.
func (s *TaskStore) Len() int {
	return len(s.tasks)
}

// Snapshot captures the store's full state as the unit of persistence.
func (s *TaskStore) Snapshot() domain.Snapshot {
	return domain.Snapshot{
		Tasks:  append([]domain.Task(nil), s.tasks...),
		NextID: s.nextID,
	}
}

// Restore replaces the store's state with the given snapshot. A snapshot
// counter below 1 is normalised so newly created ids stay positive.
func (s *TaskStore) Restore(snapshot domain.Snapshot) {
	s.tasks = append([]domain.Task(nil), snapshot.Tasks...)
	s.nextID = snapshot.NextID
	if s.nextID < 1 {
		s.nextID = 1
	}
}
