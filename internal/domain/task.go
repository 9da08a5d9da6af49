package domain

import (
	"time"
)

// Status represents the lifecycle state of a task. A task only ever moves
// from pending to completed; there is no way back.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
)

// StatusAll is the filter value that matches every task regardless of status.
const StatusAll = "all"

// Priority rank values used for sorting. Any priority text outside the
// known set maps to rank 0 and sorts after (desc) or before (asc) the rest.
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// Task represents a single to-do item in the domain model.
// Field names in JSON mirror the persisted snapshot format.
type Task struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Priority    string     `json:"priority"`
	Status      Status     `json:"status"`
	CreatedAt   time.Time  `json:"createdAt"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

// IsCompleted returns true if the task has been completed.
func (t Task) IsCompleted() bool {
	return t.Status == StatusCompleted
}

// PriorityRank maps the task's priority text to its sort rank.
func (t Task) PriorityRank() int {
	return PriorityRank(t.Priority)
}

// PriorityRank maps priority text to a numeric rank for sorting.
// Unknown values rank below low rather than being rejected.
func PriorityRank(priority string) int {
	switch priority {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	default:
		return 0
	}
}
