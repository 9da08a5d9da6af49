package domain

import (
	"time"
)

// Snapshot is the unit of persistence: the full task sequence plus the id
// counter, round-tripped atomically on every save.
type Snapshot struct {
	Tasks     []Task     `json:"tasks"`
	NextID    int64      `json:"nextId"`
	LastSaved *time.Time `json:"lastSaved,omitempty"`
}
