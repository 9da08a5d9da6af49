package domain

import (
	"math"
)

// Stats summarises the state of a task list.
type Stats struct {
	Total          int `json:"total"`
	Completed      int `json:"completed"`
	Pending        int `json:"pending"`
	CompletionRate int `json:"completionRate"`
}

// NewStats derives summary statistics from a task sequence.
// The completion rate is a rounded percentage, defined as 0 for an empty list.
func NewStats(tasks []Task) Stats {
	stats := Stats{Total: len(tasks)}
	for _, task := range tasks {
		if task.IsCompleted() {
			stats.Completed++
		} else {
			stats.Pending++
		}
	}
	if stats.Total > 0 {
		stats.CompletionRate = int(math.Round(float64(stats.Completed) / float64(stats.Total) * 100))
	}
	return stats
}
