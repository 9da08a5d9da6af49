package persistence

import (
	"time"

	"taskman/internal/domain"
)

// FormatVersion identifies the export and backup format.
const FormatVersion = "1.0.0"

// ExportEnvelope is the on-disk shape of an exported snapshot. Import also
// accepts the bare snapshot shape without the exportedAt/version fields.
type ExportEnvelope struct {
	Tasks      []domain.Task `json:"tasks"`
	NextID     int64         `json:"nextId"`
	ExportedAt time.Time     `json:"exportedAt"`
	Version    string        `json:"version"`
}

// Backup wraps a snapshot with the moment it was taken.
type Backup struct {
	Timestamp time.Time       `json:"timestamp"`
	Version   string          `json:"version"`
	Data      domain.Snapshot `json:"data"`
}

// HasData reports whether the backup carries a restorable snapshot.
func (b Backup) HasData() bool {
	return b.Data.Tasks != nil || b.Data.NextID > 0
}

// Info describes the state of the storage substrate as seen through the
// adapter. TotalCapacity is the substrate's fixed, documented ceiling; it
// is never discovered by probing, so a substrate without a declared
// ceiling reports zero.
type Info struct {
	Available       bool    `json:"available"`
	DataSize        int     `json:"dataSize"`
	TotalCapacity   int     `json:"totalCapacity,omitempty"`
	UsagePercentage float64 `json:"usagePercentage,omitempty"`
}

// migrateSnapshot backfills fields older snapshots may be missing. The
// backfill is opportunistic, not version-gated: a zero createdAt becomes
// the migration time, and a completed task without a completion time
// inherits its creation time.
func migrateSnapshot(snapshot domain.Snapshot) domain.Snapshot {
	now := timeNow()
	for i := range snapshot.Tasks {
		task := &snapshot.Tasks[i]
		if task.CreatedAt.IsZero() {
			task.CreatedAt = now
		}
		if task.IsCompleted() && task.CompletedAt == nil {
			completedAt := task.CreatedAt
			task.CompletedAt = &completedAt
		}
	}

	// Snapshots written before the counter existed restart numbering
	// above the highest id already in use.
	if snapshot.NextID < 1 {
		snapshot.NextID = 1
		for _, task := range snapshot.Tasks {
			if task.ID >= snapshot.NextID {
				snapshot.NextID = task.ID + 1
			}
		}
	}

	return snapshot
}
