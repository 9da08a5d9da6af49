package manager

import (
	"context"

	"go.uber.org/zap"

	"taskman/internal/domain"
	"taskman/internal/errors"
	"taskman/internal/persistence"
	"taskman/internal/store"
)

// Manager composes the in-memory task store with the persistence adapter:
// every mutating call runs against the store and then saves the full
// snapshot. This replaces a save-on-override inheritance scheme with
// plain composition, so the store stays persistence-free.
type Manager struct {
	store   *store.TaskStore
	adapter *persistence.Adapter
	logger  *zap.Logger
}

// New builds a manager and loads the stored snapshot. A missing snapshot
// means a fresh start. An unavailable substrate also starts empty — the
// manager still works, saves just report the condition. Corrupt stored
// data is returned as an error instead of being silently overwritten on
// the next save.
func New(ctx context.Context, adapter *persistence.Adapter, logger *zap.Logger) (*Manager, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	m := &Manager{
		store:   store.New(),
		adapter: adapter,
		logger:  logger,
	}

	snapshot, err := adapter.Load(ctx)
	switch {
	case err == nil:
		m.store.Restore(snapshot)
		logger.Debug("loaded snapshot", zap.Int("tasks", len(snapshot.Tasks)))
	case errors.IsErrorType(err, errors.ErrorTypeNotFound):
		logger.Debug("no stored snapshot; starting empty")
	case errors.IsErrorType(err, errors.ErrorTypeUnavailable):
		logger.Warn("storage unavailable; changes will not persist")
	default:
		return nil, err
	}

	return m, nil
}

// AddTask creates a new pending task and persists the result. The error
// is either a validation failure (nothing was added) or a typed save
// failure (the task exists in memory but was not persisted).
func (m *Manager) AddTask(ctx context.Context, title, description, priority string) (domain.Task, error) {
	task, err := m.store.AddTask(title, description, priority)
	if err != nil {
		return domain.Task{}, err
	}
	return task, m.persist(ctx)
}

// CompleteTask marks a task completed and persists. The bool mirrors the
// store: false means no task with that id exists and nothing was saved.
func (m *Manager) CompleteTask(ctx context.Context, id int64) (bool, error) {
	if !m.store.CompleteTask(id) {
		return false, nil
	}
	return true, m.persist(ctx)
}

// DeleteTask removes a task and persists.
func (m *Manager) DeleteTask(ctx context.Context, id int64) (bool, error) {
	if !m.store.DeleteTask(id) {
		return false, nil
	}
	return true, m.persist(ctx)
}

// ClearAll empties the store, resets the id counter, and persists the
// empty snapshot.
func (m *Manager) ClearAll(ctx context.Context) error {
	m.store.ClearAll()
	return m.persist(ctx)
}

// Tasks returns tasks matching the status filter ("all" for everything).
func (m *Manager) Tasks(filter string) []domain.Task {
	return m.store.Tasks(filter)
}

// TaskByID returns the task with the given id, if present.
func (m *Manager) TaskByID(id int64) (domain.Task, bool) {
	return m.store.TaskByID(id)
}

// Stats returns summary statistics for the task list.
func (m *Manager) Stats() domain.Stats {
	return m.store.Stats()
}

// TasksByPriority returns tasks stably sorted by priority rank.
func (m *Manager) TasksByPriority(order string) []domain.Task {
	return m.store.TasksByPriority(order)
}

// Export writes the current snapshot to the file at path (the adapter's
// default filename when empty).
func (m *Manager) Export(path string) error {
	return m.adapter.ExportToFile(path, m.store.Snapshot())
}

// Import replaces the current task list with the snapshot read from the
// file at path and persists it.
func (m *Manager) Import(ctx context.Context, path string) (int, error) {
	snapshot, err := m.adapter.ImportFromFile(path)
	if err != nil {
		return 0, err
	}
	m.store.Restore(snapshot)
	return len(snapshot.Tasks), m.persist(ctx)
}

// CreateBackup wraps the currently stored snapshot in a backup object.
func (m *Manager) CreateBackup(ctx context.Context) (persistence.Backup, error) {
	return m.adapter.CreateBackup(ctx)
}

// RestoreFromBackup replaces both storage and the in-memory state with
// the backup's snapshot.
func (m *Manager) RestoreFromBackup(ctx context.Context, backup persistence.Backup) error {
	if err := m.adapter.RestoreFromBackup(ctx, backup); err != nil {
		return err
	}
	m.store.Restore(backup.Data)
	return nil
}

// StorageInfo reports substrate availability and usage.
func (m *Manager) StorageInfo(ctx context.Context) persistence.Info {
	return m.adapter.StorageInfo(ctx)
}

func (m *Manager) persist(ctx context.Context) error {
	if err := m.adapter.Save(ctx, m.store.Snapshot()); err != nil {
		if errors.ShouldLogError(err) {
			m.logger.Error("failed to persist snapshot", zap.Error(err))
		}
		return err
	}
	return nil
}
