package cli

import (
	"context"

	"taskman/internal/domain"
	"taskman/internal/persistence"
)

// mockTaskManager is a hand-written TaskManager for command handler
// tests. Each operation returns the configured value and records the
// arguments it was called with.
type mockTaskManager struct {
	addTaskFunc     func(title, description, priority string) (domain.Task, error)
	completeResult  bool
	completeErr     error
	deleteResult    bool
	deleteErr       error
	clearErr        error
	tasks           []domain.Task
	tasksByPriority []domain.Task
	stats           domain.Stats
	exportErr       error
	importCount     int
	importErr       error
	backup          persistence.Backup
	backupErr       error
	restoreErr      error
	info            persistence.Info

	addedTitle       string
	addedDescription string
	addedPriority    string
	completedID      int64
	deletedID        int64
	clearCalled      bool
	tasksFilter      string
	priorityOrder    string
	exportPath       string
	importPath       string
}

func (m *mockTaskManager) AddTask(ctx context.Context, title, description, priority string) (domain.Task, error) {
	m.addedTitle = title
	m.addedDescription = description
	m.addedPriority = priority
	if m.addTaskFunc != nil {
		return m.addTaskFunc(title, description, priority)
	}
	return domain.Task{ID: 1, Title: title, Description: description, Priority: priority, Status: domain.StatusPending}, nil
}

func (m *mockTaskManager) CompleteTask(ctx context.Context, id int64) (bool, error) {
	m.completedID = id
	return m.completeResult, m.completeErr
}

func (m *mockTaskManager) DeleteTask(ctx context.Context, id int64) (bool, error) {
	m.deletedID = id
	return m.deleteResult, m.deleteErr
}

func (m *mockTaskManager) ClearAll(ctx context.Context) error {
	m.clearCalled = true
	return m.clearErr
}

func (m *mockTaskManager) Tasks(filter string) []domain.Task {
	m.tasksFilter = filter
	return m.tasks
}

func (m *mockTaskManager) TaskByID(id int64) (domain.Task, bool) {
	for _, task := range m.tasks {
		if task.ID == id {
			return task, true
		}
	}
	return domain.Task{}, false
}

func (m *mockTaskManager) Stats() domain.Stats {
	return m.stats
}

func (m *mockTaskManager) TasksByPriority(order string) []domain.Task {
	m.priorityOrder = order
	return m.tasksByPriority
}

func (m *mockTaskManager) Export(path string) error {
	m.exportPath = path
	return m.exportErr
}

func (m *mockTaskManager) Import(ctx context.Context, path string) (int, error) {
	m.importPath = path
	return m.importCount, m.importErr
}

func (m *mockTaskManager) CreateBackup(ctx context.Context) (persistence.Backup, error) {
	return m.backup, m.backupErr
}

func (m *mockTaskManager) RestoreFromBackup(ctx context.Context, backup persistence.Backup) error {
	return m.restoreErr
}

func (m *mockTaskManager) StorageInfo(ctx context.Context) persistence.Info {
	return m.info
}
