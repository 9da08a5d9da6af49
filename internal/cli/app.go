package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"taskman/internal/domain"
	"taskman/internal/persistence"
)

// TaskManager is the surface the command handlers run against. The
// production implementation is manager.Manager; tests substitute a mock.
type TaskManager interface {
	AddTask(ctx context.Context, title, description, priority string) (domain.Task, error)
	CompleteTask(ctx context.Context, id int64) (bool, error)
	DeleteTask(ctx context.Context, id int64) (bool, error)
	ClearAll(ctx context.Context) error
	Tasks(filter string) []domain.Task
	TaskByID(id int64) (domain.Task, bool)
	Stats() domain.Stats
	TasksByPriority(order string) []domain.Task
	Export(path string) error
	Import(ctx context.Context, path string) (int, error)
	CreateBackup(ctx context.Context) (persistence.Backup, error)
	RestoreFromBackup(ctx context.Context, backup persistence.Backup) error
	StorageInfo(ctx context.Context) persistence.Info
}

// App carries the dependencies shared by all command handlers.
type App struct {
	manager TaskManager
	out     io.Writer
}

// NewApp creates a new CLI application instance with dependency injection
func NewApp(manager TaskManager) *App {
	return &App{
		manager: manager,
		out:     os.Stdout,
	}
}

// NewAppWithOutput creates an App writing to the given writer, for tests.
func NewAppWithOutput(manager TaskManager, out io.Writer) *App {
	return &App{
		manager: manager,
		out:     out,
	}
}

// printf writes formatted output to the app's writer.
func (a *App) printf(format string, args ...interface{}) {
	fmt.Fprintf(a.out, format, args...)
}

// printTask writes one task as a single line:
// a checkbox, the id, the priority in parens, the title, and the
// description when present.
func (a *App) printTask(task domain.Task) {
	box := "[ ]"
	if task.IsCompleted() {
		box = "[x]"
	}
	if task.Description != "" {
		a.printf("%s %d (%s) %s - %s\n", box, task.ID, task.Priority, task.Title, task.Description)
		return
	}
	a.printf("%s %d (%s) %s\n", box, task.ID, task.Priority, task.Title)
}
