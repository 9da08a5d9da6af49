package cli

import (
	"context"

	"taskman/internal/domain"
	"taskman/internal/errors"
)

// ListCommand handles the list command
type ListCommand struct {
	app *App

	// ByPriority and Order are populated from command flags before
	// Execute runs.
	ByPriority bool
	Order      string
}

// NewListCommand creates a new list command handler
func NewListCommand(app *App) *ListCommand {
	return &ListCommand{app: app}
}

// Execute runs the list command. An optional positional argument filters
// by status: "pending", "completed", or "all" (the default). Unknown
// status values simply match nothing, mirroring the store's filter. The
// status filter and priority ordering combine.
func (c *ListCommand) Execute(ctx context.Context, args []string) error {
	if len(args) > 1 {
		return errors.NewInvalidInputError("command", "list", "usage: taskman list [status]")
	}

	filter := domain.StatusAll
	if len(args) == 1 {
		filter = args[0]
	}

	var tasks []domain.Task
	if c.ByPriority {
		tasks = filterByStatus(c.app.manager.TasksByPriority(c.Order), filter)
	} else {
		tasks = c.app.manager.Tasks(filter)
	}

	if len(tasks) == 0 {
		c.app.printf("No tasks found\n")
		return nil
	}

	for _, task := range tasks {
		c.app.printTask(task)
	}
	return nil
}

// filterByStatus keeps the tasks matching the status filter, preserving
// their order. "all" keeps everything.
func filterByStatus(tasks []domain.Task, filter string) []domain.Task {
	if filter == domain.StatusAll {
		return tasks
	}
	var filtered []domain.Task
	for _, task := range tasks {
		if task.Status == domain.Status(filter) {
			filtered = append(filtered, task)
		}
	}
	return filtered
}
