package cli

import (
	"context"
	"strings"

	"taskman/internal/errors"
)

// AddCommand handles the add command
type AddCommand struct {
	app          *App
	errorHandler *ErrorHandler

	// Description and Priority are populated from command flags before
	// Execute runs.
	Description string
	Priority    string
}

// NewAddCommand creates a new add command handler
func NewAddCommand(app *App) *AddCommand {
	return &AddCommand{
		app:          app,
		errorHandler: NewErrorHandler(),
	}
}

// Execute runs the add command
func (c *AddCommand) Execute(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return errors.NewInvalidInputError("command", "add", "usage: taskman add \"task title\"")
	}
	title := strings.Join(args, " ")

	task, err := c.app.manager.AddTask(ctx, title, c.Description, c.Priority)
	if err != nil {
		return c.errorHandler.Handle("add task", err)
	}

	c.app.printf("Added task %d: %s (%s)\n", task.ID, task.Title, task.Priority)
	return nil
}
