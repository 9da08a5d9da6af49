package cli

import (
	"context"
	"strconv"

	"taskman/internal/errors"
)

// DeleteCommand handles the delete command
type DeleteCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewDeleteCommand creates a new delete command handler
func NewDeleteCommand(app *App) *DeleteCommand {
	return &DeleteCommand{
		app:          app,
		errorHandler: NewErrorHandler(),
	}
}

// Execute runs the delete command
func (c *DeleteCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewInvalidInputError("command", "delete", "usage: taskman delete <id>")
	}

	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return errors.NewInvalidInputError("id", args[0], "id must be a number")
	}

	deleted, err := c.app.manager.DeleteTask(ctx, id)
	if err != nil {
		return c.errorHandler.Handle("delete task", err)
	}
	if !deleted {
		c.app.printf("No task with id %d\n", id)
		return nil
	}

	c.app.printf("Task %d deleted\n", id)
	return nil
}
