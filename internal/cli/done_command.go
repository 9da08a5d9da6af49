package cli

import (
	"context"
	"strconv"

	"taskman/internal/errors"
)

// DoneCommand handles the done command
type DoneCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewDoneCommand creates a new done command handler
func NewDoneCommand(app *App) *DoneCommand {
	return &DoneCommand{
		app:          app,
		errorHandler: NewErrorHandler(),
	}
}

// Execute runs the done command
func (c *DoneCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewInvalidInputError("command", "done", "usage: taskman done <id>")
	}

	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return errors.NewInvalidInputError("id", args[0], "id must be a number")
	}

	completed, err := c.app.manager.CompleteTask(ctx, id)
	if err != nil {
		return c.errorHandler.Handle("complete task", err)
	}
	if !completed {
		c.app.printf("No task with id %d\n", id)
		return nil
	}

	c.app.printf("Task %d completed\n", id)
	return nil
}
