package cli

import (
	"context"

	"taskman/internal/errors"
)

// ImportCommand handles the import command
type ImportCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewImportCommand creates a new import command handler
func NewImportCommand(app *App) *ImportCommand {
	return &ImportCommand{
		app:          app,
		errorHandler: NewErrorHandler(),
	}
}

// Execute runs the import command. Importing replaces the current task
// list with the file's contents.
func (c *ImportCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewInvalidInputError("command", "import", "usage: taskman import <file>")
	}

	count, err := c.app.manager.Import(ctx, args[0])
	if err != nil {
		return c.errorHandler.Handle("import tasks", err)
	}

	c.app.printf("Imported %d tasks from %s\n", count, args[0])
	return nil
}
