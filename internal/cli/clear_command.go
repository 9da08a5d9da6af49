package cli

import (
	"context"
)

// ClearCommand handles the clear command
type ClearCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewClearCommand creates a new clear command handler
func NewClearCommand(app *App) *ClearCommand {
	return &ClearCommand{
		app:          app,
		errorHandler: NewErrorHandler(),
	}
}

// Execute runs the clear command. Clearing resets the id counter, so the
// next task created starts again at 1.
func (c *ClearCommand) Execute(ctx context.Context, args []string) error {
	if err := c.app.manager.ClearAll(ctx); err != nil {
		return c.errorHandler.Handle("clear tasks", err)
	}

	c.app.printf("All tasks cleared\n")
	return nil
}
