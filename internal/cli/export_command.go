package cli

import (
	"context"

	"taskman/internal/errors"
	"taskman/internal/persistence"
)

// ExportCommand handles the export command
type ExportCommand struct {
	app          *App
	errorHandler *ErrorHandler

	// DefaultFilename is the configured fallback used when no file
	// argument is given. The root command populates it before Execute.
	DefaultFilename string
}

// NewExportCommand creates a new export command handler
func NewExportCommand(app *App) *ExportCommand {
	return &ExportCommand{
		app:          app,
		errorHandler: NewErrorHandler(),
	}
}

// Execute runs the export command. With no argument the configured
// default export filename is used.
func (c *ExportCommand) Execute(ctx context.Context, args []string) error {
	if len(args) > 1 {
		return errors.NewInvalidInputError("command", "export", "usage: taskman export [file]")
	}

	path := c.DefaultFilename
	if path == "" {
		path = persistence.DefaultExportFilename
	}
	if len(args) == 1 {
		path = args[0]
	}

	if err := c.app.manager.Export(path); err != nil {
		return c.errorHandler.Handle("export tasks", err)
	}

	c.app.printf("Exported %d tasks to %s\n", c.app.manager.Stats().Total, path)
	return nil
}
