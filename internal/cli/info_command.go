package cli

import (
	"context"
)

// InfoCommand handles the info command
type InfoCommand struct {
	app *App
}

// NewInfoCommand creates a new info command handler
func NewInfoCommand(app *App) *InfoCommand {
	return &InfoCommand{app: app}
}

// Execute runs the info command
func (c *InfoCommand) Execute(ctx context.Context, args []string) error {
	info := c.app.manager.StorageInfo(ctx)

	if !info.Available {
		c.app.printf("Storage:  unavailable\n")
		return nil
	}

	c.app.printf("Storage:  available\n")
	c.app.printf("Data:     %d bytes\n", info.DataSize)
	if info.TotalCapacity > 0 {
		c.app.printf("Capacity: %d bytes\n", info.TotalCapacity)
		c.app.printf("Usage:    %.2f%%\n", info.UsagePercentage)
	}
	return nil
}
