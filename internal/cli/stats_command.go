package cli

import (
	"context"
)

// StatsCommand handles the stats command
type StatsCommand struct {
	app *App
}

// NewStatsCommand creates a new stats command handler
func NewStatsCommand(app *App) *StatsCommand {
	return &StatsCommand{app: app}
}

// Execute runs the stats command
func (c *StatsCommand) Execute(ctx context.Context, args []string) error {
	stats := c.app.manager.Stats()

	c.app.printf("Total:      %d\n", stats.Total)
	c.app.printf("Completed:  %d\n", stats.Completed)
	c.app.printf("Pending:    %d\n", stats.Pending)
	c.app.printf("Completion: %d%%\n", stats.CompletionRate)
	return nil
}
