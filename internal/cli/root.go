package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"taskman/internal/config"
	"taskman/internal/logging"
	"taskman/internal/manager"
	"taskman/internal/persistence"
	"taskman/internal/storage"
	"taskman/internal/storage/sqlite"
)

// RootCommand represents the base command when called without any subcommands.
// It owns the application state: the substrate, adapter, and manager are
// constructed once before the first command runs and torn down by Close.
type RootCommand struct {
	cmd       *cobra.Command
	config    *config.Config
	app       *App
	logger    *zap.Logger
	substrate storage.Substrate
}

// NewRootCommand creates the root cobra command with global flags
func NewRootCommand(cfg *config.Config) *RootCommand {
	root := &RootCommand{
		config: cfg,
	}

	root.cmd = &cobra.Command{
		Use:   "taskman",
		Short: "A command-line task manager with snapshot persistence",
		Long: `Taskman is a command-line application for managing a personal task list.

Tasks are kept as a single snapshot in a local SQLite-backed key-value
store and can be exported to or imported from JSON files.

EXAMPLES:
  taskman add "Buy milk" -p high           # Add a high-priority task
  taskman add "Call mum" -d "on Sunday"    # Add a task with a description
  taskman list                             # List all tasks
  taskman list pending                     # List only pending tasks
  taskman list --by-priority               # List tasks ordered by priority
  taskman done 1                           # Mark task 1 completed
  taskman delete 2                         # Delete task 2
  taskman stats                            # Show completion statistics
  taskman export backup.json               # Export tasks to a JSON file
  taskman import backup.json               # Replace tasks from a JSON file
  taskman info                             # Show storage availability and usage

CONFIGURATION:
  Configuration follows this priority order: command-line flags > environment variables > defaults

    TASKMAN_DB_DIR                         Database directory (default: ~/.taskman)
    TASKMAN_DB_FILENAME                    Database filename (default: taskman.db)
    TASKMAN_DB_MAX_VALUE_BYTES             Snapshot capacity in bytes (default: 5242880)
    TASKMAN_STORAGE_KEY                    Snapshot storage key (default: taskManagerData)
    TASKMAN_EXPORT_FILENAME                Default export filename (default: task-manager-backup.json)
    TASKMAN_APP_TIMEOUT                    Command timeout (default: 30s)
    TASKMAN_APP_VERBOSE                    Enable debug logging (default: false)`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := root.applyFlagOverrides(); err != nil {
				return err
			}
			return root.initApp()
		},
	}

	root.addGlobalFlags()
	root.addSubcommands()

	return root
}

// Execute runs the root command
func (r *RootCommand) Execute() error {
	return r.cmd.Execute()
}

// Close releases the application state created by the first command run.
func (r *RootCommand) Close() {
	if r.substrate != nil {
		r.substrate.Close()
	}
	if r.logger != nil {
		r.logger.Sync()
	}
}

// addGlobalFlags adds global configuration flags
func (r *RootCommand) addGlobalFlags() {
	flags := r.cmd.PersistentFlags()

	flags.String("db-dir", "", "Database directory (overrides TASKMAN_DB_DIR)")
	flags.String("db-filename", "", "Database filename (overrides TASKMAN_DB_FILENAME)")
	flags.String("storage-key", "", "Snapshot storage key (overrides TASKMAN_STORAGE_KEY)")
	flags.Duration("timeout", 0, "Command timeout (overrides TASKMAN_APP_TIMEOUT)")
	flags.BoolP("verbose", "v", false, "Enable debug logging (overrides TASKMAN_APP_VERBOSE)")
}

// applyFlagOverrides updates the configuration with values from command-line flags
func (r *RootCommand) applyFlagOverrides() error {
	if r.config == nil {
		return fmt.Errorf("configuration not initialized")
	}

	flags := r.cmd.PersistentFlags()

	if dbDir, _ := flags.GetString("db-dir"); dbDir != "" {
		r.config.Database.Dir = dbDir
	}
	if dbFilename, _ := flags.GetString("db-filename"); dbFilename != "" {
		r.config.Database.Filename = dbFilename
	}
	if key, _ := flags.GetString("storage-key"); key != "" {
		r.config.Storage.Key = key
	}
	if timeout, _ := flags.GetDuration("timeout"); timeout > 0 {
		r.config.Application.Timeout = timeout
	}
	if verbose, _ := flags.GetBool("verbose"); verbose {
		r.config.Application.Verbose = verbose
	}

	return r.config.Validate()
}

// initApp constructs the substrate, adapter, and manager once.
func (r *RootCommand) initApp() error {
	if r.app != nil {
		return nil
	}

	logger, err := logging.New(r.config.Application.Verbose)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	r.logger = logger

	if err := os.MkdirAll(r.config.Database.Dir, 0o755); err != nil {
		return fmt.Errorf("failed to create database directory: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), r.config.Application.Timeout)
	defer cancel()

	substrate, err := sqlite.NewWithCapacity(ctx, r.config.DatabasePath(), r.config.Database.MaxValueBytes)
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	r.substrate = substrate

	adapter := persistence.NewWithKey(ctx, substrate, r.config.Storage.Key, logger)
	mgr, err := manager.New(ctx, adapter, logger)
	if err != nil {
		return fmt.Errorf("failed to load tasks: %w", err)
	}

	r.app = NewApp(mgr)
	return nil
}

// commandContext returns a context bounded by the configured timeout.
func (r *RootCommand) commandContext() (context.Context, context.CancelFunc) {
	timeout := r.config.Application.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return context.WithTimeout(context.Background(), timeout)
}

// addSubcommands adds all CLI subcommands to the root command
func (r *RootCommand) addSubcommands() {
	addCmd := &cobra.Command{
		Use:   "add [title]",
		Short: "Add a new task",
		Long:  "Add a new pending task. The title must not be empty; leading and trailing whitespace is trimmed.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.commandContext()
			defer cancel()

			handler := NewAddCommand(r.app)
			handler.Description, _ = cmd.Flags().GetString("description")
			handler.Priority, _ = cmd.Flags().GetString("priority")
			return handler.Execute(ctx, args)
		},
	}
	addCmd.Flags().StringP("description", "d", "", "Task description")
	addCmd.Flags().StringP("priority", "p", "medium", "Task priority (high, medium, low)")

	doneCmd := &cobra.Command{
		Use:   "done <id>",
		Short: "Mark a task as completed",
		Long:  "Mark the task with the given id as completed. Completed tasks stay in the list until deleted.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.commandContext()
			defer cancel()

			return NewDoneCommand(r.app).Execute(ctx, args)
		},
	}

	deleteCmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a task",
		Long:  "Delete the task with the given id. Deleted ids are never reused.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.commandContext()
			defer cancel()

			return NewDeleteCommand(r.app).Execute(ctx, args)
		},
	}

	listCmd := &cobra.Command{
		Use:   "list [status]",
		Short: "List tasks",
		Long: `List tasks, optionally filtered by status (pending, completed, all).

Examples:
  taskman list                     # All tasks
  taskman list pending             # Only pending tasks
  taskman list --by-priority       # Ordered high to low
  taskman list --by-priority --order asc`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.commandContext()
			defer cancel()

			handler := NewListCommand(r.app)
			handler.ByPriority, _ = cmd.Flags().GetBool("by-priority")
			handler.Order, _ = cmd.Flags().GetString("order")
			return handler.Execute(ctx, args)
		},
	}
	listCmd.Flags().Bool("by-priority", false, "Order tasks by priority instead of insertion order")
	listCmd.Flags().String("order", "desc", "Priority sort order: desc or asc")

	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "Show task statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.commandContext()
			defer cancel()

			return NewStatsCommand(r.app).Execute(ctx, args)
		},
	}

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete all tasks",
		Long:  "Delete all tasks and reset the id counter. This cannot be undone; export first if in doubt.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.commandContext()
			defer cancel()

			return NewClearCommand(r.app).Execute(ctx, args)
		},
	}

	exportCmd := &cobra.Command{
		Use:   "export [file]",
		Short: "Export tasks to a JSON file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.commandContext()
			defer cancel()

			handler := NewExportCommand(r.app)
			handler.DefaultFilename = r.config.Storage.ExportFilename
			return handler.Execute(ctx, args)
		},
	}

	importCmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import tasks from a JSON file",
		Long:  "Replace the current task list with the contents of a previously exported JSON file.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.commandContext()
			defer cancel()

			return NewImportCommand(r.app).Execute(ctx, args)
		},
	}

	infoCmd := &cobra.Command{
		Use:   "info",
		Short: "Show storage availability and usage",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.commandContext()
			defer cancel()

			return NewInfoCommand(r.app).Execute(ctx, args)
		},
	}

	r.cmd.AddCommand(
		addCmd,
		doneCmd,
		deleteCmd,
		listCmd,
		statsCmd,
		clearCmd,
		exportCmd,
		importCmd,
		infoCmd,
	)
}
