package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"sort"
	"strings"
)

//go:embed *.sql
var migrationsFS embed.FS

// migration is one embedded schema step. Files are named
// NNNNNN_description.sql; the numeric prefix is the version. There are
// no rollback scripts: the substrate only ever migrates forward.
type migration struct {
	version    int
	name       string
	statements string
}

// RunMigrations brings the database schema up to date, applying any
// embedded migration whose version is not yet recorded. Each migration
// runs in its own transaction together with its version record, so a
// failure leaves the schema at the last fully applied version.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, `
	CREATE TABLE IF NOT EXISTS schema_migrations (
		version INTEGER PRIMARY KEY,
		applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`); err != nil {
		return fmt.Errorf("failed to create schema_migrations table: %w", err)
	}

	pending, err := pendingMigrations(ctx, db)
	if err != nil {
		return err
	}

	for _, m := range pending {
		if err := applyMigration(ctx, db, m); err != nil {
			return fmt.Errorf("failed to apply migration %d (%s): %w", m.version, m.name, err)
		}
	}
	return nil
}

// pendingMigrations loads the embedded migrations, drops those already
// recorded, and returns the remainder in version order.
func pendingMigrations(ctx context.Context, db *sql.DB) ([]migration, error) {
	applied, err := appliedVersions(ctx, db)
	if err != nil {
		return nil, fmt.Errorf("failed to read applied migrations: %w", err)
	}

	entries, err := migrationsFS.ReadDir(".")
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded migrations: %w", err)
	}

	var pending []migration
	for _, entry := range entries {
		m, err := parseMigration(entry.Name())
		if err != nil {
			return nil, err
		}
		if !applied[m.version] {
			pending = append(pending, m)
		}
	}

	sort.Slice(pending, func(i, j int) bool {
		return pending[i].version < pending[j].version
	})
	return pending, nil
}

func parseMigration(filename string) (migration, error) {
	base := strings.TrimSuffix(filename, ".sql")
	prefix, name, ok := strings.Cut(base, "_")
	if !ok {
		return migration{}, fmt.Errorf("migration file %q has no version prefix", filename)
	}

	var version int
	if _, err := fmt.Sscanf(prefix, "%d", &version); err != nil || version < 1 {
		return migration{}, fmt.Errorf("migration file %q has an invalid version prefix", filename)
	}

	statements, err := migrationsFS.ReadFile(filename)
	if err != nil {
		return migration{}, err
	}

	return migration{
		version:    version,
		name:       name,
		statements: string(statements),
	}, nil
}

func appliedVersions(ctx context.Context, db *sql.DB) (map[int]bool, error) {
	rows, err := db.QueryContext(ctx, `SELECT version FROM schema_migrations`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	applied := make(map[int]bool)
	for rows.Next() {
		var version int
		if err := rows.Scan(&version); err != nil {
			return nil, err
		}
		applied[version] = true
	}
	return applied, rows.Err()
}

func applyMigration(ctx context.Context, db *sql.DB, m migration) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, m.statements); err != nil {
		tx.Rollback()
		return err
	}
	if _, err := tx.ExecContext(ctx, `INSERT INTO schema_migrations (version) VALUES (?)`, m.version); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}
