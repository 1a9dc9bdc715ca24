// Package migrations provides a framework for database schema management.
//
// Executed migrations are tracked in a dedicated migrations table so that
// running the set again is a no-op. A migration whose table already exists
// (for instance because the schema was created by hand) is recorded as done
// without executing its SQL.
package migrations

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/agendabeleza/backend/internal/constants"
	"github.com/agendabeleza/backend/internal/database"
)

// Migration represents a database migration.
// Each migration performs a specific schema change and is tracked
// to ensure it runs exactly once.
type Migration struct {
	// Name is a unique identifier for the migration
	Name string
	// Description is a human-readable explanation of what the migration does
	Description string
	// TableName is the table affected by this migration, used for existence checks
	TableName string
	// RunSQL is the function that executes the migration SQL within a transaction
	RunSQL func(ctx context.Context, tx *sql.Tx) error
}

// Migrator handles database migrations.
type Migrator struct {
	db         database.Acquirer
	migrations []Migration
}

// NewMigrator creates a migrator for the application schema.
func NewMigrator(db database.Acquirer) *Migrator {
	return &Migrator{
		db:         db,
		migrations: GetMigrations(),
	}
}

// RunMigrations runs all pending database migrations on a single connection.
//
// Parameters:
//   - ctx: Context for database operations and cancellation
//
// Returns:
//   - error: Any error encountered during migration, nil if successful
func (m *Migrator) RunMigrations(ctx context.Context) error {
	log.Info().Msg("Running database migrations")
	startTime := time.Now()

	conn, err := m.db.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()

	if err := createMigrationsTable(ctx, conn); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	executed, err := getExecutedMigrations(ctx, conn)
	if err != nil {
		return fmt.Errorf("failed to get executed migrations: %w", err)
	}

	migrationsRun, migrationsRecorded := 0, 0
	for _, migration := range m.migrations {
		if executed[migration.Name] {
			continue
		}

		exists, err := tableExists(ctx, conn, migration.TableName)
		if err != nil {
			return fmt.Errorf("failed to check if table %s exists: %w", migration.TableName, err)
		}

		if exists {
			log.Info().
				Str("migration", migration.Name).
				Str("table", migration.TableName).
				Msg("Table already exists, recording migration as completed")

			if err := recordMigration(ctx, conn, migration.Name, migration.Description); err != nil {
				return err
			}
			migrationsRecorded++
			continue
		}

		log.Info().
			Str("migration", migration.Name).
			Str("table", migration.TableName).
			Msg("Running migration")

		if err := runMigration(ctx, conn, migration); err != nil {
			return err
		}
		migrationsRun++
	}

	log.Info().
		Int("migrations_run", migrationsRun).
		Int("migrations_recorded", migrationsRecorded).
		Int("total_migrations", len(m.migrations)).
		Dur("duration", time.Since(startTime)).
		Msg("Database migrations completed")

	return nil
}

// createMigrationsTable creates the tracking table if it doesn't exist.
func createMigrationsTable(ctx context.Context, conn *database.Conn) error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			name VARCHAR(255) PRIMARY KEY,
			description TEXT,
			executed_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`, constants.TableMigrations)
	_, err := conn.ExecContext(ctx, query)
	return err
}

// getExecutedMigrations returns the set of migration names already applied.
func getExecutedMigrations(ctx context.Context, conn *database.Conn) (map[string]bool, error) {
	query := fmt.Sprintf(`SELECT name FROM %s`, constants.TableMigrations)
	rows, err := conn.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			log.Error().Err(closeErr).Msg("failed to close rows")
		}
	}()

	executed := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		executed[name] = true
	}

	return executed, rows.Err()
}

// runMigration runs a migration and records it in the same transaction.
func runMigration(ctx context.Context, conn *database.Conn, migration Migration) error {
	return conn.Transaction(ctx, func(tx *sql.Tx) error {
		if err := migration.RunSQL(ctx, tx); err != nil {
			return fmt.Errorf("migration %s failed: %w", migration.Name, err)
		}

		query := fmt.Sprintf(`INSERT INTO %s (name, description) VALUES (?, ?)`, constants.TableMigrations)
		if _, err := tx.ExecContext(ctx, query, migration.Name, migration.Description); err != nil {
			return fmt.Errorf("failed to record migration: %w", err)
		}

		return nil
	})
}

// recordMigration marks a migration as completed without running its SQL.
func recordMigration(ctx context.Context, conn *database.Conn, name, description string) error {
	query := fmt.Sprintf(`INSERT INTO %s (name, description) VALUES (?, ?)`, constants.TableMigrations)
	if _, err := conn.ExecContext(ctx, query, name, description); err != nil {
		return fmt.Errorf("failed to record migration: %w", err)
	}
	return nil
}

// tableExists checks the current schema for a table.
func tableExists(ctx context.Context, conn *database.Conn, tableName string) (bool, error) {
	query := `
		SELECT COUNT(*)
		FROM information_schema.tables
		WHERE table_schema = DATABASE()
		AND table_name = ?`

	var count int
	if err := conn.QueryRowContext(ctx, query, tableName).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

// GetMigrations returns all migrations in the order they must be applied.
func GetMigrations() []Migration {
	return []Migration{
		createUsersTable(),
		createServicesTable(),
		createBookingsTable(),
	}
}
