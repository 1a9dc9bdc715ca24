// Package scripts seeds reference data after the schema exists.
//
// Seeds are tracked by name in their own table, so each one runs once per
// database and re-running the seeder is harmless.
package scripts

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/agendabeleza/backend/internal/constants"
	"github.com/agendabeleza/backend/internal/database"
	"github.com/agendabeleza/backend/internal/models"
)

// Seed is one named data load.
type Seed struct {
	Name string
	Run  func(ctx context.Context, tx *sql.Tx) error
}

// Seeder handles database seeding.
type Seeder struct {
	db    database.Acquirer
	seeds []Seed
}

// NewSeeder creates a seeder with the default seeds.
func NewSeeder(db database.Acquirer) *Seeder {
	return &Seeder{
		db: db,
		seeds: []Seed{
			{Name: "servicos_catalogo", Run: seedServices},
		},
	}
}

// SeedDatabase runs every seed that has not run yet.
//
// Parameters:
//   - ctx: Context for database operations and cancellation
//
// Returns:
//   - error: Any error encountered during seeding, nil if successful
func (s *Seeder) SeedDatabase(ctx context.Context) error {
	log.Info().Msg("Seeding database")
	startTime := time.Now()

	conn, err := s.db.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()

	if err := createSeedsTable(ctx, conn); err != nil {
		return fmt.Errorf("failed to create seeds table: %w", err)
	}

	executed, err := getExecutedSeeds(ctx, conn)
	if err != nil {
		return fmt.Errorf("failed to get executed seeds: %w", err)
	}

	for _, seed := range s.seeds {
		if executed[seed.Name] {
			log.Debug().Str("seed", seed.Name).Msg("Seed already executed")
			continue
		}

		log.Info().Str("seed", seed.Name).Msg("Running seed")
		if err := runSeed(ctx, conn, seed); err != nil {
			return err
		}
	}

	log.Info().
		Dur("duration", time.Since(startTime)).
		Msg("Database seeding completed")

	return nil
}

func createSeedsTable(ctx context.Context, conn *database.Conn) error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			name VARCHAR(255) PRIMARY KEY,
			executed_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`, constants.TableSeeds)
	_, err := conn.ExecContext(ctx, query)
	return err
}

func getExecutedSeeds(ctx context.Context, conn *database.Conn) (map[string]bool, error) {
	rows, err := conn.QueryContext(ctx, fmt.Sprintf(`SELECT name FROM %s`, constants.TableSeeds))
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

// runSeed applies a seed and records it in the same transaction.
func runSeed(ctx context.Context, conn *database.Conn, seed Seed) error {
	return conn.Transaction(ctx, func(tx *sql.Tx) error {
		if err := seed.Run(ctx, tx); err != nil {
			return fmt.Errorf("seed %s failed: %w", seed.Name, err)
		}

		query := fmt.Sprintf(`INSERT INTO %s (name) VALUES (?)`, constants.TableSeeds)
		if _, err := tx.ExecContext(ctx, query, seed.Name); err != nil {
			return fmt.Errorf("failed to record seed: %w", err)
		}
		return nil
	})
}

// seedServices inserts the default catalog entries that are missing by name.
func seedServices(ctx context.Context, tx *sql.Tx) error {
	rows, err := tx.QueryContext(ctx, fmt.Sprintf(`SELECT Nome FROM %s`, constants.TableServices))
	if err != nil {
		return fmt.Errorf("failed to query existing services: %w", err)
	}

	existing := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			_ = rows.Close()
			return fmt.Errorf("failed to scan service name: %w", err)
		}
		existing[name] = true
	}
	if err := rows.Close(); err != nil {
		return err
	}

	insert := fmt.Sprintf(`INSERT INTO %s (Nome, Descricao) VALUES (?, ?)`, constants.TableServices)
	added := 0
	for _, svc := range models.DefaultServices() {
		if existing[svc.Name] {
			continue
		}
		if _, err := tx.ExecContext(ctx, insert, svc.Name, svc.Description); err != nil {
			return fmt.Errorf("failed to insert service %q: %w", svc.Name, err)
		}
		added++
	}

	log.Info().Int("added", added).Msg("Service catalog seeded")
	return nil
}
