package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/agendabeleza/backend/internal/constants"
)

// Conn is a single database connection scoped to one logical operation.
// It is acquired from a Provider and must be closed when the operation ends.
type Conn struct {
	*sql.DB
}

// newConn wraps db so that at most one physical connection is ever opened.
func newConn(db *sql.DB) *Conn {
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	return &Conn{DB: db}
}

// Close releases the connection. It is safe on a nil Conn.
func (c *Conn) Close() error {
	if c == nil || c.DB == nil {
		return nil
	}
	if err := c.DB.Close(); err != nil {
		log.Warn().Err(err).Msg("Failed to close database connection")
		return err
	}
	return nil
}

// Transaction executes a function within a transaction
func (c *Conn) Transaction(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := c.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if r := recover(); r != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				log.Error().Err(rbErr).Msg("Failed to rollback transaction after panic")
			}
			panic(r)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("failed to rollback transaction: %w", rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// HealthCheck verifies that the connection answers a trivial query.
func (c *Conn) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, constants.DBHealthCheckTimeout)
	defer cancel()

	var result int
	if err := c.QueryRowContext(ctx, "SELECT 1").Scan(&result); err != nil {
		return fmt.Errorf("database query test failed: %w", err)
	}

	if result != 1 {
		return fmt.Errorf("database returned unexpected result: %d", result)
	}

	return nil
}
