package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/agendabeleza/backend/internal/database"
	"github.com/agendabeleza/backend/internal/models"
	"github.com/agendabeleza/backend/internal/utils"
)

// BookingRepository persists appointments
type BookingRepository interface {
	Create(ctx context.Context, booking *models.Booking) error
	ListByClient(ctx context.Context, clientID int64) ([]*models.Booking, error)
}

// MySQLBookingRepository is the MySQL implementation of BookingRepository
type MySQLBookingRepository struct {
	db database.Acquirer
}

// NewBookingRepository creates a new BookingRepository
func NewBookingRepository(db database.Acquirer) BookingRepository {
	return &MySQLBookingRepository{
		db: db,
	}
}

// Create stores a booking with a single insert statement
func (r *MySQLBookingRepository) Create(ctx context.Context, booking *models.Booking) error {
	startTime := time.Now()

	conn, err := r.db.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()

	query := `
        INSERT INTO Marcacoes (Cliente_id, Servico_id, DataHora, Estado, Observacoes)
        VALUES (?, ?, ?, ?, ?)
    `

	args := []interface{}{
		booking.ClientID,
		booking.ServiceID,
		booking.ScheduledAt,
		string(booking.Status),
		booking.Notes,
	}

	result, err := conn.ExecContext(ctx, query, args...)

	utils.LogDBQuery(query, args, time.Since(startTime), err)

	if err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read new booking ID: %w", err)
	}
	booking.ID = id

	log.Info().
		Int64("booking_id", booking.ID).
		Int64("client_id", booking.ClientID).
		Int64("service_id", booking.ServiceID).
		Time("scheduled_at", booking.ScheduledAt).
		Msg("Booking created")

	return nil
}

// ListByClient returns a client's bookings, newest appointment first
func (r *MySQLBookingRepository) ListByClient(ctx context.Context, clientID int64) ([]*models.Booking, error) {
	startTime := time.Now()

	conn, err := r.db.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	query := `
        SELECT m.Id, m.Servico_id, s.Nome, m.DataHora, m.Estado, m.Observacoes
        FROM Marcacoes m
        JOIN Servicos s ON m.Servico_id = s.Id
        WHERE m.Cliente_id = ?
        ORDER BY m.DataHora DESC
    `

	rows, err := conn.QueryContext(ctx, query, clientID)

	utils.LogDBQuery(query, []interface{}{clientID}, time.Since(startTime), err)

	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			log.Error().Err(closeErr).Msg("failed to close rows")
		}
	}()

	bookings := []*models.Booking{}
	for rows.Next() {
		var (
			booking models.Booking
			status  string
			notes   sql.NullString
		)
		if err := rows.Scan(&booking.ID, &booking.ServiceID, &booking.ServiceName, &booking.ScheduledAt, &status, &notes); err != nil {
			return nil, fmt.Errorf("failed to scan booking row: %w", err)
		}

		booking.Status, err = models.ParseBookingStatus(status)
		if err != nil {
			log.Warn().Int64("booking_id", booking.ID).Str("status", status).Msg("Booking has an unknown status")
			booking.Status = models.BookingStatus(status)
		}
		booking.ClientID = clientID
		booking.Notes = notes.String
		bookings = append(bookings, &booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating booking rows: %w", err)
	}

	return bookings, nil
}
