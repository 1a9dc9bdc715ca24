package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/agendabeleza/backend/internal/database"
	"github.com/agendabeleza/backend/internal/models"
	"github.com/agendabeleza/backend/internal/utils"
)

// ServiceRepository reads the service catalog
type ServiceRepository interface {
	List(ctx context.Context) ([]*models.Service, error)
	Search(ctx context.Context, term string) ([]*models.Service, error)
	GetByID(ctx context.Context, id int64) (*models.Service, error)
}

// MySQLServiceRepository is the MySQL implementation of ServiceRepository
type MySQLServiceRepository struct {
	db database.Acquirer
}

// NewServiceRepository creates a new ServiceRepository
func NewServiceRepository(db database.Acquirer) ServiceRepository {
	return &MySQLServiceRepository{
		db: db,
	}
}

// likeEscaper makes user input match literally inside a LIKE pattern.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// List returns every service ordered by name
func (r *MySQLServiceRepository) List(ctx context.Context) ([]*models.Service, error) {
	query := "SELECT Id, Nome, Descricao FROM Servicos ORDER BY Nome"
	return r.query(ctx, query)
}

// Search returns services whose name or description contains term.
// An empty term lists the whole catalog.
func (r *MySQLServiceRepository) Search(ctx context.Context, term string) ([]*models.Service, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return r.List(ctx)
	}

	pattern := "%" + likeEscaper.Replace(term) + "%"
	query := "SELECT Id, Nome, Descricao FROM Servicos WHERE Nome LIKE ? OR Descricao LIKE ? ORDER BY Nome"
	return r.query(ctx, query, pattern, pattern)
}

// GetByID retrieves one service
func (r *MySQLServiceRepository) GetByID(ctx context.Context, id int64) (*models.Service, error) {
	startTime := time.Now()

	conn, err := r.db.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	query := "SELECT Id, Nome, Descricao FROM Servicos WHERE Id = ?"

	var (
		service     models.Service
		description sql.NullString
	)
	err = conn.QueryRowContext(ctx, query, id).Scan(&service.ID, &service.Name, &description)

	utils.LogDBQuery(query, []interface{}{id}, time.Since(startTime), err)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.NewNotFoundError("Service", id)
		}
		return nil, fmt.Errorf("failed to get service by ID: %w", err)
	}
	service.Description = description.String

	return &service, nil
}

func (r *MySQLServiceRepository) query(ctx context.Context, query string, args ...interface{}) ([]*models.Service, error) {
	startTime := time.Now()

	conn, err := r.db.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	rows, err := conn.QueryContext(ctx, query, args...)

	utils.LogDBQuery(query, args, time.Since(startTime), err)

	if err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			log.Error().Err(closeErr).Msg("failed to close rows")
		}
	}()

	services := []*models.Service{}
	for rows.Next() {
		var (
			service     models.Service
			description sql.NullString
		)
		if err := rows.Scan(&service.ID, &service.Name, &description); err != nil {
			return nil, fmt.Errorf("failed to scan service row: %w", err)
		}
		service.Description = description.String
		services = append(services, &service)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating service rows: %w", err)
	}

	return services, nil
}
