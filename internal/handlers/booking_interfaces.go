package handlers

import (
	"context"

	"github.com/agendabeleza/backend/internal/models"
	"github.com/agendabeleza/backend/internal/session"
)

// BookingServiceInterface defines the methods required from the booking service.
type BookingServiceInterface interface {
	// Book records a pending booking for the session's user and returns its ID.
	Book(ctx context.Context, sess *session.Session, serviceID int64, whenRaw, notes string) (int64, error)

	// ListForClient returns the session user's bookings, newest first.
	ListForClient(ctx context.Context, sess *session.Session) ([]*models.Booking, error)
}

// CatalogServiceInterface defines the methods required from the catalog service.
type CatalogServiceInterface interface {
	List(ctx context.Context) ([]*models.Service, error)
	Search(ctx context.Context, q string) ([]*models.Service, error)
}

// HealthChecker reports whether the data store is reachable.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}
