package server

import (
	"context"

	"github.com/go-chi/chi/v5"
)

// ServerInterface is the lifecycle surface used by the entry point and tests.
type ServerInterface interface {
	// SetupRoutes builds the router.
	SetupRoutes()

	// GetRouter returns the configured router.
	GetRouter() chi.Router

	// Start serves until a shutdown signal or a fatal error.
	Start() error

	// Shutdown stops the server and drains background work.
	Shutdown(ctx context.Context) error
}

var _ ServerInterface = (*Server)(nil)
