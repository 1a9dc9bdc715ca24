// Package server wires the Agenda Beleza application together and owns
// the HTTP server lifecycle.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/agendabeleza/backend/internal/auth"
	"github.com/agendabeleza/backend/internal/config"
	"github.com/agendabeleza/backend/internal/constants"
	"github.com/agendabeleza/backend/internal/database"
	"github.com/agendabeleza/backend/internal/handlers"
	"github.com/agendabeleza/backend/internal/notify"
	"github.com/agendabeleza/backend/internal/repository"
	"github.com/agendabeleza/backend/internal/service"
	"github.com/agendabeleza/backend/internal/session"
	"github.com/agendabeleza/backend/internal/utils/ratelimit"
	"github.com/agendabeleza/backend/migrations"
	"github.com/agendabeleza/backend/scripts"
)

// Handlers holds all the HTTP handlers for the application.
type Handlers struct {
	AuthHandler          *handlers.AuthHandler
	PasswordResetHandler *handlers.PasswordResetHandler
	BookingHandler       *handlers.BookingHandler
	GenericHandler       *handlers.GenericHandler
}

// Server represents the HTTP server for the application.
type Server struct {
	Config *config.AppConfig
	Db     *database.Provider

	router     chi.Router
	Handlers   *Handlers
	httpServer *http.Server

	sessions   *session.Manager
	gate       *session.Gate
	dispatcher *notify.Dispatcher
	limiter    *ratelimit.Store
}

// services groups the application services built during setup.
type services struct {
	auth    *service.AuthService
	booking *service.BookingService
	catalog *service.CatalogService
}

// NewServer creates a new server with the given configuration.
// Setup order: database, sessions, mail, services, handlers, routes.
// Any failure releases what was already started.
func NewServer(cfg *config.AppConfig) (*Server, error) {
	s := &Server{
		Config: cfg,
	}

	if err := s.setupDatabase(); err != nil {
		return nil, fmt.Errorf("failed to set up database: %w", err)
	}

	if err := s.setupSessions(); err != nil {
		return nil, fmt.Errorf("failed to set up sessions: %w", err)
	}

	if err := s.setupMail(); err != nil {
		s.release(context.Background())
		return nil, fmt.Errorf("failed to set up mail: %w", err)
	}

	svcs := s.setupServices()
	s.setupHandlers(svcs)

	s.limiter = ratelimit.NewStore(ratelimit.Rate{
		RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
		Burst:             cfg.RateLimit.Burst,
	}, constants.RateLimitCleanupInterval)

	s.SetupRoutes()

	s.httpServer = &http.Server{
		Addr:         cfg.Server.ServerAddress(),
		Handler:      s.router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  constants.DefaultIdleTimeout,
	}

	return s, nil
}

// setupDatabase configures the connection provider and, when enabled,
// creates the schema and seeds the catalog.
func (s *Server) setupDatabase() error {
	db, err := database.NewProvider(&s.Config.Database)
	if err != nil {
		return err
	}
	s.Db = db

	if !s.Config.Database.AutoMigrate {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.Config.Database.ConnectTimeout*2+constants.DBHealthCheckTimeout)
	defer cancel()

	if err := migrations.NewMigrator(db).RunMigrations(ctx); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	if err := scripts.NewSeeder(db).SeedDatabase(ctx); err != nil {
		return fmt.Errorf("failed to seed database: %w", err)
	}
	return nil
}

func (s *Server) setupSessions() error {
	store, err := session.NewStore(context.Background(), &s.Config.Session)
	if err != nil {
		return err
	}

	s.sessions = session.NewManager(store, &s.Config.Session)
	s.gate = session.NewGate(s.sessions)
	return nil
}

func (s *Server) setupMail() error {
	mailer, err := notify.NewMailer(&s.Config.Mail)
	if err != nil {
		return err
	}

	s.dispatcher = notify.NewDispatcher(mailer, notify.DispatcherConfig{
		Workers:     s.Config.Mail.Workers,
		QueueSize:   s.Config.Mail.QueueSize,
		SendTimeout: s.Config.Mail.SendTimeout,
	})
	return nil
}

func (s *Server) setupServices() *services {
	userRepo := repository.NewUserRepository(s.Db)
	serviceRepo := repository.NewServiceRepository(s.Db)
	bookingRepo := repository.NewBookingRepository(s.Db)

	tokens := auth.NewResetTokenService(&s.Config.Security)
	passwordCfg := auth.ConfigFromAppConfig(s.Config)

	return &services{
		auth:    service.NewAuthService(userRepo, tokens, s.dispatcher, passwordCfg, s.Config.App.BaseURL),
		booking: service.NewBookingService(bookingRepo, serviceRepo, s.dispatcher, s.Config.Mail.AdminAddress),
		catalog: service.NewCatalogService(serviceRepo),
	}
}

func (s *Server) setupHandlers(svcs *services) {
	s.Handlers = &Handlers{
		AuthHandler:          handlers.NewAuthHandler(svcs.auth, s.sessions),
		PasswordResetHandler: handlers.NewPasswordResetHandler(svcs.auth),
		BookingHandler:       handlers.NewBookingHandler(svcs.booking, svcs.catalog, s.gate),
		GenericHandler: handlers.NewGenericHandler(svcs.catalog, s.Db, handlers.AppInfo{
			Name:        s.Config.App.Name,
			Version:     s.Config.App.Version,
			Environment: s.Config.App.Environment,
		}),
	}
}

// Start begins listening for HTTP requests and blocks until the server
// fails or a shutdown signal arrives.
func (s *Server) Start() error {
	serverErrors := make(chan error, 1)

	go func() {
		log.Info().
			Str("address", s.Config.Server.ServerAddress()).
			Str("environment", s.Config.App.Environment).
			Msg("Starting server")

		serverErrors <- s.httpServer.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(shutdown)

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		s.release(context.Background())
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		log.Info().
			Str("signal", sig.String()).
			Msg("Shutdown signal received")

		ctx, cancel := context.WithTimeout(context.Background(), s.Config.Server.ShutdownTimeout)
		defer cancel()

		if err := s.Shutdown(ctx); err != nil {
			if closeErr := s.httpServer.Close(); closeErr != nil {
				log.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
	}

	return nil
}

// Shutdown stops accepting requests, waits for in-flight ones, then
// drains the mail queue before releasing the session store.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			s.release(ctx)
			return fmt.Errorf("server shutdown error: %w", err)
		}
		log.Info().Msg("Server stopped gracefully")
	}

	return s.release(ctx)
}

// release stops the background components. Safe to call more than once.
func (s *Server) release(ctx context.Context) error {
	var errs []error

	if s.dispatcher != nil {
		if err := s.dispatcher.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("mail queue not drained: %w", err))
		} else {
			log.Info().Msg("Mail queue drained")
		}
	}

	if s.sessions != nil {
		if err := s.sessions.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close session store: %w", err))
		}
	}

	if s.limiter != nil {
		s.limiter.Close()
	}

	return errors.Join(errs...)
}

// GetRouter exposes the router, mainly for tests.
func (s *Server) GetRouter() chi.Router {
	return s.router
}
