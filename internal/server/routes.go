package server

import (
	"net/http"
	"sort"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/agendabeleza/backend/internal/constants"
	"github.com/agendabeleza/backend/internal/middleware"
	"github.com/agendabeleza/backend/internal/utils"
)

// SetupRoutes configures the routes for the application.
//
// Every request passes through request IDs, panic recovery, security
// headers and the session middleware. Credential endpoints and booking
// submission are additionally rate limited per client IP. The booking
// pages enforce login themselves through the session gate so that the
// intended path can be remembered for after login.
func (s *Server) SetupRoutes() {
	r := chi.NewRouter()

	r.Use(middleware.CORS(&s.Config.CORS))
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	if s.Config.Logging.RequestLog {
		r.Use(middleware.RequestLogger())
	}
	r.Use(middleware.Recovery())
	r.Use(middleware.SecurityHeaders())
	r.Use(s.sessions.Middleware)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		utils.NotFound(w, "")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		utils.MethodNotAllowed(w)
	})

	// Public pages
	r.Group(func(r chi.Router) {
		r.Get(constants.RouteHome, s.Handlers.GenericHandler.Home)
		r.Get(constants.RouteAbout, s.Handlers.GenericHandler.About)
		r.Get(constants.RouteServices, s.Handlers.GenericHandler.Services)
		r.Get(constants.HealthPath, s.Handlers.GenericHandler.Health)
		r.Get(constants.VersionPath, s.Handlers.GenericHandler.Version)
	})

	// Accounts and password reset
	r.Group(func(r chi.Router) {
		r.Get(constants.RouteLogin, s.Handlers.AuthHandler.LoginPage)
		r.Get(constants.RouteLogout, s.Handlers.AuthHandler.Logout)
		r.Get(constants.RouteRegister, s.Handlers.AuthHandler.RegisterPage)
		r.Get(constants.RouteResetRequest, s.Handlers.PasswordResetHandler.ResetRequestPage)
		r.Get(constants.RouteReset, s.Handlers.PasswordResetHandler.ResetPage)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RateLimit(s.limiter, constants.RateCategoryAuth))
			r.Post(constants.RouteLogin, s.Handlers.AuthHandler.Login)
			r.Post(constants.RouteRegister, s.Handlers.AuthHandler.Register)
			r.Post(constants.RouteResetRequest, s.Handlers.PasswordResetHandler.RequestReset)
			r.Post(constants.RouteReset, s.Handlers.PasswordResetHandler.ResetPassword)
		})
	})

	// Booking, gated on login
	r.Group(func(r chi.Router) {
		r.Get(constants.RouteBookForm, s.Handlers.BookingHandler.StartBooking)
		r.Get(constants.RouteBookings, s.Handlers.BookingHandler.BookingForm)
		r.Get(constants.RouteMyBookings, s.Handlers.BookingHandler.MyBookings)

		r.With(middleware.RateLimit(s.limiter, constants.RateCategoryBooking)).
			Post(constants.RouteBookings, s.Handlers.BookingHandler.CreateBooking)
	})

	s.router = r
	logRoutes(r)
}

// logRoutes prints the registered route table at debug level.
func logRoutes(r chi.Routes) {
	var routes []string
	err := chi.Walk(r, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		routes = append(routes, method+" "+route)
		return nil
	})
	if err != nil {
		log.Warn().Err(err).Msg("Failed to walk routes")
		return
	}

	sort.Strings(routes)
	log.Debug().Strs("routes", routes).Int("count", len(routes)).Msg("Routes registered")
}
