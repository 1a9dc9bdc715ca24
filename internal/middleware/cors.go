package middleware

import (
	"net/http"

	"github.com/go-chi/cors"

	"github.com/agendabeleza/backend/internal/config"
)

// CORS builds the cross-origin policy from configuration. With no
// allowed origins configured, cross-origin requests get no CORS headers.
func CORS(cfg *config.CORSSettings) func(http.Handler) http.Handler {
	opts := cors.Options{
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"Location", "X-Request-ID"},
		MaxAge:         300,
	}

	if cfg != nil && len(cfg.AllowedOrigins) > 0 {
		opts.AllowedOrigins = cfg.AllowedOrigins
		opts.AllowCredentials = cfg.AllowCredentials
	} else {
		// an empty list means "any origin" to the cors package
		opts.AllowOriginFunc = func(*http.Request, string) bool { return false }
	}

	return cors.Handler(opts)
}
