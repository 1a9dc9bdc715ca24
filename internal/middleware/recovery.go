package middleware

import (
	"net/http"
	"runtime/debug"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/agendabeleza/backend/internal/utils"
)

// Recovery is a middleware that recovers from panics and returns a 500 Internal Server Error.
// The panic value and stack are logged; the client only sees the generic message.
func Recovery() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				// Let net/http abort the connection as usual
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				utils.LogPanic(rec, debug.Stack())
				log.Error().
					Str("request_id", chimiddleware.GetReqID(r.Context())).
					Str("method", r.Method).
					Str("path", r.URL.Path).
					Msg("Panic recovered in request handler")

				utils.InternalServerError(w, nil)
			}()

			next.ServeHTTP(w, r)
		})
	}
}
