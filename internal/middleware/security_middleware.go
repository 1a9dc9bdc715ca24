// Package middleware provides HTTP middleware components.
package middleware

import (
	"net"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/agendabeleza/backend/internal/constants"
	"github.com/agendabeleza/backend/internal/utils"
	"github.com/agendabeleza/backend/internal/utils/ratelimit"
)

// RateLimit is middleware that limits the rate of requests from clients.
// Each client IP gets its own token bucket within the given category.
//
// Parameters:
//   - store: The limiter store shared by the server
//   - category: The endpoint category to apply limits for (e.g., "auth", "booking")
//
// Returns:
//   - A middleware function that can be used with an HTTP handler
func RateLimit(store *ratelimit.Store, category string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if store == nil || isExemptedPath(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			clientIP := getClientIP(r)
			if !store.GetLimiter(clientIP, category).Allow() {
				log.Warn().
					Str("client_ip", clientIP).
					Str("path", r.URL.Path).
					Str("method", r.Method).
					Str("category", category).
					Msg("Rate limit exceeded")

				utils.TooManyRequests(w)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// SecurityHeaders adds the standard hardening headers to every response.
// Authenticated pages must never be served from a shared cache, so
// caching is disabled outright.
func SecurityHeaders() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set(constants.HeaderXContentTypeOptions, constants.ContentTypeOptionsNoSniff)
			h.Set(constants.HeaderXFrameOptions, constants.FrameOptionsDeny)
			h.Set(constants.HeaderXXSSProtection, constants.XSSProtectionModeBlock)
			h.Set(constants.HeaderReferrerPolicy, constants.ReferrerPolicyStrictOrigin)
			h.Set(constants.HeaderContentSecurityPolicy, constants.CSPDefaultSrc)
			h.Set(constants.HeaderCacheControl, constants.CacheControlNoStore)
			h.Set(constants.HeaderPragma, constants.PragmaNoCache)
			h.Set(constants.HeaderExpires, constants.ExpiresZero)

			next.ServeHTTP(w, r)
		})
	}
}

// getClientIP extracts the client's IP address, honouring proxy headers.
func getClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		// leftmost entry is the original client
		return strings.TrimSpace(strings.Split(xff, ",")[0])
	}

	if xRealIP := r.Header.Get("X-Real-IP"); xRealIP != "" {
		return xRealIP
	}

	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// isExemptedPath reports whether the path is never rate limited.
func isExemptedPath(path string) bool {
	for _, prefix := range []string{
		constants.HealthPath,
		constants.VersionPath,
		"/static/",
		"/favicon.ico",
	} {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}
