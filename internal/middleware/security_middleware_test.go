package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agendabeleza/backend/internal/constants"
	"github.com/agendabeleza/backend/internal/utils/ratelimit"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRateLimit(t *testing.T) {
	store := ratelimit.NewStore(ratelimit.Rate{RequestsPerSecond: 0.001, Burst: 2}, time.Minute)
	defer store.Close()

	handler := RateLimit(store, "auth")(okHandler())

	send := func(path, remote string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, path, nil)
		req.RemoteAddr = remote
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		return rr
	}

	assert.Equal(t, http.StatusOK, send("/login", "10.0.0.1:5000").Code)
	assert.Equal(t, http.StatusOK, send("/login", "10.0.0.1:5001").Code)

	rr := send("/login", "10.0.0.1:5002")
	require.Equal(t, http.StatusTooManyRequests, rr.Code)
	assert.NotEmpty(t, rr.Header().Get(constants.HeaderRetryAfter))
	assert.Contains(t, rr.Body.String(), constants.CodeRateLimited)

	// other clients keep their own budget
	assert.Equal(t, http.StatusOK, send("/login", "10.0.0.2:5000").Code)

	// exempt paths are never throttled
	assert.Equal(t, http.StatusOK, send(constants.HealthPath, "10.0.0.1:5003").Code)
}

func TestRateLimit_NilStorePassesThrough(t *testing.T) {
	rr := httptest.NewRecorder()
	RateLimit(nil, "auth")(okHandler()).ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/login", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestSecurityHeaders(t *testing.T) {
	rr := httptest.NewRecorder()
	SecurityHeaders()(okHandler()).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	expected := map[string]string{
		constants.HeaderXContentTypeOptions:   constants.ContentTypeOptionsNoSniff,
		constants.HeaderXFrameOptions:         constants.FrameOptionsDeny,
		constants.HeaderXXSSProtection:        constants.XSSProtectionModeBlock,
		constants.HeaderReferrerPolicy:        constants.ReferrerPolicyStrictOrigin,
		constants.HeaderContentSecurityPolicy: constants.CSPDefaultSrc,
		constants.HeaderCacheControl:          constants.CacheControlNoStore,
		constants.HeaderPragma:                constants.PragmaNoCache,
		constants.HeaderExpires:               constants.ExpiresZero,
	}
	for header, value := range expected {
		assert.Equal(t, value, rr.Header().Get(header), header)
	}
}

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		remote  string
		want    string
	}{
		{"forwarded for", map[string]string{"X-Forwarded-For": "203.0.113.7, 10.0.0.1"}, "10.0.0.1:80", "203.0.113.7"},
		{"real ip", map[string]string{"X-Real-IP": "198.51.100.4"}, "10.0.0.1:80", "198.51.100.4"},
		{"remote addr", nil, "192.0.2.1:4321", "192.0.2.1"},
		{"remote addr without port", nil, "192.0.2.1", "192.0.2.1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, getClientIP(req))
		})
	}
}

func TestIsExemptedPath(t *testing.T) {
	assert.True(t, isExemptedPath("/health"))
	assert.True(t, isExemptedPath("/version"))
	assert.True(t, isExemptedPath("/static/css/site.css"))
	assert.False(t, isExemptedPath("/login"))
	assert.False(t, isExemptedPath("/marcacoes"))
}
