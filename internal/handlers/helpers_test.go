package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/agendabeleza/backend/internal/config"
	"github.com/agendabeleza/backend/internal/constants"
	"github.com/agendabeleza/backend/internal/models"
	"github.com/agendabeleza/backend/internal/session"
)

// MockAuthService implements AuthServiceInterface with overridable functions.
type MockAuthService struct {
	RegisterUserFunc         func(ctx context.Context, reg *models.UserRegistration) (*models.User, error)
	AuthenticateUserFunc     func(ctx context.Context, creds *models.UserCredentials) (*models.User, error)
	RequestPasswordResetFunc func(ctx context.Context, email string) error
	CheckResetTokenFunc      func(token string) (string, error)
	ResetPasswordFunc        func(ctx context.Context, token string, req *models.ResetPasswordRequest) error
}

func (m *MockAuthService) RegisterUser(ctx context.Context, reg *models.UserRegistration) (*models.User, error) {
	if m.RegisterUserFunc != nil {
		return m.RegisterUserFunc(ctx, reg)
	}
	return &models.User{ID: 1, Name: reg.Name, Email: reg.Email}, nil
}

func (m *MockAuthService) AuthenticateUser(ctx context.Context, creds *models.UserCredentials) (*models.User, error) {
	if m.AuthenticateUserFunc != nil {
		return m.AuthenticateUserFunc(ctx, creds)
	}
	return &models.User{ID: 1, Name: "Ana", Email: creds.Email}, nil
}

func (m *MockAuthService) RequestPasswordReset(ctx context.Context, email string) error {
	if m.RequestPasswordResetFunc != nil {
		return m.RequestPasswordResetFunc(ctx, email)
	}
	return nil
}

func (m *MockAuthService) CheckResetToken(token string) (string, error) {
	if m.CheckResetTokenFunc != nil {
		return m.CheckResetTokenFunc(token)
	}
	return "ana@example.com", nil
}

func (m *MockAuthService) ResetPassword(ctx context.Context, token string, req *models.ResetPasswordRequest) error {
	if m.ResetPasswordFunc != nil {
		return m.ResetPasswordFunc(ctx, token, req)
	}
	return nil
}

// MockBookingService implements BookingServiceInterface.
type MockBookingService struct {
	BookFunc          func(ctx context.Context, sess *session.Session, serviceID int64, whenRaw, notes string) (int64, error)
	ListForClientFunc func(ctx context.Context, sess *session.Session) ([]*models.Booking, error)
	calls             int
}

func (m *MockBookingService) Book(ctx context.Context, sess *session.Session, serviceID int64, whenRaw, notes string) (int64, error) {
	m.calls++
	if m.BookFunc != nil {
		return m.BookFunc(ctx, sess, serviceID, whenRaw, notes)
	}
	return 1, nil
}

func (m *MockBookingService) ListForClient(ctx context.Context, sess *session.Session) ([]*models.Booking, error) {
	m.calls++
	if m.ListForClientFunc != nil {
		return m.ListForClientFunc(ctx, sess)
	}
	return []*models.Booking{}, nil
}

// MockCatalogService implements CatalogServiceInterface.
type MockCatalogService struct {
	ListFunc   func(ctx context.Context) ([]*models.Service, error)
	SearchFunc func(ctx context.Context, q string) ([]*models.Service, error)
}

func (m *MockCatalogService) List(ctx context.Context) ([]*models.Service, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return []*models.Service{{ID: 1, Name: "Corte"}, {ID: 2, Name: "Manicure"}}, nil
}

func (m *MockCatalogService) Search(ctx context.Context, q string) ([]*models.Service, error) {
	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, q)
	}
	return []*models.Service{{ID: 1, Name: "Corte"}}, nil
}

func newTestManager(t *testing.T) *session.Manager {
	t.Helper()
	manager := session.NewManager(session.NewMemoryStore(time.Minute), &config.SessionSettings{TTL: time.Hour})
	t.Cleanup(func() { _ = manager.Close() })
	return manager
}

// loggedInCookie stores an authenticated session and returns its cookie.
func loggedInCookie(t *testing.T, manager *session.Manager, user *models.User) *http.Cookie {
	t.Helper()

	rr := httptest.NewRecorder()
	sess := &session.Session{ID: "", CreatedAt: time.Now()}
	sess.SetUser(user)
	require.NoError(t, manager.Renew(context.Background(), rr, sess))

	cookies := rr.Result().Cookies()
	require.Len(t, cookies, 1)
	return cookies[0]
}

// sessionCookie finds the session cookie in a response.
func sessionCookie(rr *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rr.Result().Cookies() {
		if c.Name == constants.DefaultCookieName {
			return c
		}
	}
	return nil
}

// serveWithSession runs handler behind the session middleware.
func serveWithSession(manager *session.Manager, handler http.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	manager.Middleware(handler).ServeHTTP(rr, req)
	return rr
}

func jsonRequest(method, target, body string, cookies ...*http.Cookie) *http.Request {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(constants.HeaderContentType, constants.ContentTypeJSON)
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	return req
}

// withURLParam adds a chi URL parameter to the request.
func withURLParam(req *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

// loggedOutWithNext returns the cookie of an anonymous session that was
// turned away from next.
func loggedOutWithNext(t *testing.T, manager *session.Manager, next string) *http.Cookie {
	t.Helper()

	gate := session.NewGate(manager)
	rr := serveWithSession(manager, func(w http.ResponseWriter, r *http.Request) {
		_, redirect := gate.Require(w, r, next)
		require.NotNil(t, redirect)
	}, jsonRequest(http.MethodGet, next, ""))

	cookie := sessionCookie(rr)
	require.NotNil(t, cookie)
	return cookie
}
