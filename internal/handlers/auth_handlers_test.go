package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agendabeleza/backend/internal/constants"
	"github.com/agendabeleza/backend/internal/models"
	"github.com/agendabeleza/backend/internal/utils"
)

type redirectBody struct {
	Success bool `json:"success"`
	Meta    struct {
		Redirect string `json:"redirect"`
		Message  string `json:"message"`
	} `json:"meta"`
}

func decodeRedirect(t *testing.T, body []byte) redirectBody {
	t.Helper()
	var out redirectBody
	require.NoError(t, json.Unmarshal(body, &out))
	return out
}

func TestNewAuthHandler_PanicsOnNil(t *testing.T) {
	manager := newTestManager(t)
	assert.Panics(t, func() { NewAuthHandler(nil, manager) })
	assert.Panics(t, func() { NewAuthHandler(&MockAuthService{}, nil) })
}

func TestAuthHandler_LoginPage(t *testing.T) {
	manager := newTestManager(t)
	h := NewAuthHandler(&MockAuthService{}, manager)

	rr := serveWithSession(manager, h.LoginPage, jsonRequest(http.MethodGet, "/login", ""))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"authenticated":false`)

	cookie := loggedInCookie(t, manager, &models.User{ID: 9, Name: "Ana", Email: "ana@example.com", Role: models.RoleAdmin})
	rr = serveWithSession(manager, h.LoginPage, jsonRequest(http.MethodGet, "/login", "", cookie))

	var body struct {
		Data sessionState `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.True(t, body.Data.Authenticated)
	require.NotNil(t, body.Data.User)
	assert.Equal(t, int64(9), body.Data.User.ID)
	assert.True(t, body.Data.User.IsAdmin)
}

func TestAuthHandler_Login(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		authFunc       func(ctx context.Context, creds *models.UserCredentials) (*models.User, error)
		expectedStatus int
		expectCookie   bool
	}{
		{
			name:           "Successful login",
			body:           `{"email":"ana@example.com","password":"Segura123"}`,
			expectedStatus: http.StatusSeeOther,
			expectCookie:   true,
		},
		{
			name: "Invalid credentials",
			body: `{"email":"ana@example.com","password":"errada"}`,
			authFunc: func(ctx context.Context, creds *models.UserCredentials) (*models.User, error) {
				return nil, utils.NewInvalidCredentialsError()
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Missing password",
			body:           `{"email":"ana@example.com"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Malformed JSON",
			body:           `{"email":`,
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			manager := newTestManager(t)
			h := NewAuthHandler(&MockAuthService{AuthenticateUserFunc: tt.authFunc}, manager)

			rr := serveWithSession(manager, h.Login, jsonRequest(http.MethodPost, "/login", tt.body))

			assert.Equal(t, tt.expectedStatus, rr.Code)
			if tt.expectCookie {
				assert.NotNil(t, sessionCookie(rr))
				body := decodeRedirect(t, rr.Body.Bytes())
				assert.Equal(t, constants.RouteHome, body.Meta.Redirect)
				assert.Equal(t, constants.MsgLoginSuccess, body.Meta.Message)
			} else {
				assert.Nil(t, sessionCookie(rr))
			}
		})
	}
}

func TestAuthHandler_LoginResumesIntendedPage(t *testing.T) {
	manager := newTestManager(t)
	h := NewAuthHandler(&MockAuthService{}, manager)
	// an anonymous visit records the destination
	anon := loggedOutWithNext(t, manager, constants.RouteBookings)

	rr := serveWithSession(manager, h.Login, jsonRequest(http.MethodPost, "/login", `{"email":"ana@example.com","password":"Segura123"}`, anon))
	require.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, constants.RouteBookings, rr.Header().Get(constants.HeaderLocation))

	// the session ID changes on login
	renewed := sessionCookie(rr)
	require.NotNil(t, renewed)
	assert.NotEqual(t, anon.Value, renewed.Value)

	// the destination is used once
	rr = serveWithSession(manager, h.LoginPage, jsonRequest(http.MethodGet, "/login", "", renewed))
	assert.NotContains(t, rr.Body.String(), `"next"`)
}

func TestAuthHandler_Logout(t *testing.T) {
	manager := newTestManager(t)
	h := NewAuthHandler(&MockAuthService{}, manager)
	cookie := loggedInCookie(t, manager, &models.User{ID: 3, Name: "Ana", Email: "ana@example.com"})

	rr := serveWithSession(manager, h.Logout, jsonRequest(http.MethodGet, "/logout", "", cookie))
	require.Equal(t, http.StatusSeeOther, rr.Code)
	body := decodeRedirect(t, rr.Body.Bytes())
	assert.Equal(t, constants.RouteHome, body.Meta.Redirect)
	assert.Equal(t, constants.MsgLogoutSuccess, body.Meta.Message)

	// the old cookie no longer authenticates
	rr = serveWithSession(manager, h.LoginPage, jsonRequest(http.MethodGet, "/login", "", cookie))
	assert.Contains(t, rr.Body.String(), `"authenticated":false`)
}

func TestAuthHandler_Register(t *testing.T) {
	valid := `{"nome":"Ana","email":"ana@example.com","password":"Segura123","confirm_password":"Segura123"}`

	tests := []struct {
		name           string
		body           string
		registerFunc   func(ctx context.Context, reg *models.UserRegistration) (*models.User, error)
		expectedStatus int
		expectedCode   string
	}{
		{
			name:           "Successful registration",
			body:           valid,
			expectedStatus: http.StatusSeeOther,
		},
		{
			name:           "Weak password",
			body:           `{"nome":"Ana","email":"ana@example.com","password":"fraca","confirm_password":"fraca"}`,
			expectedStatus: http.StatusBadRequest,
			expectedCode:   constants.CodeValidationError,
		},
		{
			name:           "Passwords differ",
			body:           `{"nome":"Ana","email":"ana@example.com","password":"Segura123","confirm_password":"Segura124"}`,
			expectedStatus: http.StatusBadRequest,
			expectedCode:   constants.CodeValidationError,
		},
		{
			name: "Email already registered",
			body: valid,
			registerFunc: func(ctx context.Context, reg *models.UserRegistration) (*models.User, error) {
				return nil, utils.NewDuplicateError("User", "email", reg.Email)
			},
			expectedStatus: http.StatusConflict,
			expectedCode:   constants.CodeDuplicateResource,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			manager := newTestManager(t)
			called := false
			mock := &MockAuthService{RegisterUserFunc: func(ctx context.Context, reg *models.UserRegistration) (*models.User, error) {
				called = true
				if tt.registerFunc != nil {
					return tt.registerFunc(ctx, reg)
				}
				return &models.User{ID: 1, Name: reg.Name, Email: reg.Email}, nil
			}}
			h := NewAuthHandler(mock, manager)

			rr := serveWithSession(manager, h.Register, jsonRequest(http.MethodPost, "/registar", tt.body))

			assert.Equal(t, tt.expectedStatus, rr.Code)
			if tt.expectedCode != "" {
				assert.Contains(t, rr.Body.String(), tt.expectedCode)
			}
			if tt.expectedStatus == http.StatusSeeOther {
				body := decodeRedirect(t, rr.Body.Bytes())
				assert.Equal(t, constants.RouteLogin, body.Meta.Redirect)
				assert.Equal(t, constants.MsgRegistered, body.Meta.Message)
			}
			if tt.expectedCode == constants.CodeValidationError {
				assert.False(t, called, "service must not run on invalid input")
			}
		})
	}
}

func TestAuthHandler_RegisterPage(t *testing.T) {
	manager := newTestManager(t)
	h := NewAuthHandler(&MockAuthService{}, manager)

	rr := serveWithSession(manager, h.RegisterPage, jsonRequest(http.MethodGet, "/registar", ""))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "confirm_password")
}
