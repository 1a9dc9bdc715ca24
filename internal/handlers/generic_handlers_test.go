package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agendabeleza/backend/internal/models"
	"github.com/agendabeleza/backend/internal/utils"
)

// MockHealthChecker implements HealthChecker.
type MockHealthChecker struct {
	HealthCheckFunc func(ctx context.Context) error
}

func (m *MockHealthChecker) HealthCheck(ctx context.Context) error {
	if m.HealthCheckFunc != nil {
		return m.HealthCheckFunc(ctx)
	}
	return nil
}

var testInfo = AppInfo{Name: "Agenda Beleza", Version: "1.0.0", Environment: "test"}

func TestGenericHandler_Home(t *testing.T) {
	manager := newTestManager(t)
	h := NewGenericHandler(&MockCatalogService{}, &MockHealthChecker{}, testInfo)

	cookie := loggedInCookie(t, manager, &models.User{ID: 4, Name: "Ana", Email: "ana@example.com"})
	rr := serveWithSession(manager, h.Home, jsonRequest(http.MethodGet, "/", "", cookie))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"name":"Agenda Beleza"`)
	assert.Contains(t, rr.Body.String(), `"authenticated":true`)
}

func TestGenericHandler_About(t *testing.T) {
	h := NewGenericHandler(&MockCatalogService{}, &MockHealthChecker{}, testInfo)

	rr := httptest.NewRecorder()
	h.About(rr, httptest.NewRequest(http.MethodGet, "/sobre", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestGenericHandler_Services(t *testing.T) {
	tests := []struct {
		name           string
		target         string
		searchErr      error
		expectedQuery  string
		expectedStatus int
	}{
		{"all services", "/servicos", nil, "", http.StatusOK},
		{"search term", "/servicos?q=corte", nil, "corte", http.StatusOK},
		{"catalog unavailable", "/servicos", utils.NewConnectionError(errors.New("refused")), "", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotQuery string
			h := NewGenericHandler(&MockCatalogService{
				SearchFunc: func(ctx context.Context, q string) ([]*models.Service, error) {
					gotQuery = q
					if tt.searchErr != nil {
						return nil, tt.searchErr
					}
					return []*models.Service{{ID: 1, Name: "Corte"}}, nil
				},
			}, &MockHealthChecker{}, testInfo)

			rr := httptest.NewRecorder()
			h.Services(rr, httptest.NewRequest(http.MethodGet, tt.target, nil))

			assert.Equal(t, tt.expectedStatus, rr.Code)
			assert.Equal(t, tt.expectedQuery, gotQuery)
			if tt.expectedStatus == http.StatusOK {
				assert.Contains(t, rr.Body.String(), `"servicos"`)
			}
		})
	}
}

func TestGenericHandler_Health(t *testing.T) {
	tests := []struct {
		name           string
		healthErr      error
		expectedStatus int
		expectedDB     string
	}{
		{"database up", nil, http.StatusOK, "up"},
		{"database down", errors.New("connection refused"), http.StatusServiceUnavailable, "down"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewGenericHandler(&MockCatalogService{}, &MockHealthChecker{
				HealthCheckFunc: func(ctx context.Context) error {
					_, hasDeadline := ctx.Deadline()
					assert.True(t, hasDeadline)
					return tt.healthErr
				},
			}, testInfo)

			rr := httptest.NewRecorder()
			h.Health(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

			require.Equal(t, tt.expectedStatus, rr.Code)
			var body struct {
				Data map[string]interface{} `json:"data"`
			}
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
			assert.Equal(t, tt.expectedDB, body.Data["database"])
		})
	}
}

func TestGenericHandler_Version(t *testing.T) {
	h := NewGenericHandler(&MockCatalogService{}, &MockHealthChecker{}, testInfo)

	rr := httptest.NewRecorder()
	h.Version(rr, httptest.NewRequest(http.MethodGet, "/version", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	var body struct {
		Data AppInfo `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, testInfo, body.Data)
}
