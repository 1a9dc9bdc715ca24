package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/agendabeleza/backend/internal/constants"
	"github.com/agendabeleza/backend/internal/session"
	"github.com/agendabeleza/backend/internal/utils"
)

// AppInfo describes the running build.
type AppInfo struct {
	Name        string `json:"name"`
	Version     string `json:"version"`
	Environment string `json:"environment"`
}

// GenericHandler serves the public pages, the catalog and the
// operational endpoints
type GenericHandler struct {
	catalogService CatalogServiceInterface
	health         HealthChecker
	info           AppInfo
}

// NewGenericHandler creates a new GenericHandler
func NewGenericHandler(catalogService CatalogServiceInterface, health HealthChecker, info AppInfo) *GenericHandler {
	return &GenericHandler{
		catalogService: catalogService,
		health:         health,
		info:           info,
	}
}

// Home is the landing page
func (h *GenericHandler) Home(w http.ResponseWriter, r *http.Request) {
	utils.JSON(w, http.StatusOK, map[string]interface{}{
		"name":    h.info.Name,
		"session": stateOf(session.FromContext(r.Context())),
	})
}

// About is the static "about us" page
func (h *GenericHandler) About(w http.ResponseWriter, r *http.Request) {
	utils.JSON(w, http.StatusOK, map[string]interface{}{
		"name":        h.info.Name,
		"description": "Salão de beleza com marcações online.",
	})
}

// Services lists the catalog, filtered by the q query parameter
func (h *GenericHandler) Services(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")

	services, err := h.catalogService.Search(r.Context(), q)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, map[string]interface{}{
		"q":        q,
		"servicos": services,
	})
}

// Health reports whether the database can be reached
func (h *GenericHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), constants.DBHealthCheckTimeout)
	defer cancel()

	status := map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"database":  "up",
	}

	if err := h.health.HealthCheck(ctx); err != nil {
		status["status"] = "degraded"
		status["database"] = "down"
		utils.JSON(w, http.StatusServiceUnavailable, status)
		return
	}

	utils.JSON(w, http.StatusOK, status)
}

// Version reports the build information
func (h *GenericHandler) Version(w http.ResponseWriter, r *http.Request) {
	utils.JSON(w, http.StatusOK, h.info)
}
