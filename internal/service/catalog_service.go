package service

import (
	"context"
	"strings"

	"github.com/agendabeleza/backend/internal/models"
	"github.com/agendabeleza/backend/internal/repository"
)

// CatalogService exposes the read-only list of salon services.
type CatalogService struct {
	serviceRepo repository.ServiceRepository
}

// NewCatalogService creates a new CatalogService
func NewCatalogService(serviceRepo repository.ServiceRepository) *CatalogService {
	return &CatalogService{serviceRepo: serviceRepo}
}

// List returns every service ordered by name.
func (s *CatalogService) List(ctx context.Context) ([]*models.Service, error) {
	return s.serviceRepo.List(ctx)
}

// Search matches q against service names and descriptions. An empty query
// lists everything.
func (s *CatalogService) Search(ctx context.Context, q string) ([]*models.Service, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return s.serviceRepo.List(ctx)
	}
	return s.serviceRepo.Search(ctx, q)
}

// GetByID returns one service.
func (s *CatalogService) GetByID(ctx context.Context, id int64) (*models.Service, error) {
	return s.serviceRepo.GetByID(ctx, id)
}
