package service

import (
	"context"
	"time"

	"github.com/spec-kit/salon-booking/internal/domain"
	"github.com/spec-kit/salon-booking/internal/repository"
	apperrors "github.com/spec-kit/salon-booking/pkg/util"
)

// CatalogService manages the salon's service catalog.
type CatalogService struct {
	services repository.ServiceRepository
	cache    Cache
	ttl      time.Duration
	clock    Clock
}

// ServiceInput is the payload for creating a catalog entry.
type ServiceInput struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	PriceRange  string `json:"priceRange"`
	Duration    string `json:"duration"`
	Category    string `json:"category"`
}

// ServicePatch holds optional catalog changes. Nil fields are left untouched.
type ServicePatch struct {
	Name        *string
	Description *string
	PriceRange  *string
	Duration    *string
	Category    *string
}

// NewCatalogService constructs the service. cache may be nil.
func NewCatalogService(services repository.ServiceRepository, cache Cache, ttl time.Duration, clock Clock) *CatalogService {
	if clock == nil {
		clock = time.Now
	}
	return &CatalogService{services: services, cache: cache, ttl: ttl, clock: clock}
}

// List returns the catalog ordered by id.
func (s *CatalogService) List(ctx context.Context) ([]domain.Service, error) {
	var cached []domain.Service
	if cacheGetJSON(ctx, s.cache, servicesCacheKey, &cached) {
		return cached, nil
	}
	services, err := s.services.List(ctx)
	if err != nil {
		return nil, apperrors.NewStoreError(err)
	}
	cacheSetJSON(ctx, s.cache, servicesCacheKey, services, s.ttl)
	return services, nil
}

// Get returns one catalog entry.
func (s *CatalogService) Get(ctx context.Context, id int64) (*domain.Service, error) {
	service, err := s.services.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "service", map[string]any{"id": id})
	}
	return service, nil
}

// Create adds a catalog entry.
func (s *CatalogService) Create(ctx context.Context, input ServiceInput) (*domain.Service, error) {
	service := &domain.Service{
		Name:        trim(input.Name),
		Description: trim(input.Description),
		PriceRange:  trim(input.PriceRange),
		Duration:    trim(input.Duration),
		Category:    trim(input.Category),
		CreatedAt:   s.clock(),
	}
	if err := checkService(service); err != nil {
		return nil, err
	}
	if err := s.services.Create(ctx, service); err != nil {
		return nil, apperrors.NewStoreError(err)
	}
	cacheDelete(ctx, s.cache, servicesCacheKey)
	return service, nil
}

// Update merges patch into an existing entry.
func (s *CatalogService) Update(ctx context.Context, id int64, patch ServicePatch) (*domain.Service, error) {
	service, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	apply := func(dst *string, src *string) {
		if src != nil {
			*dst = trim(*src)
		}
	}
	apply(&service.Name, patch.Name)
	apply(&service.Description, patch.Description)
	apply(&service.PriceRange, patch.PriceRange)
	apply(&service.Duration, patch.Duration)
	apply(&service.Category, patch.Category)
	if err := checkService(service); err != nil {
		return nil, err
	}

	now := s.clock()
	service.UpdatedAt = &now
	if err := s.services.Update(ctx, service); err != nil {
		return nil, storeError(err, "service", map[string]any{"id": id})
	}
	cacheDelete(ctx, s.cache, servicesCacheKey)
	return service, nil
}

// Delete removes an entry and returns it.
func (s *CatalogService) Delete(ctx context.Context, id int64) (*domain.Service, error) {
	service, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.services.Delete(ctx, id); err != nil {
		return nil, storeError(err, "service", map[string]any{"id": id})
	}
	cacheDelete(ctx, s.cache, servicesCacheKey)
	return service, nil
}

func checkService(service *domain.Service) error {
	if err := validateStruct(ServiceInput{Name: service.Name}); err != nil {
		return err
	}
	if service.PriceRange == "" {
		return nil
	}
	if _, err := domain.ParsePriceRange(service.PriceRange); err != nil {
		return apperrors.NewValidationError(apperrors.CodeInvalidPrice, err.Error(),
			map[string]any{"priceRange": service.PriceRange})
	}
	return nil
}
