package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/spec-kit/salon-booking/internal/domain"
	"github.com/spec-kit/salon-booking/internal/repository"
)

type serviceRepository struct {
	mu      sync.RWMutex
	seq     int64
	records map[int64]domain.Service
}

// NewServiceRepository returns an in-memory catalog.
func NewServiceRepository() repository.ServiceRepository {
	return &serviceRepository{records: make(map[int64]domain.Service)}
}

func (r *serviceRepository) Create(_ context.Context, service *domain.Service) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.seq++
	service.ID = r.seq
	r.records[service.ID] = *service
	return nil
}

func (r *serviceRepository) Update(_ context.Context, service *domain.Service) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.records[service.ID]; !ok {
		return repository.ErrNotFound
	}
	r.records[service.ID] = *service
	return nil
}

func (r *serviceRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.records[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.records, id)
	return nil
}

func (r *serviceRepository) GetByID(_ context.Context, id int64) (*domain.Service, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	service, ok := r.records[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &service, nil
}

// List returns the catalog ordered by id.
func (r *serviceRepository) List(_ context.Context) ([]domain.Service, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.Service, 0, len(r.records))
	for _, service := range r.records {
		result = append(result, service)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// NewStore wires a complete in-memory store.
func NewStore() *repository.Store {
	return &repository.Store{
		Bookings:    NewBookingRepository(),
		Users:       NewUserRepository(),
		LoginEvents: NewLoginEventRepository(),
		Services:    NewServiceRepository(),
	}
}
