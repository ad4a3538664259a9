package sqlstore

import (
	"context"

	"gorm.io/gorm"

	"github.com/spec-kit/salon-booking/internal/domain"
	"github.com/spec-kit/salon-booking/internal/repository"
)

type serviceRepository struct {
	db *gorm.DB
}

// NewServiceRepository builds a gorm-backed catalog repository.
func NewServiceRepository(db *gorm.DB) repository.ServiceRepository {
	return &serviceRepository{db: db}
}

func (r *serviceRepository) Create(ctx context.Context, service *domain.Service) error {
	record := toServiceRecord(service)
	record.ID = 0
	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		return translateError(err)
	}
	service.ID = record.ID
	return nil
}

func (r *serviceRepository) Update(ctx context.Context, service *domain.Service) error {
	tx := r.db.WithContext(ctx).Model(&serviceRecord{}).Where("id = ?", service.ID).Updates(map[string]any{
		"name":        service.Name,
		"description": service.Description,
		"price_range": service.PriceRange,
		"duration":    service.Duration,
		"category":    service.Category,
		"updated_at":  service.UpdatedAt,
	})
	return expectAffected(tx)
}

func (r *serviceRepository) Delete(ctx context.Context, id int64) error {
	return expectAffected(r.db.WithContext(ctx).Delete(&serviceRecord{}, id))
}

func (r *serviceRepository) GetByID(ctx context.Context, id int64) (*domain.Service, error) {
	var record serviceRecord
	if err := r.db.WithContext(ctx).First(&record, id).Error; err != nil {
		return nil, translateError(err)
	}
	service := record.toDomain()
	return &service, nil
}

func (r *serviceRepository) List(ctx context.Context) ([]domain.Service, error) {
	var records []serviceRecord
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&records).Error; err != nil {
		return nil, translateError(err)
	}
	result := make([]domain.Service, 0, len(records))
	for i := range records {
		result = append(result, records[i].toDomain())
	}
	return result, nil
}
