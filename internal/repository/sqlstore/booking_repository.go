package sqlstore

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/spec-kit/salon-booking/internal/domain"
	"github.com/spec-kit/salon-booking/internal/repository"
)

type bookingRepository struct {
	db *gorm.DB
}

// NewBookingRepository builds a gorm-backed booking repository.
func NewBookingRepository(db *gorm.DB) repository.BookingRepository {
	return &bookingRepository{db: db}
}

func (r *bookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	record := toBookingRecord(booking)
	record.ID = 0
	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		return translateError(err)
	}
	booking.ID = record.ID
	return nil
}

func (r *bookingRepository) Update(ctx context.Context, booking *domain.Booking) error {
	tx := r.db.WithContext(ctx).Model(&bookingRecord{}).Where("id = ?", booking.ID).Updates(map[string]any{
		"customer_name": booking.CustomerName,
		"email":         booking.Email,
		"phone":         booking.Phone,
		"service":       booking.Service,
		"booking_date":  booking.Date,
		"booking_time":  booking.Time,
		"status":        string(booking.Status),
		"notes":         booking.Notes,
		"updated_at":    booking.UpdatedAt,
	})
	return expectAffected(tx)
}

func (r *bookingRepository) Delete(ctx context.Context, id int64) error {
	return expectAffected(r.db.WithContext(ctx).Delete(&bookingRecord{}, id))
}

func (r *bookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	var record bookingRecord
	if err := r.db.WithContext(ctx).First(&record, id).Error; err != nil {
		return nil, translateError(err)
	}
	booking := record.toDomain()
	return &booking, nil
}

func (r *bookingRepository) List(ctx context.Context, filter repository.BookingFilter) ([]domain.Booking, error) {
	query := r.db.WithContext(ctx).Model(&bookingRecord{})
	if filter.Email != "" {
		query = query.Where("LOWER(email) = ?", strings.ToLower(filter.Email))
	}
	if filter.Date != "" {
		query = query.Where("booking_date = ?", filter.Date)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", string(filter.Status))
	}

	var records []bookingRecord
	if err := query.Order("created_at DESC").Order("id DESC").Find(&records).Error; err != nil {
		return nil, translateError(err)
	}
	result := make([]domain.Booking, 0, len(records))
	for i := range records {
		result = append(result, records[i].toDomain())
	}
	return result, nil
}

func (r *bookingRepository) CountByStatus(ctx context.Context) (map[domain.BookingStatus]int64, error) {
	var rows []struct {
		Status string
		Total  int64
	}
	err := r.db.WithContext(ctx).Model(&bookingRecord{}).
		Select("status, COUNT(*) AS total").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, translateError(err)
	}
	counts := make(map[domain.BookingStatus]int64, len(rows))
	for _, row := range rows {
		counts[domain.BookingStatus(row.Status)] = row.Total
	}
	return counts, nil
}
