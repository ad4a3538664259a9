package service

import (
	"context"
	"time"

	"github.com/spec-kit/salon-booking/internal/domain"
	"github.com/spec-kit/salon-booking/internal/repository"
	apperrors "github.com/spec-kit/salon-booking/pkg/util"
)

// AvailabilityService computes free slots per day.
type AvailabilityService struct {
	bookings repository.BookingRepository
	cache    Cache
	ttl      time.Duration
}

// NewAvailabilityService constructs the service. cache may be nil.
func NewAvailabilityService(bookings repository.BookingRepository, cache Cache, ttl time.Duration) *AvailabilityService {
	return &AvailabilityService{bookings: bookings, cache: cache, ttl: ttl}
}

// GetAvailability splits the slot catalog for date into available and booked slots.
// Bookings in any status hold their slot.
func (s *AvailabilityService) GetAvailability(ctx context.Context, rawDate string) (domain.Availability, error) {
	date, _, err := domain.NormalizeDate(rawDate)
	if err != nil {
		return domain.Availability{}, apperrors.NewValidationError(apperrors.CodeInvalidDate,
			"date must be formatted as YYYY-MM-DD", map[string]any{"date": rawDate})
	}

	key := availabilityCacheKey(date)
	var cached domain.Availability
	if cacheGetJSON(ctx, s.cache, key, &cached) {
		return cached, nil
	}

	bookings, err := s.bookings.List(ctx, repository.BookingFilter{Date: date})
	if err != nil {
		return domain.Availability{}, apperrors.NewStoreError(err)
	}
	taken := make([]string, 0, len(bookings))
	for _, b := range bookings {
		taken = append(taken, b.Time)
	}

	result := domain.SplitSlots(date, taken)
	cacheSetJSON(ctx, s.cache, key, result, s.ttl)
	return result, nil
}
