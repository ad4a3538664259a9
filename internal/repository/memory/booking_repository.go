// Package memory keeps records in process memory. Every repository guards its
// records with a single mutex, so uniqueness checks and writes are atomic.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/spec-kit/salon-booking/internal/domain"
	"github.com/spec-kit/salon-booking/internal/repository"
)

type bookingRepository struct {
	mu      sync.RWMutex
	seq     int64
	records map[int64]domain.Booking
}

// NewBookingRepository returns an in-memory implementation.
func NewBookingRepository() repository.BookingRepository {
	return &bookingRepository{records: make(map[int64]domain.Booking)}
}

func (r *bookingRepository) Create(_ context.Context, booking *domain.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.slotHeld(booking.Date, booking.Time, 0) {
		return repository.ErrDuplicate
	}
	r.seq++
	booking.ID = r.seq
	r.records[booking.ID] = cloneBooking(*booking)
	return nil
}

func (r *bookingRepository) Update(_ context.Context, booking *domain.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.records[booking.ID]; !ok {
		return repository.ErrNotFound
	}
	if r.slotHeld(booking.Date, booking.Time, booking.ID) {
		return repository.ErrDuplicate
	}
	r.records[booking.ID] = cloneBooking(*booking)
	return nil
}

func (r *bookingRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.records[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.records, id)
	return nil
}

func (r *bookingRepository) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	booking, ok := r.records[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	clone := cloneBooking(booking)
	return &clone, nil
}

func (r *bookingRepository) List(_ context.Context, filter repository.BookingFilter) ([]domain.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.Booking, 0, len(r.records))
	for _, booking := range r.records {
		if filter.Email != "" && !strings.EqualFold(booking.Email, filter.Email) {
			continue
		}
		if filter.Date != "" && booking.Date != filter.Date {
			continue
		}
		if filter.Status != "" && booking.Status != filter.Status {
			continue
		}
		result = append(result, cloneBooking(booking))
	}

	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		}
		return result[i].ID > result[j].ID
	})
	return result, nil
}

func (r *bookingRepository) CountByStatus(_ context.Context) (map[domain.BookingStatus]int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	counts := make(map[domain.BookingStatus]int64)
	for _, booking := range r.records {
		counts[booking.Status]++
	}
	return counts, nil
}

// slotHeld must be called with the lock held.
func (r *bookingRepository) slotHeld(date, slot string, exceptID int64) bool {
	for id, booking := range r.records {
		if id != exceptID && booking.Date == date && booking.Time == slot {
			return true
		}
	}
	return false
}

func cloneBooking(b domain.Booking) domain.Booking {
	if b.UserID != nil {
		uid := *b.UserID
		b.UserID = &uid
	}
	if b.UpdatedAt != nil {
		ts := *b.UpdatedAt
		b.UpdatedAt = &ts
	}
	return b
}
