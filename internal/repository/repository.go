package repository

import (
	"context"
	"errors"

	"github.com/spec-kit/salon-booking/internal/domain"
)

var (
	// ErrNotFound is returned when no record matches.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a write violates a uniqueness constraint.
	ErrDuplicate = errors.New("duplicate record")
)

// BookingFilter narrows booking listings. Zero values match everything.
type BookingFilter struct {
	Email  string
	Date   string
	Status domain.BookingStatus
}

// BookingRepository encapsulates booking persistence.
// Create and Update return ErrDuplicate when the (date, time) slot is already held.
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) error
	Update(ctx context.Context, booking *domain.Booking) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	List(ctx context.Context, filter BookingFilter) ([]domain.Booking, error)
	CountByStatus(ctx context.Context) (map[domain.BookingStatus]int64, error)
}

// UserRepository defines persistence access for accounts.
// Create returns ErrDuplicate when the email is taken.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Count(ctx context.Context) (int64, error)
}

// LoginEventRepository stores the sign-in log.
type LoginEventRepository interface {
	Create(ctx context.Context, event *domain.LoginEvent) error
	Count(ctx context.Context) (int64, error)
}

// ServiceRepository manages the catalog.
type ServiceRepository interface {
	Create(ctx context.Context, service *domain.Service) error
	Update(ctx context.Context, service *domain.Service) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
	List(ctx context.Context) ([]domain.Service, error)
}

// Store bundles the repositories of one backend.
type Store struct {
	Bookings    BookingRepository
	Users       UserRepository
	LoginEvents LoginEventRepository
	Services    ServiceRepository
}
