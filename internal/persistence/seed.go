package persistence

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/spec-kit/salon-booking/internal/auth"
	"github.com/spec-kit/salon-booking/internal/domain"
	"github.com/spec-kit/salon-booking/internal/repository"
)

// Seed is the initial data set loaded into an empty store.
type Seed struct {
	Services []SeedService `yaml:"services"`
	Users    []SeedUser    `yaml:"users"`
	Bookings []SeedBooking `yaml:"bookings"`
}

// SeedService is one catalog entry.
type SeedService struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	PriceRange  string `yaml:"price_range"`
	Duration    string `yaml:"duration"`
	Category    string `yaml:"category"`
}

// SeedUser is an account created with a hashed copy of Password.
type SeedUser struct {
	Name     string      `yaml:"name"`
	Email    string      `yaml:"email"`
	Password string      `yaml:"password"`
	Role     domain.Role `yaml:"role"`
}

// SeedBooking is a sample appointment.
type SeedBooking struct {
	CustomerName string               `yaml:"customer_name"`
	Email        string               `yaml:"email"`
	Phone        string               `yaml:"phone"`
	Service      string               `yaml:"service"`
	Date         string               `yaml:"date"`
	Time         string               `yaml:"time"`
	Status       domain.BookingStatus `yaml:"status"`
	Notes        string               `yaml:"notes"`
}

// LoadSeed reads a YAML seed file. A missing file yields an empty seed.
func LoadSeed(path string) (*Seed, error) {
	if strings.TrimSpace(path) == "" {
		return &Seed{}, nil
	}
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Seed{}, nil
		}
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	return ParseSeed(content)
}

// ParseSeed decodes and checks seed content.
func ParseSeed(content []byte) (*Seed, error) {
	var seed Seed
	if err := yaml.Unmarshal(content, &seed); err != nil {
		return nil, fmt.Errorf("decode seed file: %w", err)
	}
	for i, user := range seed.Users {
		if user.Role == "" {
			seed.Users[i].Role = domain.RoleCustomer
			continue
		}
		if !user.Role.Valid() {
			return nil, fmt.Errorf("seed user %s: unknown role %q", user.Email, user.Role)
		}
	}
	for i, booking := range seed.Bookings {
		if booking.Status == "" {
			seed.Bookings[i].Status = domain.BookingStatusPending
			continue
		}
		status, ok := domain.ParseBookingStatus(string(booking.Status))
		if !ok {
			return nil, fmt.Errorf("seed booking %s %s: unknown status %q", booking.Date, booking.Time, booking.Status)
		}
		seed.Bookings[i].Status = status
	}
	return &seed, nil
}

// ApplySeed inserts each seed section only when the matching collection is empty.
func ApplySeed(ctx context.Context, store *repository.Store, seed *Seed, bcryptCost int, now time.Time, logger *zap.Logger) error {
	if seed == nil {
		return nil
	}

	services, err := store.Services.List(ctx)
	if err != nil {
		return fmt.Errorf("list services: %w", err)
	}
	if len(services) == 0 {
		for _, s := range seed.Services {
			service := &domain.Service{
				Name:        s.Name,
				Description: s.Description,
				PriceRange:  s.PriceRange,
				Duration:    s.Duration,
				Category:    s.Category,
				CreatedAt:   now,
			}
			if err := store.Services.Create(ctx, service); err != nil {
				return fmt.Errorf("seed service %s: %w", s.Name, err)
			}
		}
		logger.Info("seeded services", zap.Int("count", len(seed.Services)))
	}

	users, err := store.Users.Count(ctx)
	if err != nil {
		return fmt.Errorf("count users: %w", err)
	}
	if users == 0 {
		for _, u := range seed.Users {
			hash, err := auth.HashPassword(u.Password, bcryptCost)
			if err != nil {
				return fmt.Errorf("hash seed password: %w", err)
			}
			user := &domain.User{
				Name:         u.Name,
				Email:        strings.ToLower(u.Email),
				PasswordHash: hash,
				Role:         u.Role,
				CreatedAt:    now,
			}
			if err := store.Users.Create(ctx, user); err != nil {
				return fmt.Errorf("seed user %s: %w", u.Email, err)
			}
		}
		logger.Info("seeded users", zap.Int("count", len(seed.Users)))
	}

	bookings, err := store.Bookings.List(ctx, repository.BookingFilter{})
	if err != nil {
		return fmt.Errorf("list bookings: %w", err)
	}
	if len(bookings) == 0 {
		for i, b := range seed.Bookings {
			booking := &domain.Booking{
				CustomerName: b.CustomerName,
				Email:        b.Email,
				Phone:        b.Phone,
				Service:      b.Service,
				Date:         b.Date,
				Time:         b.Time,
				Status:       b.Status,
				Notes:        b.Notes,
				CreatedAt:    now.Add(time.Duration(i) * time.Second),
			}
			if err := store.Bookings.Create(ctx, booking); err != nil {
				return fmt.Errorf("seed booking %s %s: %w", b.Date, b.Time, err)
			}
		}
		logger.Info("seeded bookings", zap.Int("count", len(seed.Bookings)))
	}
	return nil
}
