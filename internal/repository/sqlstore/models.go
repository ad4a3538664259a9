package sqlstore

import (
	"time"

	"github.com/spec-kit/salon-booking/internal/domain"
)

type userRecord struct {
	ID           int64     `gorm:"primaryKey;autoIncrement"`
	Name         string    `gorm:"size:255;not null"`
	Email        string    `gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string    `gorm:"size:255;not null"`
	Role         string    `gorm:"size:20;not null"`
	CreatedAt    time.Time `gorm:"autoCreateTime:false"`
}

func (userRecord) TableName() string { return "users" }

type loginEventRecord struct {
	ID         int64     `gorm:"primaryKey;autoIncrement"`
	UserID     int64     `gorm:"index;not null"`
	Email      string    `gorm:"size:255;not null"`
	LoggedInAt time.Time `gorm:"not null"`
}

func (loginEventRecord) TableName() string { return "login_logs" }

type serviceRecord struct {
	ID          int64      `gorm:"primaryKey;autoIncrement"`
	Name        string     `gorm:"size:255;not null"`
	Description string     `gorm:"type:text"`
	PriceRange  string     `gorm:"size:100"`
	Duration    string     `gorm:"size:100"`
	Category    string     `gorm:"size:100"`
	CreatedAt   time.Time  `gorm:"autoCreateTime:false"`
	UpdatedAt   *time.Time `gorm:"autoUpdateTime:false"`
}

func (serviceRecord) TableName() string { return "services" }

type bookingRecord struct {
	ID           int64      `gorm:"primaryKey;autoIncrement"`
	UserID       *int64     `gorm:"index"`
	CustomerName string     `gorm:"size:255;not null"`
	Email        string     `gorm:"size:255;not null;index"`
	Phone        string     `gorm:"size:50;not null"`
	Service      string     `gorm:"size:255;not null"`
	Date         string     `gorm:"column:booking_date;size:10;not null;uniqueIndex:idx_bookings_slot"`
	Time         string     `gorm:"column:booking_time;size:20;not null;uniqueIndex:idx_bookings_slot"`
	Status       string     `gorm:"size:20;not null;index"`
	Notes        string     `gorm:"type:text"`
	CreatedAt    time.Time  `gorm:"autoCreateTime:false"`
	UpdatedAt    *time.Time `gorm:"autoUpdateTime:false"`
}

func (bookingRecord) TableName() string { return "bookings" }

func toUserRecord(u *domain.User) *userRecord {
	return &userRecord{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Role:         string(u.Role),
		CreatedAt:    u.CreatedAt,
	}
}

func (r *userRecord) toDomain() *domain.User {
	return &domain.User{
		ID:           r.ID,
		Name:         r.Name,
		Email:        r.Email,
		PasswordHash: r.PasswordHash,
		Role:         domain.Role(r.Role),
		CreatedAt:    r.CreatedAt,
	}
}

func toServiceRecord(s *domain.Service) *serviceRecord {
	return &serviceRecord{
		ID:          s.ID,
		Name:        s.Name,
		Description: s.Description,
		PriceRange:  s.PriceRange,
		Duration:    s.Duration,
		Category:    s.Category,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

func (r *serviceRecord) toDomain() domain.Service {
	return domain.Service{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		PriceRange:  r.PriceRange,
		Duration:    r.Duration,
		Category:    r.Category,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func toBookingRecord(b *domain.Booking) *bookingRecord {
	return &bookingRecord{
		ID:           b.ID,
		UserID:       b.UserID,
		CustomerName: b.CustomerName,
		Email:        b.Email,
		Phone:        b.Phone,
		Service:      b.Service,
		Date:         b.Date,
		Time:         b.Time,
		Status:       string(b.Status),
		Notes:        b.Notes,
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.UpdatedAt,
	}
}

func (r *bookingRecord) toDomain() domain.Booking {
	return domain.Booking{
		ID:           r.ID,
		UserID:       r.UserID,
		CustomerName: r.CustomerName,
		Email:        r.Email,
		Phone:        r.Phone,
		Service:      r.Service,
		Date:         r.Date,
		Time:         r.Time,
		Status:       domain.BookingStatus(r.Status),
		Notes:        r.Notes,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}
