package sqlstore

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/spec-kit/salon-booking/internal/domain"
	"github.com/spec-kit/salon-booking/internal/repository"
)

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository builds a gorm-backed user repository.
func NewUserRepository(db *gorm.DB) repository.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	record := toUserRecord(user)
	record.ID = 0
	record.Email = strings.ToLower(record.Email)
	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		return translateError(err)
	}
	user.ID = record.ID
	user.Email = record.Email
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	var record userRecord
	if err := r.db.WithContext(ctx).First(&record, id).Error; err != nil {
		return nil, translateError(err)
	}
	return record.toDomain(), nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var record userRecord
	err := r.db.WithContext(ctx).Where("email = ?", strings.ToLower(email)).First(&record).Error
	if err != nil {
		return nil, translateError(err)
	}
	return record.toDomain(), nil
}

func (r *userRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&userRecord{}).Count(&count).Error
	return count, translateError(err)
}

type loginEventRepository struct {
	db *gorm.DB
}

// NewLoginEventRepository builds a gorm-backed login log.
func NewLoginEventRepository(db *gorm.DB) repository.LoginEventRepository {
	return &loginEventRepository{db: db}
}

func (r *loginEventRepository) Create(ctx context.Context, event *domain.LoginEvent) error {
	record := &loginEventRecord{UserID: event.UserID, Email: event.Email, LoggedInAt: event.LoggedInAt}
	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		return translateError(err)
	}
	event.ID = record.ID
	return nil
}

func (r *loginEventRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&loginEventRecord{}).Count(&count).Error
	return count, translateError(err)
}
