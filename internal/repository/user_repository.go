package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/spec-kit/salon-booking/internal/domain"
)

type userRepository struct {
	db *sql.DB
}

// NewUserRepository returns a Postgres-backed implementation.
func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	const query = `
        INSERT INTO users (name, email, password_hash, role, created_at)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id`

	err := r.db.QueryRowContext(ctx, query,
		user.Name,
		strings.ToLower(user.Email),
		user.PasswordHash,
		user.Role,
		user.CreatedAt,
	).Scan(&user.ID)
	return translateError(err)
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	const query = `
        SELECT id, name, email, password_hash, role, created_at
        FROM users WHERE id=$1`
	return r.fetchSingle(ctx, query, id)
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	const query = `
        SELECT id, name, email, password_hash, role, created_at
        FROM users WHERE email=$1`
	return r.fetchSingle(ctx, query, strings.ToLower(email))
}

func (r *userRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&count)
	return count, translateError(err)
}

func (r *userRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.User, error) {
	var user domain.User
	if err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.Role,
		&user.CreatedAt,
	); err != nil {
		return nil, translateError(err)
	}
	return &user, nil
}

type loginEventRepository struct {
	db *sql.DB
}

// NewLoginEventRepository returns a Postgres-backed login log.
func NewLoginEventRepository(db *sql.DB) LoginEventRepository {
	return &loginEventRepository{db: db}
}

func (r *loginEventRepository) Create(ctx context.Context, event *domain.LoginEvent) error {
	const query = `
        INSERT INTO login_logs (user_id, email, logged_in_at)
        VALUES ($1, $2, $3)
        RETURNING id`
	err := r.db.QueryRowContext(ctx, query, event.UserID, event.Email, event.LoggedInAt).Scan(&event.ID)
	return translateError(err)
}

func (r *loginEventRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM login_logs`).Scan(&count)
	return count, translateError(err)
}
