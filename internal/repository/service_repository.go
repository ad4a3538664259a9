package repository

import (
	"context"
	"database/sql"

	"github.com/spec-kit/salon-booking/internal/domain"
)

type serviceRepository struct {
	db *sql.DB
}

// NewServiceRepository returns a Postgres-backed catalog.
func NewServiceRepository(db *sql.DB) ServiceRepository {
	return &serviceRepository{db: db}
}

func (r *serviceRepository) Create(ctx context.Context, service *domain.Service) error {
	const query = `
        INSERT INTO services (name, description, price_range, duration, category, created_at)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id`
	err := r.db.QueryRowContext(ctx, query,
		service.Name,
		service.Description,
		service.PriceRange,
		service.Duration,
		service.Category,
		service.CreatedAt,
	).Scan(&service.ID)
	return translateError(err)
}

func (r *serviceRepository) Update(ctx context.Context, service *domain.Service) error {
	const query = `
        UPDATE services SET name=$1, description=$2, price_range=$3, duration=$4, category=$5, updated_at=$6
        WHERE id=$7`
	res, err := r.db.ExecContext(ctx, query,
		service.Name,
		service.Description,
		service.PriceRange,
		service.Duration,
		service.Category,
		service.UpdatedAt,
		service.ID,
	)
	if err != nil {
		return translateError(err)
	}
	return expectAffected(res)
}

func (r *serviceRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM services WHERE id=$1`, id)
	if err != nil {
		return translateError(err)
	}
	return expectAffected(res)
}

func (r *serviceRepository) GetByID(ctx context.Context, id int64) (*domain.Service, error) {
	const query = `
        SELECT id, name, description, price_range, duration, category, created_at, updated_at
        FROM services WHERE id=$1`
	service, err := scanService(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, translateError(err)
	}
	return service, nil
}

func (r *serviceRepository) List(ctx context.Context) ([]domain.Service, error) {
	const query = `
        SELECT id, name, description, price_range, duration, category, created_at, updated_at
        FROM services ORDER BY id ASC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, translateError(err)
	}
	defer rows.Close()

	result := []domain.Service{}
	for rows.Next() {
		service, err := scanService(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *service)
	}
	return result, rows.Err()
}

func scanService(row rowScanner) (*domain.Service, error) {
	var service domain.Service
	if err := row.Scan(
		&service.ID,
		&service.Name,
		&service.Description,
		&service.PriceRange,
		&service.Duration,
		&service.Category,
		&service.CreatedAt,
		&service.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &service, nil
}

// NewStore wires the Postgres repositories over one connection pool.
func NewStore(db *sql.DB) *Store {
	return &Store{
		Bookings:    NewBookingRepository(db),
		Users:       NewUserRepository(db),
		LoginEvents: NewLoginEventRepository(db),
		Services:    NewServiceRepository(db),
	}
}
