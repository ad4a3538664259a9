package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/spec-kit/salon-booking/internal/domain"
)

type bookingRepository struct {
	db *sql.DB
}

// NewBookingRepository returns a Postgres-backed implementation.
func NewBookingRepository(db *sql.DB) BookingRepository {
	return &bookingRepository{db: db}
}

const bookingColumns = `id, user_id, customer_name, email, phone, service, booking_date, booking_time,
               status, notes, created_at, updated_at`

func (r *bookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	const query = `
        INSERT INTO bookings (user_id, customer_name, email, phone, service, booking_date, booking_time, status, notes, created_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
        RETURNING id`
	err := r.db.QueryRowContext(ctx, query,
		nullableID(booking.UserID),
		booking.CustomerName,
		booking.Email,
		booking.Phone,
		booking.Service,
		booking.Date,
		booking.Time,
		booking.Status,
		booking.Notes,
		booking.CreatedAt,
	).Scan(&booking.ID)
	return translateError(err)
}

func (r *bookingRepository) Update(ctx context.Context, booking *domain.Booking) error {
	const query = `
        UPDATE bookings SET customer_name=$1, email=$2, phone=$3, service=$4, booking_date=$5,
            booking_time=$6, status=$7, notes=$8, updated_at=$9
        WHERE id=$10`
	res, err := r.db.ExecContext(ctx, query,
		booking.CustomerName,
		booking.Email,
		booking.Phone,
		booking.Service,
		booking.Date,
		booking.Time,
		booking.Status,
		booking.Notes,
		booking.UpdatedAt,
		booking.ID,
	)
	if err != nil {
		return translateError(err)
	}
	return expectAffected(res)
}

func (r *bookingRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM bookings WHERE id=$1`, id)
	if err != nil {
		return translateError(err)
	}
	return expectAffected(res)
}

func (r *bookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id=$1`
	booking, err := scanBooking(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, translateError(err)
	}
	return booking, nil
}

func (r *bookingRepository) List(ctx context.Context, filter BookingFilter) ([]domain.Booking, error) {
	clauses := []string{"1=1"}
	args := []any{}

	if filter.Email != "" {
		args = append(args, strings.ToLower(filter.Email))
		clauses = append(clauses, fmt.Sprintf("LOWER(email)=$%d", len(args)))
	}
	if filter.Date != "" {
		args = append(args, filter.Date)
		clauses = append(clauses, fmt.Sprintf("booking_date=$%d", len(args)))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		clauses = append(clauses, fmt.Sprintf("status=$%d", len(args)))
	}

	query := fmt.Sprintf(`SELECT %s FROM bookings WHERE %s ORDER BY created_at DESC, id DESC`,
		bookingColumns, strings.Join(clauses, " AND "))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, translateError(err)
	}
	defer rows.Close()

	result := []domain.Booking{}
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *booking)
	}
	return result, rows.Err()
}

func (r *bookingRepository) CountByStatus(ctx context.Context) (map[domain.BookingStatus]int64, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT status, COUNT(*) FROM bookings GROUP BY status`)
	if err != nil {
		return nil, translateError(err)
	}
	defer rows.Close()

	counts := make(map[domain.BookingStatus]int64)
	for rows.Next() {
		var status domain.BookingStatus
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}
	return counts, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var booking domain.Booking
	var userID sql.NullInt64
	if err := row.Scan(
		&booking.ID,
		&userID,
		&booking.CustomerName,
		&booking.Email,
		&booking.Phone,
		&booking.Service,
		&booking.Date,
		&booking.Time,
		&booking.Status,
		&booking.Notes,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if userID.Valid {
		booking.UserID = &userID.Int64
	}
	return &booking, nil
}

func nullableID(id *int64) sql.NullInt64 {
	if id == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *id, Valid: true}
}
