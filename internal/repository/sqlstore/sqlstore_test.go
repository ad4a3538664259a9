package sqlstore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/salon-booking/internal/domain"
	"github.com/spec-kit/salon-booking/internal/repository"
)

func newTestStore(t *testing.T) *repository.Store {
	t.Helper()
	db, err := OpenSQLite(":memory:", false)
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(db) })
	return NewStore(db)
}

func sampleBooking(date, slot, email string, created time.Time) *domain.Booking {
	return &domain.Booking{
		CustomerName: "Emily Davis",
		Email:        email,
		Phone:        "+1 555 000 1111",
		Service:      "Manicure & Pedicure",
		Date:         date,
		Time:         slot,
		Status:       domain.BookingStatusPending,
		CreatedAt:    created,
	}
}

func TestBookingSlotIsUnique(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)

	first := sampleBooking("2026-03-05", "11:00 AM", "emily@example.com", now)
	require.NoError(t, store.Bookings.Create(ctx, first))
	assert.NotZero(t, first.ID)

	err := store.Bookings.Create(ctx, sampleBooking("2026-03-05", "11:00 AM", "other@example.com", now))
	assert.ErrorIs(t, err, repository.ErrDuplicate)

	second := sampleBooking("2026-03-05", "12:00 PM", "other@example.com", now)
	require.NoError(t, store.Bookings.Create(ctx, second))

	second.Time = "11:00 AM"
	updated := now.Add(time.Hour)
	second.UpdatedAt = &updated
	assert.ErrorIs(t, store.Bookings.Update(ctx, second), repository.ErrDuplicate)
}

func TestBookingRoundTripAndList(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	uid := int64(12)

	owned := sampleBooking("2026-03-05", "9:00 AM", "Emily@Example.com", base)
	owned.UserID = &uid
	require.NoError(t, store.Bookings.Create(ctx, owned))
	require.NoError(t, store.Bookings.Create(ctx, sampleBooking("2026-03-06", "9:00 AM", "mike@example.com", base.Add(time.Minute))))

	got, err := store.Bookings.GetByID(ctx, owned.ID)
	require.NoError(t, err)
	require.NotNil(t, got.UserID)
	assert.Equal(t, uid, *got.UserID)
	assert.Nil(t, got.UpdatedAt)

	updated := base.Add(2 * time.Hour)
	got.Status = domain.BookingStatusConfirmed
	got.UpdatedAt = &updated
	require.NoError(t, store.Bookings.Update(ctx, got))

	confirmed, err := store.Bookings.List(ctx, repository.BookingFilter{Status: domain.BookingStatusConfirmed})
	require.NoError(t, err)
	require.Len(t, confirmed, 1)
	assert.Equal(t, owned.ID, confirmed[0].ID)

	mine, err := store.Bookings.List(ctx, repository.BookingFilter{Email: "emily@example.com"})
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	all, err := store.Bookings.List(ctx, repository.BookingFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "mike@example.com", all[0].Email)

	counts, err := store.Bookings.CountByStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), counts[domain.BookingStatusConfirmed])
	assert.Equal(t, int64(1), counts[domain.BookingStatusPending])

	require.NoError(t, store.Bookings.Delete(ctx, owned.ID))
	_, err = store.Bookings.GetByID(ctx, owned.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.ErrorIs(t, store.Bookings.Delete(ctx, owned.ID), repository.ErrNotFound)
}

func TestUserEmailIsUnique(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	user := &domain.User{Name: "Jane", Email: "User@Example.com", PasswordHash: "x", Role: domain.RoleCustomer, CreatedAt: time.Now()}
	require.NoError(t, store.Users.Create(ctx, user))
	assert.Equal(t, "user@example.com", user.Email)

	err := store.Users.Create(ctx, &domain.User{Name: "Dup", Email: "user@example.com", PasswordHash: "y", Role: domain.RoleCustomer})
	assert.ErrorIs(t, err, repository.ErrDuplicate)

	found, err := store.Users.GetByEmail(ctx, "USER@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)

	_, err = store.Users.GetByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	count, err := store.Users.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	require.NoError(t, store.LoginEvents.Create(ctx, &domain.LoginEvent{UserID: user.ID, Email: user.Email, LoggedInAt: time.Now()}))
	logins, err := store.LoginEvents.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), logins)
}

func TestServiceCatalog(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	svc := &domain.Service{Name: "Hair Coloring", PriceRange: "$80 - $250", Category: "Hair", CreatedAt: time.Now()}
	require.NoError(t, store.Services.Create(ctx, svc))
	require.NoError(t, store.Services.Create(ctx, &domain.Service{Name: "Massage", CreatedAt: time.Now()}))

	now := time.Now()
	svc.Duration = "2-3 hours"
	svc.UpdatedAt = &now
	require.NoError(t, store.Services.Update(ctx, svc))

	list, err := store.Services.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "2-3 hours", list[0].Duration)
	assert.NotNil(t, list[0].UpdatedAt)

	require.NoError(t, store.Services.Delete(ctx, svc.ID))
	_, err = store.Services.GetByID(ctx, svc.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
