package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/salon-booking/internal/domain"
	apperrors "github.com/spec-kit/salon-booking/pkg/util"
)

func TestAvailabilitySingleBooking(t *testing.T) {
	f := newFixture(t)
	_, err := f.bookings.Create(context.Background(), validBooking(), nil)
	require.NoError(t, err)

	got, err := f.availability.GetAvailability(context.Background(), "2026-01-11")
	require.NoError(t, err)
	assert.Equal(t, "2026-01-11", got.Date)
	assert.Equal(t, []string{"2:00 PM"}, got.BookedSlots)
	assert.Equal(t, []string{
		"9:00 AM", "10:00 AM", "11:00 AM", "12:00 PM", "1:00 PM",
		"3:00 PM", "4:00 PM", "5:00 PM", "6:00 PM", "7:00 PM",
	}, got.AvailableSlots)
}

func TestAvailabilityIsIdempotentAndCached(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	for _, slot := range []string{"7:00 PM", "9:00 AM"} {
		in := validBooking()
		in.Time = slot
		_, err := f.bookings.Create(ctx, in, nil)
		require.NoError(t, err)
	}

	first, err := f.availability.GetAvailability(ctx, "2026-01-11")
	require.NoError(t, err)
	assert.True(t, f.cache.has("availability:2026-01-11"))

	second, err := f.availability.GetAvailability(ctx, "2026-01-11")
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, []string{"9:00 AM", "7:00 PM"}, second.BookedSlots)

	// a write on the same day drops the cached split
	in := validBooking()
	in.Time = "12:00 PM"
	_, err = f.bookings.Create(ctx, in, nil)
	require.NoError(t, err)
	assert.False(t, f.cache.has("availability:2026-01-11"))

	third, err := f.availability.GetAvailability(ctx, "2026-01-11")
	require.NoError(t, err)
	assert.Len(t, third.BookedSlots, 3)
	assert.Len(t, third.AvailableSlots, len(domain.SlotCatalog)-3)
}

func TestAvailabilityEmptyDayAndBadDate(t *testing.T) {
	f := newFixture(t)

	got, err := f.availability.GetAvailability(context.Background(), "2026-02-01")
	require.NoError(t, err)
	assert.Equal(t, domain.SlotCatalog, got.AvailableSlots)
	assert.Empty(t, got.BookedSlots)

	_, err = f.availability.GetAvailability(context.Background(), "February 1st")
	assert.True(t, apperrors.HasCode(err, apperrors.CodeInvalidDate))
}

func TestAvailabilityWithoutCache(t *testing.T) {
	f := newFixture(t)
	svc := NewAvailabilityService(f.store.Bookings, nil, 0)
	got, err := svc.GetAvailability(context.Background(), " 2026-01-11 ")
	require.NoError(t, err)
	assert.Equal(t, "2026-01-11", got.Date)
	assert.Len(t, got.AvailableSlots, 11)
}
