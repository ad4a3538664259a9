package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitSlotsCoversCatalog(t *testing.T) {
	cases := [][]string{
		nil,
		{"2:00 PM"},
		{"9:00 AM", "9:00 AM", "7:00 PM"},
		{"7:00 PM", "10:00 AM", "3:30 PM"},
		SlotCatalog,
	}

	for _, taken := range cases {
		got := SplitSlots("2026-01-11", taken)

		seen := map[string]int{}
		for _, s := range got.AvailableSlots {
			seen[s]++
		}
		for _, s := range got.BookedSlots {
			seen[s]++
		}
		assert.Len(t, seen, len(SlotCatalog))
		for _, slot := range SlotCatalog {
			assert.Equal(t, 1, seen[slot], "slot %s must appear exactly once", slot)
		}
	}
}

func TestSplitSlotsSingleBooking(t *testing.T) {
	got := SplitSlots("2026-01-11", []string{"2:00 PM"})

	assert.Equal(t, "2026-01-11", got.Date)
	assert.Equal(t, []string{"2:00 PM"}, got.BookedSlots)
	assert.Equal(t, []string{
		"9:00 AM", "10:00 AM", "11:00 AM", "12:00 PM",
		"1:00 PM", "3:00 PM", "4:00 PM",
		"5:00 PM", "6:00 PM", "7:00 PM",
	}, got.AvailableSlots)
}

func TestBookingStatusTransitions(t *testing.T) {
	tests := []struct {
		from, to BookingStatus
		allowed  bool
	}{
		{BookingStatusPending, BookingStatusConfirmed, true},
		{BookingStatusPending, BookingStatusRejected, true},
		{BookingStatusPending, BookingStatusCompleted, false},
		{BookingStatusConfirmed, BookingStatusCompleted, true},
		{BookingStatusConfirmed, BookingStatusRejected, true},
		{BookingStatusConfirmed, BookingStatusPending, false},
		{BookingStatusRejected, BookingStatusConfirmed, false},
		{BookingStatusCompleted, BookingStatusPending, false},
		{BookingStatusCompleted, BookingStatusCompleted, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestParseBookingStatus(t *testing.T) {
	status, ok := ParseBookingStatus(" Confirmed ")
	assert.True(t, ok)
	assert.Equal(t, BookingStatusConfirmed, status)

	_, ok = ParseBookingStatus("cancelled")
	assert.False(t, ok)
}

func TestNormalizeDate(t *testing.T) {
	canonical, _, err := NormalizeDate(" 2026-01-11 ")
	require.NoError(t, err)
	assert.Equal(t, "2026-01-11", canonical)

	_, _, err = NormalizeDate("01/11/2026")
	assert.Error(t, err)
}

func TestParsePriceRange(t *testing.T) {
	tests := []struct {
		raw     string
		want    string
		wantErr bool
	}{
		{raw: "$50 - $150", want: "$50 - $150"},
		{raw: "$60", want: "$60"},
		{raw: "30-80", want: "$30 - $80"},
		{raw: "$12.50 - $12.50", want: "$12.5"},
		{raw: "$150 - $50", wantErr: true},
		{raw: "cheap", wantErr: true},
		{raw: "$1 - $2 - $3", wantErr: true},
		{raw: "$ - $10", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			pr, err := ParsePriceRange(tt.raw)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidPriceRange)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, pr.String())
		})
	}
}

func TestBookingOwnedBy(t *testing.T) {
	uid := int64(7)
	booking := &Booking{UserID: &uid, Email: "sarah@example.com"}

	assert.True(t, booking.OwnedBy(&User{ID: 7, Email: "other@example.com"}))
	assert.True(t, booking.OwnedBy(&User{ID: 9, Email: "Sarah@Example.com"}))
	assert.False(t, booking.OwnedBy(&User{ID: 9, Email: "mike@example.com"}))
	assert.False(t, booking.OwnedBy(nil))
}
