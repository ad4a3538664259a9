package domain

import (
	"strings"
	"time"
)

// DateFormat is the canonical textual form of a booking date.
const DateFormat = "2006-01-02"

// BookingStatus enumerates lifecycle states for bookings.
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusRejected  BookingStatus = "rejected"
	BookingStatusCompleted BookingStatus = "completed"
)

// BookingStatuses lists every status in dashboard order.
var BookingStatuses = []BookingStatus{
	BookingStatusPending,
	BookingStatusConfirmed,
	BookingStatusRejected,
	BookingStatusCompleted,
}

// bookingTransitions maps a status to the statuses an admin may move it to.
var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingStatusPending:   {BookingStatusConfirmed, BookingStatusRejected},
	BookingStatusConfirmed: {BookingStatusCompleted, BookingStatusRejected},
}

// ParseBookingStatus validates a raw status value.
func ParseBookingStatus(raw string) (BookingStatus, bool) {
	status := BookingStatus(strings.ToLower(strings.TrimSpace(raw)))
	for _, known := range BookingStatuses {
		if status == known {
			return status, true
		}
	}
	return "", false
}

// CanTransitionTo reports whether a booking in status s may move to next.
// Re-applying the current status is allowed.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	if s == next {
		return true
	}
	for _, allowed := range bookingTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Booking is a customer's appointment request for one slot on one day.
type Booking struct {
	ID           int64
	UserID       *int64
	CustomerName string
	Email        string
	Phone        string
	Service      string
	Date         string
	Time         string
	Status       BookingStatus
	Notes        string
	CreatedAt    time.Time
	UpdatedAt    *time.Time
}

// OwnedBy reports whether the booking belongs to user, by account or by contact email.
func (b *Booking) OwnedBy(user *User) bool {
	if b == nil || user == nil {
		return false
	}
	if b.UserID != nil && *b.UserID == user.ID {
		return true
	}
	return strings.EqualFold(b.Email, user.Email)
}

// NormalizeDate parses a YYYY-MM-DD date (surrounding whitespace ignored) and returns its canonical form.
func NormalizeDate(raw string) (string, time.Time, error) {
	parsed, err := time.Parse(DateFormat, strings.TrimSpace(raw))
	if err != nil {
		return "", time.Time{}, err
	}
	return parsed.Format(DateFormat), parsed, nil
}
