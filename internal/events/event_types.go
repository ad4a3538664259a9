package events

import (
	"time"

	"github.com/spec-kit/salon-booking/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventBookingCreated       EventType = "booking_created"
	EventBookingStatusChanged EventType = "booking_status_changed"
	EventBookingDeleted       EventType = "booking_deleted"
	EventUserRegistered       EventType = "user_registered"
	EventUserLoggedIn         EventType = "user_logged_in"
)

// Actor identifies who triggered an event. UserID is nil for anonymous callers.
type Actor struct {
	UserID *int64      `json:"userId,omitempty"`
	Role   domain.Role `json:"role,omitempty"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	BookingID int64       `json:"bookingId,omitempty"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// BookingCreatedPayload payload.
type BookingCreatedPayload struct {
	CustomerName string `json:"customerName"`
	Email        string `json:"email"`
	Service      string `json:"service"`
	Date         string `json:"date"`
	Time         string `json:"time"`
}

// BookingStatusChangedPayload payload.
type BookingStatusChangedPayload struct {
	Email     string               `json:"email"`
	OldStatus domain.BookingStatus `json:"oldStatus"`
	NewStatus domain.BookingStatus `json:"newStatus"`
	Notes     string               `json:"notes,omitempty"`
}

// BookingDeletedPayload payload.
type BookingDeletedPayload struct {
	Email  string               `json:"email"`
	Date   string               `json:"date"`
	Time   string               `json:"time"`
	Status domain.BookingStatus `json:"status"`
}

// UserPayload payload for account events.
type UserPayload struct {
	UserID int64  `json:"userId"`
	Email  string `json:"email"`
}
