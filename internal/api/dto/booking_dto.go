package dto

import (
	"time"

	"github.com/spec-kit/salon-booking/internal/domain"
)

// CreateBookingRequest payload.
type CreateBookingRequest struct {
	CustomerName string `json:"customerName"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Service      string `json:"service"`
	Date         string `json:"date"`
	Time         string `json:"time"`
	Notes        string `json:"notes"`
}

// UpdateBookingRequest payload. Absent fields are left unchanged.
type UpdateBookingRequest struct {
	Status *string `json:"status"`
	Notes  *string `json:"notes"`
	Date   *string `json:"date"`
	Time   *string `json:"time"`
}

// BookingResponse represents a booking on the wire.
type BookingResponse struct {
	ID           int64                `json:"id"`
	UserID       *int64               `json:"userId"`
	CustomerName string               `json:"customerName"`
	Email        string               `json:"email"`
	Phone        string               `json:"phone"`
	Service      string               `json:"service"`
	Date         string               `json:"date"`
	Time         string               `json:"time"`
	Status       domain.BookingStatus `json:"status"`
	Notes        string               `json:"notes"`
	CreatedAt    time.Time            `json:"createdAt"`
	UpdatedAt    *time.Time           `json:"updatedAt"`
}

// CreateBookingResponse wraps a new booking.
type CreateBookingResponse struct {
	Success bool            `json:"success"`
	Booking BookingResponse `json:"booking"`
}

// DeleteBookingResponse echoes the removed booking.
type DeleteBookingResponse struct {
	Message string          `json:"message"`
	Booking BookingResponse `json:"booking"`
}

// AvailabilityResponse is the slot split of one day.
type AvailabilityResponse struct {
	Date           string   `json:"date"`
	AvailableSlots []string `json:"availableSlots"`
	BookedSlots    []string `json:"bookedSlots"`
}
