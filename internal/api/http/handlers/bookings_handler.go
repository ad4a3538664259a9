package handlers

import (
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/salon-booking/internal/api/dto"
	"github.com/spec-kit/salon-booking/internal/service"
	apperrors "github.com/spec-kit/salon-booking/pkg/util"
)

// BookingsHandler manages booking endpoints.
type BookingsHandler struct {
	bookings *service.BookingService
}

// NewBookingsHandler constructs handler.
func NewBookingsHandler(bookingService *service.BookingService) *BookingsHandler {
	return &BookingsHandler{bookings: bookingService}
}

// Create POST /api/bookings. A signed-in caller becomes the booking's owner.
func (h *BookingsHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateBookingRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	input := service.CreateBookingInput{
		CustomerName: req.CustomerName,
		Email:        req.Email,
		Phone:        req.Phone,
		Service:      req.Service,
		Date:         req.Date,
		Time:         req.Time,
		Notes:        req.Notes,
	}
	user := currentUser(c)
	if user != nil {
		id := user.ID
		input.UserID = &id
	}
	booking, err := h.bookings.Create(c.UserContext(), input, user)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.CreateBookingResponse{Success: true, Booking: bookingResponse(booking)})
}

// List GET /api/bookings, optionally filtered by ?status=.
func (h *BookingsHandler) List(c *fiber.Ctx) error {
	if status := c.Query("status"); status != "" {
		bookings, err := h.bookings.ListByStatus(c.UserContext(), status)
		if err != nil {
			return err
		}
		return c.JSON(bookingList(bookings))
	}
	bookings, err := h.bookings.ListAll(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(bookingList(bookings))
}

// ListByUser GET /api/bookings/user/:email. Customers may only list their own email.
func (h *BookingsHandler) ListByUser(c *fiber.Ctx) error {
	email, err := url.PathUnescape(c.Params("email"))
	if err != nil {
		return apperrors.NewValidationError(apperrors.CodeInvalidEmail, "email is not a valid path segment",
			map[string]any{"email": c.Params("email")})
	}
	email = strings.TrimSpace(email)
	user := currentUser(c)
	if user == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	if !user.IsAdmin() && !strings.EqualFold(email, user.Email) {
		return apperrors.NewForbidden("bookings of another customer")
	}
	bookings, err := h.bookings.ListByUserEmail(c.UserContext(), email)
	if err != nil {
		return err
	}
	return c.JSON(bookingList(bookings))
}

// Get GET /api/bookings/:id.
func (h *BookingsHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	booking, err := h.bookings.GetByID(c.UserContext(), id)
	if err != nil {
		return err
	}
	if err := authorizeOwner(c, booking.OwnedBy(currentUser(c))); err != nil {
		return err
	}
	return c.JSON(bookingResponse(booking))
}

// Update PATCH /api/bookings/:id.
func (h *BookingsHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var req dto.UpdateBookingRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	booking, err := h.bookings.UpdateStatus(c.UserContext(), id, service.BookingPatch{
		Status: req.Status,
		Notes:  req.Notes,
		Date:   req.Date,
		Time:   req.Time,
	}, currentUser(c))
	if err != nil {
		return err
	}
	return c.JSON(bookingResponse(booking))
}

// Delete DELETE /api/bookings/:id.
func (h *BookingsHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	user := currentUser(c)
	existing, err := h.bookings.GetByID(c.UserContext(), id)
	if err != nil {
		return err
	}
	if err := authorizeOwner(c, existing.OwnedBy(user)); err != nil {
		return err
	}
	booking, err := h.bookings.Delete(c.UserContext(), id, user)
	if err != nil {
		return err
	}
	return c.JSON(dto.DeleteBookingResponse{Message: "Booking deleted successfully", Booking: bookingResponse(booking)})
}

func authorizeOwner(c *fiber.Ctx, owned bool) error {
	user := currentUser(c)
	if user == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	if owned || user.IsAdmin() {
		return nil
	}
	return apperrors.NewForbidden("booking belongs to another customer")
}
