package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/salon-booking/internal/api/dto"
	"github.com/spec-kit/salon-booking/internal/service"
)

// AvailabilityHandler serves the slot split of a day.
type AvailabilityHandler struct {
	availability *service.AvailabilityService
}

// NewAvailabilityHandler constructs handler.
func NewAvailabilityHandler(availability *service.AvailabilityService) *AvailabilityHandler {
	return &AvailabilityHandler{availability: availability}
}

// Get GET /api/availability/:date.
func (h *AvailabilityHandler) Get(c *fiber.Ctx) error {
	result, err := h.availability.GetAvailability(c.UserContext(), c.Params("date"))
	if err != nil {
		return err
	}
	return c.JSON(dto.AvailabilityResponse{
		Date:           result.Date,
		AvailableSlots: result.AvailableSlots,
		BookedSlots:    result.BookedSlots,
	})
}
