package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/salon-booking/internal/api/dto"
	"github.com/spec-kit/salon-booking/internal/service"
)

// AdminHandler serves the dashboard endpoints.
type AdminHandler struct {
	admin *service.AdminService
}

// NewAdminHandler constructs handler.
func NewAdminHandler(admin *service.AdminService) *AdminHandler {
	return &AdminHandler{admin: admin}
}

// Stats GET /api/admin/stats.
func (h *AdminHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.admin.Stats(c.UserContext())
	if err != nil {
		return err
	}
	byStatus := make(map[string]int64, len(stats.BookingsByStatus))
	for status, n := range stats.BookingsByStatus {
		byStatus[string(status)] = n
	}
	return c.JSON(dto.StatsResponse{
		TotalUsers:       stats.TotalUsers,
		TotalLogins:      stats.TotalLogins,
		TotalBookings:    stats.TotalBookings,
		BookingsByStatus: byStatus,
	})
}

// ExportBookings GET /api/admin/bookings/export?format=csv|xlsx.
func (h *AdminHandler) ExportBookings(c *fiber.Ctx) error {
	export, err := h.admin.ExportBookings(c.UserContext(), c.Query("format"))
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, export.ContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", export.FileName))
	return c.Send(export.Body)
}
