package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/salon-booking/internal/api/dto"
	"github.com/spec-kit/salon-booking/internal/auth"
	"github.com/spec-kit/salon-booking/internal/domain"
	apperrors "github.com/spec-kit/salon-booking/pkg/util"
)

func parseBody(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return apperrors.NewValidationError(apperrors.CodeInvalidPayload, "invalid payload", nil)
	}
	return nil
}

func parseID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewValidationError(apperrors.CodeInvalidPayload, "id must be a positive integer",
			map[string]any{"id": c.Params("id")})
	}
	return id, nil
}

// currentUser returns the signed-in user, or nil for anonymous calls.
func currentUser(c *fiber.Ctx) *domain.User {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return nil
	}
	return principal.User
}

func userResponse(user *domain.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
	}
}

func bookingResponse(b *domain.Booking) dto.BookingResponse {
	return dto.BookingResponse{
		ID:           b.ID,
		UserID:       b.UserID,
		CustomerName: b.CustomerName,
		Email:        b.Email,
		Phone:        b.Phone,
		Service:      b.Service,
		Date:         b.Date,
		Time:         b.Time,
		Status:       b.Status,
		Notes:        b.Notes,
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.UpdatedAt,
	}
}

func bookingList(bookings []domain.Booking) []dto.BookingResponse {
	items := make([]dto.BookingResponse, 0, len(bookings))
	for i := range bookings {
		items = append(items, bookingResponse(&bookings[i]))
	}
	return items
}

func serviceResponse(s *domain.Service) dto.ServiceResponse {
	return dto.ServiceResponse{
		ID:          s.ID,
		Name:        s.Name,
		Description: s.Description,
		PriceRange:  s.PriceRange,
		Duration:    s.Duration,
		Category:    s.Category,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}
