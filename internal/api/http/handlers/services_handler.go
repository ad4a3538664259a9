package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/salon-booking/internal/api/dto"
	"github.com/spec-kit/salon-booking/internal/service"
)

// ServicesHandler exposes the catalog.
type ServicesHandler struct {
	catalog *service.CatalogService
}

// NewServicesHandler constructs handler.
func NewServicesHandler(catalog *service.CatalogService) *ServicesHandler {
	return &ServicesHandler{catalog: catalog}
}

// List GET /api/services.
func (h *ServicesHandler) List(c *fiber.Ctx) error {
	services, err := h.catalog.List(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]dto.ServiceResponse, 0, len(services))
	for i := range services {
		items = append(items, serviceResponse(&services[i]))
	}
	return c.JSON(items)
}

// Get GET /api/services/:id.
func (h *ServicesHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	svc, err := h.catalog.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(serviceResponse(svc))
}

// Create POST /api/services.
func (h *ServicesHandler) Create(c *fiber.Ctx) error {
	var req dto.ServiceRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	svc, err := h.catalog.Create(c.UserContext(), service.ServiceInput{
		Name:        deref(req.Name),
		Description: deref(req.Description),
		PriceRange:  deref(req.PriceRange),
		Duration:    deref(req.Duration),
		Category:    deref(req.Category),
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(serviceResponse(svc))
}

// Update PATCH|PUT /api/services/:id.
func (h *ServicesHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var req dto.ServiceRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	svc, err := h.catalog.Update(c.UserContext(), id, service.ServicePatch{
		Name:        req.Name,
		Description: req.Description,
		PriceRange:  req.PriceRange,
		Duration:    req.Duration,
		Category:    req.Category,
	})
	if err != nil {
		return err
	}
	return c.JSON(serviceResponse(svc))
}

// Delete DELETE /api/services/:id.
func (h *ServicesHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	svc, err := h.catalog.Delete(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(dto.DeleteServiceResponse{Message: "Service deleted successfully", Service: serviceResponse(svc)})
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
