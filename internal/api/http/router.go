package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/salon-booking/internal/api/http/handlers"
	"github.com/spec-kit/salon-booking/internal/auth"
	"github.com/spec-kit/salon-booking/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Services       *handlers.ServicesHandler
	Bookings       *handlers.BookingsHandler
	Availability   *handlers.AvailabilityHandler
	Admin          *handlers.AdminHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes under /api.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	api := app.Group("/api")
	api.Get("/health", cfg.Health.Live)
	api.Get("/health/ready", cfg.Health.Ready)

	authGroup := api.Group("/auth")
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/signup", cfg.Auth.Signup)
	authGroup.Post("/forgot-password", cfg.Auth.ForgotPassword)

	requireAuth := []fiber.Handler{cfg.AuthMiddleware.Handle, auth.RequireAuth()}
	adminOnly := []fiber.Handler{cfg.AuthMiddleware.Handle, auth.RequireRole(domain.RoleAdmin)}

	services := api.Group("/services")
	services.Get("/", cfg.Services.List)
	services.Get("/:id", cfg.Services.Get)
	services.Post("/", append(adminOnly, cfg.Services.Create)...)
	services.Patch("/:id", append(adminOnly, cfg.Services.Update)...)
	services.Put("/:id", append(adminOnly, cfg.Services.Update)...)
	services.Delete("/:id", append(adminOnly, cfg.Services.Delete)...)

	bookings := api.Group("/bookings")
	bookings.Post("/", cfg.AuthMiddleware.Optional, cfg.Bookings.Create)
	bookings.Get("/", append(adminOnly, cfg.Bookings.List)...)
	bookings.Get("/user/:email", append(requireAuth, cfg.Bookings.ListByUser)...)
	bookings.Get("/:id", append(requireAuth, cfg.Bookings.Get)...)
	bookings.Patch("/:id", append(adminOnly, cfg.Bookings.Update)...)
	bookings.Delete("/:id", append(requireAuth, cfg.Bookings.Delete)...)

	api.Get("/availability/:date", cfg.Availability.Get)

	admin := api.Group("/admin", adminOnly...)
	admin.Get("/stats", cfg.Admin.Stats)
	admin.Get("/bookings/export", cfg.Admin.ExportBookings)
}
