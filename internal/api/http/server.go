package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"go.uber.org/zap"

	"github.com/spec-kit/salon-booking/internal/observability"
)

// ServerConfig holds everything NewServer needs.
type ServerConfig struct {
	AppName     string
	Timeout     time.Duration
	CORSOrigins string
	MetricsPath string
	Logger      *zap.Logger
	Metrics     *observability.Metrics
	Routes      RouteConfig
}

// NewServer builds the fiber app with middlewares, API routes and the metrics endpoint.
func NewServer(cfg ServerConfig) *fiber.App {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	app := fiber.New(fiber.Config{
		AppName:               cfg.AppName,
		DisableStartupMessage: true,
		ErrorHandler:          ErrorHandler,
	})
	origins := cfg.CORSOrigins
	if origins == "" {
		origins = "*"
	}
	RegisterMiddlewares(app, logger, cfg.Metrics, MiddlewareConfig{Timeout: cfg.Timeout, CORSOrigins: origins})

	if cfg.Metrics != nil && cfg.MetricsPath != "" {
		app.Get(cfg.MetricsPath, adaptor.HTTPHandler(cfg.Metrics.Handler()))
	}
	RegisterRoutes(app, cfg.Routes)
	return app
}
