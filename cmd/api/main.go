package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	httptransport "github.com/spec-kit/salon-booking/internal/api/http"
	"github.com/spec-kit/salon-booking/internal/api/http/handlers"
	"github.com/spec-kit/salon-booking/internal/auth"
	"github.com/spec-kit/salon-booking/internal/config"
	"github.com/spec-kit/salon-booking/internal/events"
	"github.com/spec-kit/salon-booking/internal/observability"
	"github.com/spec-kit/salon-booking/internal/persistence"
	"github.com/spec-kit/salon-booking/internal/service"
	"github.com/spec-kit/salon-booking/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger, cfg.App)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	backend, err := persistence.OpenStore(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("failed to open store", zap.Error(err))
	}
	defer backend.Close() //nolint:errcheck

	seed, err := persistence.LoadSeed(cfg.Store.SeedFile)
	if err != nil {
		logger.Fatal("failed to load seed", zap.Error(err))
	}
	if err := persistence.ApplySeed(ctx, backend.Store, seed, cfg.Auth.BcryptCost, time.Now(), logger); err != nil {
		logger.Fatal("failed to apply seed", zap.Error(err))
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()
	var cache service.Cache
	if redis != nil {
		cache = redis
	}

	var metrics *observability.Metrics
	if cfg.Metrics.Enabled {
		metrics = observability.NewMetrics()
	}

	store := backend.Store
	dispatcher := events.NewInMemoryDispatcher()
	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL())

	authService, err := service.NewAuthService(service.AuthDependencies{
		UserRepo:       store.Users,
		LoginEventRepo: store.LoginEvents,
		TokenManager:   tokens,
		Dispatcher:     dispatcher,
		BcryptCost:     cfg.Auth.BcryptCost,
		Logger:         logger,
	})
	if err != nil {
		logger.Fatal("failed to init auth service", zap.Error(err))
	}
	bookingService := service.NewBookingService(service.BookingDependencies{
		BookingRepo: store.Bookings,
		Dispatcher:  dispatcher,
		Cache:       cache,
		Location:    cfg.App.Location(),
		Logger:      logger,
	})
	availabilityService := service.NewAvailabilityService(store.Bookings, cache, cfg.Redis.CacheTTL())
	catalogService := service.NewCatalogService(store.Services, cache, cfg.Redis.CacheTTL(), nil)
	adminService := service.NewAdminService(store, nil)

	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(dispatcher, notificationService, metrics)

	app := httptransport.NewServer(httptransport.ServerConfig{
		AppName:     cfg.App.Name,
		Timeout:     cfg.App.RequestTimeout(),
		CORSOrigins: cfg.App.CORSOrigins,
		MetricsPath: cfg.Metrics.Path,
		Logger:      logger,
		Metrics:     metrics,
		Routes: httptransport.RouteConfig{
			Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, backend, redis),
			Auth:           handlers.NewAuthHandler(authService),
			Services:       handlers.NewServicesHandler(catalogService),
			Bookings:       handlers.NewBookingsHandler(bookingService),
			Availability:   handlers.NewAvailabilityHandler(availabilityService),
			Admin:          handlers.NewAdminHandler(adminService),
			AuthMiddleware: auth.NewAuthMiddleware(tokens, store.Users),
		},
	})

	go func() {
		logger.Info("listening", zap.String("addr", cfg.App.Addr()), zap.String("store", backend.Driver))
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Warn("shutdown", zap.Error(err))
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
