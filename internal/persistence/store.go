package persistence

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/spec-kit/salon-booking/internal/config"
	"github.com/spec-kit/salon-booking/internal/repository"
	"github.com/spec-kit/salon-booking/internal/repository/memory"
	"github.com/spec-kit/salon-booking/internal/repository/sqlstore"
)

// Backend is the opened records store plus the handles needed to probe and close it.
type Backend struct {
	Driver   string
	Store    *repository.Store
	Postgres *Postgres
	gormDB   *gorm.DB
}

// OpenStore selects the repository implementation named by cfg.Store.Driver.
func OpenStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Backend, error) {
	backend := &Backend{Driver: cfg.Store.Driver}
	debug := cfg.Logger.Level == "debug"

	switch cfg.Store.Driver {
	case config.StoreMemory:
		backend.Store = memory.NewStore()
	case config.StorePostgres:
		pg, err := NewPostgres(ctx, cfg.Postgres, logger)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		if !pg.Configured() {
			return nil, errors.New("postgres store selected without POSTGRES_DSN")
		}
		if cfg.Postgres.RunMigrations {
			if err := RunMigrations(ctx, pg.Pool, cfg.Postgres.MigrationsDir, logger); err != nil {
				pg.Close()
				return nil, err
			}
		}
		backend.Postgres = pg
		backend.Store = repository.NewStore(pg.DB())
	case config.StoreSQLite:
		db, err := sqlstore.OpenSQLite(cfg.Store.SQLitePath, debug)
		if err != nil {
			return nil, err
		}
		backend.gormDB = db
		backend.Store = sqlstore.NewStore(db)
	case config.StoreMySQL:
		db, err := sqlstore.OpenMySQL(cfg.Store.MySQLDSN, debug)
		if err != nil {
			return nil, err
		}
		backend.gormDB = db
		backend.Store = sqlstore.NewStore(db)
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}

	logger.Info("records store ready", zap.String("driver", backend.Driver))
	return backend, nil
}

// Ping checks the backing database. The memory store is always reachable.
func (b *Backend) Ping(ctx context.Context) error {
	switch {
	case b == nil:
		return errors.New("store not opened")
	case b.Postgres != nil:
		return b.Postgres.Ping(ctx)
	case b.gormDB != nil:
		sqlDB, err := b.gormDB.DB()
		if err != nil {
			return err
		}
		return sqlDB.PingContext(ctx)
	default:
		return nil
	}
}

// Close releases database resources.
func (b *Backend) Close() error {
	if b == nil {
		return nil
	}
	if b.Postgres != nil {
		b.Postgres.Close()
	}
	if b.gormDB != nil {
		return sqlstore.Close(b.gormDB)
	}
	return nil
}
