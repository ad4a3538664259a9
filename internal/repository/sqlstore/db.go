// Package sqlstore implements the repositories with gorm for the embedded
// sqlite and the mysql backends.
package sqlstore

import (
	"errors"
	"fmt"
	"strings"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/spec-kit/salon-booking/internal/repository"
)

// OpenSQLite opens (or creates) a sqlite database file and migrates it.
func OpenSQLite(path string, debug bool) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), gormConfig(debug))
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	// sqlite serialises writers; a single connection also keeps :memory: databases shared.
	sqlDB.SetMaxOpenConns(1)
	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// OpenMySQL connects to mysql using dsn and migrates the schema.
func OpenMySQL(dsn string, debug bool) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(dsn), gormConfig(debug))
	if err != nil {
		return nil, fmt.Errorf("open mysql: %w", err)
	}
	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

func gormConfig(debug bool) *gorm.Config {
	mode := logger.Silent
	if debug {
		mode = logger.Info
	}
	return &gorm.Config{
		Logger:         logger.Default.LogMode(mode),
		TranslateError: true,
	}
}

// Migrate creates or updates tables and unique indexes.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&userRecord{},
		&loginEventRecord{},
		&serviceRecord{},
		&bookingRecord{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

// Close releases the underlying connection pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// NewStore wires the gorm repositories over db.
func NewStore(db *gorm.DB) *repository.Store {
	return &repository.Store{
		Bookings:    NewBookingRepository(db),
		Users:       NewUserRepository(db),
		LoginEvents: NewLoginEventRepository(db),
		Services:    NewServiceRepository(db),
	}
}

func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return repository.ErrNotFound
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return repository.ErrDuplicate
	}
	msg := err.Error()
	if strings.Contains(msg, "UNIQUE constraint failed") || strings.Contains(msg, "Duplicate entry") {
		return repository.ErrDuplicate
	}
	return err
}

func expectAffected(tx *gorm.DB) error {
	if tx.Error != nil {
		return translateError(tx.Error)
	}
	if tx.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}
