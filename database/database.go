package database

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/rpupo63/project-aoi-backend/config"
	"github.com/rpupo63/project-aoi-backend/errs"
)

// Database owns the process-wide connection pool. It is created once in main and
// handed to whatever needs to open sessions.
type Database struct {
	db *gorm.DB
}

// New wraps an already opened GORM database
func New(db *gorm.DB) Database {
	return Database{db: db}
}

// Open connects to PostgreSQL, sizes the pool and checks the connection.
func Open(s config.Settings) (Database, error) {
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  s.DatabaseURL,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		PrepareStmt: false,
		Logger:      newGormLogger(s.DBSlowQueryThreshold),
	})
	if err != nil {
		return Database{}, errs.NewDatabaseConnectionError(err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return Database{}, errs.NewDatabaseConnectionError(err)
	}
	sqlDB.SetMaxOpenConns(s.DBMaxOpenConns)
	sqlDB.SetMaxIdleConns(s.DBMaxIdleConns)
	sqlDB.SetConnMaxLifetime(s.DBConnMaxLifetime)

	// Test database connection
	var result int
	if err := db.Raw("SELECT 1").Scan(&result).Error; err != nil {
		return Database{}, errs.NewDatabaseConnectionError(err)
	}

	log.Info().
		Int("maxOpenConns", s.DBMaxOpenConns).
		Int("maxIdleConns", s.DBMaxIdleConns).
		Msg("connected to database")

	return New(db), nil
}

// Acquire checks out one connection, runs fn with a Session bound to it and returns the
// connection to the pool once fn is done, whether it returned, failed or panicked.
func (d Database) Acquire(ctx context.Context, fn func(*Session) error) error {
	acquired := false
	err := d.db.WithContext(ctx).Connection(func(tx *gorm.DB) error {
		acquired = true
		return fn(newSession(tx))
	})
	if err != nil && !acquired {
		return errs.NewDatabaseConnectionError(err)
	}
	return err
}

// Ping reports whether the database answers.
func (d Database) Ping(ctx context.Context) error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (d Database) Close() error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return fmt.Errorf("close database: %w", err)
	}
	return sqlDB.Close()
}
