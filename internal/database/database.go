package database

import (
	"context"
	"embed"
	"fmt"
	"log"
	"time"

	"inventory/internal/config"
	"inventory/internal/models"

	"github.com/pressly/goose/v3"
	"github.com/sethvargo/go-retry"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// connectBackoff is the base delay between connection attempts.
var connectBackoff = 500 * time.Millisecond

// Open connects to the configured database, retrying with exponential
// backoff up to attempts times.
func Open(ctx context.Context, driver, dsn string, attempts int) (*gorm.DB, error) {
	dialector, err := dialectorFor(driver, dsn)
	if err != nil {
		return nil, err
	}
	if attempts < 1 {
		attempts = 1
	}

	gormConfig := &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	}

	var db *gorm.DB
	backoff := retry.WithMaxRetries(uint64(attempts-1), retry.NewExponential(connectBackoff))
	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		conn, err := gorm.Open(dialector, gormConfig)
		if err != nil {
			log.Printf("Database connection attempt failed: %v", err)
			return retry.RetryableError(err)
		}
		sqlDB, err := conn.DB()
		if err != nil {
			return err
		}
		if err := sqlDB.PingContext(ctx); err != nil {
			_ = sqlDB.Close()
			log.Printf("Database ping failed: %v", err)
			return retry.RetryableError(err)
		}
		db = conn
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

func dialectorFor(driver, dsn string) (gorm.Dialector, error) {
	switch driver {
	case config.DriverPostgres:
		return postgres.Open(dsn), nil
	case config.DriverSQLite:
		return sqlite.Open(dsn), nil
	}
	return nil, fmt.Errorf("unsupported database driver %q", driver)
}

// Migrate brings the schema up to date. PostgreSQL runs the embedded goose
// migrations; SQLite, used for development and tests, is auto-migrated from
// the models.
func Migrate(db *gorm.DB, driver string) error {
	switch driver {
	case config.DriverPostgres:
		sqlDB, err := db.DB()
		if err != nil {
			return fmt.Errorf("failed to get sql.DB: %w", err)
		}
		goose.SetBaseFS(migrationsFS)
		if err := goose.SetDialect("postgres"); err != nil {
			return fmt.Errorf("failed to set goose dialect: %w", err)
		}
		if err := goose.Up(sqlDB, "migrations"); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
	case config.DriverSQLite:
		if err := db.AutoMigrate(&models.User{}, &models.Category{}, &models.Product{}); err != nil {
			return fmt.Errorf("failed to auto-migrate database: %w", err)
		}
	default:
		return fmt.Errorf("unsupported database driver %q", driver)
	}
	log.Println("Database migrations completed")
	return nil
}

// Ping checks that the database is reachable.
func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
