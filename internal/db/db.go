// Package db establishes the document-store connection and runs schema
// migration. Retry policy for the initial connection lives here, at the
// store-client boundary; operations above this layer never retry.
package db

import (
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/hashicorp/go-hclog"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/signalytics/pokedex/internal/config"
	"github.com/signalytics/pokedex/pkg/models"
)

const connectMaxRetries = 5

// Connect opens the document store described by cfg. The initial connection
// is retried with capped exponential backoff so the service tolerates a
// store that is still starting up.
func Connect(cfg *config.Database, log hclog.Logger) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case "postgres":
		dialector = postgres.Open(cfg.DSN)
	case "sqlite":
		dialector = sqlite.Open(cfg.Path)
	default:
		return nil, fmt.Errorf("unsupported database driver: %q", cfg.Driver)
	}

	gormCfg := &gorm.Config{}
	if log != nil {
		gormCfg.Logger = NewGormLogger(log.Named("gorm"))
	}

	var db *gorm.DB
	connect := func() error {
		var err error
		db, err = gorm.Open(dialector, gormCfg)
		return err
	}
	bo := backoff.WithMaxRetries(backoff.NewExponentialBackOff(), connectMaxRetries)
	if err := backoff.Retry(connect, bo); err != nil {
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("error getting underlying SQL DB: %w", err)
	}
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if log != nil {
		log.Info("connected to database",
			"driver", cfg.Driver,
			"max_idle_conns", cfg.MaxIdleConns,
			"max_open_conns", cfg.MaxOpenConns,
		)
	}

	return db, nil
}

// Migrate brings the store schema up to date for all registered models.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(models.ModelsToAutoMigrate()...); err != nil {
		return fmt.Errorf("error migrating database: %w", err)
	}
	return nil
}
