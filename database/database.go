package database

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"gutly/internal/config"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ErrNotConfigured is returned when no database settings are present. The
// server still starts; persistence routes report the store as unavailable.
var ErrNotConfigured = errors.New("database is not configured")

func Connect(cfg config.DatabaseConfig, environment string, zl *zap.Logger) (*gorm.DB, error) {
	if !cfg.Configured() {
		return nil, ErrNotConfigured
	}

	logLevel := logger.Warn
	if environment == "development" {
		logLevel = logger.Info
	}
	gormLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             500 * time.Millisecond,
			LogLevel:                  logLevel,
			Colorful:                  environment == "development",
			IgnoreRecordNotFoundError: true,
		},
	)

	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger:                 gormLogger,
		SkipDefaultTransaction: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database connection: %w", err)
	}

	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(time.Hour)
	sqlDB.SetConnMaxIdleTime(15 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	zl.Info("connected to database",
		zap.Int("max_open_conns", 25),
		zap.Int("max_idle_conns", 10),
	)
	return db, nil
}

// MonitorConnections logs pool pressure every interval until ctx is done.
func MonitorConnections(ctx context.Context, db *gorm.DB, interval time.Duration, zl *zap.Logger) {
	sqlDB, err := db.DB()
	if err != nil {
		zl.Warn("connection monitor disabled", zap.Error(err))
		return
	}
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				stats := sqlDB.Stats()
				if stats.MaxOpenConnections > 0 && stats.InUse*5 > stats.MaxOpenConnections*4 {
					zl.Warn("db connection pool under pressure",
						zap.Int("in_use", stats.InUse),
						zap.Int("idle", stats.Idle),
						zap.Int("open", stats.OpenConnections),
					)
				}
			}
		}
	}()
}
