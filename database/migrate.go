package database

import (
	"context"
	"database/sql"
	"fmt"

	"gutly/database/migrations"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// Migrate applies the embedded SQL migrations.
func Migrate(ctx context.Context, db *gorm.DB, zl *zap.Logger) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database connection: %w", err)
	}
	return runMigrations(ctx, sqlDB, zl)
}

func runMigrations(ctx context.Context, sqlDB *sql.DB, zl *zap.Logger) error {
	zl.Info("running database migrations")

	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}
	if err := gooseUpContext(ctx, sqlDB, "."); err != nil {
		zl.Error("database migration failed", zap.Error(err))
		return fmt.Errorf("migrate: %w", err)
	}

	zl.Info("database migrations completed")
	return nil
}
