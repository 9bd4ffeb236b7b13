package database

import (
	"context"
	"embed"
	"fmt"

	"go-jobboard-backend/pkg/logger"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

const migrationsDir = "migrations"

// gooseLogger forwards goose output to the application logger
type gooseLogger struct{}

func (gooseLogger) Printf(format string, v ...interface{}) {
	logger.Log.Info(fmt.Sprintf(format, v...), "component", "migrations")
}

// Fatalf does not exit; Migrate returns the error instead
func (gooseLogger) Fatalf(format string, v ...interface{}) {
	logger.Log.Error(fmt.Sprintf(format, v...), "component", "migrations")
}

func configureGoose() error {
	goose.SetBaseFS(migrationsFS)
	goose.SetLogger(gooseLogger{})
	return goose.SetDialect("pgx")
}

// Migrate applies all pending embedded migrations through the pool.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	if err := configureGoose(); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}

	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	if err := goose.UpContext(ctx, db, migrationsDir); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}
