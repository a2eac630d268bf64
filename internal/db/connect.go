package db

import (
	"context"
	"fmt"

	"tasktracker/internal/logger"
	"tasktracker/internal/migrations"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Open creates a pool and checks the connection
func Open(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	db, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("create database pool: %w", err)
	}

	if err := db.Ping(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	logger.Info("database connected", "driver", "postgres")
	return db, nil
}

// Migrate applies every embedded migration in order. The schema files are
// idempotent so re-running is safe. onApplied is called after each file.
func Migrate(ctx context.Context, db *pgxpool.Pool, onApplied func(name string)) error {
	all, err := migrations.All()
	if err != nil {
		return fmt.Errorf("read migrations: %w", err)
	}
	for _, m := range all {
		if _, err := db.Exec(ctx, m.SQL); err != nil {
			return fmt.Errorf("apply %s: %w", m.Name, err)
		}
		if onApplied != nil {
			onApplied(m.Name)
		}
	}
	return nil
}
