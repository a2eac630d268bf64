// Package local is the single-user record store on SQLite through gorm.
// It satisfies the same store contract as the PostgreSQL repositories.
package local

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"tasktracker/internal/domain"
	"tasktracker/internal/logger"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Open opens (creating if needed) the SQLite database at path and migrates
// the schema. Use ":memory:" for a throwaway database.
func Open(path string) (*gorm.DB, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// SQLite has a single writer; one connection also keeps :memory: alive.
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&taskModel{}, &projectModel{}, &achievementModel{}); err != nil {
		return nil, fmt.Errorf("migrate sqlite: %w", err)
	}

	logger.Info("database connected", "driver", "sqlite", "path", path)
	return db, nil
}

// Close closes the underlying connection
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// translate maps gorm errors onto the domain taxonomy. Context errors pass
// through untouched so callers can tell cancellation from failure.
func translate(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%s: %w", op, domain.ErrConflict)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return domain.Invalid("projectId", "project does not exist")
	}
	return domain.Unavailable(op, err)
}
