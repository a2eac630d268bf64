package repository

import (
	"context"
	"errors"
	"fmt"

	"tasktracker/internal/domain"

	"github.com/jackc/pgx/v5/pgconn"
)

// PostgreSQL error codes we translate
const (
	pgForeignKeyViolation = "23503"
	pgUniqueViolation     = "23505"
	pgCheckViolation      = "23514"
	pgNotNullViolation    = "23502"
)

// checkFields maps constraint names to the API field they guard
var checkFields = map[string]string{
	"tasks_title_check":               "title",
	"tasks_priority_check":            "priority",
	"tasks_completed_at_check":        "completedAt",
	"tasks_project_id_fkey":           "projectId",
	"projects_name_check":             "name",
	"achievements_type_milestone_key": "milestone",
}

// translate maps driver errors onto the domain taxonomy. Context errors pass
// through so callers can tell cancellation from failure.
func translate(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		field := checkFields[pgErr.ConstraintName]
		if field == "" {
			field = pgErr.ColumnName
		}
		switch pgErr.Code {
		case pgUniqueViolation:
			return fmt.Errorf("%s: %w", op, domain.ErrConflict)
		case pgForeignKeyViolation:
			return domain.Invalid(field, "referenced record does not exist")
		case pgCheckViolation, pgNotNullViolation:
			return domain.Invalid(field, "violates constraint "+pgErr.ConstraintName)
		}
	}
	return domain.Unavailable(op, err)
}
