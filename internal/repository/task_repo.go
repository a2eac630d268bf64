package repository

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"tasktracker/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const taskColumns = `id, title, description, due_date, priority, project_id, completed, created_at, completed_at`

type TaskRepository struct {
	db *pgxpool.Pool
}

func NewTaskRepository(db *pgxpool.Pool) *TaskRepository {
	return &TaskRepository{db: db}
}

// List returns tasks matching q
func (r *TaskRepository) List(ctx context.Context, q domain.TaskQuery) ([]*domain.Task, error) {
	var (
		where []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}

	if q.Completed != nil {
		where = append(where, "completed = "+arg(*q.Completed))
	}
	if q.ProjectID != nil {
		where = append(where, "project_id = "+arg(*q.ProjectID))
	}
	if q.DueFrom != nil {
		where = append(where, "due_date >= "+arg(*q.DueFrom))
	}
	if q.DueBefore != nil {
		where = append(where, "due_date < "+arg(*q.DueBefore))
	}

	sql := `SELECT ` + taskColumns + ` FROM tasks`
	if len(where) > 0 {
		sql += ` WHERE ` + strings.Join(where, " AND ")
	}
	switch q.Sort {
	case domain.SortCompletedDesc:
		sql += ` ORDER BY completed_at DESC NULLS LAST, id`
	default:
		sql += ` ORDER BY id`
	}
	if q.Limit > 0 {
		sql += ` LIMIT ` + arg(q.Limit)
	}
	if q.Offset > 0 {
		sql += ` OFFSET ` + arg(q.Offset)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, translate("list tasks", err)
	}
	defer rows.Close()

	res := []*domain.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, translate("scan task", err)
		}
		res = append(res, t)
	}
	if err := rows.Err(); err != nil {
		return nil, translate("list tasks", err)
	}
	return res, nil
}

func (r *TaskRepository) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	t, err := scanTask(r.db.QueryRow(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.NotFound("task", id)
	}
	if err != nil {
		return nil, translate("get task", err)
	}
	return t, nil
}

func (r *TaskRepository) Create(ctx context.Context, t *domain.Task) error {
	err := r.db.QueryRow(ctx,
		`INSERT INTO tasks (title, description, due_date, priority, project_id, completed, created_at, completed_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id`,
		t.Title, t.Description, t.DueDate, string(t.Priority), t.ProjectID, t.Completed, t.CreatedAt, t.CompletedAt,
	).Scan(&t.ID)
	return translate("create task", err)
}

// Update overwrites the mutable columns of an existing task
func (r *TaskRepository) Update(ctx context.Context, t *domain.Task) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE tasks
		 SET title = $1, description = $2, due_date = $3, priority = $4,
		     project_id = $5, completed = $6, completed_at = $7
		 WHERE id = $8`,
		t.Title, t.Description, t.DueDate, string(t.Priority), t.ProjectID, t.Completed, t.CompletedAt, t.ID,
	)
	if err != nil {
		return translate("update task", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("task", t.ID)
	}
	return nil
}

func (r *TaskRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return translate("delete task", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("task", id)
	}
	return nil
}

func scanTask(row pgx.Row) (*domain.Task, error) {
	var (
		t        domain.Task
		priority string
	)
	if err := row.Scan(&t.ID, &t.Title, &t.Description, &t.DueDate, &priority,
		&t.ProjectID, &t.Completed, &t.CreatedAt, &t.CompletedAt); err != nil {
		return nil, err
	}
	t.Priority = domain.Priority(priority)
	return &t, nil
}
