package repository

import (
	"context"
	"errors"

	"tasktracker/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ProjectRepository struct {
	db *pgxpool.Pool
}

func NewProjectRepository(db *pgxpool.Pool) *ProjectRepository {
	return &ProjectRepository{db: db}
}

func (r *ProjectRepository) List(ctx context.Context) ([]*domain.Project, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, color, icon, created_at FROM projects ORDER BY id`)
	if err != nil {
		return nil, translate("list projects", err)
	}
	defer rows.Close()

	res := []*domain.Project{}
	for rows.Next() {
		var p domain.Project
		if err := rows.Scan(&p.ID, &p.Name, &p.Color, &p.Icon, &p.CreatedAt); err != nil {
			return nil, translate("scan project", err)
		}
		res = append(res, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, translate("list projects", err)
	}
	return res, nil
}

func (r *ProjectRepository) GetByID(ctx context.Context, id int64) (*domain.Project, error) {
	var p domain.Project
	err := r.db.QueryRow(ctx,
		`SELECT id, name, color, icon, created_at FROM projects WHERE id = $1`, id,
	).Scan(&p.ID, &p.Name, &p.Color, &p.Icon, &p.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.NotFound("project", id)
	}
	if err != nil {
		return nil, translate("get project", err)
	}
	return &p, nil
}

func (r *ProjectRepository) Create(ctx context.Context, p *domain.Project) error {
	err := r.db.QueryRow(ctx,
		`INSERT INTO projects (name, color, icon, created_at) VALUES ($1, $2, $3, $4) RETURNING id`,
		p.Name, p.Color, p.Icon, p.CreatedAt,
	).Scan(&p.ID)
	return translate("create project", err)
}

func (r *ProjectRepository) Update(ctx context.Context, p *domain.Project) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE projects SET name = $1, color = $2, icon = $3 WHERE id = $4`,
		p.Name, p.Color, p.Icon, p.ID,
	)
	if err != nil {
		return translate("update project", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("project", p.ID)
	}
	return nil
}

// Delete removes the project; the foreign key detaches its tasks (ON DELETE SET NULL)
func (r *ProjectRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return translate("delete project", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("project", id)
	}
	return nil
}
