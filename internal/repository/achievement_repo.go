package repository

import (
	"context"
	"errors"
	"strconv"

	"tasktracker/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AchievementRepository struct {
	db *pgxpool.Pool
}

func NewAchievementRepository(db *pgxpool.Pool) *AchievementRepository {
	return &AchievementRepository{db: db}
}

// List returns achievements, most recently earned first
func (r *AchievementRepository) List(ctx context.Context, q domain.AchievementQuery) ([]*domain.Achievement, error) {
	sql := `SELECT id, type, COALESCE(milestone, 0), message, earned_at FROM achievements`
	var args []any
	if q.Type != "" {
		args = append(args, string(q.Type))
		sql += ` WHERE type = $1`
	}
	sql += ` ORDER BY earned_at DESC, id DESC`
	if q.Limit > 0 {
		args = append(args, q.Limit)
		sql += ` LIMIT $` + strconv.Itoa(len(args))
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, translate("list achievements", err)
	}
	defer rows.Close()

	res := []*domain.Achievement{}
	for rows.Next() {
		a, err := scanAchievement(rows)
		if err != nil {
			return nil, translate("scan achievement", err)
		}
		res = append(res, a)
	}
	if err := rows.Err(); err != nil {
		return nil, translate("list achievements", err)
	}
	return res, nil
}

func (r *AchievementRepository) GetByID(ctx context.Context, id int64) (*domain.Achievement, error) {
	a, err := scanAchievement(r.db.QueryRow(ctx,
		`SELECT id, type, COALESCE(milestone, 0), message, earned_at FROM achievements WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.NotFound("achievement", id)
	}
	if err != nil {
		return nil, translate("get achievement", err)
	}
	return a, nil
}

// Create inserts an achievement. A second award for the same (type, milestone)
// fails with domain.ErrConflict.
func (r *AchievementRepository) Create(ctx context.Context, a *domain.Achievement) error {
	var milestone *int
	if a.Milestone != 0 {
		m := a.Milestone
		milestone = &m
	}
	err := r.db.QueryRow(ctx,
		`INSERT INTO achievements (type, milestone, message, earned_at) VALUES ($1, $2, $3, $4) RETURNING id`,
		string(a.Type), milestone, a.Message, a.EarnedAt,
	).Scan(&a.ID)
	return translate("create achievement", err)
}

func scanAchievement(row pgx.Row) (*domain.Achievement, error) {
	var (
		a   domain.Achievement
		typ string
	)
	if err := row.Scan(&a.ID, &typ, &a.Milestone, &a.Message, &a.EarnedAt); err != nil {
		return nil, err
	}
	a.Type = domain.AchievementType(typ)
	return &a, nil
}
