package local

import (
	"context"
	"errors"

	"tasktracker/internal/domain"

	"gorm.io/gorm"
)

type AchievementRepository struct {
	db *gorm.DB
}

func NewAchievementRepository(db *gorm.DB) *AchievementRepository {
	return &AchievementRepository{db: db}
}

// List returns achievements, most recently earned first
func (r *AchievementRepository) List(ctx context.Context, q domain.AchievementQuery) ([]*domain.Achievement, error) {
	tx := r.db.WithContext(ctx).Model(&achievementModel{})
	if q.Type != "" {
		tx = tx.Where("type = ?", string(q.Type))
	}
	tx = tx.Order("earned_at DESC").Order("id DESC")
	if q.Limit > 0 {
		tx = tx.Limit(q.Limit)
	}

	var rows []achievementModel
	if err := tx.Find(&rows).Error; err != nil {
		return nil, translate("list achievements", err)
	}
	res := make([]*domain.Achievement, 0, len(rows))
	for i := range rows {
		res = append(res, rows[i].toDomain())
	}
	return res, nil
}

func (r *AchievementRepository) GetByID(ctx context.Context, id int64) (*domain.Achievement, error) {
	var m achievementModel
	err := r.db.WithContext(ctx).First(&m, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.NotFound("achievement", id)
	}
	if err != nil {
		return nil, translate("get achievement", err)
	}
	return m.toDomain(), nil
}

func (r *AchievementRepository) Create(ctx context.Context, a *domain.Achievement) error {
	m := newAchievementModel(a)
	m.ID = 0
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return translate("create achievement", err)
	}
	a.ID = m.ID
	return nil
}
