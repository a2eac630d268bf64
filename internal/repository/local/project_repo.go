package local

import (
	"context"
	"errors"

	"tasktracker/internal/domain"

	"gorm.io/gorm"
)

type ProjectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

func (r *ProjectRepository) List(ctx context.Context) ([]*domain.Project, error) {
	var rows []projectModel
	if err := r.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, translate("list projects", err)
	}
	res := make([]*domain.Project, 0, len(rows))
	for i := range rows {
		res = append(res, rows[i].toDomain())
	}
	return res, nil
}

func (r *ProjectRepository) GetByID(ctx context.Context, id int64) (*domain.Project, error) {
	var m projectModel
	err := r.db.WithContext(ctx).First(&m, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.NotFound("project", id)
	}
	if err != nil {
		return nil, translate("get project", err)
	}
	return m.toDomain(), nil
}

func (r *ProjectRepository) Create(ctx context.Context, p *domain.Project) error {
	m := newProjectModel(p)
	m.ID = 0
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return translate("create project", err)
	}
	p.ID = m.ID
	return nil
}

func (r *ProjectRepository) Update(ctx context.Context, p *domain.Project) error {
	m := newProjectModel(p)
	res := r.db.WithContext(ctx).Model(&projectModel{ID: p.ID}).Select("name", "color", "icon").Updates(&m)
	if res.Error != nil {
		return translate("update project", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.NotFound("project", p.ID)
	}
	return nil
}

// Delete removes the project and detaches its tasks (project_id set to NULL)
func (r *ProjectRepository) Delete(ctx context.Context, id int64) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&taskModel{}).Where("project_id = ?", id).Update("project_id", nil).Error; err != nil {
			return err
		}
		res := tx.Delete(&projectModel{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.NotFound("project", id)
		}
		return nil
	})
	if errors.Is(err, domain.ErrNotFound) {
		return err
	}
	return translate("delete project", err)
}
