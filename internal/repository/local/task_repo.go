package local

import (
	"context"
	"errors"

	"tasktracker/internal/domain"

	"gorm.io/gorm"
)

type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) List(ctx context.Context, q domain.TaskQuery) ([]*domain.Task, error) {
	tx := r.db.WithContext(ctx).Model(&taskModel{})
	if q.Completed != nil {
		tx = tx.Where("completed = ?", *q.Completed)
	}
	if q.ProjectID != nil {
		tx = tx.Where("project_id = ?", *q.ProjectID)
	}
	if q.DueFrom != nil {
		tx = tx.Where("due_date >= ?", q.DueFrom.UTC())
	}
	if q.DueBefore != nil {
		tx = tx.Where("due_date < ?", q.DueBefore.UTC())
	}
	switch q.Sort {
	case domain.SortCompletedDesc:
		tx = tx.Order("completed_at DESC").Order("id")
	default:
		tx = tx.Order("id")
	}
	if q.Limit > 0 {
		tx = tx.Limit(q.Limit)
	}
	if q.Offset > 0 {
		tx = tx.Offset(q.Offset)
	}

	var rows []taskModel
	if err := tx.Find(&rows).Error; err != nil {
		return nil, translate("list tasks", err)
	}
	res := make([]*domain.Task, 0, len(rows))
	for i := range rows {
		res = append(res, rows[i].toDomain())
	}
	return res, nil
}

func (r *TaskRepository) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	var m taskModel
	err := r.db.WithContext(ctx).First(&m, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.NotFound("task", id)
	}
	if err != nil {
		return nil, translate("get task", err)
	}
	return m.toDomain(), nil
}

func (r *TaskRepository) Create(ctx context.Context, t *domain.Task) error {
	m := newTaskModel(t)
	m.ID = 0
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return translate("create task", err)
	}
	t.ID = m.ID
	return nil
}

// Update overwrites every column of an existing task
func (r *TaskRepository) Update(ctx context.Context, t *domain.Task) error {
	m := newTaskModel(t)
	res := r.db.WithContext(ctx).Model(&taskModel{ID: t.ID}).Select("*").Omit("id", "created_at").Updates(&m)
	if res.Error != nil {
		return translate("update task", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.NotFound("task", t.ID)
	}
	return nil
}

func (r *TaskRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&taskModel{}, id)
	if res.Error != nil {
		return translate("delete task", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.NotFound("task", id)
	}
	return nil
}
