package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"taskboard/internal/model"
)

// TaskRepository defines task persistence operations. Every targeted read and
// write matches on both task id and owner id in a single predicate, so a
// non-owner cannot tell an existing task from a missing one.
type TaskRepository interface {
	Create(ctx context.Context, task *model.Task) error
	FindOwned(ctx context.Context, id, ownerID uuid.UUID) (*model.Task, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID, status model.TaskStatus) ([]model.Task, error)
	UpdateOwned(ctx context.Context, id, ownerID uuid.UUID, values map[string]interface{}) (int64, error)
	DeleteOwned(ctx context.Context, id, ownerID uuid.UUID) (int64, error)
}

type taskRepository struct {
	db *gorm.DB
}

// NewTaskRepository builds a GORM-backed repository.
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &taskRepository{db: db}
}

func (r *taskRepository) Create(ctx context.Context, task *model.Task) error {
	return r.db.WithContext(ctx).Create(task).Error
}

func (r *taskRepository) FindOwned(ctx context.Context, id, ownerID uuid.UUID) (*model.Task, error) {
	var task model.Task
	if err := r.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", id, ownerID).
		First(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// ListByOwner returns the owner's tasks, optionally filtered by exact status.
// Ordering is whatever the store returns; no sort is applied.
func (r *taskRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID, status model.TaskStatus) ([]model.Task, error) {
	q := r.db.WithContext(ctx).Where("owner_id = ?", ownerID)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var tasks []model.Task
	if err := q.Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// UpdateOwned applies the column map to the task matching (id, owner) and
// reports how many rows matched. Zero rows means no such task for this owner.
func (r *taskRepository) UpdateOwned(ctx context.Context, id, ownerID uuid.UUID, values map[string]interface{}) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Updates(values)
	return res.RowsAffected, res.Error
}

// DeleteOwned removes the task matching (id, owner) and reports how many rows
// matched.
func (r *taskRepository) DeleteOwned(ctx context.Context, id, ownerID uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Delete(&model.Task{})
	return res.RowsAffected, res.Error
}
