package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/mentora-go-api/internal/models"
)

// TaskRepository defines persistence operations for tasks.
type TaskRepository interface {
	Create(ctx context.Context, task *models.Task) error
	GetByIDForCreator(ctx context.Context, id, expertID uint) (models.Task, error)
	ListByCreator(ctx context.Context, expertID uint) ([]models.Task, error)
	DeleteCascade(ctx context.Context, id, expertID uint) error
}

type taskRepository struct {
	db *gorm.DB
}

// NewTaskRepository instantiates a GORM-backed repository.
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &taskRepository{db: db}
}

func (r *taskRepository) Create(ctx context.Context, task *models.Task) error {
	return r.db.WithContext(ctx).Create(task).Error
}

func (r *taskRepository) GetByIDForCreator(ctx context.Context, id, expertID uint) (models.Task, error) {
	var task models.Task
	if err := r.db.WithContext(ctx).
		Preload("Creator").
		Where("id = ? AND created_by = ?", id, expertID).
		First(&task).Error; err != nil {
		return models.Task{}, err
	}
	return task, nil
}

func (r *taskRepository) ListByCreator(ctx context.Context, expertID uint) ([]models.Task, error) {
	var tasks []models.Task
	if err := r.db.WithContext(ctx).
		Where("created_by = ?", expertID).
		Order("created_at DESC").
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// DeleteCascade removes the task and everything keyed on it (assignments,
// submissions, notifications) in one transaction. Ownership is part of the
// delete predicate so a non-owner observes not-found.
func (r *taskRepository) DeleteCascade(ctx context.Context, id, expertID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id = ? AND created_by = ?", id, expertID).Delete(&models.Task{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		if err := tx.Where("task_id = ?", id).Delete(&models.TaskAssignment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("task_id = ?", id).Delete(&models.Submission{}).Error; err != nil {
			return err
		}
		return tx.Where("task_id = ?", id).Delete(&models.Notification{}).Error
	})
}
