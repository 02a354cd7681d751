package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/noah-isme/mentora-go-api/internal/models"
)

// AssignmentRepository defines persistence operations for the assignment ledger.
type AssignmentRepository interface {
	Create(ctx context.Context, assignment *models.TaskAssignment) error
	BulkCreate(ctx context.Context, taskID uint, studentIDs []uint) (int, error)
	GetByID(ctx context.Context, id uint) (models.TaskAssignment, error)
	GetByIDWithTask(ctx context.Context, id uint) (models.TaskAssignment, error)
	GetByTaskAndStudent(ctx context.Context, taskID, studentID uint) (models.TaskAssignment, error)
	ListByStudent(ctx context.Context, studentID uint) ([]models.TaskAssignment, error)
	ListByTask(ctx context.Context, taskID uint) ([]models.TaskAssignment, error)
	ListByTaskIDs(ctx context.Context, taskIDs []uint) ([]models.TaskAssignment, error)
	Update(ctx context.Context, assignment *models.TaskAssignment) error
	Grade(ctx context.Context, assignment *models.TaskAssignment, submission *models.Submission) error
}

type assignmentRepository struct {
	db *gorm.DB
}

// NewAssignmentRepository instantiates a GORM-backed repository.
func NewAssignmentRepository(db *gorm.DB) AssignmentRepository {
	return &assignmentRepository{db: db}
}

// Create inserts a single ledger row. A duplicate (task, student) pair is
// rejected by the unique index and surfaces as gorm.ErrDuplicatedKey.
func (r *assignmentRepository) Create(ctx context.Context, assignment *models.TaskAssignment) error {
	return r.db.WithContext(ctx).Create(assignment).Error
}

// BulkCreate inserts one Pending row per student and reports how many rows
// were actually written. Pairs that already exist are skipped at the storage
// layer, which keeps fan-out retries idempotent.
func (r *assignmentRepository) BulkCreate(ctx context.Context, taskID uint, studentIDs []uint) (int, error) {
	if len(studentIDs) == 0 {
		return 0, nil
	}

	assignments := make([]models.TaskAssignment, 0, len(studentIDs))
	for _, studentID := range studentIDs {
		assignments = append(assignments, models.TaskAssignment{
			TaskID:    taskID,
			StudentID: studentID,
			Status:    models.AssignmentStatusPending,
		})
	}

	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "task_id"}, {Name: "student_id"}},
			DoNothing: true,
		}).
		Create(&assignments)
	if result.Error != nil {
		return 0, result.Error
	}

	return int(result.RowsAffected), nil
}

func (r *assignmentRepository) GetByID(ctx context.Context, id uint) (models.TaskAssignment, error) {
	var assignment models.TaskAssignment
	if err := r.db.WithContext(ctx).First(&assignment, id).Error; err != nil {
		return models.TaskAssignment{}, err
	}
	return assignment, nil
}

func (r *assignmentRepository) GetByIDWithTask(ctx context.Context, id uint) (models.TaskAssignment, error) {
	var assignment models.TaskAssignment
	if err := r.db.WithContext(ctx).
		Preload("Task").
		Preload("Submission").
		First(&assignment, id).Error; err != nil {
		return models.TaskAssignment{}, err
	}
	return assignment, nil
}

func (r *assignmentRepository) GetByTaskAndStudent(ctx context.Context, taskID, studentID uint) (models.TaskAssignment, error) {
	var assignment models.TaskAssignment
	if err := r.db.WithContext(ctx).
		Where("task_id = ? AND student_id = ?", taskID, studentID).
		First(&assignment).Error; err != nil {
		return models.TaskAssignment{}, err
	}
	return assignment, nil
}

func (r *assignmentRepository) ListByStudent(ctx context.Context, studentID uint) ([]models.TaskAssignment, error) {
	var assignments []models.TaskAssignment
	if err := r.db.WithContext(ctx).
		Preload("Task").
		Preload("Task.Creator").
		Preload("Submission").
		Where("student_id = ?", studentID).
		Order("created_at DESC").
		Find(&assignments).Error; err != nil {
		return nil, err
	}
	return assignments, nil
}

func (r *assignmentRepository) ListByTask(ctx context.Context, taskID uint) ([]models.TaskAssignment, error) {
	var assignments []models.TaskAssignment
	if err := r.db.WithContext(ctx).
		Preload("Student").
		Preload("Submission").
		Where("task_id = ?", taskID).
		Order("created_at DESC").
		Find(&assignments).Error; err != nil {
		return nil, err
	}
	return assignments, nil
}

func (r *assignmentRepository) ListByTaskIDs(ctx context.Context, taskIDs []uint) ([]models.TaskAssignment, error) {
	if len(taskIDs) == 0 {
		return []models.TaskAssignment{}, nil
	}

	var assignments []models.TaskAssignment
	if err := r.db.WithContext(ctx).
		Preload("Student").
		Where("task_id IN ?", taskIDs).
		Find(&assignments).Error; err != nil {
		return nil, err
	}
	return assignments, nil
}

func (r *assignmentRepository) Update(ctx context.Context, assignment *models.TaskAssignment) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(assignment).Error
}

// Grade writes the assignment and, when present, its linked submission in a
// single transaction so a grading update is never half applied.
func (r *assignmentRepository) Grade(ctx context.Context, assignment *models.TaskAssignment, submission *models.Submission) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(assignment).Error; err != nil {
			return err
		}
		if submission != nil {
			return tx.Save(submission).Error
		}
		return nil
	})
}
