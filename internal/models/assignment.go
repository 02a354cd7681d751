package models

import "time"

// TaskAssignment is the per-student tracking row for one task. The
// (task_id, student_id) pair is unique at the storage layer; concurrent
// duplicate inserts are rejected there, never merged in application code.
type TaskAssignment struct {
	ID           uint        `gorm:"primaryKey" json:"id"`
	TaskID       uint        `gorm:"uniqueIndex:idx_task_student;not null" json:"task_id"`
	StudentID    uint        `gorm:"uniqueIndex:idx_task_student;not null" json:"student_id"`
	Status       string      `gorm:"size:32;not null;default:Pending" json:"status"`
	SubmittedAt  *time.Time  `json:"submitted_at"`
	CompletedAt  *time.Time  `json:"completed_at"`
	Score        *int        `json:"score"`
	Feedback     string      `gorm:"type:text" json:"feedback"`
	SubmissionID *uint       `json:"submission_id"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
	Task         Task        `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"task"`
	Student      User        `gorm:"foreignKey:StudentID" json:"student"`
	Submission   *Submission `json:"submission"`
}

const (
	// AssignmentStatusPending is the initial state of every assignment.
	AssignmentStatusPending = "Pending"
	// AssignmentStatusInProgress marks work the student has started.
	AssignmentStatusInProgress = "In Progress"
	// AssignmentStatusCompleted marks submitted work; it is terminal.
	AssignmentStatusCompleted = "Completed"
)

// IsCompleted reports whether the assignment reached its terminal state.
func (a TaskAssignment) IsCompleted() bool {
	return a.Status == AssignmentStatusCompleted
}
