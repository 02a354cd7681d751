package models

import "time"

// Submission holds the answer a student authored for a task, together with
// the review metadata the grading flow writes back.
type Submission struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	TaskID    uint      `gorm:"index;not null" json:"task_id"`
	StudentID uint      `gorm:"index;not null" json:"student_id"`
	Answer    string    `gorm:"type:text" json:"answer"`
	Status    string    `gorm:"size:32;not null;default:pending" json:"status"`
	Marks     *int      `json:"marks"`
	Feedback  string    `gorm:"type:text" json:"feedback"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

const (
	// SubmissionStatusPending indicates the submission row exists but holds no final answer.
	SubmissionStatusPending = "pending"
	// SubmissionStatusSubmitted indicates the answer has been handed in.
	SubmissionStatusSubmitted = "submitted"
	// SubmissionStatusReviewed indicates an expert graded the submission.
	SubmissionStatusReviewed = "reviewed"
)

// IsReviewed reports whether the submission has been graded.
func (s Submission) IsReviewed() bool {
	return s.Status == SubmissionStatusReviewed
}
