package dto

import (
	"time"

	"github.com/noah-isme/mentora-go-api/internal/models"
)

// SubmissionPayload carries the answer text handed in on completion.
type SubmissionPayload struct {
	Answer string `json:"answer" validate:"required,min=1"`
}

// StatusUpdateRequest describes a student-facing status transition.
type StatusUpdateRequest struct {
	Status         string             `json:"status" validate:"required"`
	SubmissionData *SubmissionPayload `json:"submission_data" validate:"omitempty"`
}

// SubmissionResponse is the serialized submission representation.
type SubmissionResponse struct {
	ID        uint      `json:"id"`
	TaskID    uint      `json:"task_id"`
	StudentID uint      `json:"student_id"`
	Answer    string    `json:"answer"`
	Status    string    `json:"status"`
	Marks     *int      `json:"marks"`
	Feedback  string    `json:"feedback"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AssignmentResponse is the serialized per-student tracking row.
type AssignmentResponse struct {
	ID           uint                `json:"id"`
	TaskID       uint                `json:"task_id"`
	StudentID    uint                `json:"student_id"`
	Status       string              `json:"status"`
	SubmittedAt  *time.Time          `json:"submitted_at"`
	CompletedAt  *time.Time          `json:"completed_at"`
	Score        *int                `json:"score"`
	Feedback     string              `json:"feedback"`
	SubmissionID *uint               `json:"submission_id"`
	CreatedAt    time.Time           `json:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at"`
	Task         *TaskResponse       `json:"task,omitempty"`
	Student      *StudentResponse    `json:"student,omitempty"`
	Submission   *SubmissionResponse `json:"submission,omitempty"`
}

// NewSubmissionResponse converts a model into a DTO.
func NewSubmissionResponse(model models.Submission) SubmissionResponse {
	return SubmissionResponse{
		ID:        model.ID,
		TaskID:    model.TaskID,
		StudentID: model.StudentID,
		Answer:    model.Answer,
		Status:    model.Status,
		Marks:     model.Marks,
		Feedback:  model.Feedback,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}

// NewAssignmentResponse converts a model into a DTO, including whichever
// associations the caller preloaded.
func NewAssignmentResponse(model models.TaskAssignment) AssignmentResponse {
	response := AssignmentResponse{
		ID:           model.ID,
		TaskID:       model.TaskID,
		StudentID:    model.StudentID,
		Status:       model.Status,
		SubmittedAt:  model.SubmittedAt,
		CompletedAt:  model.CompletedAt,
		Score:        model.Score,
		Feedback:     model.Feedback,
		SubmissionID: model.SubmissionID,
		CreatedAt:    model.CreatedAt,
		UpdatedAt:    model.UpdatedAt,
	}

	if model.Task.ID != 0 {
		task := NewTaskResponse(model.Task)
		response.Task = &task
	}
	if model.Student.ID != 0 {
		student := NewStudentResponse(model.Student)
		response.Student = &student
	}
	if model.Submission != nil && model.Submission.ID != 0 {
		submission := NewSubmissionResponse(*model.Submission)
		response.Submission = &submission
	}

	return response
}

// NewAssignmentResponseSlice converts a slice of models into DTOs.
func NewAssignmentResponseSlice(assignments []models.TaskAssignment) []AssignmentResponse {
	responses := make([]AssignmentResponse, 0, len(assignments))
	for _, assignment := range assignments {
		responses = append(responses, NewAssignmentResponse(assignment))
	}

	return responses
}
