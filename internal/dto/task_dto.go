package dto

import (
	"time"

	"github.com/noah-isme/mentora-go-api/internal/models"
)

// AttachmentPayload mirrors the opaque triple returned by the upload store.
type AttachmentPayload struct {
	Filename string `json:"filename" validate:"required"`
	URL      string `json:"url" validate:"required,url"`
	FileType string `json:"file_type"`
}

// AssigneeSpec selects the target students either by id or by display name.
// Exactly one arm must be populated; the ambiguity is resolved by the caller,
// never sniffed from the payload contents.
type AssigneeSpec struct {
	IDs   []uint   `json:"ids" validate:"omitempty,min=1,dive,gt=0"`
	Names []string `json:"names" validate:"omitempty,min=1,dive,min=1"`
}

// Empty reports whether neither arm carries a value.
func (s AssigneeSpec) Empty() bool {
	return len(s.IDs) == 0 && len(s.Names) == 0
}

// Ambiguous reports whether both arms carry values.
func (s AssigneeSpec) Ambiguous() bool {
	return len(s.IDs) > 0 && len(s.Names) > 0
}

// TaskCreateRequest describes the payload for assigning a new task.
type TaskCreateRequest struct {
	Title       string              `json:"title" validate:"required,min=3"`
	Description string              `json:"description"`
	DueDate     string              `json:"due_date" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
	Priority    string              `json:"priority" validate:"omitempty,oneof=low medium high"`
	Attachments []AttachmentPayload `json:"attachments" validate:"omitempty,dive"`
	Students    AssigneeSpec        `json:"students"`
}

// TaskResponse is the serialized task representation.
type TaskResponse struct {
	ID          uint                `json:"id"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	DueDate     time.Time           `json:"due_date"`
	Priority    string              `json:"priority"`
	Attachments []AttachmentPayload `json:"attachments"`
	CreatedBy   uint                `json:"created_by"`
	AssignedTo  []uint              `json:"assigned_to"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

// TaskWithProgressResponse annotates a task with its recomputed progress summary.
type TaskWithProgressResponse struct {
	TaskResponse
	Progress TaskProgress `json:"progress"`
}

// TaskDetailsResponse bundles a task with its roster and detailed analytics.
type TaskDetailsResponse struct {
	Task        TaskResponse         `json:"task"`
	Assignments []AssignmentResponse `json:"assignments"`
	Analytics   TaskAnalytics        `json:"analytics"`
}

// NewTaskResponse converts a model into a DTO.
func NewTaskResponse(model models.Task) TaskResponse {
	attachments := make([]AttachmentPayload, 0, len(model.Attachments))
	for _, attachment := range model.Attachments {
		attachments = append(attachments, AttachmentPayload{
			Filename: attachment.Filename,
			URL:      attachment.URL,
			FileType: attachment.FileType,
		})
	}

	return TaskResponse{
		ID:          model.ID,
		Title:       model.Title,
		Description: model.Description,
		DueDate:     model.DueDate,
		Priority:    model.Priority,
		Attachments: attachments,
		CreatedBy:   model.CreatedBy,
		AssignedTo:  append([]uint(nil), model.AssignedTo...),
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	}
}
