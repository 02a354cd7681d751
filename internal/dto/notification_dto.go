package dto

import (
	"time"

	"github.com/noah-isme/mentora-go-api/internal/models"
)

// NotificationResponse is the serialized notification representation.
type NotificationResponse struct {
	ID        uint      `json:"id"`
	UserID    uint      `json:"user_id"`
	TaskID    uint      `json:"task_id"`
	ExpertID  uint      `json:"expert_id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Type      string    `json:"type"`
	Read      bool      `json:"read"`
	Priority  string    `json:"priority"`
	CreatedAt time.Time `json:"created_at"`
}

// NewNotificationResponse converts a model into a DTO.
func NewNotificationResponse(model models.Notification) NotificationResponse {
	return NotificationResponse{
		ID:        model.ID,
		UserID:    model.UserID,
		TaskID:    model.TaskID,
		ExpertID:  model.ExpertID,
		Title:     model.Title,
		Message:   model.Message,
		Type:      model.Type,
		Read:      model.Read,
		Priority:  model.Priority,
		CreatedAt: model.CreatedAt,
	}
}

// NewNotificationResponseSlice converts a slice of models into DTOs.
func NewNotificationResponseSlice(notifications []models.Notification) []NotificationResponse {
	responses := make([]NotificationResponse, 0, len(notifications))
	for _, notification := range notifications {
		responses = append(responses, NewNotificationResponse(notification))
	}

	return responses
}
