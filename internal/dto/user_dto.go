package dto

import "github.com/noah-isme/mentora-go-api/internal/models"

// StudentResponse is the directory projection exposed for roster selection.
type StudentResponse struct {
	ID     uint   `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Avatar string `json:"avatar"`
}

// NewStudentResponse converts a user model into the student projection.
func NewStudentResponse(model models.User) StudentResponse {
	return StudentResponse{
		ID:     model.ID,
		Name:   model.Name,
		Email:  model.Email,
		Avatar: model.Avatar,
	}
}

// NewStudentResponseSlice converts a slice of users into student projections.
func NewStudentResponseSlice(users []models.User) []StudentResponse {
	responses := make([]StudentResponse, 0, len(users))
	for _, user := range users {
		responses = append(responses, NewStudentResponse(user))
	}

	return responses
}
