package dto

// GradeRequest describes the expert-facing grading payload. The score is
// clamped to [0,100] at validation time; the storage layer never sees an
// out-of-range value.
type GradeRequest struct {
	Score    *int   `json:"score" validate:"required,min=0,max=100"`
	Feedback string `json:"feedback" validate:"omitempty,max=2000"`
}
