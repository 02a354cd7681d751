package models

import (
	"time"

	"gorm.io/datatypes"
)

// Attachment is an opaque file reference produced by the upload store.
type Attachment struct {
	Filename string `json:"filename"`
	URL      string `json:"url"`
	FileType string `json:"file_type"`
}

// Task is a unit of work an expert defines and distributes to students.
// The assignee set is resolved once at creation time and never changes.
type Task struct {
	ID          uint                              `gorm:"primaryKey" json:"id"`
	Title       string                            `gorm:"size:255;not null" json:"title"`
	Description string                            `gorm:"type:text" json:"description"`
	DueDate     time.Time                         `gorm:"not null" json:"due_date"`
	Priority    string                            `gorm:"size:16;not null;default:medium" json:"priority"`
	Attachments datatypes.JSONSlice[Attachment]   `json:"attachments"`
	CreatedBy   uint                              `gorm:"index;not null" json:"created_by"`
	AssignedTo  datatypes.JSONSlice[uint]         `json:"assigned_to"`
	CreatedAt   time.Time                         `json:"created_at"`
	UpdatedAt   time.Time                         `json:"updated_at"`
	Creator     User                              `gorm:"foreignKey:CreatedBy" json:"creator"`
}

const (
	// PriorityLow marks tasks that can wait.
	PriorityLow = "low"
	// PriorityMedium is the default task priority.
	PriorityMedium = "medium"
	// PriorityHigh marks urgent tasks.
	PriorityHigh = "high"
)

// IsPastDue returns true when the task deadline has already passed.
func (t Task) IsPastDue(reference time.Time) bool {
	return reference.After(t.DueDate)
}
