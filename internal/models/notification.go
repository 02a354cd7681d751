package models

import "time"

// Notification is a per-user message created when a task is fanned out.
type Notification struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index:idx_notif_user;index:idx_notif_user_read;not null" json:"user_id"`
	TaskID    uint      `gorm:"index;not null" json:"task_id"`
	ExpertID  uint      `gorm:"not null" json:"expert_id"`
	Title     string    `gorm:"size:255;not null" json:"title"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	Type      string    `gorm:"size:64;not null;default:task_assigned" json:"type"`
	Read      bool      `gorm:"index:idx_notif_user_read;not null;default:false" json:"read"`
	Priority  string    `gorm:"size:16;not null;default:medium" json:"priority"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

const (
	// NotificationTypeTaskAssigned is emitted once per assignee at fan-out time.
	NotificationTypeTaskAssigned = "task_assigned"
	// NotificationTypeTaskDueSoon is reserved for deadline reminders.
	NotificationTypeTaskDueSoon = "task_due_soon"
	// NotificationTypeTaskOverdue is reserved for overdue alerts.
	NotificationTypeTaskOverdue = "task_overdue"
	// NotificationTypeFeedback is reserved for grading feedback alerts.
	NotificationTypeFeedback = "feedback_received"
)
