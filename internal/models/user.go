package models

import "time"

// User represents a directory entry; experts assign tasks, students receive them.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Email     string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"size:255;not null" json:"-"`
	Role      string    `gorm:"size:32;not null;default:student" json:"role"`
	Avatar    string    `gorm:"size:512" json:"avatar"`
	Bio       string    `gorm:"size:500" json:"bio"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

const (
	// RoleStudent marks users that can receive and complete tasks.
	RoleStudent = "student"
	// RoleExpert marks users that can create, distribute and grade tasks.
	RoleExpert = "expert"
)
