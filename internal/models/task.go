package models

import (
	"time"

	"github.com/google/uuid"
)

type TaskStatus string

const (
	TaskStatusOpen       TaskStatus = "open"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusCompleted  TaskStatus = "completed"
	TaskStatusCancelled  TaskStatus = "cancelled"
)

// Categories a task can be posted under. The list is fixed; the frontend
// renders it as a select.
var TaskCategories = []string{
	"Video Editing",
	"Videography",
	"Photography",
	"Content Creation",
	"Social Media Management",
	"Graphic Design",
	"Copywriting",
	"Other",
}

func ValidTaskCategory(cat string) bool {
	for _, c := range TaskCategories {
		if c == cat {
			return true
		}
	}
	return false
}

type Task struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Title       string    `gorm:"not null" json:"title"`
	Description string    `gorm:"type:text;not null" json:"description"`
	Category    string    `gorm:"type:varchar(60);not null;index" json:"category"`
	Budget      int64     `gorm:"not null" json:"budget"`
	Location    string    `gorm:"type:varchar(120)" json:"location"`

	BusinessOwnerID uuid.UUID  `gorm:"type:uuid;not null;index" json:"business_owner_id"`
	Status          TaskStatus `gorm:"type:varchar(20);not null;default:'open';index" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Read-time enrichment, never written back.
	BusinessOwner *User `gorm:"foreignKey:BusinessOwnerID" json:"business_owner,omitempty"`
}
