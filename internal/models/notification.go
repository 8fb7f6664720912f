package models

import (
	"time"

	"github.com/google/uuid"
)

type NotificationType string

const (
	NotificationNewTask             NotificationType = "new_task"
	NotificationApplicationReceived NotificationType = "application_received"
	NotificationApplicationAccepted NotificationType = "application_accepted"
	NotificationApplicationRejected NotificationType = "application_rejected"
)

type Notification struct {
	ID     uuid.UUID        `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID uuid.UUID        `gorm:"type:uuid;not null;index" json:"user_id"`
	Type   NotificationType `gorm:"type:varchar(40);not null" json:"type"`

	Title   string     `gorm:"not null" json:"title"`
	Message string     `gorm:"type:text" json:"message"`
	TaskID  *uuid.UUID `gorm:"type:uuid;index" json:"task_id,omitempty"`

	Read      bool      `gorm:"default:false;index" json:"read"`
	CreatedAt time.Time `json:"created_at"`
}
