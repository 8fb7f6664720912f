package models

import (
	"time"

	"github.com/google/uuid"
)

type ApplicationStatus string

const (
	ApplicationStatusPending  ApplicationStatus = "pending"
	ApplicationStatusAccepted ApplicationStatus = "accepted"
	ApplicationStatusRejected ApplicationStatus = "rejected"
)

// MinProposalLen is enforced at submission time.
const MinProposalLen = 20

type Application struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	TaskID       uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_task_freelancer" json:"task_id"`
	FreelancerID uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_task_freelancer" json:"freelancer_id"`

	Proposal      string            `gorm:"type:text;not null" json:"proposal"`
	ProposedPrice int64             `gorm:"not null" json:"proposed_price"`
	Status        ApplicationStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Read-time enrichment, never written back.
	Freelancer *User `gorm:"foreignKey:FreelancerID" json:"freelancer,omitempty"`
	Task       *Task `gorm:"foreignKey:TaskID" json:"task,omitempty"`
}
