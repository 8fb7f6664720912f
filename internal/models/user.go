package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Role string

const (
	RoleBusinessOwner Role = "business_owner"
	RoleFreelancer    Role = "freelancer"
	RoleAdmin         Role = "admin"
)

// SampleReelCount is how many reels a freelancer needs for a complete profile.
const SampleReelCount = 3

type User struct {
	ID       uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	FullName string    `gorm:"not null" json:"full_name"`
	Email    string    `gorm:"uniqueIndex;not null" json:"email"`

	Password string `gorm:"not null" json:"-"`
	Role     Role   `gorm:"type:varchar(20);not null;index" json:"role"`
	IsActive bool   `gorm:"default:true" json:"is_active"`

	Phone       string `gorm:"type:varchar(30)" json:"phone,omitempty"`
	Location    string `gorm:"type:varchar(120)" json:"location,omitempty"`
	Bio         string `gorm:"type:text" json:"bio,omitempty"`
	InstagramID string `gorm:"type:varchar(60)" json:"instagram_id,omitempty"`

	// SampleReels holds up to three video URLs as a JSON array.
	SampleReels datatypes.JSON `json:"sample_reels,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ReelURLs decodes the sample_reels column. Corrupt or empty columns decode
// to an empty list.
func (u *User) ReelURLs() []string {
	if len(u.SampleReels) == 0 {
		return nil
	}
	var urls []string
	if err := json.Unmarshal(u.SampleReels, &urls); err != nil {
		return nil
	}
	return urls
}

// ProfileComplete reports whether a freelancer has filled everything the
// marketplace shows publicly: instagram handle plus all sample reels.
func (u *User) ProfileComplete() bool {
	if u.Role != RoleFreelancer {
		return true
	}
	if u.InstagramID == "" {
		return false
	}
	reels := u.ReelURLs()
	if len(reels) != SampleReelCount {
		return false
	}
	for _, r := range reels {
		if r == "" {
			return false
		}
	}
	return true
}
