package models

import (
	"time"

	"gorm.io/gorm"
)

// Invitation lets an hr_manager (or admin) bring a CEO or consultant
// into the company. Accepting one grants the role and a membership row.
type Invitation struct {
	gorm.Model
	CompanyID uint     `gorm:"index;not null" json:"company_id"`
	Email     string   `gorm:"size:120;not null" json:"email"`
	Role      UserRole `gorm:"type:varchar(20);not null" json:"role"`
	Token     string   `gorm:"uniqueIndex;size:36;not null" json:"token"`

	ExpiresAt  time.Time  `json:"expires_at"`
	AcceptedAt *time.Time `json:"accepted_at,omitempty"`
}
