package models

import (
	"time"

	"gorm.io/gorm"
)

// PasswordReset is a one-time OTP code with a short expiry.
type PasswordReset struct {
	gorm.Model
	UserID     uint       `gorm:"index;not null" json:"user_id"`
	Code       string     `gorm:"size:6;not null" json:"-"`
	ExpiresAt  time.Time  `json:"expires_at"`
	ConsumedAt *time.Time `json:"consumed_at,omitempty"`
}
