package models

import "gorm.io/gorm"

type UserRole string

const (
	RoleAdmin      UserRole = "admin"
	RoleHRManager  UserRole = "hr_manager"
	RoleCEO        UserRole = "ceo"
	RoleConsultant UserRole = "consultant"
)

func ValidRole(r UserRole) bool {
	switch r {
	case RoleAdmin, RoleHRManager, RoleCEO, RoleConsultant:
		return true
	}
	return false
}

type User struct {
	gorm.Model
	Email        string   `gorm:"uniqueIndex;size:120;not null" json:"email"`
	Name         string   `gorm:"size:100" json:"name"`
	PasswordHash string   `gorm:"not null" json:"-"`
	Role         UserRole `gorm:"type:varchar(20);not null" json:"role"`
}

// Membership ties a user to a company. A user gains one by creating the
// company or through an accepted invitation.
type Membership struct {
	gorm.Model
	UserID    uint `gorm:"not null;uniqueIndex:idx_user_company" json:"user_id"`
	CompanyID uint `gorm:"not null;uniqueIndex:idx_user_company" json:"company_id"`
}
