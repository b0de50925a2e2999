package store

import (
	"gorm.io/gorm"

	"hr-wizard/internal/models"
)

func IsMember(db *gorm.DB, userID, companyID uint) (bool, error) {
	var count int64
	err := db.Model(&models.Membership{}).
		Where("user_id = ? AND company_id = ?", userID, companyID).
		Count(&count).Error
	return count > 0, err
}

// CompanyMembers returns every user with a membership row for the
// company, optionally filtered by role.
func CompanyMembers(db *gorm.DB, companyID uint, roles ...models.UserRole) ([]models.User, error) {
	q := db.Model(&models.User{}).
		Joins("JOIN memberships ON memberships.user_id = users.id").
		Where("memberships.company_id = ? AND memberships.deleted_at IS NULL", companyID)
	if len(roles) > 0 {
		q = q.Where("users.role IN ?", roles)
	}
	var users []models.User
	err := q.Find(&users).Error
	return users, err
}
