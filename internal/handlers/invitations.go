package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"hr-wizard/internal/apperr"
	"hr-wizard/internal/authz"
	"hr-wizard/internal/database"
	"hr-wizard/internal/models"
)

const invitationTTL = 14 * 24 * time.Hour

type inviteRequest struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}

// CreateInvitation lets an hr_manager (or admin) invite a CEO or
// consultant into the company.
func CreateInvitation(c *gin.Context) {
	companyID, err := strconv.Atoi(c.Param("id"))
	if err != nil || companyID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid company id"})
		return
	}

	var company models.Company
	if err := database.DB.First(&company, companyID).Error; err != nil {
		fail(c, apperr.ErrNotFound)
		return
	}

	actor, ok := actorFor(c, company.ID)
	if !ok {
		return
	}
	if err := authz.CanInvite(actor); err != nil {
		fail(c, err)
		return
	}

	var req inviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.Email == "" {
		fail(c, apperr.Validation("email", "email is required"))
		return
	}

	role := models.UserRole(req.Role)
	switch role {
	case models.RoleCEO, models.RoleConsultant, models.RoleHRManager:
	default:
		fail(c, apperr.Validation("role", "role must be ceo, consultant or hr_manager"))
		return
	}

	inv := models.Invitation{
		CompanyID: company.ID,
		Email:     req.Email,
		Role:      role,
		Token:     uuid.NewString(),
		ExpiresAt: time.Now().Add(invitationTTL),
	}
	if err := database.DB.Create(&inv).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create invitation"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"invitation": inv})
}

// AcceptInvitation grants the invited role and a membership row to the
// acting user. The invitation email must match the account.
func AcceptInvitation(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	token := c.Param("token")
	var inv models.Invitation
	err := database.DB.Where("token = ? AND accepted_at IS NULL AND expires_at > ?",
		token, time.Now()).First(&inv).Error
	if err != nil {
		fail(c, apperr.ErrNotFound)
		return
	}

	if inv.Email != user.Email {
		fail(c, apperr.ErrForbidden)
		return
	}

	now := time.Now()
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		var existing models.Membership
		err := tx.Where("user_id = ? AND company_id = ?", user.ID, inv.CompanyID).
			First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if err := tx.Create(&models.Membership{UserID: user.ID, CompanyID: inv.CompanyID}).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}
		if user.Role != models.RoleAdmin && user.Role != inv.Role {
			if err := tx.Model(&models.User{}).Where("id = ?", user.ID).
				Update("role", inv.Role).Error; err != nil {
				return err
			}
		}
		return tx.Model(&inv).Update("accepted_at", now).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to accept invitation"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"company_id": inv.CompanyID, "role": inv.Role})
}
