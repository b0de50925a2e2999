package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"hr-wizard/internal/apperr"
	"hr-wizard/internal/database"
	"hr-wizard/internal/models"
	"hr-wizard/internal/store"
)

type createCompanyRequest struct {
	Name      string `json:"name"`
	Industry  string `json:"industry"`
	Headcount int    `json:"headcount"`
}

// CreateCompany creates the company, its single workflow project, and a
// membership for the acting hr_manager, in one transaction.
func CreateCompany(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}
	if user.Role != models.RoleHRManager && user.Role != models.RoleAdmin {
		fail(c, apperr.ErrForbidden)
		return
	}

	var req createCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if len(req.Name) < 2 {
		fail(c, apperr.Validation("name", "company name must be at least 2 characters"))
		return
	}

	var company models.Company
	var project *models.Project
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		company = models.Company{Name: req.Name, Industry: req.Industry, Headcount: req.Headcount}
		if err := tx.Create(&company).Error; err != nil {
			return err
		}
		if err := tx.Create(&models.Membership{UserID: user.ID, CompanyID: company.ID}).Error; err != nil {
			return err
		}
		var err error
		project, err = store.CreateProjectForCompany(tx, company.ID)
		return err
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create company"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"company": company, "project": project})
}

// ListCompanies is the admin overview of every tenant and its
// workflow position.
func ListCompanies(c *gin.Context) {
	var companies []models.Company
	if err := database.DB.Order("name asc").Find(&companies).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load companies"})
		return
	}

	var projects []models.Project
	if err := database.DB.Find(&projects).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load projects"})
		return
	}
	byCompany := make(map[uint]models.Project, len(projects))
	for _, p := range projects {
		byCompany[p.CompanyID] = p
	}

	out := make([]gin.H, 0, len(companies))
	for _, company := range companies {
		entry := gin.H{"company": company}
		if p, ok := byCompany[company.ID]; ok {
			entry["status"] = p.Status
			entry["current_step"] = p.CurrentStep
		}
		out = append(out, entry)
	}

	c.JSON(http.StatusOK, gin.H{"companies": out})
}

func GetCompany(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid company id"})
		return
	}

	var company models.Company
	if err := database.DB.First(&company, id).Error; err != nil {
		fail(c, apperr.ErrNotFound)
		return
	}

	actor, ok := actorFor(c, company.ID)
	if !ok {
		return
	}
	if !actor.IsMember && actor.User.Role != models.RoleAdmin {
		fail(c, apperr.ErrForbidden)
		return
	}

	project, err := store.GetProjectByCompany(database.DB, company.ID)
	if err != nil {
		fail(c, err)
		return
	}

	members, err := store.CompanyMembers(database.DB, company.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load members"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"company": company,
		"project": project,
		"members": members,
	})
}
