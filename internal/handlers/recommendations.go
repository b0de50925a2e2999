package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hr-wizard/internal/advice"
	"hr-wizard/internal/authz"
	"hr-wizard/internal/database"
	"hr-wizard/internal/models"
)

var advisor = advice.Default()

// GetRecommendations asks the advisory collaborator for suggested
// option values. Read-only; no effect on the workflow state.
func GetRecommendations(c *gin.Context) {
	p, ok := loadProject(c)
	if !ok {
		return
	}
	step, ok := stepParam(c)
	if !ok {
		return
	}
	actor, ok := actorFor(c, p.CompanyID)
	if !ok {
		return
	}
	if err := authz.CanRead(actor); err != nil {
		fail(c, err)
		return
	}

	var company models.Company
	if err := database.DB.First(&company, p.CompanyID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load company"})
		return
	}

	var diag models.Diagnosis
	_ = database.DB.Where("project_id = ?", p.ID).First(&diag).Error

	recs := advisor.Recommend(step, company, diag)
	c.JSON(http.StatusOK, gin.H{"step": step, "recommendations": recs})
}
