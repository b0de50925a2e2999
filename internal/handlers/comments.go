package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"hr-wizard/internal/apperr"
	"hr-wizard/internal/authz"
	"hr-wizard/internal/database"
	"hr-wizard/internal/models"
)

type commentRequest struct {
	Body string `json:"body"`
}

func CreateComment(c *gin.Context) {
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
	if err := authz.CanComment(actor); err != nil {
		fail(c, err)
		return
	}

	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	req.Body = strings.TrimSpace(req.Body)
	if req.Body == "" {
		fail(c, apperr.Validation("body", "comment body is required"))
		return
	}

	comment := models.StepComment{
		ProjectID: p.ID,
		Step:      step,
		UserID:    actor.User.ID,
		Body:      req.Body,
	}
	if err := database.DB.Create(&comment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create comment"})
		return
	}
	comment.User = actor.User

	c.JSON(http.StatusCreated, gin.H{"comment": comment})
}

func ListComments(c *gin.Context) {
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

	var comments []models.StepComment
	err := database.DB.Where("project_id = ? AND step = ?", p.ID, step).
		Preload("User").
		Order("created_at asc").
		Find(&comments).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load comments"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"comments": comments})
}
