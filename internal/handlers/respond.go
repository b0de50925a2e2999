package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"hr-wizard/internal/apperr"
	"hr-wizard/internal/authz"
	"hr-wizard/internal/database"
	"hr-wizard/internal/models"
	"hr-wizard/internal/store"
	"hr-wizard/internal/workflow"
)

func currentUser(c *gin.Context) (models.User, bool) {
	v, ok := c.Get("CurrentUser")
	if !ok {
		return models.User{}, false
	}
	user, ok := v.(models.User)
	return user, ok
}

// actorFor resolves the acting user and their membership in the
// project's company for the authorization guard.
func actorFor(c *gin.Context, companyID uint) (authz.Actor, bool) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return authz.Actor{}, false
	}
	member, err := store.IsMember(database.DB, user.ID, companyID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to check membership"})
		return authz.Actor{}, false
	}
	return authz.Actor{User: user, IsMember: member}, true
}

// fail maps the error taxonomy onto HTTP statuses. Validation failures
// carry field-level messages so the client can re-render the form.
func fail(c *gin.Context, err error) {
	var verr *apperr.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "validation failed", "fields": verr.Fields})
	case errors.Is(err, apperr.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	case errors.Is(err, apperr.ErrStepLocked):
		c.JSON(http.StatusConflict, gin.H{"error": "step is locked"})
	case errors.Is(err, apperr.ErrNotSubmitted):
		c.JSON(http.StatusConflict, gin.H{"error": "step is not submitted"})
	case errors.Is(err, apperr.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// projectPayload is the JSON document the presentation layer consumes:
// the project, the ledger, the derived current step and a per-step
// unlocked flag.
func projectPayload(p *models.Project) gin.H {
	unlocked := make(map[workflow.StepKey]bool, len(workflow.AllSteps))
	for _, s := range workflow.AllSteps {
		unlocked[s] = workflow.IsStepUnlocked(p.StepStatuses, s)
	}
	return gin.H{
		"project":        p,
		"current_step":   workflow.CurrentStep(p.StepStatuses),
		"steps_unlocked": unlocked,
	}
}
