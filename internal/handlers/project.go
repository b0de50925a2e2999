package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"hr-wizard/internal/authz"
	"hr-wizard/internal/database"
	"hr-wizard/internal/models"
	"hr-wizard/internal/notify"
	"hr-wizard/internal/store"
	"hr-wizard/internal/workflow"
)

func loadProject(c *gin.Context) (*models.Project, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project id"})
		return nil, false
	}
	p, err := store.GetProject(database.DB, uint(id))
	if err != nil {
		fail(c, err)
		return nil, false
	}
	return p, true
}

func stepParam(c *gin.Context) (workflow.StepKey, bool) {
	step := workflow.StepKey(c.Param("step"))
	if !workflow.KnownStep(step) {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown step"})
		return "", false
	}
	return step, true
}

// GetProject returns the workflow payload the UI consumes.
func GetProject(c *gin.Context) {
	p, ok := loadProject(c)
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
	c.JSON(http.StatusOK, projectPayload(p))
}

// SubmitStep moves a step to submitted and notifies the CEO. The
// answer-set completeness check runs inside the store transaction.
func SubmitStep(c *gin.Context) {
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
	if err := authz.CanSubmit(actor); err != nil {
		fail(c, err)
		return
	}

	updated, err := store.Submit(database.DB, p.ID, actor.User.ID, step, submitPrepare(step, p.ID))
	if err != nil {
		fail(c, err)
		return
	}

	notify.StepSubmitted(database.DB, updated, step, actor.User.ID)
	c.JSON(http.StatusOK, projectPayload(updated))
}

// VerifyStep is the CEO sign-off on a submitted step.
func VerifyStep(c *gin.Context) {
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
	if err := authz.CanVerify(actor); err != nil {
		fail(c, err)
		return
	}

	updated, err := store.Verify(database.DB, p.ID, actor.User.ID, step)
	if err != nil {
		fail(c, err)
		return
	}

	notify.StepVerified(database.DB, updated, step, actor.User.ID)
	c.JSON(http.StatusOK, projectPayload(updated))
}

// RequestRevision rejects a submitted step back to its editor.
func RequestRevision(c *gin.Context) {
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
	if err := authz.CanVerify(actor); err != nil {
		fail(c, err)
		return
	}

	updated, err := store.RequestRevision(database.DB, p.ID, actor.User.ID, step)
	if err != nil {
		fail(c, err)
		return
	}

	notify.RevisionRequested(database.DB, updated, step, actor.User.ID)
	c.JSON(http.StatusOK, projectPayload(updated))
}

// FinalApprove locks the whole project at CEO sign-off and notifies
// every member.
func FinalApprove(c *gin.Context) {
	p, ok := loadProject(c)
	if !ok {
		return
	}
	actor, ok := actorFor(c, p.CompanyID)
	if !ok {
		return
	}
	if err := authz.CanVerify(actor); err != nil {
		fail(c, err)
		return
	}

	updated, err := store.FinalApprove(database.DB, p.ID, actor.User.ID)
	if err != nil {
		fail(c, err)
		return
	}

	notify.ProjectLocked(database.DB, updated, actor.User.ID)
	c.JSON(http.StatusOK, projectPayload(updated))
}
