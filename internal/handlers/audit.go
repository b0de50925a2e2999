package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hr-wizard/internal/authz"
	"hr-wizard/internal/database"
	"hr-wizard/internal/store"
)

// ListProjectAudit returns the append-only trail for compliance review.
func ListProjectAudit(c *gin.Context) {
	p, ok := loadProject(c)
	if !ok {
		return
	}
	actor, ok := actorFor(c, p.CompanyID)
	if !ok {
		return
	}
	if err := authz.CanViewAudit(actor); err != nil {
		fail(c, err)
		return
	}

	logs, err := store.ListAudit(database.DB, p.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load audit trail"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"audit": logs})
}
