package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"hr-wizard/internal/apperr"
	"hr-wizard/internal/database"
	"hr-wizard/internal/models"
)

func ListNotifications(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	q := database.DB.Where("user_id = ?", user.ID).Order("created_at desc")
	if c.Query("unread") == "true" {
		q = q.Where("read_at IS NULL")
	}

	var notifications []models.Notification
	if err := q.Find(&notifications).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load notifications"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"notifications": notifications})
}

func MarkNotificationRead(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid notification id"})
		return
	}

	var n models.Notification
	if err := database.DB.Where("id = ? AND user_id = ?", id, user.ID).First(&n).Error; err != nil {
		fail(c, apperr.ErrNotFound)
		return
	}

	if n.ReadAt == nil {
		now := time.Now()
		if err := database.DB.Model(&n).Update("read_at", now).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update notification"})
			return
		}
		n.ReadAt = &now
	}

	c.JSON(http.StatusOK, gin.H{"notification": n})
}
