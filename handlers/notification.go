package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ListNotificationsHandler handles GET /notifications.
func (h *UserHandler) ListNotificationsHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	notifs, err := h.NotificationService.List(userID)
	if err != nil {
		getLogger(c).Error("Failed to list notifications", zap.String("userID", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list notifications"})
		return
	}
	c.JSON(http.StatusOK, notifs)
}

// MarkNotificationsReadHandler handles POST /notifications/read with a JSON
// payload of notification IDs.
func (h *UserHandler) MarkNotificationsReadHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req struct {
		IDs []string `json:"ids" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	if err := h.NotificationService.MarkRead(userID, req.IDs); err != nil {
		getLogger(c).Error("Failed to mark notifications read", zap.String("userID", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to mark notifications read"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Notifications marked read"})
}
