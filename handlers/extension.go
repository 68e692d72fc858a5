package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CalculateExtensionHandler handles GET /rentals/:id/extension-quote?days=..
func (h *RentalHandler) CalculateExtensionHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	days, err := strconv.Atoi(c.Query("days"))
	if err != nil || days <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "days query parameter is required"})
		return
	}

	quote, qErr := h.RentalService.CalculateExtension(userID, c.Param("id"), days)
	if qErr != nil {
		rentalErrJSON(c, qErr)
		return
	}
	c.JSON(http.StatusOK, quote)
}

// RequestExtensionHandler handles POST /rentals/:id/extensions, borrower side.
func (h *RentalHandler) RequestExtensionHandler(c *gin.Context) {
	logger := getLogger(c)

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req struct {
		Days int `json:"days" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	ext, err := h.RentalService.RequestExtension(userID, c.Param("id"), req.Days)
	if err != nil {
		logger.Warn("Extension request failed", zap.String("rentalID", c.Param("id")), zap.Error(err))
		rentalErrJSON(c, err)
		return
	}
	c.JSON(http.StatusCreated, ext)
}

// DecideExtensionHandler handles POST /extensions/:id/decide, lender side.
// Approval charges the extension fee and pushes the due date.
func (h *RentalHandler) DecideExtensionHandler(c *gin.Context) {
	logger := getLogger(c)

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req struct {
		Approve *bool `json:"approve" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	ext, err := h.RentalService.DecideExtension(c.Request.Context(), userID, c.Param("id"), *req.Approve)
	if err != nil {
		logger.Warn("Extension decision failed", zap.String("requestID", c.Param("id")), zap.Error(err))
		rentalErrJSON(c, err)
		return
	}
	c.JSON(http.StatusOK, ext)
}

// ListExtensionRequestsHandler handles GET /extensions?status=pending for the
// authenticated lender.
func (h *RentalHandler) ListExtensionRequestsHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	exts, err := h.RentalService.ListExtensionRequests(userID, c.Query("status"))
	if err != nil {
		getLogger(c).Error("List extension requests failed", zap.String("userID", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list extension requests"})
		return
	}
	c.JSON(http.StatusOK, exts)
}
