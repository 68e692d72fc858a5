package handlers

import (
	"net/http"

	"bookcircle/models"
	"bookcircle/services/society"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SocietyHandler encapsulates society creation, approval and membership.
type SocietyHandler struct {
	SocietyService society.SocietyService
}

// NewSocietyHandler creates a new SocietyHandler.
func NewSocietyHandler(ss society.SocietyService) *SocietyHandler {
	return &SocietyHandler{SocietyService: ss}
}

// RequestCreateSocietyHandler handles POST /societies. The society starts
// pending until an admin approves it.
func (h *SocietyHandler) RequestCreateSocietyHandler(c *gin.Context) {
	logger := getLogger(c)

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req models.SocietyCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Invalid society create request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	soc, err := h.SocietyService.RequestCreate(userID, req)
	if err != nil {
		logger.Error("Society create request failed", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, soc)
}

// JoinSocietyHandler handles POST /societies/join with a join code.
func (h *SocietyHandler) JoinSocietyHandler(c *gin.Context) {
	logger := getLogger(c)

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req struct {
		Code string `json:"code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	soc, err := h.SocietyService.JoinByCode(userID, req.Code)
	if err != nil {
		logger.Warn("Join society failed", zap.String("userID", userID), zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, soc)
}

// GetSocietyHandler handles GET /societies/:id.
func (h *SocietyHandler) GetSocietyHandler(c *gin.Context) {
	id := c.Param("id")
	soc, err := h.SocietyService.GetByID(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Society not found"})
		return
	}
	c.JSON(http.StatusOK, soc)
}
