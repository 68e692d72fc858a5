package handlers

import (
	"net/http"

	"bookcircle/models"
	"bookcircle/services/credit"
	"bookcircle/services/notification"
	"bookcircle/services/user"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UserHandler encapsulates registration, authentication and profile endpoints.
type UserHandler struct {
	UserService         user.UserService
	CreditService       credit.CreditService
	NotificationService notification.NotificationService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(us user.UserService, cs credit.CreditService, ns notification.NotificationService) *UserHandler {
	return &UserHandler{
		UserService:         us,
		CreditService:       cs,
		NotificationService: ns,
	}
}

// RegisterUserHandler handles POST /auth/register.
func (h *UserHandler) RegisterUserHandler(c *gin.Context) {
	logger := getLogger(c)

	var req models.UserRegistrationData
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Invalid registration request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	resp, err := h.UserService.RegisterUser(req)
	if err != nil {
		logger.Error("User registration failed", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Registration failed: " + err.Error()})
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// AuthenticateUserHandler handles POST /auth/login.
func (h *UserHandler) AuthenticateUserHandler(c *gin.Context) {
	logger := getLogger(c)

	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Invalid login request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	resp, err := h.UserService.AuthenticateUser(req.Email, req.Password)
	if err != nil {
		logger.Error("Login failed", zap.String("email", req.Email), zap.Error(err))
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Login failed: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// RevokeUserAuthTokenHandler handles POST /auth/logout.
func (h *UserHandler) RevokeUserAuthTokenHandler(c *gin.Context) {
	logger := getLogger(c)

	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	if err := h.UserService.RevokeUserAuthToken(userID); err != nil {
		logger.Error("Failed to revoke auth token", zap.String("userID", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to log out"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}
