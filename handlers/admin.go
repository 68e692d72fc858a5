package handlers

import (
	"net/http"
	"time"

	rentalRepo "bookcircle/database/repository/rental"
	userRepo "bookcircle/database/repository/user"
	"bookcircle/models"
	"bookcircle/services/credit"
	"bookcircle/services/society"
	"bookcircle/services/user"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AdminHandler encapsulates elevated admin-level operations.
type AdminHandler struct {
	UserService    user.UserService
	SocietyService society.SocietyService
	CreditService  credit.CreditService
	UserRepo       userRepo.UserRepository
	RentalRepo     rentalRepo.RentalRepository
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(us user.UserService, ss society.SocietyService, cs credit.CreditService, ur userRepo.UserRepository, rr rentalRepo.RentalRepository) *AdminHandler {
	return &AdminHandler{
		UserService:    us,
		SocietyService: ss,
		CreditService:  cs,
		UserRepo:       ur,
		RentalRepo:     rr,
	}
}

// GetAllUsersHandler returns all users (with sensitive fields excluded).
func (ah *AdminHandler) GetAllUsersHandler(c *gin.Context) {
	users, err := ah.UserService.GetAllUsers()
	if err != nil {
		zap.L().Error("Failed to fetch all users", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch users"})
		return
	}
	c.JSON(http.StatusOK, users)
}

// ListSocietiesHandler returns all societies. Pass ?status=pending to list
// only the approval queue.
func (ah *AdminHandler) ListSocietiesHandler(c *gin.Context) {
	var (
		societies []models.Society
		err       error
	)
	if c.Query("status") == models.SocietyStatusPending {
		societies, err = ah.SocietyService.ListPending()
	} else {
		societies, err = ah.SocietyService.ListAll()
	}
	if err != nil {
		zap.L().Error("Failed to fetch societies", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch societies"})
		return
	}
	c.JSON(http.StatusOK, societies)
}

// ListRentalsHandler returns all rentals, optionally filtered with ?status=.
func (ah *AdminHandler) ListRentalsHandler(c *gin.Context) {
	rentals, err := ah.RentalRepo.ListAll(c.Query("status"))
	if err != nil {
		zap.L().Error("Failed to fetch rentals", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch rentals"})
		return
	}
	c.JSON(http.StatusOK, rentals)
}

// ApproveSocietyHandler handles POST /admin/societies/:id/approve.
func (ah *AdminHandler) ApproveSocietyHandler(c *gin.Context) {
	soc, err := ah.SocietyService.Approve(c.Param("id"))
	if err != nil {
		zap.L().Error("Society approval failed", zap.String("id", c.Param("id")), zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, soc)
}

// RejectSocietyHandler handles POST /admin/societies/:id/reject.
func (ah *AdminHandler) RejectSocietyHandler(c *gin.Context) {
	if err := ah.SocietyService.Reject(c.Param("id")); err != nil {
		zap.L().Error("Society rejection failed", zap.String("id", c.Param("id")), zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Society rejected"})
}

// GrantCommissionFreeHandler handles POST /admin/users/:id/commission-free.
// The user's rentals earn with zero platform commission until the given time.
func (ah *AdminHandler) GrantCommissionFreeHandler(c *gin.Context) {
	userID := c.Param("id")

	var req struct {
		Days int `json:"days" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Days <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "days must be a positive integer"})
		return
	}

	until := time.Now().AddDate(0, 0, req.Days)
	if err := ah.UserRepo.SetCommissionFreeUntil(userID, until); err != nil {
		zap.L().Error("Failed to grant commission-free window", zap.String("userID", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to grant commission-free window"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Commission-free window granted", "until": until})
}

// GrantCreditsHandler handles POST /admin/users/:id/credits.
func (ah *AdminHandler) GrantCreditsHandler(c *gin.Context) {
	userID := c.Param("id")

	var req struct {
		Amount int    `json:"amount" binding:"required"`
		Reason string `json:"reason"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Amount <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "amount must be a positive integer"})
		return
	}
	if req.Reason == "" {
		req.Reason = "Granted by admin"
	}

	if err := ah.CreditService.Award(userID, req.Amount, models.CreditTypeAdminGrant, req.Reason, ""); err != nil {
		zap.L().Error("Failed to grant credits", zap.String("userID", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to grant credits"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Credits granted"})
}
