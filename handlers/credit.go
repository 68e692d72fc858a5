package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// GetCreditBalanceHandler handles GET /credits/balance.
func (h *UserHandler) GetCreditBalanceHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	bal, err := h.CreditService.Balance(userID)
	if err != nil {
		getLogger(c).Error("Failed to fetch credit balance", zap.String("userID", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch balance"})
		return
	}
	c.JSON(http.StatusOK, bal)
}

// GetCreditTransactionsHandler handles GET /credits/transactions.
func (h *UserHandler) GetCreditTransactionsHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	txs, err := h.CreditService.Transactions(userID)
	if err != nil {
		getLogger(c).Error("Failed to fetch credit transactions", zap.String("userID", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch transactions"})
		return
	}
	c.JSON(http.StatusOK, txs)
}

// GetReferralInfoHandler handles GET /referrals/me. Returns the user's
// referral code, lifetime stats and earned badges.
func (h *UserHandler) GetReferralInfoHandler(c *gin.Context) {
	logger := getLogger(c)

	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	usr, err := h.UserService.GetUserByID(userID)
	if err != nil {
		logger.Error("User not found", zap.String("id", userID), zap.Error(err))
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"referralCode":     usr.ReferralCode,
		"totalReferrals":   usr.TotalReferrals,
		"referralEarnings": usr.ReferralEarnings,
		"badges":           h.CreditService.BadgesFor(usr),
	})
}
