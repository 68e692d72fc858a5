package handlers

import (
	"net/http"
	"strconv"

	"bookcircle/models"
	"bookcircle/services/rental"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RentalHandler encapsulates the borrow, return and extension endpoints.
type RentalHandler struct {
	RentalService rental.RentalService
}

// NewRentalHandler creates a new RentalHandler.
func NewRentalHandler(rs rental.RentalService) *RentalHandler {
	return &RentalHandler{RentalService: rs}
}

// rentalErrStatus maps rental error codes to HTTP status codes.
func rentalErrStatus(err error) int {
	switch rental.Code(err) {
	case rental.ErrCodeBadDuration, rental.ErrCodeOwnBook:
		return http.StatusBadRequest
	case rental.ErrCodeNotMember, rental.ErrCodeNotBorrower, rental.ErrCodeNotLender:
		return http.StatusForbidden
	case rental.ErrCodeBookUnavailable, rental.ErrCodeNotOpen, rental.ErrCodeNotOverdue,
		rental.ErrCodePendingExtension, rental.ErrCodeAlreadyDecided:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func rentalErrJSON(c *gin.Context, err error) {
	body := gin.H{"error": err.Error()}
	if code := rental.Code(err); code != "" {
		body["code"] = code
	}
	c.JSON(rentalErrStatus(err), body)
}

// QuoteRentalHandler handles GET /rentals/quote?bookId=..&days=..
// and returns the full fee breakdown before committing.
func (h *RentalHandler) QuoteRentalHandler(c *gin.Context) {
	bookID := c.Query("bookId")
	days, err := strconv.Atoi(c.Query("days"))
	if bookID == "" || err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bookId and days query parameters are required"})
		return
	}

	quote, qErr := h.RentalService.Quote(bookID, days)
	if qErr != nil {
		rentalErrJSON(c, qErr)
		return
	}
	c.JSON(http.StatusOK, quote)
}

// BorrowBookHandler handles POST /rentals. Charges rental fee plus deposit
// and locks the book.
func (h *RentalHandler) BorrowBookHandler(c *gin.Context) {
	logger := getLogger(c)

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req models.BorrowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	rent, err := h.RentalService.Borrow(c.Request.Context(), userID, req)
	if err != nil {
		logger.Warn("Borrow failed", zap.String("userID", userID), zap.String("bookID", req.BookID), zap.Error(err))
		rentalErrJSON(c, err)
		return
	}
	c.JSON(http.StatusCreated, rent)
}

// RequestReturnHandler handles POST /rentals/:id/return-request, borrower side.
func (h *RentalHandler) RequestReturnHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	if err := h.RentalService.RequestReturn(userID, c.Param("id")); err != nil {
		rentalErrJSON(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Return requested. Awaiting lender confirmation."})
}

// ConfirmReturnHandler handles POST /rentals/:id/confirm-return, lender side.
// Closes the rental, assesses late fees and releases the book.
func (h *RentalHandler) ConfirmReturnHandler(c *gin.Context) {
	logger := getLogger(c)

	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	rent, err := h.RentalService.ConfirmReturn(userID, c.Param("id"))
	if err != nil {
		logger.Warn("Confirm return failed", zap.String("rentalID", c.Param("id")), zap.Error(err))
		rentalErrJSON(c, err)
		return
	}
	c.JSON(http.StatusOK, rent)
}

// PayLateFeesHandler handles POST /rentals/:id/pay-late-fees.
func (h *RentalHandler) PayLateFeesHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req struct {
		PaymentMethod string `json:"paymentMethod"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	invoice, err := h.RentalService.PayLateFees(c.Request.Context(), userID, c.Param("id"), req.PaymentMethod)
	if err != nil {
		rentalErrJSON(c, err)
		return
	}
	c.JSON(http.StatusOK, invoice)
}

// GetRentalHandler handles GET /rentals/:id.
func (h *RentalHandler) GetRentalHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	rent, err := h.RentalService.GetByID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Rental not found"})
		return
	}
	if rent.BorrowerID != userID && rent.LenderID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not a party to this rental"})
		return
	}
	c.JSON(http.StatusOK, rent)
}

// BorrowerHistoryHandler handles GET /rentals/borrowed.
func (h *RentalHandler) BorrowerHistoryHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	rentals, err := h.RentalService.BorrowerHistory(userID)
	if err != nil {
		getLogger(c).Error("Borrower history failed", zap.String("userID", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list rentals"})
		return
	}
	c.JSON(http.StatusOK, rentals)
}

// LenderHistoryHandler handles GET /rentals/lent.
func (h *RentalHandler) LenderHistoryHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	rentals, err := h.RentalService.LenderHistory(userID)
	if err != nil {
		getLogger(c).Error("Lender history failed", zap.String("userID", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list rentals"})
		return
	}
	c.JSON(http.StatusOK, rentals)
}
