// File: services/rental/extension.go
package rental

import (
	"context"
	"fmt"
	"time"

	"bookcircle/models"
	"bookcircle/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// maxExtensionDays caps a single extension request.
const maxExtensionDays = 30

// QuoteExtension computes the breakdown for extending a rental by extra
// days. Pure; the due date advances from the rental's current end date.
func QuoteExtension(dailyFee float64, days int, endDate time.Time, commissionFree bool) models.ExtensionQuote {
	fee := Round2(dailyFee * float64(days))

	var commission float64
	if !commissionFree {
		commission = Round2(fee * CommissionRate)
	}

	return models.ExtensionQuote{
		Days:           days,
		ExtensionFee:   fee,
		Commission:     commission,
		LenderEarnings: Round2(fee - commission),
		NewDueDate:     endDate.AddDate(0, 0, days),
	}
}

// CalculateExtension prices an extension for the borrower without persisting
// anything.
func (s *DefaultRentalService) CalculateExtension(borrowerID, rentalID string, days int) (*models.ExtensionQuote, error) {
	rental, book, err := s.openRentalForBorrower(borrowerID, rentalID, days)
	if err != nil {
		return nil, err
	}

	commissionFree, err := s.lenderCommissionFree(rental.LenderID)
	if err != nil {
		return nil, err
	}

	quote := QuoteExtension(book.DailyFee, days, rental.EndDate, commissionFree)
	return &quote, nil
}

// RequestExtension persists a pending extension request and notifies the
// lender. The rental's due date does not move until approval.
func (s *DefaultRentalService) RequestExtension(borrowerID, rentalID string, days int) (*models.ExtensionRequest, error) {
	rental, book, err := s.openRentalForBorrower(borrowerID, rentalID, days)
	if err != nil {
		return nil, err
	}

	pending, err := s.Rentals.GetPendingExtensionByRental(rentalID)
	if err != nil {
		return nil, err
	}
	if pending != nil {
		return nil, makeErr(ErrCodePendingExtension, "an extension request is already pending for this rental")
	}

	commissionFree, err := s.lenderCommissionFree(rental.LenderID)
	if err != nil {
		return nil, err
	}
	quote := QuoteExtension(book.DailyFee, days, rental.EndDate, commissionFree)

	req := &models.ExtensionRequest{
		ID:             uuid.New().String(),
		RentalID:       rental.ID,
		BookID:         rental.BookID,
		BorrowerID:     borrowerID,
		LenderID:       rental.LenderID,
		Days:           days,
		ExtensionFee:   quote.ExtensionFee,
		Commission:     quote.Commission,
		LenderEarnings: quote.LenderEarnings,
		NewDueDate:     quote.NewDueDate,
		Status:         models.ExtensionStatusPending,
	}
	if err := s.Rentals.CreateExtension(req); err != nil {
		return nil, err
	}

	_ = s.Notifier.Notify(rental.LenderID, "extension_requested",
		fmt.Sprintf("Extension requested: %d more days on %q for %.2f (you earn %.2f).",
			days, book.Title, quote.ExtensionFee, quote.LenderEarnings),
		map[string]interface{}{"requestId": req.ID, "rentalId": rental.ID})

	return req, nil
}

// DecideExtension records the lender's decision. Approval is the only path
// that advances the rental's due date and captures the extension fee.
func (s *DefaultRentalService) DecideExtension(ctx context.Context, lenderID, requestID string, approve bool) (*models.ExtensionRequest, error) {
	req, err := s.Rentals.GetExtensionByID(requestID)
	if err != nil {
		return nil, err
	}
	if req.LenderID != lenderID {
		return nil, makeErr(ErrCodeNotLender, "only the lender can decide this request")
	}
	if req.Status != models.ExtensionStatusPending {
		return nil, makeErr(ErrCodeAlreadyDecided, "extension request was already decided")
	}

	now := time.Now()
	status := models.ExtensionStatusDenied
	if approve {
		status = models.ExtensionStatusApproved
	}
	if err := s.Rentals.DecideExtension(requestID, status, now); err != nil {
		return nil, makeErr(ErrCodeAlreadyDecided, "extension request was already decided")
	}
	req.Status = status
	req.DecidedAt = &now

	if !approve {
		_ = s.Notifier.Notify(req.BorrowerID, "extension_denied",
			"Your extension request was denied. Please return the book by the original due date.",
			map[string]interface{}{"requestId": req.ID, "rentalId": req.RentalID})
		return req, nil
	}

	if err := s.Rentals.AdvanceEndDate(req.RentalID, req.NewDueDate); err != nil {
		return nil, err
	}

	if _, err := s.Payments.ProcessPayment(ctx, models.PaymentRequest{
		UserID:   req.BorrowerID,
		RentalID: req.RentalID,
		Amount:   req.ExtensionFee,
		Currency: currency,
		Method:   models.PaymentMethodCard,
	}); err != nil {
		utils.GetLogger().Error("DecideExtension: fee capture failed",
			zap.String("requestID", req.ID), zap.Error(err))
		if err := s.Rentals.SetPaymentStatus(req.RentalID, models.PaymentStatusPending); err != nil {
			utils.GetLogger().Error("DecideExtension: failed to flag pending payment",
				zap.String("rentalID", req.RentalID), zap.Error(err))
		}
	}

	_ = s.Notifier.Notify(req.BorrowerID, "extension_approved",
		fmt.Sprintf("Extension approved. New due date %s.", req.NewDueDate.Format("Jan 2, 2006")),
		map[string]interface{}{"requestId": req.ID, "rentalId": req.RentalID})

	return req, nil
}

// ListExtensionRequests lists a lender's requests, optionally by status.
func (s *DefaultRentalService) ListExtensionRequests(lenderID, status string) ([]models.ExtensionRequest, error) {
	return s.Rentals.ListExtensionsByLender(lenderID, status)
}

func (s *DefaultRentalService) openRentalForBorrower(borrowerID, rentalID string, days int) (*models.Rental, *models.Book, error) {
	if days <= 0 || days > maxExtensionDays {
		return nil, nil, makeErr(ErrCodeBadDuration, fmt.Sprintf("extension must be between 1 and %d days", maxExtensionDays))
	}

	rental, err := s.Rentals.GetByID(rentalID)
	if err != nil {
		return nil, nil, err
	}
	if rental.BorrowerID != borrowerID {
		return nil, nil, makeErr(ErrCodeNotBorrower, "only the borrower can extend this rental")
	}
	if rental.Status != models.RentalStatusActive && rental.Status != models.RentalStatusOverdue {
		return nil, nil, makeErr(ErrCodeNotOpen, "rental is not open")
	}

	book, err := s.Books.GetByID(rental.BookID)
	if err != nil {
		return nil, nil, err
	}
	return rental, book, nil
}
