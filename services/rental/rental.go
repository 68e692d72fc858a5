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

const currency = "INR"

// Quote computes the cost breakdown for borrowing a book without reserving
// anything.
func (s *DefaultRentalService) Quote(bookID string, days int) (*models.RentalQuote, error) {
	if !DurationAllowed(days) {
		return nil, makeErr(ErrCodeBadDuration, fmt.Sprintf("duration of %d days is not offered", days))
	}

	book, err := s.Books.GetByID(bookID)
	if err != nil {
		return nil, err
	}

	commissionFree, err := s.lenderCommissionFree(book.OwnerID)
	if err != nil {
		return nil, err
	}

	quote := QuoteRental(book.DailyFee, days, commissionFree)
	return &quote, nil
}

// Borrow reserves the book, charges the borrower and persists the rental.
// The availability flip is conditional, so two concurrent borrows of the
// same book cannot both succeed.
func (s *DefaultRentalService) Borrow(ctx context.Context, borrowerID string, req models.BorrowRequest) (*models.Rental, error) {
	if !DurationAllowed(req.DurationDays) {
		return nil, makeErr(ErrCodeBadDuration, fmt.Sprintf("duration of %d days is not offered", req.DurationDays))
	}

	book, err := s.Books.GetByID(req.BookID)
	if err != nil {
		return nil, err
	}
	if book.OwnerID == borrowerID {
		return nil, makeErr(ErrCodeOwnBook, "you cannot borrow your own book")
	}

	borrower, err := s.Users.GetByID(borrowerID)
	if err != nil {
		return nil, err
	}
	if !memberOf(borrower, book.SocietyID) {
		return nil, makeErr(ErrCodeNotMember, "join the book's society before borrowing")
	}

	commissionFree, err := s.lenderCommissionFree(book.OwnerID)
	if err != nil {
		return nil, err
	}
	quote := QuoteRental(book.DailyFee, req.DurationDays, commissionFree)

	if err := s.Books.SetAvailability(book.ID, true, false); err != nil {
		return nil, makeErr(ErrCodeBookUnavailable, "book is not available right now")
	}

	invoice, err := s.Payments.ProcessPayment(ctx, models.PaymentRequest{
		UserID:   borrowerID,
		Amount:   quote.TotalAmount,
		Currency: currency,
		Method:   req.PaymentMethod,
	})
	if err != nil {
		if revertErr := s.Books.SetAvailability(book.ID, false, true); revertErr != nil {
			utils.GetLogger().Error("Borrow: failed to release book after payment failure",
				zap.String("bookID", book.ID), zap.Error(revertErr))
		}
		return nil, fmt.Errorf("payment failed: %w", err)
	}

	now := time.Now()
	rental := &models.Rental{
		ID:              uuid.New().String(),
		BookID:          book.ID,
		BorrowerID:      borrowerID,
		LenderID:        book.OwnerID,
		SocietyID:       book.SocietyID,
		StartDate:       now,
		EndDate:         now.AddDate(0, 0, req.DurationDays),
		DurationDays:    req.DurationDays,
		RentalFee:       quote.RentalFee,
		PlatformFee:     quote.PlatformFee,
		LenderAmount:    quote.LenderAmount,
		SecurityDeposit: quote.SecurityDeposit,
		TotalAmount:     quote.TotalAmount,
		Status:          models.RentalStatusActive,
		PaymentStatus:   invoiceStatusToPaymentStatus(invoice.Status),
	}

	if err := s.Rentals.Create(rental); err != nil {
		if revertErr := s.Books.SetAvailability(book.ID, false, true); revertErr != nil {
			utils.GetLogger().Error("Borrow: failed to release book after create failure",
				zap.String("bookID", book.ID), zap.Error(revertErr))
		}
		// The borrower was already charged; hand the money back.
		if refundErr := s.Payments.Refund(ctx, invoice); refundErr != nil {
			utils.GetLogger().Error("Borrow: failed to refund charge after create failure",
				zap.String("invoiceID", invoice.InvoiceID), zap.Error(refundErr))
		}
		return nil, err
	}

	if rental.PaymentStatus == models.PaymentStatusPaid {
		if err := s.Credits.CompleteReferralForBorrower(borrowerID); err != nil {
			utils.GetLogger().Error("Borrow: referral completion failed",
				zap.String("borrowerID", borrowerID), zap.Error(err))
		}
	}

	_ = s.Notifier.Notify(book.OwnerID, "rental_started",
		fmt.Sprintf("%s borrowed %q for %d days. You earn %.2f.",
			borrower.Username, book.Title, req.DurationDays, quote.LenderAmount),
		map[string]interface{}{"rentalId": rental.ID, "bookId": book.ID})

	return rental, nil
}

// RequestReturn lets the borrower signal the handover; the lender confirms.
func (s *DefaultRentalService) RequestReturn(borrowerID, rentalID string) error {
	rental, err := s.Rentals.GetByID(rentalID)
	if err != nil {
		return err
	}
	if rental.BorrowerID != borrowerID {
		return makeErr(ErrCodeNotBorrower, "only the borrower can request a return")
	}
	if rental.Status != models.RentalStatusActive && rental.Status != models.RentalStatusOverdue {
		return makeErr(ErrCodeNotOpen, "rental is not open")
	}

	return s.Notifier.Notify(rental.LenderID, "return_requested",
		"The borrower wants to return your book. Confirm once you have it back.",
		map[string]interface{}{"rentalId": rental.ID, "bookId": rental.BookID})
}

// ConfirmReturn closes the rental: the lender confirms the book is back, the
// late fee is settled from the deposit and the remainder is refunded.
func (s *DefaultRentalService) ConfirmReturn(lenderID, rentalID string) (*models.Rental, error) {
	rental, err := s.Rentals.GetByID(rentalID)
	if err != nil {
		return nil, err
	}
	if rental.LenderID != lenderID {
		return nil, makeErr(ErrCodeNotLender, "only the lender can confirm a return")
	}
	if rental.Status != models.RentalStatusActive && rental.Status != models.RentalStatusOverdue {
		return nil, makeErr(ErrCodeNotOpen, "rental is not open")
	}

	book, err := s.Books.GetByID(rental.BookID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	lateFee := LateFee(book.DailyFee, lateFeeBaseline(rental), now)

	if err := s.Rentals.MarkReturned(rentalID, now, lateFee); err != nil {
		return nil, err
	}
	if err := s.Books.SetAvailability(rental.BookID, false, true); err != nil {
		utils.GetLogger().Error("ConfirmReturn: failed to release book",
			zap.String("bookID", rental.BookID), zap.Error(err))
	}
	if err := s.Rentals.SetPaymentStatus(rentalID, models.PaymentStatusSettled); err != nil {
		utils.GetLogger().Error("ConfirmReturn: failed to settle payment status",
			zap.String("rentalID", rentalID), zap.Error(err))
	}

	// Cash rentals settle only here, so this may be the referred borrower's
	// first paid rental.
	if err := s.Credits.CompleteReferralForBorrower(rental.BorrowerID); err != nil {
		utils.GetLogger().Error("ConfirmReturn: referral completion failed",
			zap.String("borrowerID", rental.BorrowerID), zap.Error(err))
	}

	refund := Round2(rental.SecurityDeposit - lateFee)
	_ = s.Notifier.Notify(rental.BorrowerID, "rental_returned",
		fmt.Sprintf("Return confirmed. Deposit refund %.2f (late fee %.2f).", refund, lateFee),
		map[string]interface{}{"rentalId": rental.ID, "refund": refund, "lateFee": lateFee})

	rental.Status = models.RentalStatusReturned
	rental.ActualReturnDate = &now
	rental.LateFee = lateFee
	rental.PaymentStatus = models.PaymentStatusSettled
	return rental, nil
}

// PayLateFees charges the accrued late fee on an overdue rental and stamps
// the point the borrower is paid through, so further lateness accrues from
// there. The due date only moves on extension approval.
func (s *DefaultRentalService) PayLateFees(ctx context.Context, borrowerID, rentalID, method string) (*models.Invoice, error) {
	rental, err := s.Rentals.GetByID(rentalID)
	if err != nil {
		return nil, err
	}
	if rental.BorrowerID != borrowerID {
		return nil, makeErr(ErrCodeNotBorrower, "only the borrower can pay late fees")
	}
	if rental.Status != models.RentalStatusOverdue {
		return nil, makeErr(ErrCodeNotOverdue, "rental has no late fees due")
	}

	book, err := s.Books.GetByID(rental.BookID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	baseline := lateFeeBaseline(rental)
	days := DaysLate(baseline, now)
	if days == 0 {
		return nil, makeErr(ErrCodeNotOverdue, "rental has no late fees due")
	}

	perDay := DailyLateFee(book.DailyFee)
	fee := Round2(float64(days) * perDay)
	if fee > SecurityDeposit {
		// The deposit caps what is collectible; cover only the days it buys.
		days = int(SecurityDeposit / perDay)
		fee = Round2(float64(days) * perDay)
	}
	paidThrough := baseline.Add(time.Duration(days) * 24 * time.Hour)

	invoice, err := s.Payments.ProcessPayment(ctx, models.PaymentRequest{
		UserID:   borrowerID,
		RentalID: rentalID,
		Amount:   fee,
		Currency: currency,
		Method:   method,
	})
	if err != nil {
		return nil, fmt.Errorf("late fee payment failed: %w", err)
	}

	if err := s.Rentals.RecordLateFeePayment(rentalID, paidThrough); err != nil {
		return nil, err
	}

	_ = s.Notifier.Notify(rental.LenderID, "late_fees_paid",
		fmt.Sprintf("Late fees of %.2f were paid on your lent book.", fee),
		map[string]interface{}{"rentalId": rental.ID, "amount": fee})

	return invoice, nil
}

// BorrowerHistory lists the user's rentals as borrower.
func (s *DefaultRentalService) BorrowerHistory(userID string) ([]models.Rental, error) {
	return s.Rentals.ListByBorrower(userID)
}

// LenderHistory lists the user's rentals as lender.
func (s *DefaultRentalService) LenderHistory(userID string) ([]models.Rental, error) {
	return s.Rentals.ListByLender(userID)
}

// GetByID fetches one rental.
func (s *DefaultRentalService) GetByID(rentalID string) (*models.Rental, error) {
	return s.Rentals.GetByID(rentalID)
}

// lateFeeBaseline is the point lateness accrues from: the due date, or the
// last mid-rental late-fee settlement if there was one.
func lateFeeBaseline(rental *models.Rental) time.Time {
	if rental.LateFeesSettledAt != nil && rental.LateFeesSettledAt.After(rental.EndDate) {
		return *rental.LateFeesSettledAt
	}
	return rental.EndDate
}

func (s *DefaultRentalService) lenderCommissionFree(lenderID string) (bool, error) {
	lender, err := s.Users.GetByID(lenderID)
	if err != nil {
		return false, err
	}
	return lender.CommissionFreeUntil != nil && time.Now().Before(*lender.CommissionFreeUntil), nil
}

func memberOf(usr *models.User, societyID string) bool {
	for _, id := range usr.SocietyIDs {
		if id == societyID {
			return true
		}
	}
	return false
}

func invoiceStatusToPaymentStatus(status string) string {
	switch status {
	case "paid":
		return models.PaymentStatusPaid
	case "failed":
		return models.PaymentStatusFailed
	default:
		return models.PaymentStatusPending
	}
}
