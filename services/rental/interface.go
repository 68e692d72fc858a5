package rental

import (
	"context"

	bookRepo "bookcircle/database/repository/book"
	rentalRepo "bookcircle/database/repository/rental"
	userRepo "bookcircle/database/repository/user"
	"bookcircle/models"
	"bookcircle/services/credit"
	"bookcircle/services/notification"
	"bookcircle/services/payment"
)

// RentalService drives the full rental lifecycle.
type RentalService interface {
	Quote(bookID string, days int) (*models.RentalQuote, error)
	Borrow(ctx context.Context, borrowerID string, req models.BorrowRequest) (*models.Rental, error)

	RequestReturn(borrowerID, rentalID string) error
	ConfirmReturn(lenderID, rentalID string) (*models.Rental, error)
	PayLateFees(ctx context.Context, borrowerID, rentalID, method string) (*models.Invoice, error)

	BorrowerHistory(userID string) ([]models.Rental, error)
	LenderHistory(userID string) ([]models.Rental, error)
	GetByID(rentalID string) (*models.Rental, error)

	CalculateExtension(borrowerID, rentalID string, days int) (*models.ExtensionQuote, error)
	RequestExtension(borrowerID, rentalID string, days int) (*models.ExtensionRequest, error)
	DecideExtension(ctx context.Context, lenderID, requestID string, approve bool) (*models.ExtensionRequest, error)
	ListExtensionRequests(lenderID, status string) ([]models.ExtensionRequest, error)
}

// DefaultRentalService is the production implementation.
type DefaultRentalService struct {
	Rentals  rentalRepo.RentalRepository
	Books    bookRepo.BookRepository
	Users    userRepo.UserRepository
	Payments payment.PaymentHandler
	Credits  credit.CreditService
	Notifier notification.NotificationService
}
