package rentalRepo

import (
	"time"

	"bookcircle/models"
)

// RentalRepository defines persistence operations for rentals and their
// extension requests.
type RentalRepository interface {
	Create(rental *models.Rental) error
	GetByID(id string) (*models.Rental, error)

	ListByBorrower(userID string) ([]models.Rental, error)
	ListByLender(userID string) ([]models.Rental, error)

	// ListAll returns every rental, optionally filtered by status. Admin use.
	ListAll(status string) ([]models.Rental, error)

	// MarkReturned transitions an active or overdue rental to returned and
	// records the actual return date and accrued late fee.
	MarkReturned(id string, returnedAt time.Time, lateFee float64) error

	SetPaymentStatus(id, status string) error
	CountPaidByBorrower(userID string) (int64, error)

	// AdvanceEndDate moves the due date forward on an open rental. Used only
	// by extension approval.
	AdvanceEndDate(id string, newDue time.Time) error

	// RecordLateFeePayment stamps the settle point on an overdue rental so
	// further lateness accrues from it. The due date is not touched.
	RecordLateFeePayment(id string, at time.Time) error

	// MarkOverdue flags active rentals past their due date and returns the
	// rentals that were flipped.
	MarkOverdue(now time.Time) ([]models.Rental, error)

	// ListDueBetween returns active rentals whose due date falls in the
	// window, for reminder delivery.
	ListDueBetween(from, to time.Time) ([]models.Rental, error)

	CreateExtension(req *models.ExtensionRequest) error
	GetExtensionByID(id string) (*models.ExtensionRequest, error)
	GetPendingExtensionByRental(rentalID string) (*models.ExtensionRequest, error)
	ListExtensionsByLender(lenderID, status string) ([]models.ExtensionRequest, error)

	// DecideExtension transitions a pending request to approved or denied.
	DecideExtension(id, status string, decidedAt time.Time) error
}
