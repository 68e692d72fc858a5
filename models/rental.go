package models

import "time"

// Rental lifecycle states.
const (
	RentalStatusActive   = "active"
	RentalStatusReturned = "returned"
	RentalStatusOverdue  = "overdue"
)

// Payment states carried on a rental.
const (
	PaymentStatusPending = "pending"
	PaymentStatusPaid    = "paid"
	PaymentStatusSettled = "settled"
	PaymentStatusFailed  = "failed"
)

// RentalQuote is the cost breakdown shown to the borrower before confirming.
type RentalQuote struct {
	DailyFee        float64 `json:"dailyFee"`
	DurationDays    int     `json:"durationDays"`
	RentalFee       float64 `json:"rentalFee"`
	PlatformFee     float64 `json:"platformFee"`
	LenderAmount    float64 `json:"lenderAmount"`
	SecurityDeposit float64 `json:"securityDeposit"`
	TotalAmount     float64 `json:"totalAmount"`
}

// Rental links a book, borrower and lender within a society. History is
// immutable after return; only late-fee settlement may touch PaymentStatus.
type Rental struct {
	ID         string `bson:"id" json:"id"`
	BookID     string `bson:"book_id" json:"bookId"`
	BorrowerID string `bson:"borrower_id" json:"borrowerId"`
	LenderID   string `bson:"lender_id" json:"lenderId"`
	SocietyID  string `bson:"society_id" json:"societyId"`

	StartDate        time.Time  `bson:"start_date" json:"startDate"`
	EndDate          time.Time  `bson:"end_date" json:"endDate"`
	ActualReturnDate *time.Time `bson:"actual_return_date,omitempty" json:"actualReturnDate,omitempty"`
	DurationDays     int        `bson:"duration_days" json:"durationDays"`

	RentalFee       float64 `bson:"rental_fee" json:"rentalFee"`
	PlatformFee     float64 `bson:"platform_fee" json:"platformFee"`
	LenderAmount    float64 `bson:"lender_amount" json:"lenderAmount"`
	SecurityDeposit float64 `bson:"security_deposit" json:"securityDeposit"`
	TotalAmount     float64 `bson:"total_amount" json:"totalAmount"`
	LateFee         float64 `bson:"late_fee" json:"lateFee"`

	// LateFeesSettledAt marks the point late fees were last paid mid-rental.
	// Further lateness accrues from here; the due date itself only moves on
	// extension approval.
	LateFeesSettledAt *time.Time `bson:"late_fees_settled_at,omitempty" json:"lateFeesSettledAt,omitempty"`

	Status        string `bson:"status" json:"status"`
	PaymentStatus string `bson:"payment_status" json:"paymentStatus"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// BorrowRequest is the payload to start a rental.
type BorrowRequest struct {
	BookID        string `json:"bookId"`
	DurationDays  int    `json:"durationDays"`
	PaymentMethod string `json:"paymentMethod"`
}
