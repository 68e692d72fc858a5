package models

import "time"

// Extension request states. Only approval advances the rental's due date.
const (
	ExtensionStatusPending  = "pending"
	ExtensionStatusApproved = "approved"
	ExtensionStatusDenied   = "denied"
)

// ExtensionQuote is the server-computed breakdown for a proposed extension.
type ExtensionQuote struct {
	Days           int       `json:"days"`
	ExtensionFee   float64   `json:"extensionFee"`
	Commission     float64   `json:"commission"`
	LenderEarnings float64   `json:"lenderEarnings"`
	NewDueDate     time.Time `json:"newDueDate"`
}

// ExtensionRequest is a borrower's proposal for extra days, gated on lender
// approval.
type ExtensionRequest struct {
	ID         string `bson:"id" json:"id"`
	RentalID   string `bson:"rental_id" json:"rentalId"`
	BookID     string `bson:"book_id" json:"bookId"`
	BorrowerID string `bson:"borrower_id" json:"borrowerId"`
	LenderID   string `bson:"lender_id" json:"lenderId"`

	Days           int       `bson:"days" json:"days"`
	ExtensionFee   float64   `bson:"extension_fee" json:"extensionFee"`
	Commission     float64   `bson:"commission" json:"commission"`
	LenderEarnings float64   `bson:"lender_earnings" json:"lenderEarnings"`
	NewDueDate     time.Time `bson:"new_due_date" json:"newDueDate"`

	Status    string     `bson:"status" json:"status"`
	DecidedAt *time.Time `bson:"decided_at,omitempty" json:"decidedAt,omitempty"`
	CreatedAt time.Time  `bson:"created_at" json:"createdAt"`
}
