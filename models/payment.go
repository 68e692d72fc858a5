package models

import "time"

// Payment methods accepted by the (simulated) gateway.
const (
	PaymentMethodCard   = "card"
	PaymentMethodBrocks = "brocks"
	PaymentMethodCash   = "cash"
)

// PaymentRequest describes one charge to process.
type PaymentRequest struct {
	UserID   string  `json:"userId"`
	RentalID string  `json:"rentalId,omitempty"`
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
	Method   string  `json:"method"`
}

// Invoice is the outcome of a processed payment.
type Invoice struct {
	InvoiceID string    `bson:"invoice_id" json:"invoiceId"`
	UserID    string    `bson:"user_id" json:"userId"`
	RentalID  string    `bson:"rental_id,omitempty" json:"rentalId,omitempty"`
	Amount    float64   `bson:"amount" json:"amount"`
	Currency  string    `bson:"currency" json:"currency"`
	Method    string    `bson:"method" json:"method"`
	Status    string    `bson:"status" json:"status"`
	PaymentID string    `bson:"payment_id,omitempty" json:"paymentId,omitempty"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}
