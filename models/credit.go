package models

import "time"

// Credit transaction types ("Brocks" ledger).
const (
	CreditTypeReferralBonus = "referral_bonus"
	CreditTypeUploadReward  = "upload_reward"
	CreditTypeSpend         = "spend"
	CreditTypeRefund        = "refund"
	CreditTypeAdminGrant    = "admin_grant"
)

// CreditBalance is the per-user Brocks balance. It must always equal the sum
// of the user's credit transactions.
type CreditBalance struct {
	UserID    string    `bson:"user_id" json:"userId"`
	Balance   int       `bson:"balance" json:"balance"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// CreditTransaction is one append-only ledger entry. Amount is signed.
type CreditTransaction struct {
	ID        string    `bson:"id" json:"id"`
	UserID    string    `bson:"user_id" json:"userId"`
	Amount    int       `bson:"amount" json:"amount"`
	Type      string    `bson:"type" json:"type"`
	Reason    string    `bson:"reason,omitempty" json:"reason,omitempty"`
	RefID     string    `bson:"ref_id,omitempty" json:"refId,omitempty"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
}

// Badge is a derived engagement marker, never stored.
type Badge struct {
	Name      string `json:"name"`
	Threshold int    `json:"threshold"`
	Kind      string `json:"kind"`
}
