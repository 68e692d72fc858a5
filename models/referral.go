package models

import "time"

// Referral states.
const (
	ReferralStatusPending   = "pending"
	ReferralStatusCompleted = "completed"
)

// Referral tracks one referred signup. It completes on the referred user's
// first paid rental.
type Referral struct {
	ID           string     `bson:"id" json:"id"`
	ReferrerID   string     `bson:"referrer_id" json:"referrerId"`
	ReferredID   string     `bson:"referred_id" json:"referredId"`
	ReferralCode string     `bson:"referral_code" json:"referralCode"`
	Status       string     `bson:"status" json:"status"`
	CompletedAt  *time.Time `bson:"completed_at,omitempty" json:"completedAt,omitempty"`
	CreatedAt    time.Time  `bson:"created_at" json:"createdAt"`
}
