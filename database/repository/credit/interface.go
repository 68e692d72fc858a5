package creditRepo

import (
	"time"

	"bookcircle/models"
)

// CreditRepository defines persistence for the Brocks ledger and referrals.
type CreditRepository interface {
	// GetBalance returns the user's balance, zero-valued when no credits have
	// ever been recorded.
	GetBalance(userID string) (*models.CreditBalance, error)

	// ApplyTransaction appends a ledger entry and adjusts the balance by the
	// entry's signed amount. Debits that would push the balance negative fail
	// without writing anything.
	ApplyTransaction(txn *models.CreditTransaction) (*models.CreditBalance, error)

	ListTransactions(userID string) ([]models.CreditTransaction, error)

	CreateReferral(ref *models.Referral) error
	GetPendingReferralByReferred(referredID string) (*models.Referral, error)
	CompleteReferral(id string, completedAt time.Time) error
}
