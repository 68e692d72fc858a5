package credit

import (
	"fmt"
	"time"

	creditRepo "bookcircle/database/repository/credit"
	rentalRepo "bookcircle/database/repository/rental"
	userRepo "bookcircle/database/repository/user"
	"bookcircle/models"
	"bookcircle/services/notification"
	"bookcircle/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Brocks awarded per event.
const (
	ReferrerBonus = 50
	ReferredBonus = 25
	UploadReward  = 10
)

// ErrInsufficientCredits is re-exported for callers that never touch the repo.
var ErrInsufficientCredits = creditRepo.ErrInsufficientCredits

// CreditService manages the Brocks ledger and referral rewards.
type CreditService interface {
	Balance(userID string) (*models.CreditBalance, error)
	Transactions(userID string) ([]models.CreditTransaction, error)

	Award(userID string, amount int, creditType, reason, refID string) error
	Spend(userID string, amount int, reason, refID string) error

	RecordReferral(referrerID, referredID, code string) error
	// CompleteReferralForBorrower completes the borrower's pending referral
	// once their first rental charge settles. A no-op for unreferred users or
	// later rentals.
	CompleteReferralForBorrower(borrowerID string) error

	BadgesFor(user *models.User) []models.Badge
}

// DefaultCreditService is the production implementation.
type DefaultCreditService struct {
	Repo     creditRepo.CreditRepository
	Users    userRepo.UserRepository
	Rentals  rentalRepo.RentalRepository
	Notifier notification.NotificationService
}

// Balance returns the user's Brocks balance.
func (s *DefaultCreditService) Balance(userID string) (*models.CreditBalance, error) {
	return s.Repo.GetBalance(userID)
}

// Transactions returns the user's ledger, newest first.
func (s *DefaultCreditService) Transactions(userID string) ([]models.CreditTransaction, error) {
	return s.Repo.ListTransactions(userID)
}

// Award credits Brocks to a user.
func (s *DefaultCreditService) Award(userID string, amount int, creditType, reason, refID string) error {
	if amount <= 0 {
		return fmt.Errorf("award amount must be positive")
	}
	_, err := s.Repo.ApplyTransaction(&models.CreditTransaction{
		ID:     uuid.New().String(),
		UserID: userID,
		Amount: amount,
		Type:   creditType,
		Reason: reason,
		RefID:  refID,
	})
	return err
}

// Spend debits Brocks from a user.
func (s *DefaultCreditService) Spend(userID string, amount int, reason, refID string) error {
	if amount <= 0 {
		return fmt.Errorf("spend amount must be positive")
	}
	_, err := s.Repo.ApplyTransaction(&models.CreditTransaction{
		ID:     uuid.New().String(),
		UserID: userID,
		Amount: -amount,
		Type:   models.CreditTypeSpend,
		Reason: reason,
		RefID:  refID,
	})
	return err
}

// RecordReferral stores a pending referral at signup time.
func (s *DefaultCreditService) RecordReferral(referrerID, referredID, code string) error {
	return s.Repo.CreateReferral(&models.Referral{
		ID:           uuid.New().String(),
		ReferrerID:   referrerID,
		ReferredID:   referredID,
		ReferralCode: code,
		Status:       models.ReferralStatusPending,
	})
}

// CompleteReferralForBorrower settles the referral reward after the referred
// user's first paid rental.
func (s *DefaultCreditService) CompleteReferralForBorrower(borrowerID string) error {
	ref, err := s.Repo.GetPendingReferralByReferred(borrowerID)
	if err != nil {
		return err
	}
	if ref == nil {
		return nil
	}

	paid, err := s.Rentals.CountPaidByBorrower(borrowerID)
	if err != nil {
		return err
	}
	if paid == 0 {
		return nil
	}

	now := time.Now()
	if err := s.Repo.CompleteReferral(ref.ID, now); err != nil {
		// Another return path completed it concurrently; the reward was
		// already granted there.
		utils.GetLogger().Debug("referral already completed", zap.String("referralID", ref.ID))
		return nil
	}

	if err := s.Award(ref.ReferrerID, ReferrerBonus, models.CreditTypeReferralBonus,
		"referral completed", ref.ID); err != nil {
		return err
	}
	if err := s.Award(ref.ReferredID, ReferredBonus, models.CreditTypeReferralBonus,
		"welcome referral bonus", ref.ID); err != nil {
		return err
	}

	if err := s.Users.IncrementReferralStats(ref.ReferrerID, 1, float64(ReferrerBonus)); err != nil {
		return err
	}

	_ = s.Notifier.Notify(ref.ReferrerID, "referral_completed",
		fmt.Sprintf("Your referral completed their first rental. You earned %d Brocks.", ReferrerBonus),
		map[string]interface{}{"referralId": ref.ID})
	_ = s.Notifier.Notify(ref.ReferredID, "referral_bonus",
		fmt.Sprintf("You earned %d Brocks for joining via a referral.", ReferredBonus),
		map[string]interface{}{"referralId": ref.ID})

	return nil
}

var referralBadges = []models.Badge{
	{Name: "First Referral", Threshold: 1, Kind: "referral"},
	{Name: "Connector", Threshold: 5, Kind: "referral"},
	{Name: "Community Builder", Threshold: 10, Kind: "referral"},
}

var uploadBadges = []models.Badge{
	{Name: "Shelf Starter", Threshold: 5, Kind: "upload"},
	{Name: "Librarian", Threshold: 20, Kind: "upload"},
}

// BadgesFor derives earned badges from the user's counters.
func (s *DefaultCreditService) BadgesFor(user *models.User) []models.Badge {
	var earned []models.Badge
	for _, b := range referralBadges {
		if user.TotalReferrals >= b.Threshold {
			earned = append(earned, b)
		}
	}
	for _, b := range uploadBadges {
		if user.BooksUploaded >= b.Threshold {
			earned = append(earned, b)
		}
	}
	return earned
}
