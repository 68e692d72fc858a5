package credit

import (
	"testing"

	"bookcircle/models"

	"github.com/stretchr/testify/assert"
)

func badgeNames(badges []models.Badge) []string {
	names := make([]string, 0, len(badges))
	for _, b := range badges {
		names = append(names, b.Name)
	}
	return names
}

func TestBadgesForNewUser(t *testing.T) {
	svc := &DefaultCreditService{}
	usr := &models.User{}

	assert.Empty(t, svc.BadgesFor(usr))
}

func TestBadgesForReferralThresholds(t *testing.T) {
	svc := &DefaultCreditService{}

	assert.Equal(t, []string{"First Referral"},
		badgeNames(svc.BadgesFor(&models.User{TotalReferrals: 1})))
	assert.Equal(t, []string{"First Referral", "Connector"},
		badgeNames(svc.BadgesFor(&models.User{TotalReferrals: 5})))
	assert.Equal(t, []string{"First Referral", "Connector", "Community Builder"},
		badgeNames(svc.BadgesFor(&models.User{TotalReferrals: 25})))
}

func TestBadgesForUploadThresholds(t *testing.T) {
	svc := &DefaultCreditService{}

	assert.Empty(t, svc.BadgesFor(&models.User{BooksUploaded: 4}))
	assert.Equal(t, []string{"Shelf Starter"},
		badgeNames(svc.BadgesFor(&models.User{BooksUploaded: 5})))
	assert.Equal(t, []string{"Shelf Starter", "Librarian"},
		badgeNames(svc.BadgesFor(&models.User{BooksUploaded: 20})))
}

func TestBadgesForMixedCounters(t *testing.T) {
	svc := &DefaultCreditService{}
	usr := &models.User{TotalReferrals: 1, BooksUploaded: 5}

	assert.ElementsMatch(t, []string{"First Referral", "Shelf Starter"},
		badgeNames(svc.BadgesFor(usr)))
}
