package rental

import (
	"math"

	"bookcircle/models"
)

// Platform pricing policy.
const (
	// CommissionRate is the platform's cut of the base rental fee. Never
	// applied to the deposit.
	CommissionRate = 0.05

	// SecurityDeposit is a flat amount held per rental and refunded at
	// return, less any late fees.
	SecurityDeposit = 100.0
)

// allowedDurations is the fixed set of rental lengths offered to borrowers.
var allowedDurations = map[int]bool{3: true, 7: true, 14: true, 30: true}

// DurationAllowed reports whether days is one of the offered rental lengths.
func DurationAllowed(days int) bool {
	return allowedDurations[days]
}

// Round2 rounds to 2 decimals, half away from zero.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// QuoteRental computes the full cost breakdown for a rental. When the lender
// is inside a commission-free window the platform fee is zero and the full
// rental fee goes to the lender. lenderAmount + platformFee always equals
// rentalFee exactly.
func QuoteRental(dailyFee float64, days int, commissionFree bool) models.RentalQuote {
	rentalFee := Round2(dailyFee * float64(days))

	var platformFee float64
	if !commissionFree {
		platformFee = Round2(rentalFee * CommissionRate)
	}

	return models.RentalQuote{
		DailyFee:        dailyFee,
		DurationDays:    days,
		RentalFee:       rentalFee,
		PlatformFee:     platformFee,
		LenderAmount:    Round2(rentalFee - platformFee),
		SecurityDeposit: SecurityDeposit,
		TotalAmount:     Round2(rentalFee + SecurityDeposit),
	}
}
