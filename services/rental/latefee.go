package rental

import (
	"math"
	"time"
)

// LateFeeRate is the fraction of the book's daily fee charged per overdue
// day. One rate platform-wide; late fees never exceed the security deposit.
const LateFeeRate = 0.5

// DaysLate returns the number of started overdue days, zero when the rental
// is not past due.
func DaysLate(due, now time.Time) int {
	if !now.After(due) {
		return 0
	}
	return int(math.Ceil(now.Sub(due).Hours() / 24))
}

// DailyLateFee is the per-day overdue charge for a book.
func DailyLateFee(dailyFee float64) float64 {
	return Round2(dailyFee * LateFeeRate)
}

// LateFee computes the accrued late fee, capped at the security deposit so a
// return can always settle out of the held deposit.
func LateFee(dailyFee float64, due, now time.Time) float64 {
	fee := Round2(float64(DaysLate(due, now)) * DailyLateFee(dailyFee))
	if fee > SecurityDeposit {
		return SecurityDeposit
	}
	return fee
}
