package rental

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuoteRental(t *testing.T) {
	q := QuoteRental(10, 7, false)

	assert.Equal(t, 10.0, q.DailyFee)
	assert.Equal(t, 7, q.DurationDays)
	assert.Equal(t, 70.0, q.RentalFee)
	assert.Equal(t, 3.5, q.PlatformFee)
	assert.Equal(t, 66.5, q.LenderAmount)
	assert.Equal(t, 100.0, q.SecurityDeposit)
	assert.Equal(t, 170.0, q.TotalAmount)
}

func TestQuoteRentalCommissionFree(t *testing.T) {
	q := QuoteRental(10, 7, true)

	assert.Equal(t, 70.0, q.RentalFee)
	assert.Equal(t, 0.0, q.PlatformFee)
	assert.Equal(t, 70.0, q.LenderAmount)
	assert.Equal(t, 170.0, q.TotalAmount)
}

// The split must account for every cent of the rental fee, including awkward
// daily fees where independent rounding could drift.
func TestQuoteRentalSplitIsExact(t *testing.T) {
	for _, dailyFee := range []float64{1, 7.5, 9.99, 12.33, 33.33, 149.95} {
		for _, days := range []int{3, 7, 14, 30} {
			q := QuoteRental(dailyFee, days, false)
			assert.Equal(t, q.RentalFee, Round2(q.LenderAmount+q.PlatformFee),
				"dailyFee=%v days=%d", dailyFee, days)
			assert.Equal(t, q.TotalAmount, Round2(q.RentalFee+q.SecurityDeposit))
		}
	}
}

func TestDurationAllowed(t *testing.T) {
	for _, days := range []int{3, 7, 14, 30} {
		assert.True(t, DurationAllowed(days), "days=%d", days)
	}
	for _, days := range []int{0, 1, 5, 10, 15, 31, -7} {
		assert.False(t, DurationAllowed(days), "days=%d", days)
	}
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 3.5, Round2(3.5000001))
	assert.Equal(t, 0.13, Round2(0.125))
	assert.Equal(t, 10.0, Round2(9.999))
	assert.Equal(t, -2.5, Round2(-2.499999999))
}
