package rental

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestQuoteExtension(t *testing.T) {
	end := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

	q := QuoteExtension(10, 7, end, false)

	assert.Equal(t, 7, q.Days)
	assert.Equal(t, 70.0, q.ExtensionFee)
	assert.Equal(t, 3.5, q.Commission)
	assert.Equal(t, 66.5, q.LenderEarnings)
	assert.Equal(t, end.AddDate(0, 0, 7), q.NewDueDate)
}

func TestQuoteExtensionCommissionFree(t *testing.T) {
	end := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

	q := QuoteExtension(10, 3, end, true)

	assert.Equal(t, 30.0, q.ExtensionFee)
	assert.Equal(t, 0.0, q.Commission)
	assert.Equal(t, 30.0, q.LenderEarnings)
	assert.Equal(t, end.AddDate(0, 0, 3), q.NewDueDate)
}

// No deposit is held for extensions; the borrower already has one on the
// underlying rental.
func TestQuoteExtensionSplitIsExact(t *testing.T) {
	end := time.Now()
	for _, dailyFee := range []float64{2.5, 9.99, 33.33} {
		q := QuoteExtension(dailyFee, 14, end, false)
		assert.Equal(t, q.ExtensionFee, Round2(q.LenderEarnings+q.Commission))
	}
}
