package rental

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDaysLate(t *testing.T) {
	due := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, 0, DaysLate(due, due))
	assert.Equal(t, 0, DaysLate(due, due.Add(-48*time.Hour)))

	// A started overdue day counts as a full day.
	assert.Equal(t, 1, DaysLate(due, due.Add(1*time.Hour)))
	assert.Equal(t, 1, DaysLate(due, due.Add(24*time.Hour)))
	assert.Equal(t, 2, DaysLate(due, due.Add(25*time.Hour)))
	assert.Equal(t, 3, DaysLate(due, due.Add(72*time.Hour)))
}

func TestDailyLateFee(t *testing.T) {
	assert.Equal(t, 5.0, DailyLateFee(10))
	assert.Equal(t, 0.13, DailyLateFee(0.25))
}

func TestLateFee(t *testing.T) {
	due := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

	// On time: nothing owed.
	assert.Equal(t, 0.0, LateFee(10, due, due))

	// Three days late on a 10/day book at half rate.
	assert.Equal(t, 15.0, LateFee(10, due, due.Add(72*time.Hour)))
}

func TestLateFeeCappedAtDeposit(t *testing.T) {
	due := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

	// 30 days late at 5/day would be 150; the deposit is the ceiling.
	got := LateFee(10, due, due.AddDate(0, 0, 30))
	assert.Equal(t, SecurityDeposit, got)
}
