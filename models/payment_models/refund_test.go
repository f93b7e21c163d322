package payment_models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDaysUntil(t *testing.T) {
	day := func(y int, m time.Month, d int) time.Time {
		return time.Date(y, m, d, 15, 30, 0, 0, time.UTC)
	}

	assert.Equal(t, 0, DaysUntil(day(2024, time.June, 10), day(2024, time.June, 10)))
	assert.Equal(t, 1, DaysUntil(day(2024, time.June, 10), day(2024, time.June, 11)))
	assert.Equal(t, 5, DaysUntil(day(2024, time.June, 10), day(2024, time.June, 15)))
	assert.Equal(t, -3, DaysUntil(day(2024, time.June, 10), day(2024, time.June, 7)))

	// Month boundary: cancelling on May 30 for a June 1 check-in is two
	// days out, not a day-of-month subtraction gone negative.
	assert.Equal(t, 2, DaysUntil(day(2024, time.May, 30), day(2024, time.June, 1)))
	// Year boundary.
	assert.Equal(t, 1, DaysUntil(day(2024, time.December, 31), day(2025, time.January, 1)))
}

func TestCancellationCharge(t *testing.T) {
	total := 1000.0

	t.Run("SameDayChargesFullAmount", func(t *testing.T) {
		charge := CancellationCharge(total, 0)
		assert.InDelta(t, 1000.0, charge, 1e-9)
		assert.InDelta(t, 0.0, total-charge, 1e-9, "no refund on the day of check-in")
	})

	t.Run("OneDayBeforeChargesHalf", func(t *testing.T) {
		charge := CancellationCharge(total, 1)
		assert.InDelta(t, 500.0, charge, 1e-9)
		assert.InDelta(t, 500.0, total-charge, 1e-9)
	})

	t.Run("EarlierCancellationIsFree", func(t *testing.T) {
		for _, days := range []int{2, 7, 30} {
			charge := CancellationCharge(total, days)
			assert.InDelta(t, 0.0, charge, 1e-9)
			assert.InDelta(t, 1000.0, total-charge, 1e-9)
		}
	})
}
