package payment_models

import "time"

// HalfRefundCharge is the share of the total retained when cancelling one
// day before check-in.
const HalfRefundCharge = 0.5

// DaysUntil returns the number of whole calendar days from today to the
// check-in date, ignoring the time of day. Same day is 0, tomorrow is 1,
// past check-ins are negative. Computed on calendar dates rather than a
// day-of-month subtraction so month boundaries do not skew the tiers.
func DaysUntil(today, checkIn time.Time) int {
	t := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	c := time.Date(checkIn.Year(), checkIn.Month(), checkIn.Day(), 0, 0, 0, 0, time.UTC)
	return int(c.Sub(t).Hours() / 24)
}

// CancellationCharge returns the non-refundable portion of totalAmount for a
// confirmed booking cancelled daysBefore days ahead of check-in: the full
// amount on the day itself, half one day before, nothing otherwise.
func CancellationCharge(totalAmount float64, daysBefore int) float64 {
	switch daysBefore {
	case 0:
		return totalAmount
	case 1:
		return HalfRefundCharge * totalAmount
	default:
		return 0
	}
}
