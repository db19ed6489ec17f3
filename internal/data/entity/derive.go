package entity

import (
	"time"
)

// Derived fields are recomputed by the pure functions below at the start of
// every mutating operation, never by save-time hooks, so a partial update
// can't skip them silently.

// RentalDays is ceil(|end-start| / 24h) with a minimum of one day.
func RentalDays(start, end time.Time) int {
	d := end.Sub(start)
	if d < 0 {
		d = -d
	}
	days := int((d + 24*time.Hour - 1) / (24 * time.Hour))
	if days < 1 {
		days = 1
	}
	return days
}

// RentalTotal is days × pricePerDay × quantity in minor units.
func RentalTotal(days int, pricePerDay int64, quantity int) int64 {
	return int64(days) * pricePerDay * int64(quantity)
}

// ReviewAggregate recomputes the listing aggregates from the full rating
// list: mean rating (0 when empty) and count.
func ReviewAggregate(ratings []int) (average float64, total int) {
	if len(ratings) == 0 {
		return 0, 0
	}
	sum := 0
	for _, r := range ratings {
		sum += r
	}
	return float64(sum) / float64(len(ratings)), len(ratings)
}

// SplitFee divides total into an admin commission and a counterpart share.
// Commission is total × bps / 10000 rounded half up in integer arithmetic;
// the remainder goes to the share, so commission + share == total exactly.
func SplitFee(total int64, commissionBps int64) (commission, share int64) {
	commission = (total*commissionBps + 5000) / 10000
	return commission, total - commission
}

// StockAvailable derives a listing's availability flag.
func StockAvailable(stock int) bool {
	return stock > 0
}
