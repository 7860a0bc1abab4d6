package simulation

import (
	"math"
	"time"
)

const millisPerMonth = 30.44 * 24 * float64(time.Hour/time.Millisecond)

// Strike returns the fixed-discount strike of the position
func (p LeapPosition) Strike() float64 {
	return p.EntryPrice * leapStrikeDiscount
}

// intrinsicAt returns the option's intrinsic value at a spot price
func (p LeapPosition) intrinsicAt(price float64) float64 {
	return math.Max(0, price-p.Strike()) * float64(p.NotionalShares)
}

// MarkToMarket approximates the position's reportable value at a point in
// time: intrinsic value plus the entry extrinsic decayed linearly to zero
// over the term. This is an intentionally simplified model used for the
// equity curve only, never for realized totals.
func (p LeapPosition) MarkToMarket(price float64, atMillis int64) float64 {
	extrinsicAtEntry := math.Max(0, p.Cost-p.intrinsicAt(p.EntryPrice))

	elapsedMonths := float64(atMillis-p.EntryTimestamp) / millisPerMonth
	remaining := 1 - elapsedMonths/float64(p.TermMonths)
	if remaining < 0 {
		remaining = 0
	}

	return p.intrinsicAt(price) + extrinsicAtEntry*remaining
}

// settle realizes the position at expiry against the spot price and returns
// the realized profit or loss
func (p LeapPosition) settle(price float64) float64 {
	return p.intrinsicAt(price) - p.Cost
}

// openLeapValue sums the mark-to-market value of all open positions
func openLeapValue(positions []LeapPosition, price float64, atMillis int64) float64 {
	total := 0.0
	for _, p := range positions {
		total += p.MarkToMarket(price, atMillis)
	}
	return total
}
