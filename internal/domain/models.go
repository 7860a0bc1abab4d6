package domain

import "time"

// Cadence controls how often the purchase scheduler fires
type Cadence string

const (
	CadenceDaily   Cadence = "daily"
	CadenceWeekly  Cadence = "weekly"
	CadenceMonthly Cadence = "monthly"
)

// SizingMode selects how each scheduled purchase is sized
type SizingMode string

const (
	SizingEqualAmount SizingMode = "equal-amount"
	SizingLumpSum     SizingMode = "lump-sum"
	SizingTiered      SizingMode = "tiered"
)

// TierGrowth selects how multipliers grow as risk falls
type TierGrowth string

const (
	TierGrowthLinear      TierGrowth = "linear"
	TierGrowthExponential TierGrowth = "exponential"
)

// AssetClass groups tickers for the default risk offset applied when scoring
type AssetClass string

const (
	AssetClassEquity AssetClass = "equity"
	AssetClassETF    AssetClass = "etf"
	AssetClassCrypto AssetClass = "crypto"
)

// PricePoint is one day of a historical price series.
// Timestamps are epoch milliseconds and strictly increasing within a series.
type PricePoint struct {
	Timestamp int64   `json:"timestamp"`
	Price     float64 `json:"price"`
}

// Time returns the point's timestamp as UTC time
func (p PricePoint) Time() time.Time {
	return time.UnixMilli(p.Timestamp).UTC()
}

// ScoredPricePoint is a PricePoint augmented with its trend measure.
// Derived once per series and treated as immutable afterwards.
type ScoredPricePoint struct {
	PricePoint
	MovingAverage float64 `json:"moving_average"`
	Risk          float64 `json:"risk"`
}
