package simulation

import (
	"github.com/aristath/dca-lab/internal/domain"
	"github.com/aristath/dca-lab/pkg/formulas"
)

// Engine constants. These are design constants of the strategy model, not
// tunables of the run contract.
const (
	sellThresholdRisk  = 0.90
	sellFraction       = 0.10
	leapLowRiskZone    = 0.10
	leapStrikeDiscount = 0.92
	leapTermMonths     = 18
	contractShares     = 100
	curveSampleEvery   = 3
)

// InitialPosition injects an existing lot directly into the running totals,
// bypassing tier logic. A date before the simulated range injects on day 0.
type InitialPosition struct {
	Date     int64   `json:"date"` // epoch milliseconds
	Shares   float64 `json:"shares"`
	AvgPrice float64 `json:"avg_price"`
}

// LeapParams enables leveraged long-dated option entries in the low-risk zone
type LeapParams struct {
	LowRiskZoneEnabled bool    `json:"low_risk_zone_enabled"`
	CostPct            float64 `json:"cost_pct"` // fraction of spot per share, [0.20, 0.60]
	Delta              float64 `json:"delta"`    // [0.60, 0.90]
}

// CoveredCallParams enables premium income at high risk readings
type CoveredCallParams struct {
	MonthlyPremiumPct float64 `json:"monthly_premium_pct"` // [0.10, 2.00]
}

// Params configures one simulation run
type Params struct {
	Mode        domain.SizingMode  `json:"mode"`
	BaseAmount  float64            `json:"base_amount"`
	Cadence     domain.Cadence     `json:"cadence"`
	AnchorDay   int                `json:"anchor_day"` // day of month, [1, 28]
	BandIndex   int                `json:"band_index"` // [0, 6]
	TierGrowth  domain.TierGrowth  `json:"tier_growth"`
	RiskOffset  float64            `json:"risk_offset"` // [-0.20, 0.20]
	SellEnabled bool               `json:"sell_enabled"`
	Initial     *InitialPosition   `json:"initial,omitempty"`
	Leap        *LeapParams        `json:"leap,omitempty"`
	CoveredCall *CoveredCallParams `json:"covered_call,omitempty"`
}

// LeapPosition is an open long-dated option lot. Positions are owned
// exclusively by one run's state and transition irreversibly from open to
// closed at expiry; no early exercise is modeled.
type LeapPosition struct {
	EntryPrice      float64 `json:"entry_price"`
	NotionalShares  int     `json:"notional_shares"` // always a multiple of 100
	Contracts       int     `json:"contracts"`
	Cost            float64 `json:"cost"`
	Delta           float64 `json:"delta"`
	EntryTimestamp  int64   `json:"entry_timestamp"`
	TermMonths      int     `json:"term_months"`
	ExpiryTimestamp int64   `json:"expiry_timestamp"`
}

// ActionKind labels what a ledger entry primarily records
type ActionKind string

const (
	ActionInitialLot  ActionKind = "initial-lot"
	ActionBuy         ActionKind = "buy"
	ActionLeapOpen    ActionKind = "leap-open"
	ActionLeapExpiry  ActionKind = "leap-expiry"
	ActionSell        ActionKind = "sell"
	ActionCoveredCall ActionKind = "covered-call"
	ActionHold        ActionKind = "hold"
)

// LeapDetail captures the option specifics of a ledger entry
type LeapDetail struct {
	Contracts      int     `json:"contracts"`
	NotionalShares int     `json:"notional_shares"`
	Strike         float64 `json:"strike"`
	Cost           float64 `json:"cost,omitempty"`
	RealizedPnl    float64 `json:"realized_pnl,omitempty"`
}

// LedgerEntry is one simulated event with running totals snapshotted after
// all of the day's effects. The ledger is append-only and chronological.
type LedgerEntry struct {
	Date            string      `json:"date"` // YYYY-MM-DD
	Action          ActionKind  `json:"action"`
	Risk            float64     `json:"risk"`
	Price           float64     `json:"price"`
	PurchaseAmount  float64     `json:"purchase_amount,omitempty"`
	SellProceeds    float64     `json:"sell_proceeds,omitempty"`
	PremiumIncome   float64     `json:"premium_income,omitempty"`
	Leap            *LeapDetail `json:"leap,omitempty"`
	RunningShares   float64     `json:"running_shares"`
	RunningInvested float64     `json:"running_invested"`
	RunningValue    float64     `json:"running_value"`
}

// EquityPoint is one sparse sample of the equity curve
type EquityPoint struct {
	Label           string  `json:"label"`
	Price           float64 `json:"price"`
	Invested        float64 `json:"invested"`
	PortfolioValue  float64 `json:"portfolio_value"`
	LumpSumBaseline float64 `json:"lump_sum_baseline"`
}

// RiskPoint is one full-resolution sample of the risk series
type RiskPoint struct {
	Label string  `json:"label"`
	Risk  float64 `json:"risk"`
}

// Stats summarizes a completed run
type Stats struct {
	TotalInvested      float64  `json:"total_invested"`
	TotalSharesHeld    float64  `json:"total_shares_held"`
	AverageCost        float64  `json:"average_cost"`
	LastPrice          float64  `json:"last_price"`
	PortfolioValue     float64  `json:"portfolio_value"`
	UnrealizedGain     float64  `json:"unrealized_gain"`
	UnrealizedGainPct  float64  `json:"unrealized_gain_pct"`
	BuyCount           int      `json:"buy_count"`
	SellCount          int      `json:"sell_count"`
	TotalSellProceeds  float64  `json:"total_sell_proceeds"`
	LeapOpenCount      int      `json:"leap_open_count"`
	LeapClosedCount    int      `json:"leap_closed_count"`
	LeapRealizedPnl    float64  `json:"leap_realized_pnl"`
	CoveredCallCount   int      `json:"covered_call_count"`
	TotalPremiumIncome float64  `json:"total_premium_income"`
	HoldBaselineValue  float64  `json:"hold_baseline_value"` // value had sells never happened
	AnnualizedVolPct   float64  `json:"annualized_vol_pct"`
	MaxDrawdownPct     float64  `json:"max_drawdown_pct"`
	Sharpe             *float64 `json:"sharpe,omitempty"`
}

// Result bundles everything one run produces
type Result struct {
	Ledger      []LedgerEntry `json:"ledger"`
	EquityCurve []EquityPoint `json:"equity_curve"`
	RiskSeries  []RiskPoint   `json:"risk_series"`
	Stats       Stats         `json:"stats"`
}

// state is the mutable accumulator for a single run. It is created fresh per
// run, mutated across one forward pass over the days, converted into the
// immutable Result at the end, and never reused or aliased across runs.
type state struct {
	invested            float64
	shares              float64
	sharesIgnoringSells float64
	sellProceeds        float64
	sellCostBasis       float64
	leapRealizedPnl     float64
	premiumIncome       float64
	openLeaps           []LeapPosition
	buyCount            int
	sellCount           int
	leapOpenCount       int
	leapClosedCount     int
	coveredCallCount    int
}

// averageCost returns the average price paid per unit currently held, or 0
// when no shares are held
func (s *state) averageCost() float64 {
	if s.shares <= 0 {
		return 0
	}
	return s.invested / s.shares
}

func round2(v float64) float64 { return formulas.Round(v, 2) }
