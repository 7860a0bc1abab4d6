package holdings

import (
	"github.com/aristath/dca-lab/internal/domain"
	"github.com/aristath/dca-lab/pkg/formulas"
)

// Holding is a user-declared position, independent of any simulation run.
// Planned holdings are tracked the same way but carry no weight until bought.
type Holding struct {
	ID         int64             `json:"id"`
	Ticker     string            `json:"ticker"`
	Shares     float64           `json:"shares"`
	EntryPrice float64           `json:"entry_price"`
	AssetClass domain.AssetClass `json:"asset_class"`
	Planned    bool              `json:"planned"`
	CreatedAt  string            `json:"created_at"`
}

// Report is one holding paired with its live price and derived signals
type Report struct {
	Ticker       string                   `json:"ticker"`
	Shares       float64                  `json:"shares"`
	EntryPrice   float64                  `json:"entry_price"`
	CurrentPrice float64                  `json:"current_price"`
	MarketValue  float64                  `json:"market_value"`
	GainLoss     float64                  `json:"gain_loss"`
	GainLossPct  float64                  `json:"gain_loss_pct"`
	WeightPct    float64                  `json:"weight_pct"`
	Risk         float64                  `json:"risk"`
	Action       string                   `json:"action"`
	RSI14        *float64                 `json:"rsi_14,omitempty"`
	Projection   *formulas.CAGRProjection `json:"projection,omitempty"`
	Planned      bool                     `json:"planned"`
}

// PortfolioReport is the aggregated holdings view
type PortfolioReport struct {
	TotalValue    float64  `json:"total_value"`
	TotalCost     float64  `json:"total_cost"`
	TotalGainLoss float64  `json:"total_gain_loss"`
	Holdings      []Report `json:"holdings"`
}
