package simulation

import (
	"math"

	"github.com/aristath/dca-lab/internal/domain"
	"github.com/aristath/dca-lab/pkg/formulas"
)

// buildStats converts the final run state into summary statistics. Every
// division guards the zero-denominator case by reporting 0.
func buildStats(st *state, last domain.ScoredPricePoint, curve []EquityPoint) Stats {
	lastPrice := last.Price

	value := st.shares*lastPrice + openLeapValue(st.openLeaps, lastPrice, last.Timestamp)

	gain := value - st.invested
	gainPct := 0.0
	if st.invested > 0 {
		gainPct = gain / st.invested * 100
	}

	stats := Stats{
		TotalInvested:      round2(st.invested),
		TotalSharesHeld:    st.shares,
		AverageCost:        round2(st.averageCost()),
		LastPrice:          lastPrice,
		PortfolioValue:     round2(value),
		UnrealizedGain:     round2(gain),
		UnrealizedGainPct:  round2(gainPct),
		BuyCount:           st.buyCount,
		SellCount:          st.sellCount,
		TotalSellProceeds:  round2(st.sellProceeds),
		LeapOpenCount:      st.leapOpenCount,
		LeapClosedCount:    st.leapClosedCount,
		LeapRealizedPnl:    round2(st.leapRealizedPnl),
		CoveredCallCount:   st.coveredCallCount,
		TotalPremiumIncome: round2(st.premiumIncome),
		HoldBaselineValue:  round2(st.sharesIgnoringSells * lastPrice),
	}

	// Equity-curve analytics on the sampled portfolio values
	values := make([]float64, 0, len(curve))
	for _, p := range curve {
		if p.PortfolioValue > 0 {
			values = append(values, p.PortfolioValue)
		}
	}
	if len(values) >= 2 {
		returns := formulas.Returns(values)
		// Samples are every third day, so 84 periods per year
		stats.AnnualizedVolPct = round2(formulas.StdDev(returns) * math.Sqrt(periodsPerYear) * 100)
		stats.Sharpe = formulas.SharpeRatio(returns, 0.02, periodsPerYear)
		if dd := formulas.MaxDrawdown(values); dd != nil {
			stats.MaxDrawdownPct = round2(*dd * 100)
		}
	}

	return stats
}

const periodsPerYear = 252 / curveSampleEvery
