package simulation

import (
	"math"

	"github.com/rs/zerolog"

	"github.com/aristath/dca-lab/internal/domain"
	"github.com/aristath/dca-lab/internal/modules/risk"
	"github.com/aristath/dca-lab/internal/modules/tiers"
)

// Engine runs the day-by-day portfolio and derivatives accounting loop.
// Run is pure given its inputs: a single synchronous forward pass, no I/O,
// no internal parallelism. Each invocation owns one state value for its
// duration and discards it afterwards.
type Engine struct {
	log zerolog.Logger
}

// NewEngine creates a new simulation engine
func NewEngine(log zerolog.Logger) *Engine {
	return &Engine{
		log: log.With().Str("component", "simulation_engine").Logger(),
	}
}

// Run simulates the strategy over a scored series and returns the trade
// ledger, the sampled equity curve, the full-resolution risk series and the
// summary statistics. The scored series and scheduled-day set are treated as
// read-only. An empty series yields empty outputs and zero stats.
func (e *Engine) Run(scored []domain.ScoredPricePoint, scheduled map[int]bool, params Params) Result {
	if len(scored) == 0 {
		return Result{}
	}

	band, err := risk.BandByIndex(params.BandIndex)
	if err != nil {
		band = risk.Bands[risk.DefaultBandIndex]
		e.log.Warn().Int("band_index", params.BandIndex).Msg("Band index out of range, using default band")
	}
	tierList := tiers.Build(band, params.TierGrowth)

	st := &state{}
	ledger := make([]LedgerEntry, 0, len(scheduled)+2)
	curve := make([]EquityPoint, 0, len(scored)/curveSampleEvery+1)
	riskSeries := make([]RiskPoint, 0, len(scored))

	firstPrice := scored[0].Price
	initialPending := params.Initial != nil

	for i, day := range scored {
		isFinal := i == len(scored)-1
		isScheduled := scheduled[i]
		price := day.Price
		dayRisk := risk.ApplyOffset(day.Risk, params.RiskOffset)
		date := day.Time().Format("2006-01-02")

		injected := false
		var expiries []LeapDetail
		var openedLeap *LeapDetail
		sellProceeds := 0.0
		premium := 0.0
		sharesSpend := 0.0

		// 1. Initial-lot injection: bypasses tier logic entirely. A date
		// before the simulated range fires on day 0.
		if initialPending && params.Initial.Date <= day.Timestamp {
			cost := params.Initial.Shares * params.Initial.AvgPrice
			st.invested += cost
			st.shares += params.Initial.Shares
			st.sharesIgnoringSells += params.Initial.Shares
			initialPending = false
			injected = true
		}

		// 2. LEAP expiry settlement
		if len(st.openLeaps) > 0 {
			remaining := st.openLeaps[:0]
			for _, pos := range st.openLeaps {
				if pos.ExpiryTimestamp <= day.Timestamp {
					pnl := pos.settle(price)
					st.leapRealizedPnl += pnl
					st.leapClosedCount++
					expiries = append(expiries, LeapDetail{
						Contracts:      pos.Contracts,
						NotionalShares: pos.NotionalShares,
						Strike:         pos.Strike(),
						RealizedPnl:    pnl,
					})
				} else {
					remaining = append(remaining, pos)
				}
			}
			st.openLeaps = remaining
		}

		// 3. Sizing, only on scheduled non-final days
		purchase := 0.0
		if isScheduled && !isFinal {
			switch params.Mode {
			case domain.SizingEqualAmount:
				purchase = params.BaseAmount
			case domain.SizingLumpSum:
				if i == 0 {
					purchase = params.BaseAmount
				}
			case domain.SizingTiered:
				purchase = params.BaseAmount * float64(tiers.MultiplierFor(dayRisk, band, tierList))
			}
		}

		// 4. LEAP substitution in the low-risk zone. Too small a budget for
		// one contract falls through to an ordinary share purchase.
		if params.Leap != nil && params.Leap.LowRiskZoneEnabled &&
			isScheduled && dayRisk < leapLowRiskZone && purchase > 0 {
			costPerContract := price * params.Leap.CostPct * contractShares
			contracts := int(math.Floor(purchase / costPerContract))
			if contracts > 0 {
				cost := float64(contracts) * costPerContract
				pos := LeapPosition{
					EntryPrice:      price,
					NotionalShares:  contracts * contractShares,
					Contracts:       contracts,
					Cost:            cost,
					Delta:           params.Leap.Delta,
					EntryTimestamp:  day.Timestamp,
					TermMonths:      leapTermMonths,
					ExpiryTimestamp: day.Time().AddDate(0, leapTermMonths, 0).UnixMilli(),
				}
				st.openLeaps = append(st.openLeaps, pos)
				st.invested += cost
				st.leapOpenCount++
				st.buyCount++
				openedLeap = &LeapDetail{
					Contracts:      contracts,
					NotionalShares: pos.NotionalShares,
					Strike:         pos.Strike(),
					Cost:           cost,
				}

				// Leftover cash buys ordinary shares at the same price
				if leftover := purchase - cost; leftover > 0 {
					st.invested += leftover
					st.shares += leftover / price
					st.sharesIgnoringSells += leftover / price
					sharesSpend += leftover
				}
				purchase = 0
			}
		}

		// 5. Sell a fixed fraction at high risk. A purchase sized on the
		// same day is computed but never committed; the ledger keeps that
		// behavior observable.
		sold := false
		if params.SellEnabled && isScheduled && dayRisk >= sellThresholdRisk && st.shares > 0 {
			qty := st.shares * sellFraction
			proceeds := qty * price
			basisRemoved := qty * st.averageCost()

			st.invested -= basisRemoved
			st.shares -= qty
			st.sellProceeds += proceeds
			st.sellCostBasis += basisRemoved
			st.sellCount++
			sellProceeds = proceeds
			sold = true
			purchase = 0
		}

		// 6. Covered-call premium against at most half the position,
		// rounded down to whole 100-share lots. Premium is income, never
		// reinvested.
		if params.CoveredCall != nil && isScheduled && dayRisk >= sellThresholdRisk && st.shares > 0 {
			lots := int(st.shares / 2 / contractShares)
			covered := float64(lots * contractShares)
			if covered > 0 {
				premium = covered * price * params.CoveredCall.MonthlyPremiumPct / 100
				st.premiumIncome += premium
				st.coveredCallCount++
			}
		}

		// 7. Commit the remaining ordinary purchase
		if purchase > 0 {
			st.invested += purchase
			st.shares += purchase / price
			st.sharesIgnoringSells += purchase / price
			st.buyCount++
			sharesSpend += purchase
		}

		// 8. Ledger emission with post-effect running totals
		if isScheduled || sold || premium > 0 || injected || len(expiries) > 0 || isFinal {
			entry := LedgerEntry{
				Date:            date,
				Action:          entryAction(injected, expiries, sold, openedLeap, premium, sharesSpend),
				Risk:            dayRisk,
				Price:           price,
				PurchaseAmount:  round2(sharesSpend),
				SellProceeds:    round2(sellProceeds),
				PremiumIncome:   round2(premium),
				RunningShares:   st.shares,
				RunningInvested: round2(st.invested),
				RunningValue:    round2(st.shares*price + openLeapValue(st.openLeaps, price, day.Timestamp)),
			}
			switch {
			case openedLeap != nil:
				entry.Leap = openedLeap
			case len(expiries) > 0:
				entry.Leap = &expiries[0]
			}
			ledger = append(ledger, entry)
		}

		// 9. Series sampling: sparse equity curve, dense risk series
		if i%curveSampleEvery == 0 || isFinal {
			baseline := 0.0
			if firstPrice > 0 {
				baseline = st.invested / firstPrice * price
			}
			curve = append(curve, EquityPoint{
				Label:           date,
				Price:           price,
				Invested:        round2(st.invested),
				PortfolioValue:  round2(st.shares*price + openLeapValue(st.openLeaps, price, day.Timestamp)),
				LumpSumBaseline: round2(baseline),
			})
		}
		riskSeries = append(riskSeries, RiskPoint{Label: date, Risk: dayRisk})
	}

	last := scored[len(scored)-1]
	stats := buildStats(st, last, curve)

	e.log.Debug().
		Int("days", len(scored)).
		Int("ledger_entries", len(ledger)).
		Float64("invested", stats.TotalInvested).
		Float64("value", stats.PortfolioValue).
		Msg("Simulation completed")

	return Result{
		Ledger:      ledger,
		EquityCurve: curve,
		RiskSeries:  riskSeries,
		Stats:       stats,
	}
}

// entryAction picks the primary label for a day's ledger entry
func entryAction(injected bool, expiries []LeapDetail, sold bool, opened *LeapDetail, premium, spend float64) ActionKind {
	switch {
	case injected:
		return ActionInitialLot
	case len(expiries) > 0:
		return ActionLeapExpiry
	case sold:
		return ActionSell
	case opened != nil:
		return ActionLeapOpen
	case premium > 0:
		return ActionCoveredCall
	case spend > 0:
		return ActionBuy
	default:
		return ActionHold
	}
}
