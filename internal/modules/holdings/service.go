package holdings

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/aristath/dca-lab/internal/domain"
	"github.com/aristath/dca-lab/internal/modules/risk"
	"github.com/aristath/dca-lab/internal/modules/tiers"
	"github.com/aristath/dca-lab/internal/pricefeed"
	"github.com/aristath/dca-lab/pkg/formulas"
)

// classOffsets shifts the raw risk score per asset class before tier lookup.
// Volatile classes read slightly hotter so sizing stays conservative.
var classOffsets = map[domain.AssetClass]float64{
	domain.AssetClassEquity: 0.0,
	domain.AssetClassETF:    -0.02,
	domain.AssetClassCrypto: 0.05,
}

const sellActionThreshold = 0.90

// Service pairs stored holdings with price history and derived signals.
// The forward CAGR figure is a documented heuristic projection, not a
// statistical model; it is deterministic given the same history.
type Service struct {
	repo *Repository
	feed pricefeed.Provider
	risk *risk.Computer
	band risk.Band
	tier []tiers.Tier
	log  zerolog.Logger
}

// NewService creates a new holdings service using the default comfort band
// and linear tier growth for the action recommendation.
func NewService(repo *Repository, feed pricefeed.Provider, riskComputer *risk.Computer, log zerolog.Logger) *Service {
	band := risk.Bands[risk.DefaultBandIndex]
	return &Service{
		repo: repo,
		feed: feed,
		risk: riskComputer,
		band: band,
		tier: tiers.Build(band, domain.TierGrowthLinear),
		log:  log.With().Str("service", "holdings").Logger(),
	}
}

// Report builds the aggregated holdings view: per ticker the current risk,
// recommended action, market value, gain/loss, portfolio weight, RSI
// momentum and the forward CAGR projection.
func (s *Service) Report() (PortfolioReport, error) {
	stored, err := s.repo.GetAll()
	if err != nil {
		return PortfolioReport{}, fmt.Errorf("failed to load holdings: %w", err)
	}

	report := PortfolioReport{Holdings: []Report{}}
	for _, h := range stored {
		entry := s.scoreHolding(h)
		report.Holdings = append(report.Holdings, entry)

		if !h.Planned {
			report.TotalValue += entry.MarketValue
			report.TotalCost += h.Shares * h.EntryPrice
			report.TotalGainLoss += entry.GainLoss
		}
	}

	// Weights need the portfolio total, so fill them in afterwards
	for i := range report.Holdings {
		if report.TotalValue > 0 && !report.Holdings[i].Planned {
			report.Holdings[i].WeightPct = formulas.Round(report.Holdings[i].MarketValue/report.TotalValue*100, 2)
		}
	}

	report.TotalValue = formulas.Round(report.TotalValue, 2)
	report.TotalCost = formulas.Round(report.TotalCost, 2)
	report.TotalGainLoss = formulas.Round(report.TotalGainLoss, 2)

	return report, nil
}

// Rescore recomputes and persists the risk/action snapshot for every stored
// holding. Used by the nightly job.
func (s *Service) Rescore() (int, error) {
	stored, err := s.repo.GetAll()
	if err != nil {
		return 0, fmt.Errorf("failed to load holdings: %w", err)
	}

	count := 0
	for _, h := range stored {
		entry := s.scoreHolding(h)
		if err := s.repo.SaveScore(h.ID, entry.Risk, entry.Action); err != nil {
			s.log.Warn().Err(err).Str("ticker", h.Ticker).Msg("Failed to persist holding score")
			continue
		}
		count++
	}

	return count, nil
}

// scoreHolding derives the full report row for one holding. Missing or
// degenerate history degrades to neutral values rather than failing.
func (s *Service) scoreHolding(h Holding) Report {
	entry := Report{
		Ticker:       h.Ticker,
		Shares:       h.Shares,
		EntryPrice:   h.EntryPrice,
		CurrentPrice: h.EntryPrice,
		Risk:         risk.NeutralRisk,
		Action:       "Hold",
		Planned:      h.Planned,
	}

	history, err := s.feed.History(h.Ticker)
	if err != nil || len(history) == 0 {
		s.log.Warn().Err(err).Str("ticker", h.Ticker).Msg("No usable history, reporting neutral values")
		entry.MarketValue = formulas.Round(h.Shares*h.EntryPrice, 2)
		return entry
	}

	scored := s.risk.Score(history)
	last := scored[len(scored)-1]
	riskScore := risk.ApplyOffset(last.Risk, classOffsets[h.AssetClass])

	entry.CurrentPrice = last.Price
	entry.MarketValue = formulas.Round(h.Shares*last.Price, 2)
	entry.GainLoss = formulas.Round((last.Price-h.EntryPrice)*h.Shares, 2)
	if h.EntryPrice > 0 {
		entry.GainLossPct = formulas.Round((last.Price-h.EntryPrice)/h.EntryPrice*100, 2)
	}
	entry.Risk = riskScore
	entry.Action = s.actionLabel(riskScore)

	closes := make([]float64, len(history))
	dated := make([]formulas.DatedPrice, len(history))
	for i, p := range history {
		closes[i] = p.Price
		dated[i] = formulas.DatedPrice{Timestamp: p.Timestamp, Price: p.Price}
	}
	entry.RSI14 = formulas.RSI(closes, 14)
	entry.Projection = formulas.ProjectForwardCAGR(dated)

	return entry
}

// actionLabel maps a risk score to the recommended action
func (s *Service) actionLabel(riskScore float64) string {
	if riskScore >= sellActionThreshold {
		return "Sell 10%"
	}

	multiplier := tiers.MultiplierFor(riskScore, s.band, s.tier)
	if multiplier == 0 {
		return "Hold"
	}

	return fmt.Sprintf("Buy %dx", multiplier)
}
