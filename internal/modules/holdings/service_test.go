package holdings

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/aristath/dca-lab/internal/domain"
	"github.com/aristath/dca-lab/internal/modules/risk"
)

// stubFeed serves canned histories without touching disk
type stubFeed struct {
	series map[string][]domain.PricePoint
	err    error
}

func (f *stubFeed) History(symbol string) ([]domain.PricePoint, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.series[symbol], nil
}

func flatHistory(days int, price float64) []domain.PricePoint {
	start := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	points := make([]domain.PricePoint, days)
	for i := range points {
		points[i] = domain.PricePoint{Timestamp: start.AddDate(0, 0, i).UnixMilli(), Price: price}
	}
	return points
}

func testService(feed *stubFeed) *Service {
	return NewService(nil, feed, risk.NewComputer(), zerolog.Nop())
}

func TestService_ActionLabel(t *testing.T) {
	service := testService(&stubFeed{})

	tests := []struct {
		risk     float64
		expected string
	}{
		{0.95, "Sell 10%"},
		{0.90, "Sell 10%"},
		{0.55, "Hold"},
		{0.45, "Buy 1x"},
		{0.15, "Buy 4x"},
		{0.05, "Buy 5x"},
	}

	for _, tt := range tests {
		if got := service.actionLabel(tt.risk); got != tt.expected {
			t.Errorf("actionLabel(%v) = %q, want %q", tt.risk, got, tt.expected)
		}
	}
}

func TestService_ScoreHolding_AssetClassOffsets(t *testing.T) {
	// A flat series scores 0.4641 before the class offset
	feed := &stubFeed{series: map[string][]domain.PricePoint{
		"ACME": flatHistory(600, 100),
	}}
	service := testService(feed)

	tests := []struct {
		class    domain.AssetClass
		expected float64
	}{
		{domain.AssetClassEquity, 0.4641},
		{domain.AssetClassETF, 0.4441},
		{domain.AssetClassCrypto, 0.5141},
	}

	for _, tt := range tests {
		entry := service.scoreHolding(Holding{
			Ticker:     "ACME",
			Shares:     10,
			EntryPrice: 80,
			AssetClass: tt.class,
		})
		if math.Abs(entry.Risk-tt.expected) > 1e-9 {
			t.Errorf("%s risk = %v, want %v", tt.class, entry.Risk, tt.expected)
		}
	}
}

func TestService_ScoreHolding_Valuation(t *testing.T) {
	feed := &stubFeed{series: map[string][]domain.PricePoint{
		"ACME": flatHistory(600, 100),
	}}
	service := testService(feed)

	entry := service.scoreHolding(Holding{
		Ticker:     "ACME",
		Shares:     10,
		EntryPrice: 80,
		AssetClass: domain.AssetClassEquity,
	})

	if entry.CurrentPrice != 100 {
		t.Errorf("CurrentPrice = %v, want 100", entry.CurrentPrice)
	}
	if entry.MarketValue != 1000 {
		t.Errorf("MarketValue = %v, want 1000", entry.MarketValue)
	}
	if entry.GainLoss != 200 {
		t.Errorf("GainLoss = %v, want 200", entry.GainLoss)
	}
	if entry.GainLossPct != 25 {
		t.Errorf("GainLossPct = %v, want 25", entry.GainLossPct)
	}
	if entry.Action != "Buy 1x" {
		t.Errorf("Action = %q, want Buy 1x", entry.Action)
	}
	if entry.Projection == nil {
		t.Error("Projection = nil, want forward CAGR estimate")
	}
}

func TestService_ScoreHolding_MissingHistoryIsNeutral(t *testing.T) {
	service := testService(&stubFeed{err: errors.New("no data")})

	entry := service.scoreHolding(Holding{
		Ticker:     "GHOST",
		Shares:     4,
		EntryPrice: 25,
		AssetClass: domain.AssetClassEquity,
	})

	if entry.Risk != risk.NeutralRisk {
		t.Errorf("Risk = %v, want neutral %v", entry.Risk, risk.NeutralRisk)
	}
	if entry.Action != "Hold" {
		t.Errorf("Action = %q, want Hold", entry.Action)
	}
	if entry.CurrentPrice != 25 {
		t.Errorf("CurrentPrice = %v, want entry price 25", entry.CurrentPrice)
	}
	if entry.MarketValue != 100 {
		t.Errorf("MarketValue = %v, want 100", entry.MarketValue)
	}
}
