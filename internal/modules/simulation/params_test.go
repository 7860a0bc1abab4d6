package simulation

import (
	"testing"

	"github.com/aristath/dca-lab/internal/domain"
)

func validParams() Params {
	return Params{
		Mode:       domain.SizingTiered,
		BaseAmount: 1000,
		Cadence:    domain.CadenceMonthly,
		AnchorDay:  1,
		BandIndex:  4,
		TierGrowth: domain.TierGrowthLinear,
	}
}

func TestParams_WithDefaults(t *testing.T) {
	p := Params{BaseAmount: 500}.WithDefaults()

	if p.Mode != domain.SizingTiered {
		t.Errorf("Mode = %v, want tiered", p.Mode)
	}
	if p.Cadence != domain.CadenceMonthly {
		t.Errorf("Cadence = %v, want monthly", p.Cadence)
	}
	if p.AnchorDay != 1 {
		t.Errorf("AnchorDay = %d, want 1", p.AnchorDay)
	}
	if p.TierGrowth != domain.TierGrowthLinear {
		t.Errorf("TierGrowth = %v, want linear", p.TierGrowth)
	}
	if p.BaseAmount != 500 {
		t.Errorf("BaseAmount = %v, want 500 (unchanged)", p.BaseAmount)
	}
}

func TestParams_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Params)
		wantErr bool
	}{
		{"valid", func(p *Params) {}, false},
		{"unknown mode", func(p *Params) { p.Mode = "martingale" }, true},
		{"unknown cadence", func(p *Params) { p.Cadence = "hourly" }, true},
		{"negative base amount", func(p *Params) { p.BaseAmount = -1 }, true},
		{"anchor day too low", func(p *Params) { p.AnchorDay = 0 }, true},
		{"anchor day too high", func(p *Params) { p.AnchorDay = 29 }, true},
		{"band index too low", func(p *Params) { p.BandIndex = -1 }, true},
		{"band index too high", func(p *Params) { p.BandIndex = 7 }, true},
		{"offset out of range", func(p *Params) { p.RiskOffset = 0.3 }, true},
		{"offset in range", func(p *Params) { p.RiskOffset = -0.2 }, false},
		{"leap cost too low", func(p *Params) { p.Leap = &LeapParams{CostPct: 0.1, Delta: 0.75} }, true},
		{"leap delta too high", func(p *Params) { p.Leap = &LeapParams{CostPct: 0.4, Delta: 0.95} }, true},
		{"leap valid", func(p *Params) { p.Leap = &LeapParams{CostPct: 0.4, Delta: 0.75} }, false},
		{"premium too high", func(p *Params) { p.CoveredCall = &CoveredCallParams{MonthlyPremiumPct: 3} }, true},
		{"premium valid", func(p *Params) { p.CoveredCall = &CoveredCallParams{MonthlyPremiumPct: 0.5} }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validParams()
			tt.mutate(&p)

			err := p.Validate()
			if tt.wantErr && err == nil {
				t.Error("expected error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}
