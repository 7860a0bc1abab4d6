package simulation

import (
	"fmt"

	"github.com/aristath/dca-lab/internal/domain"
)

// WithDefaults fills unset fields with the documented defaults
func (p Params) WithDefaults() Params {
	if p.Mode == "" {
		p.Mode = domain.SizingTiered
	}
	if p.Cadence == "" {
		p.Cadence = domain.CadenceMonthly
	}
	if p.AnchorDay == 0 {
		p.AnchorDay = 1
	}
	if p.TierGrowth == "" {
		p.TierGrowth = domain.TierGrowthLinear
	}
	return p
}

// Validate checks the recognized option ranges
func (p Params) Validate() error {
	switch p.Mode {
	case domain.SizingEqualAmount, domain.SizingLumpSum, domain.SizingTiered:
	default:
		return fmt.Errorf("unknown sizing mode %q", p.Mode)
	}

	switch p.Cadence {
	case domain.CadenceDaily, domain.CadenceWeekly, domain.CadenceMonthly:
	default:
		return fmt.Errorf("unknown cadence %q", p.Cadence)
	}

	if p.BaseAmount < 0 {
		return fmt.Errorf("base amount must be >= 0, got %f", p.BaseAmount)
	}
	if p.AnchorDay < 1 || p.AnchorDay > 28 {
		return fmt.Errorf("anchor day must be in [1,28], got %d", p.AnchorDay)
	}
	if p.BandIndex < 0 || p.BandIndex > 6 {
		return fmt.Errorf("band index must be in [0,6], got %d", p.BandIndex)
	}
	if p.RiskOffset < -0.20 || p.RiskOffset > 0.20 {
		return fmt.Errorf("risk offset must be in [-0.20,0.20], got %f", p.RiskOffset)
	}
	if p.Leap != nil {
		if p.Leap.CostPct < 0.20 || p.Leap.CostPct > 0.60 {
			return fmt.Errorf("leap cost pct must be in [0.20,0.60], got %f", p.Leap.CostPct)
		}
		if p.Leap.Delta < 0.60 || p.Leap.Delta > 0.90 {
			return fmt.Errorf("leap delta must be in [0.60,0.90], got %f", p.Leap.Delta)
		}
	}
	if p.CoveredCall != nil {
		if p.CoveredCall.MonthlyPremiumPct < 0.10 || p.CoveredCall.MonthlyPremiumPct > 2.00 {
			return fmt.Errorf("monthly premium pct must be in [0.10,2.00], got %f", p.CoveredCall.MonthlyPremiumPct)
		}
	}

	return nil
}
