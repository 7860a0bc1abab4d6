package tiers

import (
	"github.com/aristath/dca-lab/internal/domain"
	"github.com/aristath/dca-lab/internal/modules/risk"
	"github.com/aristath/dca-lab/pkg/formulas"
)

// Tier is one risk sub-interval with its purchase multiplier. Tiers partition
// [0, band.Max) downward in 0.1-wide steps; a risk value inside a tier's
// half-open [Lower, Upper) interval sizes the purchase at Multiplier times
// the base amount.
type Tier struct {
	Lower      float64 `json:"lower"`
	Upper      float64 `json:"upper"`
	Multiplier int     `json:"multiplier"`
}

const tierStep = 0.1

// Build constructs the ordered tier list for a band. The band itself is the
// top tier with multiplier 1; walking downward toward zero each successive
// tier doubles the multiplier (exponential growth) or increments it by one
// (linear growth). The lowest tier's lower bound is clamped to 0.
func Build(band risk.Band, growth domain.TierGrowth) []Tier {
	tiers := []Tier{{Lower: band.Min, Upper: band.Max, Multiplier: 1}}

	multiplier := 1
	upper := band.Min
	for upper > 0 {
		lower := formulas.Round(upper-tierStep, 4)
		if lower < 0 {
			lower = 0
		}

		if growth == domain.TierGrowthExponential {
			multiplier *= 2
		} else {
			multiplier++
		}

		tiers = append(tiers, Tier{Lower: lower, Upper: upper, Multiplier: multiplier})
		upper = lower
	}

	return tiers
}

// MultiplierFor maps a risk value to its purchase multiplier. Risk at or
// above the band ceiling means the price is considered too expensive relative
// to trend, so no purchase is made. A risk value no tier covers also yields 0
// rather than an error.
func MultiplierFor(riskScore float64, band risk.Band, tiers []Tier) int {
	if riskScore >= band.Max {
		return 0
	}

	for _, t := range tiers {
		if riskScore >= t.Lower && riskScore < t.Upper {
			return t.Multiplier
		}
	}

	return 0
}
