package formulas

import (
	"math"
	"time"
)

// DatedPrice is a single historical observation used for CAGR horizons
type DatedPrice struct {
	Timestamp int64   `json:"timestamp"` // epoch milliseconds
	Price     float64 `json:"price"`
}

const (
	daysPerYear = 365.25

	// Horizons shorter than this much actual history are skipped
	minHorizonYears = 0.5

	// Long-run equity return the far horizons revert toward, in percent
	longRunReturnPct = 7.0
)

// CAGRProjection holds a heuristic forward CAGR estimate.
//
// This is a deterministic rule of thumb, not a statistical model: trailing
// CAGRs are averaged, haircut and clamped for the 5-year figure, and the
// longer horizons are blended toward a long-run constant.
type CAGRProjection struct {
	FiveYearPct   float64            `json:"five_year_pct"`
	TenYearPct    float64            `json:"ten_year_pct"`
	TwentyYearPct float64            `json:"twenty_year_pct"`
	ThirtyYearPct float64            `json:"thirty_year_pct"`
	TrailingPct   map[string]float64 `json:"trailing_pct"`
}

// TrailingCAGR calculates the compound annual growth rate looking back the
// given number of years from the most recent observation, using the nearest
// available historical point to that horizon.
//
// Formula: CAGR = (Ending Value / Beginning Value)^(1/years) - 1
//
// Returns CAGR as a decimal (0.11 = 11%) or nil when the series spans less
// than half a year of actual history toward the requested horizon.
func TrailingCAGR(points []DatedPrice, years float64) *float64 {
	if len(points) < 2 || years <= 0 {
		return nil
	}

	last := points[len(points)-1]
	target := last.Timestamp - int64(years*daysPerYear*24*float64(time.Hour/time.Millisecond))

	// Nearest available point to the horizon target
	start := points[0]
	bestDist := int64(math.MaxInt64)
	for _, p := range points[:len(points)-1] {
		dist := p.Timestamp - target
		if dist < 0 {
			dist = -dist
		}
		if dist < bestDist {
			bestDist = dist
			start = p
		}
	}

	actualYears := float64(last.Timestamp-start.Timestamp) / (daysPerYear * 24 * float64(time.Hour/time.Millisecond))
	if actualYears < minHorizonYears {
		return nil
	}

	if start.Price <= 0 || last.Price <= 0 {
		return nil
	}

	cagr := math.Pow(last.Price/start.Price, 1/actualYears) - 1
	return &cagr
}

// ProjectForwardCAGR derives a forward CAGR estimate from historical prices.
//
// Trailing CAGRs over 1, 3, 5 and 10 year horizons (those with enough data)
// are averaged and scaled by 0.75, then clamped to [-5, 35] percent to form
// the 5-year estimate. The 10/20/30-year horizons mean-revert toward 7% with
// fixed blending weights 0.20, 0.45 and 0.65.
//
// Returns nil when no horizon has enough data.
func ProjectForwardCAGR(points []DatedPrice) *CAGRProjection {
	horizons := []struct {
		label string
		years float64
	}{
		{"1y", 1}, {"3y", 3}, {"5y", 5}, {"10y", 10},
	}

	trailing := make(map[string]float64)
	var sum float64
	var count int

	for _, h := range horizons {
		if cagr := TrailingCAGR(points, h.years); cagr != nil {
			pct := *cagr * 100
			trailing[h.label] = Round(pct, 2)
			sum += pct
			count++
		}
	}

	if count == 0 {
		return nil
	}

	fiveYear := sum / float64(count) * 0.75
	fiveYear = math.Max(-5, math.Min(35, fiveYear))

	blend := func(weight float64) float64 {
		return Round(fiveYear*(1-weight)+longRunReturnPct*weight, 2)
	}

	return &CAGRProjection{
		FiveYearPct:   Round(fiveYear, 2),
		TenYearPct:    blend(0.20),
		TwentyYearPct: blend(0.45),
		ThirtyYearPct: blend(0.65),
		TrailingPct:   trailing,
	}
}
