package risk

import (
	"math"

	"github.com/aristath/dca-lab/internal/domain"
	"github.com/aristath/dca-lab/pkg/formulas"
)

const (
	// maWindow is the trailing geometric moving-average window in trading
	// days. Deliberately long so the trend measure does not whipsaw during
	// short drawdowns.
	maWindow = 500

	riskIntercept = 0.4647
	riskSlope     = 1.0013

	// NeutralRisk is reported when the trend is undefined
	NeutralRisk = 0.5
)

// Computer converts a raw price series into per-day trend-relative risk
// scores in [0, 1]. Score is a pure function of its input: the same series
// always yields the same scored series.
type Computer struct{}

// NewComputer creates a new risk computer
func NewComputer() *Computer {
	return &Computer{}
}

// Score derives the geometric moving average and risk score for every point
// of the series. The output has the same length and order as the input; an
// empty series yields an empty result. The function is total: degenerate
// prices score as neutral rather than failing.
func (c *Computer) Score(prices []domain.PricePoint) []domain.ScoredPricePoint {
	if len(prices) == 0 {
		return nil
	}

	scored := make([]domain.ScoredPricePoint, len(prices))
	logs := make([]float64, len(prices))
	logSum := 0.0

	for i, p := range prices {
		lg := math.Log10(math.Max(p.Price, 1))
		logs[i] = lg
		logSum += lg
		if i >= maWindow {
			logSum -= logs[i-maWindow]
		}

		// Shrinking window until maWindow observations are available
		divisor := float64(i + 1)
		if divisor > maWindow {
			divisor = maWindow
		}
		ma := math.Pow(10, logSum/divisor)

		riskScore := NeutralRisk
		if ma > 0 && p.Price > 0 {
			riskScore = formulas.Clamp01((math.Log10(p.Price/ma) + riskIntercept) / riskSlope)
			riskScore = formulas.Round(riskScore, 4)
		}

		scored[i] = domain.ScoredPricePoint{
			PricePoint:    p,
			MovingAverage: ma,
			Risk:          riskScore,
		}
	}

	return scored
}

// ApplyOffset shifts a computed risk score by a caller-supplied delta and
// re-clamps it into [0, 1]
func ApplyOffset(risk, offset float64) float64 {
	return formulas.Clamp01(risk + offset)
}
