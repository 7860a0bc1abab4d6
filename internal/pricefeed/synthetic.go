package pricefeed

import (
	"hash/fnv"
	"math"
	"math/rand"
	"time"

	"github.com/aristath/dca-lab/internal/domain"
)

// Synthetic generates a deterministic fallback price series. The walk is
// seeded from the symbol name, so the same symbol always produces the same
// series for a given length and end date.
type Synthetic struct {
	days int
	end  time.Time
}

const (
	syntheticStartPrice = 100.0
	syntheticDrift      = 0.0003 // daily log-return drift
	syntheticSigma      = 0.015  // daily log-return volatility
)

// NewSynthetic creates a generator producing series of the given length
// ending at the given date
func NewSynthetic(days int, end time.Time) *Synthetic {
	if days <= 0 {
		days = 1500
	}
	return &Synthetic{
		days: days,
		end:  end.UTC().Truncate(24 * time.Hour),
	}
}

// History generates the symbol's synthetic daily series
func (s *Synthetic) History(symbol string) ([]domain.PricePoint, error) {
	h := fnv.New64a()
	h.Write([]byte(symbol))
	rng := rand.New(rand.NewSource(int64(h.Sum64())))

	start := s.end.AddDate(0, 0, -(s.days - 1))

	prices := make([]domain.PricePoint, s.days)
	price := syntheticStartPrice
	for i := 0; i < s.days; i++ {
		prices[i] = domain.PricePoint{
			Timestamp: start.AddDate(0, 0, i).UnixMilli(),
			Price:     price,
		}
		price *= math.Exp(syntheticDrift + syntheticSigma*rng.NormFloat64())
	}

	return prices, nil
}
