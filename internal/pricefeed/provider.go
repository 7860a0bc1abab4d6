package pricefeed

import (
	"github.com/rs/zerolog"

	"github.com/aristath/dca-lab/internal/domain"
)

// Provider supplies an ordered daily price series for a symbol. Consumers
// treat the returned series as read-only; the simulation core performs no
// retrieval, retries or caching of its own.
type Provider interface {
	History(symbol string) ([]domain.PricePoint, error)
}

// Feed resolves a symbol's history from the on-disk history databases and
// falls back to a deterministic synthetic series when no data exists. The
// fallback keeps the core's contract intact: callers always receive either a
// valid series or an explicit fallback series.
type Feed struct {
	history   *HistoryDB
	synthetic *Synthetic
	log       zerolog.Logger
}

// NewFeed creates a feed over a history directory with synthetic fallback
func NewFeed(history *HistoryDB, synthetic *Synthetic, log zerolog.Logger) *Feed {
	return &Feed{
		history:   history,
		synthetic: synthetic,
		log:       log.With().Str("component", "pricefeed").Logger(),
	}
}

// History returns the symbol's daily series, synthetic when necessary
func (f *Feed) History(symbol string) ([]domain.PricePoint, error) {
	prices, err := f.history.History(symbol)
	if err == nil && len(prices) > 0 {
		return prices, nil
	}

	if err != nil {
		f.log.Warn().Err(err).Str("symbol", symbol).Msg("History lookup failed, using synthetic fallback series")
	} else {
		f.log.Warn().Str("symbol", symbol).Msg("No history available, using synthetic fallback series")
	}

	return f.synthetic.History(symbol)
}
