package jobs

import (
	"github.com/rs/zerolog"

	"github.com/aristath/dca-lab/internal/events"
	"github.com/aristath/dca-lab/internal/modules/holdings"
)

// HoldingsRescore recomputes the risk score and recommended action for all
// stored holdings and persists the snapshots
type HoldingsRescore struct {
	service *holdings.Service
	events  *events.Manager
	log     zerolog.Logger
}

// NewHoldingsRescore creates the nightly rescore job
func NewHoldingsRescore(service *holdings.Service, ev *events.Manager, log zerolog.Logger) *HoldingsRescore {
	return &HoldingsRescore{
		service: service,
		events:  ev,
		log:     log.With().Str("job", "holdings_rescore").Logger(),
	}
}

// Name returns the job name
func (j *HoldingsRescore) Name() string {
	return "holdings_rescore"
}

// Run rescores every holding
func (j *HoldingsRescore) Run() error {
	count, err := j.service.Rescore()
	if err != nil {
		j.events.EmitError("holdings", err, nil)
		return err
	}

	j.events.Emit(events.HoldingsRescored, "holdings", map[string]interface{}{
		"count": count,
	})
	j.log.Info().Int("count", count).Msg("Holdings rescored")

	return nil
}
