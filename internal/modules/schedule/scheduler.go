package schedule

import (
	"fmt"
	"time"

	"github.com/aristath/dca-lab/internal/domain"
)

// Days selects which indices of the series are scheduled trading days for
// the cadence. The returned set is computed once per run and treated as
// read-only by the simulation engine.
//
// Daily schedules every index. Weekly schedules Mondays only, with no
// holiday roll-forward. Monthly schedules, within each (year, month), the
// first index whose day-of-month is at least anchorDay; at most one index
// fires per month, and a month with no qualifying day is silently skipped.
func Days(series []domain.PricePoint, cadence domain.Cadence, anchorDay int) map[int]bool {
	days := make(map[int]bool, len(series))

	switch cadence {
	case domain.CadenceDaily:
		for i := range series {
			days[i] = true
		}

	case domain.CadenceWeekly:
		for i, p := range series {
			if p.Time().Weekday() == time.Monday {
				days[i] = true
			}
		}

	case domain.CadenceMonthly:
		fired := make(map[string]bool)
		for i, p := range series {
			t := p.Time()
			if t.Day() < anchorDay {
				continue
			}
			key := fmt.Sprintf("%04d-%02d", t.Year(), int(t.Month()))
			if fired[key] {
				continue
			}
			fired[key] = true
			days[i] = true
		}
	}

	return days
}
