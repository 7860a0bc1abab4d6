package formulas

import (
	"math"
	"testing"
	"time"
)

// dailySeries builds one point per day, with price a function of elapsed years
func dailySeries(days int, priceAt func(years float64) float64) []DatedPrice {
	start := time.Date(2018, 1, 1, 0, 0, 0, 0, time.UTC)
	points := make([]DatedPrice, days)
	for i := 0; i < days; i++ {
		years := float64(i) / daysPerYear
		points[i] = DatedPrice{
			Timestamp: start.AddDate(0, 0, i).UnixMilli(),
			Price:     priceAt(years),
		}
	}
	return points
}

func TestTrailingCAGR(t *testing.T) {
	t.Run("exponential growth yields exact rate", func(t *testing.T) {
		points := dailySeries(731, func(years float64) float64 {
			return 100 * math.Pow(1.1, years)
		})

		got := TrailingCAGR(points, 1)
		if got == nil {
			t.Fatal("TrailingCAGR = nil, want value")
		}
		if math.Abs(*got-0.10) > 1e-6 {
			t.Errorf("TrailingCAGR 1y = %v, want 0.10", *got)
		}
	})

	t.Run("horizon beyond data uses full span", func(t *testing.T) {
		points := dailySeries(731, func(years float64) float64 {
			return 100 * math.Pow(1.1, years)
		})

		// Only two years of data; the 10y horizon falls back to the span
		got := TrailingCAGR(points, 10)
		if got == nil {
			t.Fatal("TrailingCAGR = nil, want value")
		}
		if math.Abs(*got-0.10) > 1e-6 {
			t.Errorf("TrailingCAGR 10y over 2y span = %v, want 0.10", *got)
		}
	})

	t.Run("too little history", func(t *testing.T) {
		points := dailySeries(30, func(float64) float64 { return 100 })
		if got := TrailingCAGR(points, 1); got != nil {
			t.Errorf("TrailingCAGR over 30 days = %v, want nil", *got)
		}
	})

	t.Run("degenerate inputs", func(t *testing.T) {
		if got := TrailingCAGR(nil, 1); got != nil {
			t.Errorf("TrailingCAGR(nil) = %v, want nil", *got)
		}
		points := dailySeries(400, func(float64) float64 { return 100 })
		if got := TrailingCAGR(points, 0); got != nil {
			t.Errorf("TrailingCAGR with zero years = %v, want nil", *got)
		}
	})
}

func TestProjectForwardCAGR(t *testing.T) {
	t.Run("flat series blends toward long-run return", func(t *testing.T) {
		points := dailySeries(4100, func(float64) float64 { return 100 })

		proj := ProjectForwardCAGR(points)
		if proj == nil {
			t.Fatal("ProjectForwardCAGR = nil, want value")
		}

		if proj.FiveYearPct != 0 {
			t.Errorf("FiveYearPct = %v, want 0", proj.FiveYearPct)
		}
		if proj.TenYearPct != 1.4 {
			t.Errorf("TenYearPct = %v, want 1.4", proj.TenYearPct)
		}
		if proj.TwentyYearPct != 3.15 {
			t.Errorf("TwentyYearPct = %v, want 3.15", proj.TwentyYearPct)
		}
		if proj.ThirtyYearPct != 4.55 {
			t.Errorf("ThirtyYearPct = %v, want 4.55", proj.ThirtyYearPct)
		}
		if len(proj.TrailingPct) != 4 {
			t.Errorf("TrailingPct horizons = %d, want 4", len(proj.TrailingPct))
		}
	})

	t.Run("steady growth is haircut by 0.75", func(t *testing.T) {
		points := dailySeries(731, func(years float64) float64 {
			return 100 * math.Pow(1.1, years)
		})

		proj := ProjectForwardCAGR(points)
		if proj == nil {
			t.Fatal("ProjectForwardCAGR = nil, want value")
		}

		if math.Abs(proj.FiveYearPct-7.5) > 0.01 {
			t.Errorf("FiveYearPct = %v, want 7.5", proj.FiveYearPct)
		}
		if math.Abs(proj.TenYearPct-7.4) > 0.01 {
			t.Errorf("TenYearPct = %v, want 7.4", proj.TenYearPct)
		}
	})

	t.Run("collapse clamps at -5", func(t *testing.T) {
		points := dailySeries(731, func(years float64) float64 {
			return 100 * math.Pow(0.5, years)
		})

		proj := ProjectForwardCAGR(points)
		if proj == nil {
			t.Fatal("ProjectForwardCAGR = nil, want value")
		}
		if proj.FiveYearPct != -5 {
			t.Errorf("FiveYearPct = %v, want -5 (clamped)", proj.FiveYearPct)
		}
	})

	t.Run("no usable horizon", func(t *testing.T) {
		points := dailySeries(30, func(float64) float64 { return 100 })
		if proj := ProjectForwardCAGR(points); proj != nil {
			t.Errorf("ProjectForwardCAGR over 30 days = %+v, want nil", proj)
		}
	})
}
