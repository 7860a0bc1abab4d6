package risk

import (
	"math"
	"testing"
	"time"

	"github.com/aristath/dca-lab/internal/domain"
)

func series(prices []float64) []domain.PricePoint {
	start := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	points := make([]domain.PricePoint, len(prices))
	for i, p := range prices {
		points[i] = domain.PricePoint{
			Timestamp: start.AddDate(0, 0, i).UnixMilli(),
			Price:     p,
		}
	}
	return points
}

func constant(n int, price float64) []float64 {
	prices := make([]float64, n)
	for i := range prices {
		prices[i] = price
	}
	return prices
}

func TestComputer_Score_ConstantSeries(t *testing.T) {
	computer := NewComputer()
	scored := computer.Score(series(constant(600, 100)))

	if len(scored) != 600 {
		t.Fatalf("scored length = %d, want 600", len(scored))
	}

	// A constant series sits exactly on its own trend line; the score is the
	// fixed point (0.4647/1.0013) rounded to 4 decimals.
	for i, s := range scored {
		if math.Abs(s.MovingAverage-100) > 1e-6 {
			t.Fatalf("day %d: moving average = %v, want 100", i, s.MovingAverage)
		}
		if s.Risk != 0.4641 {
			t.Fatalf("day %d: risk = %v, want 0.4641", i, s.Risk)
		}
	}
}

func TestComputer_Score_Bounds(t *testing.T) {
	computer := NewComputer()

	// Violent moves in both directions must stay clamped
	prices := []float64{100, 100, 100, 10000, 10000, 0.01, 0.01, 100}
	scored := computer.Score(series(prices))

	for i, s := range scored {
		if s.Risk < 0 || s.Risk > 1 {
			t.Errorf("day %d: risk = %v, outside [0,1]", i, s.Risk)
		}
	}

	// Spike should score high, crash should score low
	if scored[3].Risk <= scored[0].Risk {
		t.Errorf("spike risk %v not above baseline %v", scored[3].Risk, scored[0].Risk)
	}
	if scored[5].Risk >= scored[4].Risk {
		t.Errorf("crash risk %v not below pre-crash %v", scored[5].Risk, scored[4].Risk)
	}
}

func TestComputer_Score_PreservesInput(t *testing.T) {
	computer := NewComputer()
	input := series([]float64{100, 105, 110})
	scored := computer.Score(input)

	if len(scored) != len(input) {
		t.Fatalf("scored length = %d, want %d", len(scored), len(input))
	}
	for i := range input {
		if scored[i].Timestamp != input[i].Timestamp || scored[i].Price != input[i].Price {
			t.Errorf("day %d: point mutated: got %+v, want %+v", i, scored[i].PricePoint, input[i])
		}
	}
}

func TestComputer_Score_EmptySeries(t *testing.T) {
	computer := NewComputer()
	if scored := computer.Score(nil); len(scored) != 0 {
		t.Errorf("scored length = %d, want 0", len(scored))
	}
}

func TestComputer_Score_ZeroPriceIsNeutral(t *testing.T) {
	computer := NewComputer()
	scored := computer.Score(series([]float64{100, 0, 100}))

	if scored[1].Risk != NeutralRisk {
		t.Errorf("zero-price risk = %v, want %v", scored[1].Risk, NeutralRisk)
	}
}

func TestApplyOffset(t *testing.T) {
	tests := []struct {
		name     string
		risk     float64
		offset   float64
		expected float64
	}{
		{"no offset", 0.5, 0, 0.5},
		{"positive", 0.5, 0.1, 0.6},
		{"negative", 0.5, -0.1, 0.4},
		{"clamps high", 0.95, 0.2, 1},
		{"clamps low", 0.05, -0.2, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ApplyOffset(tt.risk, tt.offset); math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("ApplyOffset(%v, %v) = %v, want %v", tt.risk, tt.offset, got, tt.expected)
			}
		})
	}
}
