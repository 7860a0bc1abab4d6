package formulas

import (
	"math"
	"testing"
)

func TestMean(t *testing.T) {
	tests := []struct {
		name     string
		data     []float64
		expected float64
	}{
		{"simple", []float64{1, 2, 3}, 2},
		{"single", []float64{5}, 5},
		{"empty", []float64{}, 0},
		{"negative", []float64{-2, 2}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Mean(tt.data); got != tt.expected {
				t.Errorf("Mean(%v) = %v, want %v", tt.data, got, tt.expected)
			}
		})
	}
}

func TestStdDev(t *testing.T) {
	// Sample standard deviation (n-1 denominator)
	data := []float64{2, 4, 4, 4, 5, 5, 7, 9}
	got := StdDev(data)
	want := math.Sqrt(32.0 / 7.0)
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("StdDev = %v, want %v", got, want)
	}

	if got := StdDev([]float64{}); got != 0 {
		t.Errorf("StdDev of empty slice = %v, want 0", got)
	}
}

func TestReturns(t *testing.T) {
	got := Returns([]float64{100, 110, 99})
	want := []float64{0.10, -0.10}

	if len(got) != len(want) {
		t.Fatalf("Returns length = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-9 {
			t.Errorf("Returns[%d] = %v, want %v", i, got[i], want[i])
		}
	}

	if got := Returns([]float64{100}); len(got) != 0 {
		t.Errorf("Returns of single price = %v, want empty", got)
	}
}

func TestSharpeRatio(t *testing.T) {
	if got := SharpeRatio([]float64{0.01}, 0.02, 252); got != nil {
		t.Errorf("SharpeRatio with one return = %v, want nil", *got)
	}

	// Zero volatility has no defined Sharpe
	if got := SharpeRatio([]float64{0.01, 0.01, 0.01}, 0.02, 252); got != nil {
		t.Errorf("SharpeRatio with zero volatility = %v, want nil", *got)
	}

	got := SharpeRatio([]float64{0.02, -0.01, 0.03, 0.01}, 0.0, 252)
	if got == nil {
		t.Fatal("SharpeRatio = nil, want value")
	}
	if *got <= 0 {
		t.Errorf("SharpeRatio = %v, want positive for positive mean returns", *got)
	}
}

func TestMaxDrawdown(t *testing.T) {
	got := MaxDrawdown([]float64{100, 120, 60, 90})
	if got == nil {
		t.Fatal("MaxDrawdown = nil, want value")
	}
	if math.Abs(*got-0.5) > 1e-9 {
		t.Errorf("MaxDrawdown = %v, want 0.5", *got)
	}

	if got := MaxDrawdown([]float64{100}); got != nil {
		t.Errorf("MaxDrawdown of single value = %v, want nil", *got)
	}

	// Monotonic rise has zero drawdown
	got = MaxDrawdown([]float64{100, 110, 120})
	if got == nil || *got != 0 {
		t.Errorf("MaxDrawdown of rising series = %v, want 0", got)
	}
}

func TestRound(t *testing.T) {
	tests := []struct {
		val      float64
		decimals int
		expected float64
	}{
		{3.14159, 2, 3.14},
		{0.46409667, 4, 0.4641},
		{1.5, 0, 2},
		{-1.235, 2, -1.24},
	}

	for _, tt := range tests {
		if got := Round(tt.val, tt.decimals); math.Abs(got-tt.expected) > 1e-9 {
			t.Errorf("Round(%v, %d) = %v, want %v", tt.val, tt.decimals, got, tt.expected)
		}
	}
}

func TestClamp01(t *testing.T) {
	tests := []struct {
		val      float64
		expected float64
	}{
		{-0.5, 0},
		{0, 0},
		{0.3, 0.3},
		{1, 1},
		{1.5, 1},
	}

	for _, tt := range tests {
		if got := Clamp01(tt.val); got != tt.expected {
			t.Errorf("Clamp01(%v) = %v, want %v", tt.val, got, tt.expected)
		}
	}
}
