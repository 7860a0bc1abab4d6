package risk

import (
	"math"
	"testing"
)

func TestBands_CoverLowRange(t *testing.T) {
	if len(Bands) != 7 {
		t.Fatalf("band count = %d, want 7", len(Bands))
	}

	// Contiguous width-0.1 intervals from 0 to 0.7
	for i, b := range Bands {
		wantMin := float64(i) * 0.1
		if math.Abs(b.Min-wantMin) > 1e-9 {
			t.Errorf("band %d: min = %v, want %v", i, b.Min, wantMin)
		}
		if math.Abs(b.Max-b.Min-0.1) > 1e-9 {
			t.Errorf("band %d: width = %v, want 0.1", i, b.Max-b.Min)
		}
	}
}

func TestBandByIndex(t *testing.T) {
	band, err := BandByIndex(DefaultBandIndex)
	if err != nil {
		t.Fatalf("BandByIndex(%d) error: %v", DefaultBandIndex, err)
	}
	if band.Min != 0.4 || band.Max != 0.5 {
		t.Errorf("default band = %+v, want [0.4, 0.5)", band)
	}

	for _, idx := range []int{-1, 7, 100} {
		if _, err := BandByIndex(idx); err == nil {
			t.Errorf("BandByIndex(%d) expected error", idx)
		}
	}
}
