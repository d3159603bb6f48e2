package weights

import (
	"errors"
	"math"
	"testing"
)

func TestRedistributeAllPresent(t *testing.T) {
	result, err := Redistribute([]float64{0.6, 0.3, 0.1}, []float64{1, 1, 1}, Evenly)
	if err != nil {
		t.Fatalf("Redistribute failed: %v", err)
	}
	almostEqual(t, result, []float64{0.6, 0.3, 0.1})
}

func TestRedistributeFailsNotNormalised(t *testing.T) {
	_, err := Redistribute([]float64{3.0, 2.0, 1.0}, []float64{1, 1, 1}, Evenly)
	if !errors.Is(err, ErrNotNormalised) {
		t.Errorf("expected ErrNotNormalised, got %v", err)
	}
}

func TestRedistributeFailsNegativeWeight(t *testing.T) {
	_, err := Redistribute([]float64{-0.1, 1.1}, []float64{1, 1}, Evenly)
	if !errors.Is(err, ErrNegativeWeight) {
		t.Errorf("expected ErrNegativeWeight, got %v", err)
	}
}

func TestRedistributeFailsSizeMismatch(t *testing.T) {
	_, err := Redistribute([]float64{0.7, 0.2, 0.1}, []float64{1, 1}, Evenly)
	if !errors.Is(err, ErrSizeMismatch) {
		t.Errorf("expected ErrSizeMismatch, got %v", err)
	}
}

func TestRedistributeEvenly(t *testing.T) {
	weights := []float64{0.41957573, 0.25174544, 0.15104726, 0.09062836, 0.05437701, 0.03262621}
	present := []float64{1, 1, 0, 1, 1, 1}
	result, err := Redistribute(weights, present, Evenly)
	if err != nil {
		t.Fatalf("Redistribute failed: %v", err)
	}
	almostEqual(t, result, []float64{0.44978518, 0.28195489, 0.12083781, 0.08458647, 0.06283566})
}

func TestRedistributeProportional(t *testing.T) {
	weights := []float64{0.41957573, 0.25174544, 0.15104726, 0.09062836, 0.05437701, 0.03262621}
	present := []float64{1, 1, 0, 1, 1, 1}
	result, err := Redistribute(weights, present, Proportional)
	if err != nil {
		t.Fatalf("Redistribute failed: %v", err)
	}
	almostEqual(t, result, []float64{0.49422742, 0.29653645, 0.10675312, 0.06405187, 0.03843112})
}

func TestRedistributeMethodsDivergeButSumToOne(t *testing.T) {
	weights := []float64{0.41957573, 0.25174544, 0.15104726, 0.09062836, 0.05437701, 0.03262621}
	present := []float64{1, 1, 0, 1, 1, 1}

	even, err := Redistribute(weights, present, Evenly)
	if err != nil {
		t.Fatalf("evenly failed: %v", err)
	}
	prop, err := Redistribute(weights, present, Proportional)
	if err != nil {
		t.Fatalf("proportional failed: %v", err)
	}

	for _, result := range [][]float64{even, prop} {
		var sum float64
		for _, v := range result {
			sum += v
		}
		if math.Abs(sum-1.0) > 1e-6 {
			t.Errorf("redistributed weights sum to %v, want 1.0", sum)
		}
	}

	diverged := false
	for i := range even {
		if math.Abs(even[i]-prop[i]) > 1e-6 {
			diverged = true
		}
	}
	if !diverged {
		t.Error("evenly and proportional produced identical weights for an uneven input")
	}
}

func TestRedistributeAllMissing(t *testing.T) {
	_, err := Redistribute([]float64{0.6, 0.3, 0.1}, []float64{0, 0, 0}, Evenly)
	if !errors.Is(err, ErrNonePresent) {
		t.Errorf("expected ErrNonePresent, got %v", err)
	}
}

func TestRedistributeProportionalNoPresentMass(t *testing.T) {
	// The only weighted forecasts are missing; proportional shares over the
	// zero-weight survivors are undefined.
	_, err := Redistribute([]float64{0.5, 0.5, 0.0}, []float64{0, 0, 1}, Proportional)
	if err == nil {
		t.Error("expected error when present forecasts carry no weight")
	}
}

func TestParseMethod(t *testing.T) {
	tests := []struct {
		in      string
		want    Method
		wantErr bool
	}{
		{"", Evenly, false},
		{"evenly", Evenly, false},
		{"proportional", Proportional, false},
		{"sideways", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseMethod(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseMethod(%q): expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseMethod(%q): %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseMethod(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
