package weights

import (
	"errors"
	"testing"

	"github.com/skylark-met/blend/internal/cube"
)

// twoTimeCube builds a precipitation cube with two validity times,
// 2017-01-10 05:00 and 06:00 UTC.
func twoTimeCube(t *testing.T) *cube.Cube {
	t.Helper()
	c, err := cube.New("lwe_thickness_of_precipitation_amount",
		[]float64{1, 1, 2, 2},
		cube.Coordinate{Name: "time", Points: []float64{1484024400, 1484028000}, Units: "seconds since epoch"},
		cube.Coordinate{Name: "index", Points: []float64{0, 1}, Units: "1"},
	)
	if err != nil {
		t.Fatalf("building cube: %v", err)
	}
	return c
}

func TestResolvePresenceNoExpectation(t *testing.T) {
	c := twoTimeCube(t)
	count, mask, err := ResolvePresence(c, "time", nil, "")
	if err != nil {
		t.Fatalf("ResolvePresence failed: %v", err)
	}
	if count != 2 {
		t.Errorf("expected count 2, got %d", count)
	}
	almostEqual(t, mask, []float64{1.0, 1.0})
}

func TestResolvePresenceAllFound(t *testing.T) {
	c := twoTimeCube(t)
	count, mask, err := ResolvePresence(c, "time", []float64{1484024400, 1484028000}, "")
	if err != nil {
		t.Fatalf("ResolvePresence failed: %v", err)
	}
	if count != 2 {
		t.Errorf("expected count 2, got %d", count)
	}
	almostEqual(t, mask, []float64{1.0, 1.0})
}

func TestResolvePresenceFindsMissing(t *testing.T) {
	c := twoTimeCube(t)
	// First expected cycle is not on the cube.
	expected := []float64{1484020800, 1484024400, 1484028000}
	count, mask, err := ResolvePresence(c, "time", expected, "")
	if err != nil {
		t.Fatalf("ResolvePresence failed: %v", err)
	}
	if count != 3 {
		t.Errorf("expected count 3, got %d", count)
	}
	almostEqual(t, mask, []float64{0.0, 1.0, 1.0})
}

func TestResolvePresenceCoordNotFound(t *testing.T) {
	c := twoTimeCube(t)
	_, _, err := ResolvePresence(c, "not_in_cube", nil, "")
	if !errors.Is(err, ErrCoordNotFound) {
		t.Errorf("expected ErrCoordNotFound, got %v", err)
	}
}

func TestResolvePresenceMorePointsThanExpected(t *testing.T) {
	c := twoTimeCube(t)
	_, _, err := ResolvePresence(c, "time", []float64{1484024400}, "")
	if err == nil {
		t.Error("expected error when cube has more points than requested")
	}
}

func TestResolvePresenceUnitConversion(t *testing.T) {
	c := twoTimeCube(t)
	// Same cycles expressed in hours since epoch.
	expected := []float64{1484024400.0 / 3600, 1484028000.0 / 3600}
	count, mask, err := ResolvePresence(c, "time", expected, "hours since epoch")
	if err != nil {
		t.Fatalf("ResolvePresence failed: %v", err)
	}
	if count != 2 {
		t.Errorf("expected count 2, got %d", count)
	}
	almostEqual(t, mask, []float64{1.0, 1.0})
}

func TestResolvePresenceUnitConversionFails(t *testing.T) {
	c := twoTimeCube(t)
	_, _, err := ResolvePresence(c, "time", []float64{1484024400, 1484028000, 1484031600}, "mm")
	if err == nil {
		t.Error("expected error converting a length unit into a time coordinate")
	}
}

func TestResolvePresenceUnknownUnitMatchingCoord(t *testing.T) {
	c, err := cube.New("lwe_thickness_of_precipitation_amount",
		[]float64{1, 2},
		cube.Coordinate{Name: "time", Points: []float64{1484024400, 1484028000}, Units: "fortnights"},
	)
	if err != nil {
		t.Fatalf("building cube: %v", err)
	}
	// The unit matches the coordinate's but neither is a known unit.
	_, _, err = ResolvePresence(c, "time", []float64{1484024400, 1484028000}, "fortnights")
	if err == nil {
		t.Error("expected error for unknown unit even when it matches the coordinate")
	}
}

func TestParseExpectedValues(t *testing.T) {
	got, err := ParseExpectedValues("1484024400, 1484028000")
	if err != nil {
		t.Fatalf("ParseExpectedValues failed: %v", err)
	}
	almostEqual(t, got, []float64{1484024400, 1484028000})

	if _, err := ParseExpectedValues("12,banana"); err == nil {
		t.Error("expected error for non-numeric value")
	}

	got, err = ParseExpectedValues("")
	if err != nil || got != nil {
		t.Errorf("empty input should yield nil, nil; got %v, %v", got, err)
	}
}
