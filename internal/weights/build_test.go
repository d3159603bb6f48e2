package weights

import (
	"errors"
	"testing"

	"github.com/skylark-met/blend/internal/cube"
)

// thresholdCube builds a cube with a threshold axis and a time axis, plus a
// forecast_period auxiliary coordinate riding on the time axis.
func thresholdCube(t *testing.T) *cube.Cube {
	t.Helper()
	c, err := cube.New("probability_of_rainfall_rate_above_threshold",
		[]float64{0.1, 0.2, 0.5, 0.6},
		cube.Coordinate{Name: "threshold", Points: []float64{0.5, 1.0}, Units: "mm"},
		cube.Coordinate{Name: "time", Points: []float64{1484024400, 1484028000}, Units: "seconds since epoch"},
	)
	if err != nil {
		t.Fatalf("building cube: %v", err)
	}
	if err := c.AddAuxCoord(cube.Coordinate{Name: "forecast_period", Points: []float64{7200, 10800}, Units: "seconds"}, 1); err != nil {
		t.Fatalf("adding aux coord: %v", err)
	}
	c.Attributes = map[string]string{"source": "nowcast"}
	return c
}

func TestBuildWeightsCubeDimCoord(t *testing.T) {
	c := thresholdCube(t)
	result, err := BuildWeightsCube(c, []float64{0.4, 0.6}, "time")
	if err != nil {
		t.Fatalf("BuildWeightsCube failed: %v", err)
	}
	if result.Name != WeightsCubeName {
		t.Errorf("expected name %q, got %q", WeightsCubeName, result.Name)
	}
	if len(result.Attributes) != 0 {
		t.Errorf("expected no attributes, got %v", result.Attributes)
	}
	almostEqual(t, result.Data, []float64{0.4, 0.6})
	if len(result.DimCoords) != 1 || result.DimCoords[0].Name != "time" {
		t.Errorf("expected single time dimension coordinate, got %v", result.DimCoords)
	}
}

func TestBuildWeightsCubeAuxCoord(t *testing.T) {
	c := thresholdCube(t)
	result, err := BuildWeightsCube(c, []float64{0.4, 0.6}, "forecast_period")
	if err != nil {
		t.Fatalf("BuildWeightsCube failed: %v", err)
	}
	if len(result.DimCoords) != 1 || result.DimCoords[0].Name != "time" {
		t.Errorf("expected the associated time dimension coordinate, got %v", result.DimCoords)
	}
	if !result.HasCoord("forecast_period") {
		t.Error("expected forecast_period retained as an auxiliary coordinate")
	}
	almostEqual(t, result.Data, []float64{0.4, 0.6})
}

func TestBuildWeightsCubeScalarCoord(t *testing.T) {
	c, err := cube.New("probability_of_rainfall_rate_above_threshold",
		[]float64{0.1, 0.2},
		cube.Coordinate{Name: "threshold", Points: []float64{0.5}, Units: "mm"},
		cube.Coordinate{Name: "index", Points: []float64{0, 1}, Units: "1"},
	)
	if err != nil {
		t.Fatalf("building cube: %v", err)
	}
	c.Squeeze()

	result, err := BuildWeightsCube(c, []float64{1.0}, "threshold")
	if err != nil {
		t.Fatalf("BuildWeightsCube failed: %v", err)
	}
	if result.Name != WeightsCubeName {
		t.Errorf("expected name %q, got %q", WeightsCubeName, result.Name)
	}
	almostEqual(t, result.Data, []float64{1.0})
	if len(result.DimCoords) != 1 || result.DimCoords[0].Name != "threshold" {
		t.Errorf("expected threshold as the dimension coordinate, got %v", result.DimCoords)
	}
}

func TestBuildWeightsCubeSizeMismatch(t *testing.T) {
	c := thresholdCube(t)
	_, err := BuildWeightsCube(c, []float64{0.4, 0.4, 0.2}, "time")
	if !errors.Is(err, ErrSizeMismatch) {
		t.Errorf("expected ErrSizeMismatch, got %v", err)
	}
}

func TestBuildWeightsCubeCoordNotFound(t *testing.T) {
	c := thresholdCube(t)
	_, err := BuildWeightsCube(c, []float64{0.4, 0.6}, "realization")
	if !errors.Is(err, ErrCoordNotFound) {
		t.Errorf("expected ErrCoordNotFound, got %v", err)
	}
}
