package weights

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/skylark-met/blend/internal/cube"
)

// pointTolerance is the slack allowed when matching expected coordinate
// values against actual points, to absorb unit-conversion rounding.
const pointTolerance = 1e-6

// ErrCoordNotFound indicates the named blending coordinate does not exist on
// the input cube.
var ErrCoordNotFound = errors.New("coordinate not found on input cube")

// DataView is the window onto a labelled data array that presence resolution
// and weight packaging need: coordinate lookup by name, the dimension-vs-
// auxiliary distinction, and the dimension coordinate underlying an
// auxiliary one. *cube.Cube implements it.
type DataView interface {
	Coord(name string) (cube.Coordinate, bool)
	IsDimCoord(name string) bool
	AssociatedDimCoord(name string) (cube.Coordinate, bool)
}

// ResolvePresence compares the expected coordinate values against the points
// actually on the cube's coordinate. It returns the number of expected
// members and an indicator vector aligned with expected: 1.0 where the value
// was found on the coordinate, 0.0 where it is missing.
//
// A nil expected sequence means no external expectation: the count is the
// coordinate's point count and everything is present. A non-empty unit means
// the expected values are expressed in that unit and are converted into the
// coordinate's own unit before matching.
func ResolvePresence(view DataView, coordName string, expected []float64, unit string) (int, []float64, error) {
	coord, ok := view.Coord(coordName)
	if !ok {
		return 0, nil, fmt.Errorf("%w: %q", ErrCoordNotFound, coordName)
	}

	if expected == nil {
		mask := make([]float64, coord.Len())
		for i := range mask {
			mask[i] = 1.0
		}
		return coord.Len(), mask, nil
	}

	if unit != "" {
		converted, err := cube.ConvertPoints(expected, unit, coord.Units)
		if err != nil {
			return 0, nil, fmt.Errorf("failed to convert coord units: %w", err)
		}
		expected = converted
	}

	if coord.Len() > len(expected) {
		return 0, nil, fmt.Errorf("cube coordinate %q has more points (%d) than requested (%d)",
			coordName, coord.Len(), len(expected))
	}

	mask := make([]float64, len(expected))
	for i, want := range expected {
		for _, have := range coord.Points {
			if math.Abs(have-want) <= pointTolerance {
				mask[i] = 1.0
				break
			}
		}
	}
	return len(expected), mask, nil
}

// ParseExpectedValues parses a comma-separated list of numeric coordinate
// values, the form expected values arrive in from external callers.
func ParseExpectedValues(s string) ([]float64, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	out := make([]float64, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid expected coordinate value %q: %w", p, err)
		}
		out = append(out, v)
	}
	return out, nil
}
