package weights

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// Method selects how the weight mass of missing forecasts is reallocated
// onto the forecasts that are present.
type Method int

const (
	// Evenly splits the missing mass equally across the present forecasts,
	// regardless of their original weights.
	Evenly Method = iota
	// Proportional distributes the missing mass in proportion to each
	// present forecast's existing share, i.e. renormalizes over the present
	// subset.
	Proportional
)

// ParseMethod maps an external method name onto the enum.
func ParseMethod(s string) (Method, error) {
	switch s {
	case "", "evenly":
		return Evenly, nil
	case "proportional":
		return Proportional, nil
	default:
		return 0, fmt.Errorf("unknown redistribution method %q", s)
	}
}

func (m Method) String() string {
	switch m {
	case Evenly:
		return "evenly"
	case Proportional:
		return "proportional"
	default:
		return fmt.Sprintf("Method(%d)", int(m))
	}
}

// Redistribute compacts a normalized weight vector to the present forecasts
// only, reallocating the mass of missing entries according to the method.
// present is an indicator vector aligned with weights: non-zero marks a
// forecast that exists in the data. The result keeps the relative order of
// the present entries and sums to 1.0.
func Redistribute(w, present []float64, method Method) ([]float64, error) {
	if len(w) != len(present) {
		return nil, fmt.Errorf("%w: weights %d, forecast_present %d", ErrSizeMismatch, len(w), len(present))
	}
	if !normalised(w) {
		return nil, fmt.Errorf("%w: got %v", ErrNotNormalised, floats.Sum(w))
	}
	anyPositive := false
	for _, v := range w {
		if v < 0 {
			return nil, fmt.Errorf("%w: found %v", ErrNegativeWeight, v)
		}
		if v > 0 {
			anyPositive = true
		}
	}
	if !anyPositive {
		return nil, fmt.Errorf("%w: all weights are zero", ErrNegativeWeight)
	}

	var missingMass float64
	presentCount := 0
	for i, p := range present {
		if p != 0 {
			presentCount++
		} else {
			missingMass += w[i]
		}
	}
	if presentCount == 0 {
		return nil, ErrNonePresent
	}
	remaining := 1 - missingMass
	if method == Proportional && remaining <= sumTolerance {
		// Present forecasts carry essentially no weight, so proportional
		// shares are undefined. Refuse rather than amplify rounding noise.
		return nil, fmt.Errorf("%w: present forecasts carry no weight to scale proportionally", ErrNegativeWeight)
	}

	out := make([]float64, 0, presentCount)
	for i, p := range present {
		if p == 0 {
			continue
		}
		switch method {
		case Evenly:
			out = append(out, w[i]+missingMass/float64(presentCount))
		case Proportional:
			out = append(out, w[i]/remaining)
		default:
			return nil, fmt.Errorf("unknown redistribution method %v", method)
		}
	}
	return out, nil
}
