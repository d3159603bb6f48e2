// Package blend prepares groups of forecast cubes for weighted blending.
package blend

import (
	"fmt"
	"time"

	"github.com/skylark-met/blend/internal/cube"
)

const (
	coordTime           = "time"
	coordForecastRef    = "forecast_reference_time"
	coordForecastPeriod = "forecast_period"
	secondsSinceEpoch   = "seconds since epoch"
)

// Option adjusts how blend time coordinates are rationalised.
type Option func(*options)

type options struct {
	weightingCoord string
	cycletime      *time.Time
}

// WithWeightingCoord names the coordinate the blend weights vary along.
func WithWeightingCoord(name string) Option {
	return func(o *options) { o.weightingCoord = name }
}

// WithCycletime pins the unified forecast reference time to an explicit
// cycle instead of the latest cycle among the inputs.
func WithCycletime(t time.Time) Option {
	return func(o *options) { o.cycletime = &t }
}

// RationaliseBlendTimeCoords makes the time metadata of a group of cubes
// consistent ahead of blending.
//
// Blending over forecast_reference_time: the forecast_period coordinate is
// removed from every cube that carries it, since periods from different
// cycles cannot coexist on the blended output.
//
// Blending over model, weighted by forecast_period: every cube must carry a
// scalar forecast_reference_time; all reference times are unified to the
// latest cycle among the inputs (or the explicit cycletime option) and each
// cube's forecast_period is recomputed against that cycle.
//
// Any other blend coordinate leaves the cubes untouched.
func RationaliseBlendTimeCoords(cubes []*cube.Cube, blendCoord string, opts ...Option) error {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	if blendCoord == coordForecastRef {
		for _, c := range cubes {
			if c.HasCoord(coordForecastPeriod) {
				if err := c.RemoveCoord(coordForecastPeriod); err != nil {
					return err
				}
			}
		}
		return nil
	}

	if blendCoord != "model" || o.weightingCoord != coordForecastPeriod {
		return nil
	}

	cyclePoint, err := resolveCycletime(cubes, o.cycletime)
	if err != nil {
		return err
	}
	for _, c := range cubes {
		if err := unifyReferenceTime(c, cyclePoint); err != nil {
			return err
		}
	}
	return nil
}

// resolveCycletime picks the cycle to unify on, in seconds since epoch.
func resolveCycletime(cubes []*cube.Cube, explicit *time.Time) (float64, error) {
	if explicit != nil {
		return float64(explicit.Unix()), nil
	}
	latest := 0.0
	found := false
	for _, c := range cubes {
		point, err := scalarReferenceTime(c)
		if err != nil {
			return 0, err
		}
		if !found || point > latest {
			latest = point
			found = true
		}
	}
	if !found {
		return 0, fmt.Errorf("no cubes supplied")
	}
	return latest, nil
}

// scalarReferenceTime returns a cube's forecast reference time in seconds
// since epoch, requiring it to be a single point.
func scalarReferenceTime(c *cube.Cube) (float64, error) {
	coord, ok := c.Coord(coordForecastRef)
	if !ok {
		return 0, fmt.Errorf("cube %q has no %s coordinate", c.Name, coordForecastRef)
	}
	if coord.Len() != 1 {
		return 0, fmt.Errorf("expecting scalar %s for each input cube, got %d points on cube %q",
			coordForecastRef, coord.Len(), c.Name)
	}
	return cube.ConvertUnits(coord.Points[0], coord.Units, secondsSinceEpoch)
}

// unifyReferenceTime sets a cube's forecast reference time to the cycle point
// and recomputes forecast_period against it.
func unifyReferenceTime(c *cube.Cube, cyclePoint float64) error {
	frt, ok := c.Coord(coordForecastRef)
	if !ok {
		return fmt.Errorf("cube %q has no %s coordinate", c.Name, coordForecastRef)
	}
	if frt.Len() != 1 {
		return fmt.Errorf("expecting scalar %s for each input cube, got %d points on cube %q",
			coordForecastRef, frt.Len(), c.Name)
	}
	native, err := cube.ConvertUnits(cyclePoint, secondsSinceEpoch, frt.Units)
	if err != nil {
		return err
	}
	if err := c.SetCoordPoints(coordForecastRef, []float64{native}); err != nil {
		return err
	}

	if !c.HasCoord(coordForecastPeriod) {
		return nil
	}
	tc, ok := c.Coord(coordTime)
	if !ok {
		return fmt.Errorf("cube %q has %s but no %s coordinate", c.Name, coordForecastPeriod, coordTime)
	}
	fp, _ := c.Coord(coordForecastPeriod)
	periods := make([]float64, tc.Len())
	for i, p := range tc.Points {
		validity, err := cube.ConvertUnits(p, tc.Units, secondsSinceEpoch)
		if err != nil {
			return err
		}
		period, err := cube.ConvertUnits(validity-cyclePoint, "seconds", fp.Units)
		if err != nil {
			return err
		}
		periods[i] = period
	}
	if fp.Len() != tc.Len() {
		return fmt.Errorf("cube %q: %s has %d points, %s has %d",
			c.Name, coordForecastPeriod, fp.Len(), coordTime, tc.Len())
	}
	return c.SetCoordPoints(coordForecastPeriod, periods)
}
