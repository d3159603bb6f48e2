package weights

import (
	"fmt"

	"github.com/skylark-met/blend/internal/cube"
)

// WeightsCubeName is the fixed name carried by every packaged weights cube.
const WeightsCubeName = "weights"

// BuildWeightsCube packages a final weight vector into a cube aligned to the
// blending coordinate of the input data, ready for the blending step.
//
// If the blending coordinate is a dimension coordinate it becomes the output
// cube's sole dimension coordinate. If it is auxiliary, its associated
// dimension coordinate indexes the output and the blending coordinate rides
// along as an auxiliary coordinate so it stays queryable by name. A scalar
// blending coordinate yields a length-1 cube dimensioned by the coordinate
// itself. No attributes are inherited from the data and the weights are not
// renormalized.
func BuildWeightsCube(view DataView, w []float64, blendCoord string) (*cube.Cube, error) {
	coord, ok := view.Coord(blendCoord)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrCoordNotFound, blendCoord)
	}
	if len(w) != coord.Len() {
		return nil, fmt.Errorf("weights array provided is not the same size as the blending coordinate: %w: weights %d, coordinate %d",
			ErrSizeMismatch, len(w), coord.Len())
	}

	if view.IsDimCoord(blendCoord) {
		return cube.New(WeightsCubeName, w, coord)
	}

	dim, ok := view.AssociatedDimCoord(blendCoord)
	if !ok {
		// Scalar coordinate: length 1, no underlying axis.
		return cube.New(WeightsCubeName, w, coord)
	}

	out, err := cube.New(WeightsCubeName, w, dim)
	if err != nil {
		return nil, err
	}
	if err := out.AddAuxCoord(coord, 0); err != nil {
		return nil, err
	}
	return out, nil
}
