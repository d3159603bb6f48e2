package cube

import (
	"fmt"
	"slices"
)

// Coordinate is an ordered set of labelled points along one notional axis,
// e.g. validity times in seconds since epoch, or height levels in metres.
type Coordinate struct {
	Name   string
	Points []float64
	Units  string
}

// Len returns the number of points on the coordinate.
func (c Coordinate) Len() int {
	return len(c.Points)
}

// Copy returns a deep copy of the coordinate.
func (c Coordinate) Copy() Coordinate {
	out := c
	out.Points = slices.Clone(c.Points)
	return out
}

// AuxCoordinate is a coordinate that does not index an axis itself but varies
// with the dimension coordinate at Axis (e.g. forecast_period varying with
// time).
type AuxCoordinate struct {
	Coordinate
	Axis int
}

// Cube is a named numeric payload with coordinate metadata: one dimension
// coordinate per axis, plus any number of auxiliary coordinates each attached
// to one of those axes. It is the minimal labelled-array contract the weight
// machinery needs, nothing more.
type Cube struct {
	Name       string
	Data       []float64
	DimCoords  []Coordinate
	AuxCoords  []AuxCoordinate
	Attributes map[string]string
}

// New builds a cube from a payload and its dimension coordinates. The payload
// length must equal the product of the coordinate lengths.
func New(name string, data []float64, dims ...Coordinate) (*Cube, error) {
	size := 1
	for _, d := range dims {
		size *= d.Len()
	}
	if len(data) != size {
		return nil, fmt.Errorf("data length %d does not match coordinate shape %d", len(data), size)
	}
	return &Cube{Name: name, Data: slices.Clone(data), DimCoords: dims}, nil
}

// AddAuxCoord attaches an auxiliary coordinate to the dimension axis at the
// given index. The aux coordinate must have the same length as that axis.
func (c *Cube) AddAuxCoord(coord Coordinate, axis int) error {
	if axis < 0 || axis >= len(c.DimCoords) {
		return fmt.Errorf("axis %d out of range for cube with %d dimensions", axis, len(c.DimCoords))
	}
	if coord.Len() != c.DimCoords[axis].Len() {
		return fmt.Errorf("aux coord %q has %d points, axis %d has %d",
			coord.Name, coord.Len(), axis, c.DimCoords[axis].Len())
	}
	c.AuxCoords = append(c.AuxCoords, AuxCoordinate{Coordinate: coord, Axis: axis})
	return nil
}

// Coord looks up a coordinate by name, searching dimension coordinates first
// and then auxiliary coordinates.
func (c *Cube) Coord(name string) (Coordinate, bool) {
	for _, d := range c.DimCoords {
		if d.Name == name {
			return d, true
		}
	}
	for _, a := range c.AuxCoords {
		if a.Name == name {
			return a.Coordinate, true
		}
	}
	return Coordinate{}, false
}

// HasCoord reports whether a coordinate with the given name exists.
func (c *Cube) HasCoord(name string) bool {
	_, ok := c.Coord(name)
	return ok
}

// IsDimCoord reports whether the named coordinate is a dimension coordinate.
func (c *Cube) IsDimCoord(name string) bool {
	for _, d := range c.DimCoords {
		if d.Name == name {
			return true
		}
	}
	return false
}

// AssociatedDimCoord returns the dimension coordinate underlying the named
// auxiliary coordinate. Scalar auxiliaries (Axis < 0, e.g. after Squeeze)
// have no associated dimension coordinate.
func (c *Cube) AssociatedDimCoord(name string) (Coordinate, bool) {
	for _, a := range c.AuxCoords {
		if a.Name == name {
			if a.Axis < 0 {
				return Coordinate{}, false
			}
			return c.DimCoords[a.Axis], true
		}
	}
	return Coordinate{}, false
}

// RemoveCoord removes the named coordinate if it is an auxiliary coordinate.
// Dimension coordinates cannot be removed without reshaping the payload.
func (c *Cube) RemoveCoord(name string) error {
	for i, a := range c.AuxCoords {
		if a.Name == name {
			c.AuxCoords = slices.Delete(c.AuxCoords, i, i+1)
			return nil
		}
	}
	if c.IsDimCoord(name) {
		return fmt.Errorf("cannot remove dimension coordinate %q", name)
	}
	return fmt.Errorf("coordinate %q not found", name)
}

// SetCoordPoints replaces the points of the named coordinate in place.
func (c *Cube) SetCoordPoints(name string, points []float64) error {
	for i, d := range c.DimCoords {
		if d.Name == name {
			if len(points) != d.Len() {
				return fmt.Errorf("coordinate %q has %d points, got %d", name, d.Len(), len(points))
			}
			c.DimCoords[i].Points = slices.Clone(points)
			return nil
		}
	}
	for i, a := range c.AuxCoords {
		if a.Name == name {
			if len(points) != a.Len() {
				return fmt.Errorf("coordinate %q has %d points, got %d", name, a.Len(), len(points))
			}
			c.AuxCoords[i].Points = slices.Clone(points)
			return nil
		}
	}
	return fmt.Errorf("coordinate %q not found", name)
}

// Squeeze converts every length-1 dimension coordinate into a scalar
// auxiliary coordinate, leaving it queryable by name but no longer indexing
// an axis. Auxiliary coordinates attached to squeezed axes become scalar too.
func (c *Cube) Squeeze() {
	var kept []Coordinate
	remap := make(map[int]int, len(c.DimCoords))
	for i, d := range c.DimCoords {
		if d.Len() == 1 {
			c.AuxCoords = append(c.AuxCoords, AuxCoordinate{Coordinate: d, Axis: -1})
			continue
		}
		remap[i] = len(kept)
		kept = append(kept, d)
	}
	for i := range c.AuxCoords {
		if axis, ok := remap[c.AuxCoords[i].Axis]; ok {
			c.AuxCoords[i].Axis = axis
		} else if c.AuxCoords[i].Axis >= 0 {
			c.AuxCoords[i].Axis = -1
		}
	}
	c.DimCoords = kept
}

// Copy returns a deep copy of the cube.
func (c *Cube) Copy() *Cube {
	out := &Cube{
		Name: c.Name,
		Data: slices.Clone(c.Data),
	}
	for _, d := range c.DimCoords {
		out.DimCoords = append(out.DimCoords, d.Copy())
	}
	for _, a := range c.AuxCoords {
		out.AuxCoords = append(out.AuxCoords, AuxCoordinate{Coordinate: a.Coordinate.Copy(), Axis: a.Axis})
	}
	if c.Attributes != nil {
		out.Attributes = make(map[string]string, len(c.Attributes))
		for k, v := range c.Attributes {
			out.Attributes[k] = v
		}
	}
	return out
}
