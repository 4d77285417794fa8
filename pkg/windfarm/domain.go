package windfarm

import "fmt"

// GroundFunc maps a planar position to terrain elevation. Implementations
// come from the terrain collaborator (file interpolation); the engine only
// ever calls it as a pure function.
type GroundFunc func(x, y float64) float64

// Domain is the axis-aligned simulation region. It is constructed once
// before turbine processing and is read-only thereafter.
type Domain struct {
	xMin, xMax float64
	yMin, yMax float64
	height     float64
	ground     GroundFunc
}

// NewDomain builds a domain from its bounds. Height 0 describes a planar
// (2D) domain where containment ignores elevation above ground.
func NewDomain(xMin, xMax, yMin, yMax, height float64) (*Domain, error) {
	if xMin > xMax {
		return nil, fmt.Errorf("domain: x range [%g, %g] is inverted", xMin, xMax)
	}
	if yMin > yMax {
		return nil, fmt.Errorf("domain: y range [%g, %g] is inverted", yMin, yMax)
	}
	if height < 0 {
		return nil, fmt.Errorf("domain: height %g is negative", height)
	}
	return &Domain{xMin: xMin, xMax: xMax, yMin: yMin, yMax: yMax, height: height}, nil
}

// WithGround returns a copy of the domain with a terrain elevation function
// attached. The receiver is not modified.
func (d *Domain) WithGround(g GroundFunc) *Domain {
	dd := *d
	dd.ground = g
	return &dd
}

// XRange returns the domain's x bounds.
func (d *Domain) XRange() (min, max float64) { return d.xMin, d.xMax }

// YRange returns the domain's y bounds.
func (d *Domain) YRange() (min, max float64) { return d.yMin, d.yMax }

// Height returns the vertical extent of the domain.
func (d *Domain) Height() float64 { return d.height }

// Ground returns the terrain elevation at (x, y), or 0 when no terrain
// function is attached.
func (d *Domain) Ground(x, y float64) float64 {
	if d.ground == nil {
		return 0
	}
	return d.ground(x, y)
}

// HasGround reports whether a terrain function is attached.
func (d *Domain) HasGround() bool { return d.ground != nil }

// Within reports whether the point lies inside the domain. A point is
// inside iff x and y sit in their ranges, 0 <= z <= height, and z is at or
// above the terrain when a ground function is attached. For planar queries
// pass z = 0.
func (d *Domain) Within(x, y, z float64) bool {
	if x < d.xMin || x > d.xMax {
		return false
	}
	if y < d.yMin || y > d.yMax {
		return false
	}
	if z < 0 || z > d.height {
		return false
	}
	if d.ground != nil && z < d.ground(x, y) {
		return false
	}
	return true
}
