package windfarm

import "fmt"

// Zone is one sizing-field description handed to the meshing kernel. All
// zones in a run combine by minimum — the smallest requested size wins at
// any point — so every zone must carry comparable sizes.
type Zone interface {
	// Validate checks the zone's invariants (sizes ordered, extents
	// non-negative) and returns a DegeneracyError on violation.
	Validate() error
}

// BoxZone requests SizeIn inside an axis-aligned box and SizeOut outside.
type BoxZone struct {
	XMin, XMax float64
	YMin, YMax float64
	ZMin, ZMax float64
	SizeIn     float64
	SizeOut    float64
}

// Validate checks the box extents and sizes.
func (z BoxZone) Validate() error {
	if z.XMin > z.XMax || z.YMin > z.YMax || z.ZMin > z.ZMax {
		return &DegeneracyError{Op: "box zone", Detail: "inverted extent"}
	}
	if z.SizeIn <= 0 || z.SizeOut <= 0 {
		return &DegeneracyError{Op: "box zone", Detail: "sizes must be positive"}
	}
	if z.SizeIn > z.SizeOut {
		return &DegeneracyError{
			Op:     "box zone",
			Detail: fmt.Sprintf("inner size %g exceeds outer size %g", z.SizeIn, z.SizeOut),
		}
	}
	return nil
}

// CylinderZone requests SizeIn inside a vertical cylinder and SizeOut
// outside. AxisLen is the cylinder height along z.
type CylinderZone struct {
	XCenter, YCenter float64
	Radius           float64
	AxisLen          float64
	SizeIn           float64
	SizeOut          float64
}

// Validate checks the cylinder extents and sizes.
func (z CylinderZone) Validate() error {
	if z.Radius < 0 || z.AxisLen < 0 {
		return &DegeneracyError{Op: "cylinder zone", Detail: "negative radius or height"}
	}
	if z.SizeIn <= 0 || z.SizeOut <= 0 {
		return &DegeneracyError{Op: "cylinder zone", Detail: "sizes must be positive"}
	}
	if z.SizeIn > z.SizeOut {
		return &DegeneracyError{
			Op:     "cylinder zone",
			Detail: fmt.Sprintf("inner size %g exceeds outer size %g", z.SizeIn, z.SizeOut),
		}
	}
	return nil
}

// ControlPoint is one member of a distance zone's control-point set.
type ControlPoint struct {
	X, Y, Z float64
}

// DistanceZone requests a piecewise-linear size ramp against the distance
// to a control-point set: SizeMin at DistMin growing to SizeMax at DistMax.
type DistanceZone struct {
	Points           []ControlPoint
	SizeMin, SizeMax float64
	DistMin, DistMax float64
}

// Validate checks the ramp ordering and control-point set.
func (z DistanceZone) Validate() error {
	if len(z.Points) == 0 {
		return &DegeneracyError{Op: "distance zone", Detail: "empty control-point set"}
	}
	if z.SizeMin > z.SizeMax {
		return &DegeneracyError{
			Op:     "distance zone",
			Detail: fmt.Sprintf("size min %g exceeds size max %g", z.SizeMin, z.SizeMax),
		}
	}
	if z.DistMin > z.DistMax {
		return &DegeneracyError{
			Op:     "distance zone",
			Detail: fmt.Sprintf("dist min %g exceeds dist max %g", z.DistMin, z.DistMax),
		}
	}
	if z.DistMin < 0 {
		return &DegeneracyError{Op: "distance zone", Detail: "negative minimum distance"}
	}
	return nil
}

// RefineShape tags a user-declared custom refinement region.
type RefineShape int

const (
	RefineBox RefineShape = iota
	RefineCylinder
)

func (s RefineShape) String() string {
	switch s {
	case RefineBox:
		return "box"
	case RefineCylinder:
		return "cylinder"
	}
	return fmt.Sprintf("RefineShape(%d)", int(s))
}

// CustomZone is a user-declared refinement region, independent of turbine
// placement. For boxes the x/y ranges are extents; for cylinders they are
// the center coordinates.
type CustomZone struct {
	Shape       RefineShape
	XRange      [2]float64 // box only
	YRange      [2]float64 // box only
	XCenter     float64    // cylinder only
	YCenter     float64    // cylinder only
	Radius      float64    // cylinder only
	Height      float64
	LengthScale float64
}
