package refine

import (
	"fmt"
	"math"

	"github.com/galemesh/galemesh/pkg/mesher"
	"github.com/galemesh/galemesh/pkg/windfarm"
)

// EllipseRadius returns the planar radius of the refinement ellipsoid at
// elevation z above its center, with minor axis a and major (vertical)
// axis b. An elevation outside the major axis is an inconsistent
// level/aspect configuration and is never clamped.
func EllipseRadius(a, b, z float64) (float64, error) {
	if a <= 0 || b <= 0 {
		return 0, &windfarm.DegeneracyError{
			Op:     "ellipse radius",
			Detail: fmt.Sprintf("non-positive axis (a=%g, b=%g)", a, b),
		}
	}
	if math.Abs(z) > b {
		return 0, &windfarm.DegeneracyError{
			Op:     "ellipse radius",
			Detail: fmt.Sprintf("elevation %g outside major axis %g", z, b),
		}
	}
	return a * math.Sqrt(1-(z*z)/(b*b)), nil
}

// RemapElevations applies the anisotropy coordinate transform to every mesh
// node after generation: elevations at or below the transition are divided
// by the aspect ratio, elevations above are shifted down by the offset that
// keeps the transform continuous at the transition. A ratio of 1 is a no-op.
//
// This is a pure post-processing pass over the kernel's node set; it never
// runs during footprint construction.
func RemapElevations(k mesher.Kernel, aspectRatio, aspectDistance float64) {
	if aspectRatio == 1 {
		return
	}
	transition := aspectDistance * aspectRatio
	offset := aspectDistance * (aspectRatio - 1)
	for _, n := range k.Nodes() {
		if n.Z <= transition {
			k.SetNode(n.ID, n.X, n.Y, n.Z/aspectRatio)
		} else {
			k.SetNode(n.ID, n.X, n.Y, n.Z-offset)
		}
	}
}

// AdjustedHeight maps a custom-zone height through the two-tier vertical
// scaling law: the portion below the threshold compresses by the lower
// aspect ratio, the remainder by the upper one.
func AdjustedHeight(lowerAspect, upperAspect, threshold, height float64) (float64, error) {
	if lowerAspect <= 0 || upperAspect <= 0 {
		return 0, &windfarm.DegeneracyError{
			Op:     "adjusted height",
			Detail: fmt.Sprintf("non-positive aspect ratio (%g, %g)", lowerAspect, upperAspect),
		}
	}
	if threshold < 0 || height < 0 {
		return 0, &windfarm.DegeneracyError{
			Op:     "adjusted height",
			Detail: "negative threshold or height",
		}
	}
	lower := math.Min(height, threshold)
	upper := math.Max(0, height-threshold)
	return lower/lowerAspect + upper/upperAspect, nil
}
