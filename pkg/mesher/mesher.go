// Package mesher defines the abstract geometry and sizing-field interface.
// Implementations (a gmsh binding, the in-memory record backend) provide
// point/curve construction and background sizing fields behind this
// interface. The abstraction allows the refinement engine to be exercised
// and tested without a meshing kernel linked in.
package mesher

// PointID is an opaque handle to a geometric control point.
type PointID int

// EdgeID is an opaque handle to a line between two points.
type EdgeID int

// LoopID is an opaque handle to a closed curve loop.
type LoopID int

// SurfaceID is an opaque handle to a plane surface.
type SurfaceID int

// VolumeID is an opaque handle to a volume.
type VolumeID int

// FieldID is an opaque handle to a sizing field.
type FieldID int

// NodeID identifies a mesh node after generation.
type NodeID int

// Axis selects a coordinate axis for rotations.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	}
	return "?"
}

// Node is a generated mesh node with its coordinates.
type Node struct {
	ID      NodeID
	X, Y, Z float64
}

// Kernel is the abstract meshing kernel interface. Sizing fields combine by
// minimum: wherever fields overlap, the smallest requested element size wins.
// Implementations must preserve that rule; the refinement engine depends on it.
type Kernel interface {
	// Geometry construction
	AddPoint(x, y, z, size float64) PointID
	AddLine(a, b PointID) EdgeID
	AddCurveLoop(edges []EdgeID) LoopID
	AddPlaneSurface(loops []LoopID) SurfaceID
	AddVolume(surfaces []SurfaceID) VolumeID

	// Rotate applies a rigid rotation of the given points about the center
	// around the given axis. Angle is in radians.
	Rotate(points []PointID, cx, cy, cz float64, axis Axis, angle float64)

	// EmbedPoints associates sizing-control points with an existing mesh
	// entity of dimension targetDim identified by targetTag.
	EmbedPoints(points []PointID, targetDim, targetTag int)

	// Sizing fields
	AddDistanceField(points []PointID) FieldID
	AddThresholdField(in FieldID, sizeMin, sizeMax, distMin, distMax float64) FieldID
	AddBoxField(xMin, xMax, yMin, yMax, zMin, zMax, sizeIn, sizeOut float64) FieldID
	AddCylinderField(xCenter, yCenter, radius, zAxis, sizeIn, sizeOut float64) FieldID
	AddMinField(fields []FieldID) FieldID
	SetBackgroundField(f FieldID)

	// Post-generation node access, used by the anisotropy remap.
	Nodes() []Node
	SetNode(id NodeID, x, y, z float64)

	// RemoveDuplicates drops duplicate nodes and elements before generation.
	RemoveDuplicates()

	// Generate triggers meshing in the given dimension (2 or 3).
	Generate(dim int) error
}
