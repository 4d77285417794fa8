// Package record implements the mesher.Kernel interface in memory.
// Every call is recorded rather than meshed, which makes the backend
// suitable for tests, dry runs, and exporting the sizing description
// for inspection before a real kernel is invoked.
package record

import (
	"fmt"
	"math"

	"github.com/galemesh/galemesh/pkg/mesher"
)

// Compile-time interface check.
var _ mesher.Kernel = (*Kernel)(nil)

// Point is a recorded control point.
type Point struct {
	ID         mesher.PointID
	X, Y, Z    float64
	Size       float64
	RotatedBy  float64 // accumulated rotation angle applied via Rotate
}

// Line is a recorded line between two points.
type Line struct {
	ID   mesher.EdgeID
	A, B mesher.PointID
}

// Embed is a recorded point-embedding association.
type Embed struct {
	Points    []mesher.PointID
	TargetDim int
	TargetTag int
}

// FieldKind enumerates recorded sizing-field types.
type FieldKind int

const (
	FieldDistance FieldKind = iota
	FieldThreshold
	FieldBox
	FieldCylinder
	FieldMin
)

func (k FieldKind) String() string {
	switch k {
	case FieldDistance:
		return "distance"
	case FieldThreshold:
		return "threshold"
	case FieldBox:
		return "box"
	case FieldCylinder:
		return "cylinder"
	case FieldMin:
		return "min"
	}
	return fmt.Sprintf("FieldKind(%d)", int(k))
}

// Field is a recorded sizing field. Only the members relevant to its kind
// are populated.
type Field struct {
	ID     mesher.FieldID
	Kind   FieldKind
	Points []mesher.PointID // distance
	In     mesher.FieldID   // threshold
	Fields []mesher.FieldID // min

	SizeMin, SizeMax float64 // threshold
	DistMin, DistMax float64 // threshold

	XMin, XMax, YMin, YMax, ZMin, ZMax float64 // box
	XCenter, YCenter, Radius, ZAxis    float64 // cylinder
	SizeIn, SizeOut                    float64 // box, cylinder
}

// Kernel records every mesher call in memory.
type Kernel struct {
	points   []Point
	lines    []Line
	loops    [][]mesher.EdgeID
	surfaces [][]mesher.LoopID
	volumes  [][]mesher.SurfaceID
	embeds   []Embed
	fields   []Field

	background    mesher.FieldID
	hasBackground bool

	nodes       []mesher.Node
	deduped     bool
	generatedIn int
}

// New returns an empty recording kernel.
func New() *Kernel {
	return &Kernel{background: -1}
}

// AddPoint records a control point and returns its handle.
func (k *Kernel) AddPoint(x, y, z, size float64) mesher.PointID {
	id := mesher.PointID(len(k.points) + 1)
	k.points = append(k.points, Point{ID: id, X: x, Y: y, Z: z, Size: size})
	return id
}

// AddLine records a line between two points.
func (k *Kernel) AddLine(a, b mesher.PointID) mesher.EdgeID {
	id := mesher.EdgeID(len(k.lines) + 1)
	k.lines = append(k.lines, Line{ID: id, A: a, B: b})
	return id
}

// AddCurveLoop records a closed loop of edges.
func (k *Kernel) AddCurveLoop(edges []mesher.EdgeID) mesher.LoopID {
	k.loops = append(k.loops, append([]mesher.EdgeID(nil), edges...))
	return mesher.LoopID(len(k.loops))
}

// AddPlaneSurface records a plane surface bounded by loops.
func (k *Kernel) AddPlaneSurface(loops []mesher.LoopID) mesher.SurfaceID {
	k.surfaces = append(k.surfaces, append([]mesher.LoopID(nil), loops...))
	return mesher.SurfaceID(len(k.surfaces))
}

// AddVolume records a volume bounded by surfaces.
func (k *Kernel) AddVolume(surfaces []mesher.SurfaceID) mesher.VolumeID {
	k.volumes = append(k.volumes, append([]mesher.SurfaceID(nil), surfaces...))
	return mesher.VolumeID(len(k.volumes))
}

// Rotate applies a rigid rotation to the recorded point coordinates.
// Only AxisZ rotation moves coordinates; the inflow alignment the engine
// performs is always about the vertical axis.
func (k *Kernel) Rotate(points []mesher.PointID, cx, cy, cz float64, axis mesher.Axis, angle float64) {
	if axis != mesher.AxisZ {
		return
	}
	sin, cos := math.Sin(angle), math.Cos(angle)
	for _, id := range points {
		i := int(id) - 1
		if i < 0 || i >= len(k.points) {
			continue
		}
		p := &k.points[i]
		dx, dy := p.X-cx, p.Y-cy
		p.X = cx + dx*cos - dy*sin
		p.Y = cy + dx*sin + dy*cos
		p.RotatedBy += angle
	}
}

// EmbedPoints records a point-embedding association.
func (k *Kernel) EmbedPoints(points []mesher.PointID, targetDim, targetTag int) {
	k.embeds = append(k.embeds, Embed{
		Points:    append([]mesher.PointID(nil), points...),
		TargetDim: targetDim,
		TargetTag: targetTag,
	})
}

func (k *Kernel) addField(f Field) mesher.FieldID {
	f.ID = mesher.FieldID(len(k.fields) + 1)
	k.fields = append(k.fields, f)
	return f.ID
}

// AddDistanceField records a distance field over control points.
func (k *Kernel) AddDistanceField(points []mesher.PointID) mesher.FieldID {
	return k.addField(Field{Kind: FieldDistance, Points: append([]mesher.PointID(nil), points...)})
}

// AddThresholdField records a threshold ramp over an input field.
func (k *Kernel) AddThresholdField(in mesher.FieldID, sizeMin, sizeMax, distMin, distMax float64) mesher.FieldID {
	return k.addField(Field{
		Kind: FieldThreshold, In: in,
		SizeMin: sizeMin, SizeMax: sizeMax,
		DistMin: distMin, DistMax: distMax,
	})
}

// AddBoxField records an axis-aligned box sizing field.
func (k *Kernel) AddBoxField(xMin, xMax, yMin, yMax, zMin, zMax, sizeIn, sizeOut float64) mesher.FieldID {
	return k.addField(Field{
		Kind: FieldBox,
		XMin: xMin, XMax: xMax, YMin: yMin, YMax: yMax, ZMin: zMin, ZMax: zMax,
		SizeIn: sizeIn, SizeOut: sizeOut,
	})
}

// AddCylinderField records a vertical cylinder sizing field.
func (k *Kernel) AddCylinderField(xCenter, yCenter, radius, zAxis, sizeIn, sizeOut float64) mesher.FieldID {
	return k.addField(Field{
		Kind:    FieldCylinder,
		XCenter: xCenter, YCenter: yCenter, Radius: radius, ZAxis: zAxis,
		SizeIn: sizeIn, SizeOut: sizeOut,
	})
}

// AddMinField records a minimum-combination field.
func (k *Kernel) AddMinField(fields []mesher.FieldID) mesher.FieldID {
	return k.addField(Field{Kind: FieldMin, Fields: append([]mesher.FieldID(nil), fields...)})
}

// SetBackgroundField records the background field selection.
func (k *Kernel) SetBackgroundField(f mesher.FieldID) {
	k.background = f
	k.hasBackground = true
}

// Nodes returns the recorded mesh nodes.
func (k *Kernel) Nodes() []mesher.Node {
	return append([]mesher.Node(nil), k.nodes...)
}

// SetNode overwrites the coordinates of a mesh node.
func (k *Kernel) SetNode(id mesher.NodeID, x, y, z float64) {
	for i := range k.nodes {
		if k.nodes[i].ID == id {
			k.nodes[i].X, k.nodes[i].Y, k.nodes[i].Z = x, y, z
			return
		}
	}
}

// SeedNodes installs mesh nodes as if generation had produced them.
// Tests use this to exercise post-generation passes.
func (k *Kernel) SeedNodes(nodes []mesher.Node) {
	k.nodes = append([]mesher.Node(nil), nodes...)
}

// RemoveDuplicates records the deduplication request.
func (k *Kernel) RemoveDuplicates() {
	k.deduped = true
}

// Generate records the generation request.
func (k *Kernel) Generate(dim int) error {
	if dim != 2 && dim != 3 {
		return fmt.Errorf("record: generate dimension must be 2 or 3, got %d", dim)
	}
	k.generatedIn = dim
	return nil
}

// ---------------------------------------------------------------------------
// Inspection accessors (tests, export)
// ---------------------------------------------------------------------------

// Points returns all recorded control points.
func (k *Kernel) Points() []Point { return append([]Point(nil), k.points...) }

// PointByID returns the recorded point with the given handle.
func (k *Kernel) PointByID(id mesher.PointID) (Point, bool) {
	i := int(id) - 1
	if i < 0 || i >= len(k.points) {
		return Point{}, false
	}
	return k.points[i], true
}

// Lines returns all recorded lines.
func (k *Kernel) Lines() []Line { return append([]Line(nil), k.lines...) }

// LoopCount returns the number of recorded curve loops.
func (k *Kernel) LoopCount() int { return len(k.loops) }

// SurfaceCount returns the number of recorded plane surfaces.
func (k *Kernel) SurfaceCount() int { return len(k.surfaces) }

// Embeds returns all recorded embedding associations.
func (k *Kernel) Embeds() []Embed { return append([]Embed(nil), k.embeds...) }

// Fields returns all recorded sizing fields.
func (k *Kernel) Fields() []Field { return append([]Field(nil), k.fields...) }

// FieldByID returns the recorded field with the given handle.
func (k *Kernel) FieldByID(id mesher.FieldID) (Field, bool) {
	i := int(id) - 1
	if i < 0 || i >= len(k.fields) {
		return Field{}, false
	}
	return k.fields[i], true
}

// Background returns the background field handle and whether one was set.
func (k *Kernel) Background() (mesher.FieldID, bool) { return k.background, k.hasBackground }

// Deduplicated reports whether RemoveDuplicates was called.
func (k *Kernel) Deduplicated() bool { return k.deduped }

// GeneratedDimension returns the dimension passed to Generate, or 0.
func (k *Kernel) GeneratedDimension() int { return k.generatedIn }
