package record

import (
	"math"
	"testing"

	"github.com/galemesh/galemesh/pkg/mesher"
)

func TestPointsAndGeometry(t *testing.T) {
	k := New()

	a := k.AddPoint(0, 0, 0, 30)
	b := k.AddPoint(100, 0, 0, 30)
	c := k.AddPoint(100, 100, 0, 30)
	if a != 1 || b != 2 || c != 3 {
		t.Fatalf("point handles = %d %d %d, want 1 2 3", a, b, c)
	}

	e1 := k.AddLine(a, b)
	e2 := k.AddLine(b, c)
	e3 := k.AddLine(c, a)
	loop := k.AddCurveLoop([]mesher.EdgeID{e1, e2, e3})
	s := k.AddPlaneSurface([]mesher.LoopID{loop})
	if v := k.AddVolume([]mesher.SurfaceID{s}); v != 1 {
		t.Errorf("volume handle = %d, want 1", v)
	}

	if len(k.Lines()) != 3 {
		t.Errorf("line count = %d, want 3", len(k.Lines()))
	}
	if k.LoopCount() != 1 || k.SurfaceCount() != 1 {
		t.Errorf("loops = %d, surfaces = %d, want 1 and 1", k.LoopCount(), k.SurfaceCount())
	}

	p, ok := k.PointByID(b)
	if !ok || p.X != 100 || p.Size != 30 {
		t.Errorf("point lookup = %+v %v", p, ok)
	}
	if _, ok := k.PointByID(99); ok {
		t.Error("lookup of an unknown handle should fail")
	}
}

func TestRotate(t *testing.T) {
	k := New()
	id := k.AddPoint(100, 0, 0, 30)

	// A quarter turn about the origin moves (100, 0) to (0, 100).
	k.Rotate([]mesher.PointID{id}, 0, 0, 0, mesher.AxisZ, math.Pi/2)
	p, _ := k.PointByID(id)
	if math.Abs(p.X) > 1e-9 || math.Abs(p.Y-100) > 1e-9 {
		t.Errorf("rotated point = (%g, %g), want (0, 100)", p.X, p.Y)
	}
	if p.RotatedBy != math.Pi/2 {
		t.Errorf("accumulated angle = %g, want pi/2", p.RotatedBy)
	}

	// Rotation about a non-vertical axis leaves coordinates alone.
	k.Rotate([]mesher.PointID{id}, 0, 0, 0, mesher.AxisX, math.Pi)
	p, _ = k.PointByID(id)
	if math.Abs(p.Y-100) > 1e-9 {
		t.Errorf("x-axis rotation moved the point to (%g, %g)", p.X, p.Y)
	}
}

func TestRotateAboutCenter(t *testing.T) {
	k := New()
	id := k.AddPoint(250, 400, 0, 30)

	// Half turn about (200, 400) mirrors the offset.
	k.Rotate([]mesher.PointID{id}, 200, 400, 0, mesher.AxisZ, math.Pi)
	p, _ := k.PointByID(id)
	if math.Abs(p.X-150) > 1e-9 || math.Abs(p.Y-400) > 1e-9 {
		t.Errorf("rotated point = (%g, %g), want (150, 400)", p.X, p.Y)
	}
}

func TestFields(t *testing.T) {
	k := New()
	p := k.AddPoint(0, 0, 0, 30)

	d := k.AddDistanceField([]mesher.PointID{p})
	th := k.AddThresholdField(d, 30, 100, 100, 300)
	box := k.AddBoxField(-10, 10, -10, 10, 0, 100, 40, 100)
	cyl := k.AddCylinderField(5, 5, 200, 400, 40, 100)
	min := k.AddMinField([]mesher.FieldID{th, box, cyl})

	if len(k.Fields()) != 5 {
		t.Fatalf("field count = %d, want 5", len(k.Fields()))
	}

	f, ok := k.FieldByID(th)
	if !ok || f.Kind != FieldThreshold {
		t.Fatalf("threshold lookup = %+v %v", f, ok)
	}
	if f.In != d || f.SizeMin != 30 || f.DistMax != 300 {
		t.Errorf("threshold field = %+v", f)
	}

	f, _ = k.FieldByID(cyl)
	if f.Kind != FieldCylinder || f.Radius != 200 || f.ZAxis != 400 {
		t.Errorf("cylinder field = %+v", f)
	}

	f, _ = k.FieldByID(min)
	if f.Kind != FieldMin || len(f.Fields) != 3 {
		t.Errorf("min field = %+v", f)
	}

	if _, ok := k.Background(); ok {
		t.Error("background set before SetBackgroundField")
	}
	k.SetBackgroundField(min)
	bg, ok := k.Background()
	if !ok || bg != min {
		t.Errorf("background = %d %v, want %d", bg, ok, min)
	}
}

func TestNodes(t *testing.T) {
	k := New()
	k.SeedNodes([]mesher.Node{
		{ID: 1, X: 1, Y: 2, Z: 3},
		{ID: 2, X: 4, Y: 5, Z: 6},
	})

	k.SetNode(2, 4, 5, 60)
	for _, n := range k.Nodes() {
		if n.ID == 2 && n.Z != 60 {
			t.Errorf("node 2 z = %g, want 60", n.Z)
		}
		if n.ID == 1 && n.Z != 3 {
			t.Errorf("node 1 z = %g, want 3", n.Z)
		}
	}

	// Unknown node IDs are ignored.
	k.SetNode(99, 0, 0, 0)
	if len(k.Nodes()) != 2 {
		t.Errorf("node count = %d, want 2", len(k.Nodes()))
	}
}

func TestGenerate(t *testing.T) {
	k := New()
	if err := k.Generate(4); err == nil {
		t.Error("dimension 4 should fail")
	}
	if err := k.Generate(3); err != nil {
		t.Fatal(err)
	}
	if k.GeneratedDimension() != 3 {
		t.Errorf("generated dimension = %d, want 3", k.GeneratedDimension())
	}

	if k.Deduplicated() {
		t.Error("deduplicated before RemoveDuplicates")
	}
	k.RemoveDuplicates()
	if !k.Deduplicated() {
		t.Error("RemoveDuplicates not recorded")
	}
}
