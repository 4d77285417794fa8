package preview

import (
	"bytes"
	"encoding/binary"
	"math"
	"testing"

	"github.com/galemesh/galemesh/pkg/windfarm"
)

func TestSolidOfBox(t *testing.T) {
	s, err := solidOf(windfarm.BoxZone{
		XMin: -100, XMax: 300,
		YMin: 0, YMax: 200,
		ZMin: 0, ZMax: 500,
		SizeIn: 30, SizeOut: 100,
	})
	if err != nil {
		t.Fatal(err)
	}

	// The solid must sit on the zone extents, not at the origin.
	bb := s.BoundingBox()
	if math.Abs(bb.Min.X+100) > 1e-6 || math.Abs(bb.Max.X-300) > 1e-6 {
		t.Errorf("x bounds = [%g, %g], want [-100, 300]", bb.Min.X, bb.Max.X)
	}
	if math.Abs(bb.Min.Z) > 1e-6 || math.Abs(bb.Max.Z-500) > 1e-6 {
		t.Errorf("z bounds = [%g, %g], want [0, 500]", bb.Min.Z, bb.Max.Z)
	}
}

func TestSolidOfCylinder(t *testing.T) {
	s, err := solidOf(windfarm.CylinderZone{
		XCenter: 50, YCenter: -50,
		Radius: 200, AxisLen: 400,
		SizeIn: 40, SizeOut: 100,
	})
	if err != nil {
		t.Fatal(err)
	}

	// The cylinder stands on the ground plane at its center.
	bb := s.BoundingBox()
	if math.Abs(bb.Min.Z) > 1e-6 || math.Abs(bb.Max.Z-400) > 1e-6 {
		t.Errorf("z bounds = [%g, %g], want [0, 400]", bb.Min.Z, bb.Max.Z)
	}
	if math.Abs(bb.Min.X+150) > 1e-6 || math.Abs(bb.Max.X-250) > 1e-6 {
		t.Errorf("x bounds = [%g, %g], want [-150, 250]", bb.Min.X, bb.Max.X)
	}
}

func TestSolidOfDistanceMarkers(t *testing.T) {
	s, err := solidOf(windfarm.DistanceZone{
		Points:  []windfarm.ControlPoint{{X: 0, Y: 0, Z: 100}, {X: 500, Y: 0, Z: 100}},
		SizeMin: 30, SizeMax: 100,
		DistMin: 100, DistMax: 300,
	})
	if err != nil {
		t.Fatal(err)
	}
	if s == nil {
		t.Fatal("no solid for a populated control-point set")
	}

	// The union spans both marker cubes (edge = dist min).
	bb := s.BoundingBox()
	if bb.Min.X > -50+1e-6 || bb.Max.X < 550-1e-6 {
		t.Errorf("x bounds = [%g, %g], want at least [-50, 550]", bb.Min.X, bb.Max.X)
	}
}

func TestRenderEmpty(t *testing.T) {
	m, err := Render(nil)
	if err != nil {
		t.Fatal(err)
	}
	if !m.IsEmpty() || m.TriangleCount() != 0 {
		t.Fatalf("empty plan rendered %d triangles", m.TriangleCount())
	}
}

func TestWriteSTL(t *testing.T) {
	// One right triangle in the xy plane, normal up.
	m := &Mesh{
		Vertices: []float32{0, 0, 0, 1, 0, 0, 0, 1, 0},
		Normals:  []float32{0, 0, 1, 0, 0, 1, 0, 0, 1},
		Indices:  []uint32{0, 1, 2},
	}

	var buf bytes.Buffer
	if err := WriteSTL(&buf, m); err != nil {
		t.Fatal(err)
	}

	// 80-byte header + 4-byte count + 50 bytes per triangle.
	if buf.Len() != 80+4+50 {
		t.Fatalf("stl length = %d, want 134", buf.Len())
	}

	b := buf.Bytes()
	count := binary.LittleEndian.Uint32(b[80:84])
	if count != 1 {
		t.Fatalf("triangle count = %d, want 1", count)
	}

	// Normal first, then the three vertices.
	readFloat := func(off int) float32 {
		return math.Float32frombits(binary.LittleEndian.Uint32(b[off : off+4]))
	}
	if nz := readFloat(84 + 8); nz != 1 {
		t.Errorf("normal z = %g, want 1", nz)
	}
	if v1x := readFloat(84 + 12 + 12); v1x != 1 {
		t.Errorf("second vertex x = %g, want 1", v1x)
	}
	// Attribute word closes the record.
	if attr := binary.LittleEndian.Uint16(b[132:134]); attr != 0 {
		t.Errorf("attribute word = %d, want 0", attr)
	}
}
