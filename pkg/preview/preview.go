// Package preview renders sizing zones as solids so a refinement plan can
// be inspected before an expensive 3D generate. Zones become SDF solids
// via the github.com/deadsy/sdfx CAD library, are tessellated by marching
// cubes, and can be written out as binary STL.
package preview

import (
	"fmt"
	"math"

	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/galemesh/galemesh/pkg/windfarm"
)

// defaultMeshCells controls marching cubes tessellation resolution.
const defaultMeshCells = 200

// Mesh is a flat triangle mesh: vertices and normals carry 3 floats per
// vertex, indices 3 entries per triangle.
type Mesh struct {
	Vertices []float32
	Normals  []float32
	Indices  []uint32
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int { return len(m.Indices) / 3 }

// IsEmpty returns true if the mesh has no geometry.
func (m *Mesh) IsEmpty() bool { return len(m.Vertices) == 0 }

// solidOf converts one sizing zone into an SDF solid. Distance zones have
// no closed outline; their control points become marker cubes sized by the
// zone's minimum distance so the wake skeleton stays visible.
func solidOf(z windfarm.Zone) (sdf.SDF3, error) {
	switch z := z.(type) {
	case windfarm.BoxZone:
		dx, dy, dz := z.XMax-z.XMin, z.YMax-z.YMin, z.ZMax-z.ZMin
		s, err := sdf.Box3D(v3.Vec{X: dx, Y: dy, Z: dz}, 0)
		if err != nil {
			return nil, fmt.Errorf("preview: box: %w", err)
		}
		// Box3D centers at the origin; shift to the zone's center.
		m := sdf.Translate3d(v3.Vec{
			X: z.XMin + dx/2,
			Y: z.YMin + dy/2,
			Z: z.ZMin + dz/2,
		})
		return sdf.Transform3D(s, m), nil

	case windfarm.CylinderZone:
		s, err := sdf.Cylinder3D(z.AxisLen, z.Radius, 0)
		if err != nil {
			return nil, fmt.Errorf("preview: cylinder: %w", err)
		}
		m := sdf.Translate3d(v3.Vec{X: z.XCenter, Y: z.YCenter, Z: z.AxisLen / 2})
		return sdf.Transform3D(s, m), nil

	case windfarm.DistanceZone:
		edge := math.Max(z.DistMin, z.SizeMin)
		if edge <= 0 {
			edge = 1
		}
		var combined sdf.SDF3
		for _, p := range z.Points {
			cube, err := sdf.Box3D(v3.Vec{X: edge, Y: edge, Z: edge}, 0)
			if err != nil {
				return nil, fmt.Errorf("preview: marker cube: %w", err)
			}
			placed := sdf.Transform3D(cube, sdf.Translate3d(v3.Vec{X: p.X, Y: p.Y, Z: p.Z}))
			if combined == nil {
				combined = placed
			} else {
				combined = sdf.Union3D(combined, placed)
			}
		}
		return combined, nil
	}
	return nil, fmt.Errorf("preview: unknown zone type %T", z)
}

// Render tessellates every zone in the plan into one triangle mesh.
func Render(zones []windfarm.Zone) (*Mesh, error) {
	var combined sdf.SDF3
	for _, z := range zones {
		s, err := solidOf(z)
		if err != nil {
			return nil, err
		}
		if s == nil {
			continue
		}
		if combined == nil {
			combined = s
		} else {
			combined = sdf.Union3D(combined, s)
		}
	}
	if combined == nil {
		return &Mesh{}, nil
	}

	renderer := render.NewMarchingCubesUniform(defaultMeshCells)
	triangles := render.ToTriangles(combined, renderer)

	m := &Mesh{
		Vertices: make([]float32, 0, len(triangles)*9),
		Normals:  make([]float32, 0, len(triangles)*9),
		Indices:  make([]uint32, 0, len(triangles)*3),
	}
	for i, tri := range triangles {
		n := tri.Normal()
		nx, ny, nz := float32(n.X), float32(n.Y), float32(n.Z)
		for j := 0; j < 3; j++ {
			v := tri[j]
			m.Vertices = append(m.Vertices, float32(v.X), float32(v.Y), float32(v.Z))
			m.Normals = append(m.Normals, nx, ny, nz)
			m.Indices = append(m.Indices, uint32(i*3+j))
		}
	}
	return m, nil
}
