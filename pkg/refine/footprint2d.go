package refine

import (
	"math"

	"github.com/galemesh/galemesh/pkg/mesher"
	"github.com/galemesh/galemesh/pkg/windfarm"
)

// placeTurbine2D builds the planar footprint for one turbine: a hexagonal
// wake outline for the rectangular and rotated strategies, or a radial
// influence region for the circular strategy. Every generated coordinate
// expands the envelope.
func placeTurbine2D(k mesher.Kernel, in *Input, env *windfarm.Envelope, t windfarm.TurbineSpec) ([]windfarm.Zone, error) {
	d := in.Domain
	if !d.Within(t.X, t.Y, 0) {
		return nil, &windfarm.OutOfDomainError{X: t.X, Y: t.Y}
	}

	if in.Placement == PlacementCircular {
		zone, err := placeCircular(k, in, env, t, 0)
		if err != nil {
			return nil, err
		}
		return []windfarm.Zone{zone}, nil
	}

	lc := in.Scales.Turbine
	rotor := in.Wake.Rotor
	shudder := in.Wake.Shudder
	half := (in.Wake.Upstream + in.Wake.Downstream) / 2

	// The wake runs along the +x axis in local coordinates; the rotated
	// strategy spins the finished outline, the rectangular strategy picks
	// the axis from the per-turbine flag.
	alongY := in.Placement == PlacementRectangular && t.Wake == windfarm.WakeAlongY

	// Clamp each half-extent so the outline stops at the domain boundary.
	downHalf, upHalf := half, half
	xMin, xMax := d.XRange()
	yMin, yMax := d.YRange()
	if in.Placement == PlacementRectangular {
		if alongY {
			downHalf = math.Min(half, yMax-t.Y)
			upHalf = math.Min(half, t.Y-yMin)
		} else {
			downHalf = math.Min(half, xMax-t.X)
			upHalf = math.Min(half, t.X-xMin)
		}
	}

	// Hexagon outline in local (wake-axis, cross-axis) coordinates: two
	// wake-tip pairs split by the shudder waist and two rotor-tip points.
	local := [6][2]float64{
		{downHalf, -shudder / 2}, // m1p
		{downHalf, shudder / 2},  // m1
		{0, rotor / 2},           // m2
		{-upHalf, shudder / 2},   // m3
		{-upHalf, -shudder / 2},  // m3p
		{0, -rotor / 2},          // m4
	}

	ids := make([]mesher.PointID, 0, 6)
	for _, p := range local {
		wx, wy := p[0], p[1]
		if alongY {
			wx, wy = wy, wx
		}
		px, py := t.X+wx, t.Y+wy
		ids = append(ids, k.AddPoint(px, py, 0, lc))
		if in.Placement != PlacementRotated {
			updatePlanar(env, d, px, py)
		}
	}
	k.AddPoint(t.X, t.Y, 0, lc)

	if in.Placement == PlacementRotated {
		k.Rotate(ids, t.X, t.Y, 0, mesher.AxisZ, in.InflowAngle)
		for _, p := range local {
			px, py := rotateAbout(t.X, t.Y, t.X+p[0], t.Y+p[1], in.InflowAngle)
			updatePlanar(env, d, px, py)
		}
	}

	edges := make([]mesher.EdgeID, 0, 6)
	for i := range ids {
		edges = append(edges, k.AddLine(ids[i], ids[(i+1)%len(ids)]))
	}
	loop := k.AddCurveLoop(edges)
	k.AddPlaneSurface([]mesher.LoopID{loop})

	return nil, nil
}

// placeCircular builds the radial influence region shared by the 2D and 3D
// circular strategies: the rotor-tip point set plus a distance ramp from
// the turbine scale to the background scale.
func placeCircular(k mesher.Kernel, in *Input, env *windfarm.Envelope, t windfarm.TurbineSpec, z float64) (windfarm.Zone, error) {
	lc := in.Scales.Turbine
	rotor := in.Wake.Rotor

	tips := [4][2]float64{
		{t.X + rotor, t.Y},
		{t.X - rotor, t.Y},
		{t.X, t.Y + rotor},
		{t.X, t.Y - rotor},
	}

	points := []windfarm.ControlPoint{{X: t.X, Y: t.Y, Z: z}}
	k.AddPoint(t.X, t.Y, z, lc)
	for _, p := range tips {
		px, py := rotateAbout(t.X, t.Y, p[0], p[1], in.InflowAngle)
		points = append(points, windfarm.ControlPoint{X: px, Y: py, Z: z})
		k.AddPoint(px, py, z, lc)
		updatePlanar(env, in.Domain, px, py)
	}
	if z > 0 {
		env.UpdateZMax(z + rotor)
	}

	zone := windfarm.DistanceZone{
		Points:  points,
		SizeMin: lc,
		SizeMax: in.Scales.Background,
		DistMin: rotor,
		DistMax: rotor + rampWidth(in.Scales),
	}
	if err := zone.Validate(); err != nil {
		return nil, err
	}
	return zone, nil
}

// updatePlanar expands the envelope by a planar coordinate, clamped to the
// domain so a wake poking past a boundary never drags the envelope outside.
func updatePlanar(env *windfarm.Envelope, d *windfarm.Domain, x, y float64) {
	xMin, xMax := d.XRange()
	yMin, yMax := d.YRange()
	env.UpdateXMax(math.Min(x, xMax))
	env.UpdateXMin(math.Max(x, xMin))
	env.UpdateYMax(math.Min(y, yMax))
	env.UpdateYMin(math.Max(y, yMin))
}

// rotateAbout rotates (px, py) about (cx, cy) by angle radians.
func rotateAbout(cx, cy, px, py, angle float64) (x, y float64) {
	if angle == 0 {
		return px, py
	}
	sin, cos := math.Sin(angle), math.Cos(angle)
	dx, dy := px-cx, py-cy
	return cx + dx*cos - dy*sin, cy + dx*sin + dy*cos
}
