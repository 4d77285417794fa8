package refine

import (
	"math"

	"github.com/galemesh/galemesh/pkg/mesher"
	"github.com/galemesh/galemesh/pkg/windfarm"
)

// Mesh entity tags owned by the kernel collaborator. The domain volume
// carries VolumeTag; the four lateral domain faces carry the surface tags
// used for boundary-conforming point embeds.
const (
	VolumeTag      = 999
	SurfaceTagXMin = 992
	SurfaceTagYMax = 993
	SurfaceTagXMax = 994
	SurfaceTagYMin = 995
)

// pointSet accumulates kernel point handles together with their
// coordinates, so field registration and zone emission stay in lockstep.
type pointSet struct {
	ids []mesher.PointID
	pts []windfarm.ControlPoint
}

func (s *pointSet) add(k mesher.Kernel, x, y, z, size float64) mesher.PointID {
	id := k.AddPoint(x, y, z, size)
	s.ids = append(s.ids, id)
	s.pts = append(s.pts, windfarm.ControlPoint{X: x, Y: y, Z: z})
	return id
}

func (s *pointSet) empty() bool { return len(s.ids) == 0 }

// turbineElevation resolves a turbine's hub elevation: explicit when given,
// otherwise terrain plus hub height scaled by the aspect ratio, or the bare
// hub height on a flat domain.
func turbineElevation(in *Input, t windfarm.TurbineSpec) float64 {
	if t.HasZ {
		return t.Z
	}
	if in.Domain.HasGround() {
		return (in.Domain.Ground(t.X, t.Y) + in.hubHeight()) * float64(in.AspectLevels)
	}
	return in.hubHeight()
}

// checkBounds clamps the wake extents so the corridor stops at the domain
// boundary. A wake overshooting a bound by delta loses exactly delta of
// extent on that side.
func checkBounds(d *windfarm.Domain, upstream, downstream float64, t windfarm.TurbineSpec) (eUpstream, eDownstream float64) {
	eUpstream, eDownstream = upstream, downstream
	xMin, xMax := d.XRange()
	yMin, yMax := d.YRange()
	if t.Wake == windfarm.WakeAlongX {
		if t.X-upstream < xMin {
			eUpstream = t.X - xMin
		}
		if t.X+downstream > xMax {
			eDownstream = xMax - t.X
		}
	} else {
		if t.Y-upstream < yMin {
			eUpstream = t.Y - yMin
		}
		if t.Y+downstream > yMax {
			eDownstream = yMax - t.Y
		}
	}
	return eUpstream, eDownstream
}

// placeTurbineRectangular3D builds the volumetric wake skeleton for one
// turbine along its discrete wake axis: the centerline point run, boundary
// snap points where the run would leave the domain, and the anisotropic
// level sets. It emits one distance+threshold sizing spec per level and
// expands the envelope along the wake axis only.
func placeTurbineRectangular3D(k mesher.Kernel, in *Input, env *windfarm.Envelope, t windfarm.TurbineSpec) ([]mesher.FieldID, []windfarm.Zone, error) {
	d := in.Domain
	z := turbineElevation(in, t)
	if !d.Within(t.X, t.Y, z) {
		return nil, nil, &windfarm.OutOfDomainError{X: t.X, Y: t.Y, Z: z}
	}

	rotor := in.Wake.Rotor
	eUp, eDown := checkBounds(d, in.Wake.Upstream, in.Wake.Downstream, t)

	goX, goY := 1.0, 0.0
	if t.Wake == windfarm.WakeAlongY {
		goX, goY = 0.0, 1.0
	}

	increment := rotor / 2
	downPoints := int(math.Ceil(eDown / increment))
	upPoints := int(math.Ceil(eUp / increment))

	// Ceil can push the last centerline point past the boundary even after
	// the extents were clamped. Drop that point and snap a replacement to
	// the boundary, tagged for the matching domain face.
	xMin, xMax := d.XRange()
	yMin, yMax := d.YRange()
	var hitXMin, hitXMax, hitYMin, hitYMax bool
	if t.X+goX*increment*float64(downPoints) > xMax {
		downPoints--
		hitXMax = true
	}
	if t.Y+goY*increment*float64(downPoints) > yMax {
		downPoints--
		hitYMax = true
	}
	if t.X-goX*increment*float64(upPoints) < xMin {
		upPoints--
		hitXMin = true
	}
	if t.Y-goY*increment*float64(upPoints) < yMin {
		upPoints--
		hitYMin = true
	}

	lc := in.Scales.Turbine
	var turbine pointSet
	var boundXMin, boundXMax, boundYMin, boundYMax pointSet

	// addRun places the centerline at one elevation, snapping boundary
	// replacements into both the run and the per-face boundary group.
	addRun := func(set *pointSet, elev float64) {
		for i := 1; i <= downPoints; i++ {
			set.add(k, t.X+goX*increment*float64(i), t.Y+goY*increment*float64(i), elev, lc)
		}
		if hitXMax {
			boundXMax.ids = append(boundXMax.ids, set.add(k, xMax, t.Y, elev, lc))
		}
		if hitYMax {
			boundYMax.ids = append(boundYMax.ids, set.add(k, t.X, yMax, elev, lc))
		}
		for i := 1; i <= upPoints; i++ {
			set.add(k, t.X-goX*increment*float64(i), t.Y-goY*increment*float64(i), elev, lc)
		}
		if hitXMin {
			boundXMin.ids = append(boundXMin.ids, set.add(k, xMin, t.Y, elev, lc))
		}
		if hitYMin {
			boundYMin.ids = append(boundYMin.ids, set.add(k, t.X, yMin, elev, lc))
		}
	}

	turbine.add(k, t.X, t.Y, z, lc)
	addRun(&turbine, z)

	levels := make([]pointSet, 0, in.AspectLevels)
	for i := 1; i < in.AspectLevels; i++ {
		var level pointSet
		offset := rotor * float64(i)
		level.add(k, t.X, t.Y, z+offset, lc)
		level.add(k, t.X, t.Y, z-offset, lc)
		addRun(&level, z+offset)
		addRun(&level, z-offset)
		levels = append(levels, level)
	}

	k.EmbedPoints(turbine.ids, 3, VolumeTag)
	for _, level := range levels {
		k.EmbedPoints(level.ids, 3, VolumeTag)
	}
	embedBoundary(k, boundXMin, SurfaceTagXMin)
	embedBoundary(k, boundXMax, SurfaceTagXMax)
	embedBoundary(k, boundYMin, SurfaceTagYMin)
	embedBoundary(k, boundYMax, SurfaceTagYMax)

	fields, zones, err := levelFields(k, in, turbine, levels)
	if err != nil {
		return nil, nil, err
	}

	// Envelope growth follows the wake axis; the cross axis stays pinned
	// at the turbine's own coordinate.
	if t.Wake == windfarm.WakeAlongX {
		env.UpdateXMax(t.X + eDown)
		env.UpdateXMin(t.X - eUp)
		env.UpdateYMax(t.Y)
		env.UpdateYMin(t.Y)
	} else {
		env.UpdateYMax(t.Y + eDown)
		env.UpdateYMin(t.Y - eUp)
		env.UpdateXMax(t.X)
		env.UpdateXMin(t.X)
	}
	env.UpdateZMax(z + rotor)

	return fields, zones, nil
}

func embedBoundary(k mesher.Kernel, set pointSet, tag int) {
	if len(set.ids) == 0 {
		return
	}
	k.EmbedPoints(set.ids, 2, tag)
}

// placeTurbineRotated3D builds the wake skeleton aligned with the global
// inflow angle. Points are generated along the local wake axis, rotated
// about the turbine center, and any point leaving the domain is discarded
// rather than clamped. Retained points expand the envelope on all axes.
func placeTurbineRotated3D(k mesher.Kernel, in *Input, env *windfarm.Envelope, t windfarm.TurbineSpec) ([]mesher.FieldID, []windfarm.Zone, error) {
	d := in.Domain
	z := turbineElevation(in, t)
	if !d.Within(t.X, t.Y, z) {
		return nil, nil, &windfarm.OutOfDomainError{X: t.X, Y: t.Y, Z: z}
	}

	rotor := in.Wake.Rotor
	lc := in.Scales.Turbine
	increment := rotor / 2
	downPoints := int(math.Ceil(in.Wake.Downstream / increment))
	upPoints := int(math.Ceil(in.Wake.Upstream / increment))

	// Local centerline offsets along the wake axis, origin at the turbine.
	offsets := make([]float64, 0, downPoints+upPoints+1)
	offsets = append(offsets, 0)
	for i := 1; i <= downPoints; i++ {
		offsets = append(offsets, increment*float64(i))
	}
	for i := 1; i <= upPoints; i++ {
		offsets = append(offsets, -increment*float64(i))
	}

	// addRotated rotates one local offset into place and keeps it only if
	// it stays inside the domain.
	addRotated := func(set *pointSet, off, elev float64) {
		px, py := rotateAbout(t.X, t.Y, t.X+off, t.Y, in.InflowAngle)
		if !d.Within(px, py, elev) {
			return
		}
		set.add(k, px, py, elev, lc)
		env.UpdateXMax(px)
		env.UpdateXMin(px)
		env.UpdateYMax(py)
		env.UpdateYMin(py)
		env.UpdateZMax(elev)
	}

	var turbine pointSet
	for _, off := range offsets {
		addRotated(&turbine, off, z)
	}

	levels := make([]pointSet, 0, in.AspectLevels)
	for i := 1; i < in.AspectLevels; i++ {
		var level pointSet
		voff := rotor * float64(i)
		for _, off := range offsets {
			addRotated(&level, off, z+voff)
			addRotated(&level, off, z-voff)
		}
		levels = append(levels, level)
	}

	if turbine.empty() {
		return nil, nil, &windfarm.OutOfDomainError{X: t.X, Y: t.Y, Z: z}
	}
	env.UpdateZMax(z + rotor)

	k.EmbedPoints(turbine.ids, 3, VolumeTag)
	for _, level := range levels {
		if !level.empty() {
			k.EmbedPoints(level.ids, 3, VolumeTag)
		}
	}

	return levelFields(k, in, turbine, levels)
}

// placeTurbineCircular builds the 3D radial influence region for one
// turbine, reusing the planar circular construction at hub elevation.
func placeTurbineCircular(k mesher.Kernel, in *Input, env *windfarm.Envelope, t windfarm.TurbineSpec) ([]windfarm.Zone, error) {
	z := turbineElevation(in, t)
	if !in.Domain.Within(t.X, t.Y, z) {
		return nil, &windfarm.OutOfDomainError{X: t.X, Y: t.Y, Z: z}
	}
	zone, err := placeCircular(k, in, env, t, z)
	if err != nil {
		return nil, err
	}
	return []windfarm.Zone{zone}, nil
}

// levelFields registers the distance+threshold sizing spec for the base
// centerline and for every anisotropic level. A level's minimum distance is
// the ellipsoid radius at its elevation; the base level uses the rotor
// radius. Levels whose point set was entirely discarded emit nothing.
func levelFields(k mesher.Kernel, in *Input, turbine pointSet, levels []pointSet) ([]mesher.FieldID, []windfarm.Zone, error) {
	rotor := in.Wake.Rotor
	ramp := rampWidth(in.Scales)

	makeZone := func(set pointSet, distMin float64) (mesher.FieldID, windfarm.DistanceZone, error) {
		zone := windfarm.DistanceZone{
			Points:  set.pts,
			SizeMin: in.Scales.Turbine,
			SizeMax: in.Scales.Background,
			DistMin: distMin,
			DistMax: distMin + ramp,
		}
		if err := zone.Validate(); err != nil {
			return 0, windfarm.DistanceZone{}, err
		}
		f := k.AddDistanceField(set.ids)
		return k.AddThresholdField(f, zone.SizeMin, zone.SizeMax, zone.DistMin, zone.DistMax), zone, nil
	}

	field, zone, err := makeZone(turbine, rotor)
	if err != nil {
		return nil, nil, err
	}
	fields := []mesher.FieldID{field}
	zones := []windfarm.Zone{zone}

	a := rotor
	b := rotor * float64(in.AspectLevels-1)
	for i, level := range levels {
		if level.empty() {
			continue
		}
		radius, err := EllipseRadius(a, b, rotor*float64(i+1))
		if err != nil {
			return nil, nil, err
		}
		field, zone, err := makeZone(level, radius)
		if err != nil {
			return nil, nil, err
		}
		fields = append(fields, field)
		zones = append(zones, zone)
	}
	return fields, zones, nil
}
