package refine

import (
	"github.com/galemesh/galemesh/pkg/windfarm"
)

// unitHeight is the sentinel vertical extent of planar (2D) zones, where
// the kernel ignores elevation but still expects a well-formed box.
const unitHeight = 1

// FarmZone wraps the sealed envelope in the farm-level sizing zone: a box
// spanning the envelope, or a cylinder through its far corner when the run
// is configured circular. Inside the wrapper the farm scale applies,
// outside the background scale.
func FarmZone(env *windfarm.Envelope, in *Input) windfarm.Zone {
	zMax := env.ZMax()
	if in.Dimension == 2 {
		zMax = unitHeight
	}
	if in.FarmCircular {
		cx, cy := env.Center()
		return windfarm.CylinderZone{
			XCenter: cx,
			YCenter: cy,
			Radius:  env.CornerRadius(),
			AxisLen: zMax,
			SizeIn:  in.Scales.Farm,
			SizeOut: in.Scales.Background,
		}
	}
	xMin, xMax := env.XRange()
	yMin, yMax := env.YRange()
	return windfarm.BoxZone{
		XMin: xMin, XMax: xMax,
		YMin: yMin, YMax: yMax,
		ZMin: 0, ZMax: zMax,
		SizeIn:  in.Scales.Farm,
		SizeOut: in.Scales.Background,
	}
}

// CustomZones emits the sizing zone for every user-declared refinement
// region, independent of turbine placement. In 3D the declared height runs
// through the two-tier aspect adjustment when one is configured; in 2D it
// is fixed to the unit sentinel.
func CustomZones(in *Input) ([]windfarm.Zone, error) {
	zones := make([]windfarm.Zone, 0, len(in.CustomZones))
	for _, c := range in.CustomZones {
		height := float64(unitHeight)
		if in.Dimension == 3 {
			height = c.Height
			if in.TwoTier != nil {
				h, err := AdjustedHeight(in.TwoTier.Lower, in.TwoTier.Upper, in.TwoTier.Threshold, c.Height)
				if err != nil {
					return nil, err
				}
				height = h
			}
		}

		var zone windfarm.Zone
		switch c.Shape {
		case windfarm.RefineCylinder:
			zone = windfarm.CylinderZone{
				XCenter: c.XCenter,
				YCenter: c.YCenter,
				Radius:  c.Radius,
				AxisLen: height,
				SizeIn:  c.LengthScale,
				SizeOut: in.Scales.Background,
			}
		default:
			zone = windfarm.BoxZone{
				XMin: c.XRange[0], XMax: c.XRange[1],
				YMin: c.YRange[0], YMax: c.YRange[1],
				ZMin: 0, ZMax: height,
				SizeIn:  c.LengthScale,
				SizeOut: in.Scales.Background,
			}
		}
		if err := zone.Validate(); err != nil {
			return nil, err
		}
		zones = append(zones, zone)
	}
	return zones, nil
}
