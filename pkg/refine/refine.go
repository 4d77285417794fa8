// Package refine implements the refinement-geometry engine: turbine wake
// footprints in 2D and 3D, the expanding farm envelope, anisotropic level
// sets, and the sizing zones handed to the meshing kernel. The engine is
// strictly sequential: domain construction, per-turbine placement, one-time
// envelope inflation, zone emission.
package refine

import (
	"fmt"

	"github.com/galemesh/galemesh/pkg/mesher"
	"github.com/galemesh/galemesh/pkg/mesher/record"
	"github.com/galemesh/galemesh/pkg/windfarm"
)

// Placement selects the footprint strategy for turbine wakes.
type Placement int

const (
	// PlacementRectangular places axis-aligned wake corridors using the
	// per-turbine discrete wake flag, snapping out-of-bound points to the
	// domain boundary.
	PlacementRectangular Placement = iota
	// PlacementRotated aligns every wake with the global inflow angle and
	// discards points that leave the domain.
	PlacementRotated
	// PlacementCircular models each turbine as a radial influence region
	// with no wake corridor.
	PlacementCircular
)

func (p Placement) String() string {
	switch p {
	case PlacementRectangular:
		return "rectangular"
	case PlacementRotated:
		return "rotated"
	case PlacementCircular:
		return "circular"
	}
	return fmt.Sprintf("Placement(%d)", int(p))
}

// Scales are the three mesh length scales of a run.
type Scales struct {
	Turbine    float64 // element size at the turbine (lc)
	Farm       float64 // element size inside the farm envelope (lcf)
	Background float64 // element size in the far field (lcb)
}

// WakeParams describe the wake corridor shared by all turbines.
type WakeParams struct {
	Upstream   float64 // wake extent against the inflow
	Downstream float64 // wake extent with the inflow
	Rotor      float64 // rotor radius, the minimum refinement distance
	Shudder    float64 // waist width of the 2D wake hexagon
}

// TwoTierAspect blends two vertical aspect ratios at a threshold elevation,
// keeping custom-zone heights consistent with a piecewise scaling law.
type TwoTierAspect struct {
	Lower     float64
	Upper     float64
	Threshold float64
}

// Input is the validated parameter set consumed by the engine. The
// configuration layer resolves YAML or layout scripts into this structure;
// the engine never sees raw configuration.
type Input struct {
	Domain    *windfarm.Domain
	Turbines  []windfarm.TurbineSpec
	Placement Placement

	// InflowAngle is the global wind direction in radians, used by the
	// rotated and circular strategies.
	InflowAngle float64

	Scales Scales
	Wake   WakeParams

	// AspectLevels is the vertical level count of the anisotropy model.
	// 1 disables anisotropic refinement.
	AspectLevels int
	// AspectDistance is the transition elevation of the post-generation
	// node remap.
	AspectDistance float64

	// HubHeight is the turbine hub elevation above ground. Zero means
	// windfarm.DefaultHubHeight.
	HubHeight float64

	FarmBuffer   float64 // clearance added around the envelope (one-time inflation)
	FarmCircular bool    // wrap the farm in a cylinder instead of a box

	CustomZones []windfarm.CustomZone
	TwoTier     *TwoTierAspect // optional custom-zone height adjustment

	Dimension int // 2 or 3
}

func (in *Input) hubHeight() float64 {
	if in.HubHeight == 0 {
		return windfarm.DefaultHubHeight
	}
	return in.HubHeight
}

func (in *Input) validate() error {
	if in.Domain == nil {
		return fmt.Errorf("refine: no domain")
	}
	if in.Dimension != 2 && in.Dimension != 3 {
		return fmt.Errorf("refine: dimension must be 2 or 3, got %d", in.Dimension)
	}
	if in.Wake.Rotor <= 0 && len(in.Turbines) > 0 {
		return &windfarm.DegeneracyError{Op: "refine", Detail: "rotor radius must be positive"}
	}
	if in.AspectLevels < 1 {
		return &windfarm.DegeneracyError{Op: "refine", Detail: "aspect level count must be at least 1"}
	}
	return nil
}

// Plan is the complete sizing description of one run: the ordered zone
// list for the kernel's minimum combination, and the sealed farm envelope
// the farm zone was derived from.
type Plan struct {
	Zones    []windfarm.Zone
	Envelope *windfarm.Envelope
}

// BuildRefinement computes the full sizing description for the given input
// without touching a real meshing kernel: per-turbine distance zones, the
// farm-level wrapper, and all custom zones, in registration order. The
// geometry side effects run against an in-memory recording kernel.
func BuildRefinement(in *Input) (*Plan, error) {
	k := record.New()
	plan, _, err := build(k, in)
	return plan, err
}

// Run executes the full pipeline against a meshing kernel: footprint
// placement, field registration, minimum combination, background-field
// selection, generation, and the post-generation anisotropy remap.
func Run(k mesher.Kernel, in *Input) (*Plan, error) {
	plan, fields, err := build(k, in)
	if err != nil {
		return nil, err
	}
	if len(fields) > 0 {
		k.SetBackgroundField(k.AddMinField(fields))
	}
	k.RemoveDuplicates()
	if err := k.Generate(in.Dimension); err != nil {
		return nil, fmt.Errorf("refine: generate: %w", err)
	}
	if in.Dimension == 3 {
		RemapElevations(k, float64(in.AspectLevels), in.AspectDistance)
	}
	return plan, nil
}

// build runs placement and zone emission. It returns the plan plus the
// kernel field handles in registration order.
func build(k mesher.Kernel, in *Input) (*Plan, []mesher.FieldID, error) {
	if err := in.validate(); err != nil {
		return nil, nil, err
	}

	env := windfarm.NewEnvelope()
	var zones []windfarm.Zone
	var fields []mesher.FieldID

	for i := range in.Turbines {
		t := in.Turbines[i]
		var (
			tz  []windfarm.Zone
			tf  []mesher.FieldID
			err error
		)
		switch {
		case in.Dimension == 2:
			tz, err = placeTurbine2D(k, in, env, t)
		case in.Placement == PlacementRotated:
			tf, tz, err = placeTurbineRotated3D(k, in, env, t)
		case in.Placement == PlacementCircular:
			tz, err = placeTurbineCircular(k, in, env, t)
		default:
			tf, tz, err = placeTurbineRectangular3D(k, in, env, t)
		}
		if err != nil {
			return nil, nil, err
		}
		zones = append(zones, tz...)
		fields = append(fields, tf...)
	}

	// One-time inflation; seals the envelope against further updates.
	env.AdjustDistance(in.FarmBuffer)

	if !env.Empty() {
		farm := FarmZone(env, in)
		if err := farm.Validate(); err != nil {
			return nil, nil, err
		}
		zones = append(zones, farm)
		fields = append(fields, registerZone(k, farm))
	}

	custom, err := CustomZones(in)
	if err != nil {
		return nil, nil, err
	}
	for _, z := range custom {
		zones = append(zones, z)
		fields = append(fields, registerZone(k, z))
	}

	return &Plan{Zones: zones, Envelope: env}, fields, nil
}

// registerZone maps a validated zone onto the kernel's sizing fields.
func registerZone(k mesher.Kernel, z windfarm.Zone) mesher.FieldID {
	switch z := z.(type) {
	case windfarm.BoxZone:
		return k.AddBoxField(z.XMin, z.XMax, z.YMin, z.YMax, z.ZMin, z.ZMax, z.SizeIn, z.SizeOut)
	case windfarm.CylinderZone:
		return k.AddCylinderField(z.XCenter, z.YCenter, z.Radius, z.AxisLen, z.SizeIn, z.SizeOut)
	case windfarm.DistanceZone:
		pts := make([]mesher.PointID, 0, len(z.Points))
		for _, p := range z.Points {
			pts = append(pts, k.AddPoint(p.X, p.Y, p.Z, z.SizeMin))
		}
		d := k.AddDistanceField(pts)
		return k.AddThresholdField(d, z.SizeMin, z.SizeMax, z.DistMin, z.DistMax)
	}
	panic(fmt.Sprintf("refine: unknown zone type %T", z))
}

// rampWidth is the span of the threshold ramp beyond its minimum distance.
// The blend of turbine and farm scales keeps the transition gradual enough
// that the mesher never jumps element sizes across one cell.
func rampWidth(s Scales) float64 {
	return 0.5 * (s.Turbine + s.Farm) * 4
}
