package config

import (
	"fmt"
	"math"
	"strings"

	"github.com/galemesh/galemesh/pkg/refine"
	"github.com/galemesh/galemesh/pkg/windfarm"
)

// validate runs the semantic checks that strict decoding cannot express.
// All findings are collected so one run reports every defect at once.
func (f *File) validate() error {
	var findings []string
	add := func(format string, args ...any) {
		findings = append(findings, fmt.Sprintf(format, args...))
	}

	if f.Domain.XRange[0] > f.Domain.XRange[1] {
		add("domain.x_range is inverted")
	}
	if f.Domain.YRange[0] > f.Domain.YRange[1] {
		add("domain.y_range is inverted")
	}
	if f.Domain.Dimension != 2 && f.Domain.Dimension != 3 {
		add("domain.dimension must be 2 or 3, got %d", f.Domain.Dimension)
	}
	if f.Domain.Dimension == 3 && f.Domain.Height <= 0 {
		add("domain.height must be positive for a 3D run")
	}
	if f.Domain.AspectRatio < 1 {
		add("domain.aspect_ratio must be at least 1")
	}
	if f.Refine.BackgroundLengthScale <= 0 {
		add("refine.background_length_scale must be positive")
	}
	if f.Refine.GlobalScale <= 0 {
		add("refine.global_scale must be positive")
	}

	switch f.Refine.Placement {
	case "rectangular", "rotated", "circular":
	default:
		add("refine.placement must be rectangular, rotated, or circular, got %q", f.Refine.Placement)
	}

	if len(f.Refine.Turbine.Instances) > 0 {
		if f.Refine.Turbine.LengthScale <= 0 {
			add("refine.turbine.length_scale must be positive")
		}
		if f.Refine.Turbine.RotorDistance <= 0 {
			add("refine.turbine.threshold_rotor_distance must be positive")
		}
		if f.Refine.Turbine.UpstreamDistance < 0 || f.Refine.Turbine.DownstreamDistance < 0 {
			add("refine.turbine wake distances must not be negative")
		}
	}
	for i, t := range f.Refine.Turbine.Instances {
		switch strings.ToLower(t.Wake) {
		case "", "x", "y":
		default:
			add("refine.turbine.instances[%d].wake must be x or y, got %q", i, t.Wake)
		}
	}

	for i, c := range f.RefineCustom {
		switch c.Type {
		case "box":
			if c.XRange[0] > c.XRange[1] || c.YRange[0] > c.YRange[1] {
				add("refine_custom[%d] has an inverted extent", i)
			}
		case "cylinder":
			if c.Radius <= 0 {
				add("refine_custom[%d].radius must be positive", i)
			}
		default:
			add("refine_custom[%d].type must be box or cylinder, got %q", i, c.Type)
		}
		if c.LengthScale <= 0 {
			add("refine_custom[%d].length_scale must be positive", i)
		}
		if f.Domain.Dimension == 3 && c.Height <= 0 {
			add("refine_custom[%d].height must be positive for a 3D run", i)
		}
	}

	if tt := f.Domain.TwoTier; tt != nil {
		if tt.LowerAspect <= 0 || tt.UpperAspect <= 0 {
			add("domain.two_tier aspect ratios must be positive")
		}
		if tt.Threshold < 0 {
			add("domain.two_tier.threshold must not be negative")
		}
	}

	if len(findings) > 0 {
		return fmt.Errorf("config: invalid run description:\n  %s", strings.Join(findings, "\n  "))
	}
	return nil
}

// Resolve maps the validated file onto the engine's typed input. Length
// scales are multiplied by the global scale exactly once here.
func (f *File) Resolve() (*refine.Input, error) {
	d, err := windfarm.NewDomain(
		f.Domain.XRange[0], f.Domain.XRange[1],
		f.Domain.YRange[0], f.Domain.YRange[1],
		f.Domain.Height,
	)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	scale := f.Refine.GlobalScale
	in := &refine.Input{
		Domain:    d,
		Placement: placementOf(f.Refine.Placement),
		// YAML carries the inflow angle in degrees.
		InflowAngle: f.Domain.InflowAngle * math.Pi / 180,
		Scales: refine.Scales{
			Turbine:    f.Refine.Turbine.LengthScale * scale,
			Farm:       f.Refine.Farm.LengthScale * scale,
			Background: f.Refine.BackgroundLengthScale * scale,
		},
		Wake: refine.WakeParams{
			Upstream:   f.Refine.Turbine.UpstreamDistance,
			Downstream: f.Refine.Turbine.DownstreamDistance,
			Rotor:      f.Refine.Turbine.RotorDistance,
			Shudder:    *f.Refine.Turbine.Shudder,
		},
		AspectLevels:   f.Domain.AspectRatio,
		AspectDistance: f.Domain.AspectDistance,
		HubHeight:      f.Refine.Turbine.HubHeight,
		FarmBuffer:     f.Refine.Farm.ThresholdDistance,
		FarmCircular:   f.Refine.Farm.Circular,
		Dimension:      f.Domain.Dimension,
	}

	for _, t := range f.Refine.Turbine.Instances {
		spec := windfarm.TurbineSpec{X: t.X, Y: t.Y}
		if strings.EqualFold(t.Wake, "y") {
			spec.Wake = windfarm.WakeAlongY
		}
		if t.Elevation != nil {
			spec.Z = *t.Elevation
			spec.HasZ = true
		}
		in.Turbines = append(in.Turbines, spec)
	}

	for _, c := range f.RefineCustom {
		zone := windfarm.CustomZone{
			XRange:      c.XRange,
			YRange:      c.YRange,
			XCenter:     c.XCenter,
			YCenter:     c.YCenter,
			Radius:      c.Radius,
			Height:      c.Height,
			LengthScale: c.LengthScale * scale,
		}
		if c.Type == "cylinder" {
			zone.Shape = windfarm.RefineCylinder
		}
		in.CustomZones = append(in.CustomZones, zone)
	}

	if tt := f.Domain.TwoTier; tt != nil {
		in.TwoTier = &refine.TwoTierAspect{
			Lower:     tt.LowerAspect,
			Upper:     tt.UpperAspect,
			Threshold: tt.Threshold,
		}
	}

	return in, nil
}

func placementOf(s string) refine.Placement {
	switch s {
	case "rotated":
		return refine.PlacementRotated
	case "circular":
		return refine.PlacementCircular
	}
	return refine.PlacementRectangular
}
