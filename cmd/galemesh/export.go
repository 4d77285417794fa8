package main

import (
	"github.com/galemesh/galemesh/pkg/refine"
	"github.com/galemesh/galemesh/pkg/windfarm"
)

// planDoc is the JSON shape of an exported plan. The envelope is absent
// when no turbine ever opened it.
type planDoc struct {
	Envelope *envelopeDoc `json:"envelope,omitempty"`
	Zones    []zoneDoc    `json:"zones"`
}

type envelopeDoc struct {
	XRange [2]float64 `json:"x_range"`
	YRange [2]float64 `json:"y_range"`
	ZMax   float64    `json:"z_max"`
}

// zoneDoc is one sizing zone, tagged by kind. Only the members relevant to
// the kind are emitted.
type zoneDoc struct {
	Kind string `json:"kind"`

	XMin *float64 `json:"x_min,omitempty"`
	XMax *float64 `json:"x_max,omitempty"`
	YMin *float64 `json:"y_min,omitempty"`
	YMax *float64 `json:"y_max,omitempty"`
	ZMin *float64 `json:"z_min,omitempty"`
	ZMax *float64 `json:"z_max,omitempty"`

	XCenter *float64 `json:"x_center,omitempty"`
	YCenter *float64 `json:"y_center,omitempty"`
	Radius  *float64 `json:"radius,omitempty"`
	AxisLen *float64 `json:"axis_len,omitempty"`

	SizeIn  *float64 `json:"size_in,omitempty"`
	SizeOut *float64 `json:"size_out,omitempty"`

	Points  [][3]float64 `json:"points,omitempty"`
	SizeMin *float64     `json:"size_min,omitempty"`
	SizeMax *float64     `json:"size_max,omitempty"`
	DistMin *float64     `json:"dist_min,omitempty"`
	DistMax *float64     `json:"dist_max,omitempty"`
}

func ptr(v float64) *float64 { return &v }

func exportPlan(plan *refine.Plan) planDoc {
	doc := planDoc{
		Zones: make([]zoneDoc, 0, len(plan.Zones)),
	}
	// A turbine-less run leaves the envelope at its inverted ±Inf bounds,
	// which no JSON encoder accepts.
	if !plan.Envelope.Empty() {
		xMin, xMax := plan.Envelope.XRange()
		yMin, yMax := plan.Envelope.YRange()
		doc.Envelope = &envelopeDoc{
			XRange: [2]float64{xMin, xMax},
			YRange: [2]float64{yMin, yMax},
			ZMax:   plan.Envelope.ZMax(),
		}
	}
	for _, z := range plan.Zones {
		doc.Zones = append(doc.Zones, exportZone(z))
	}
	return doc
}

func exportZone(z windfarm.Zone) zoneDoc {
	switch z := z.(type) {
	case windfarm.BoxZone:
		return zoneDoc{
			Kind: "box",
			XMin: ptr(z.XMin), XMax: ptr(z.XMax),
			YMin: ptr(z.YMin), YMax: ptr(z.YMax),
			ZMin: ptr(z.ZMin), ZMax: ptr(z.ZMax),
			SizeIn: ptr(z.SizeIn), SizeOut: ptr(z.SizeOut),
		}
	case windfarm.CylinderZone:
		return zoneDoc{
			Kind:    "cylinder",
			XCenter: ptr(z.XCenter), YCenter: ptr(z.YCenter),
			Radius: ptr(z.Radius), AxisLen: ptr(z.AxisLen),
			SizeIn: ptr(z.SizeIn), SizeOut: ptr(z.SizeOut),
		}
	case windfarm.DistanceZone:
		pts := make([][3]float64, 0, len(z.Points))
		for _, p := range z.Points {
			pts = append(pts, [3]float64{p.X, p.Y, p.Z})
		}
		return zoneDoc{
			Kind:   "distance",
			Points: pts,
			SizeMin: ptr(z.SizeMin), SizeMax: ptr(z.SizeMax),
			DistMin: ptr(z.DistMin), DistMax: ptr(z.DistMax),
		}
	}
	return zoneDoc{Kind: "unknown"}
}
