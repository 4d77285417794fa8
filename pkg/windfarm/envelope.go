package windfarm

import "math"

// Envelope is the minimum bounding region enclosing all turbine influence.
// Footprint placement expands it monotonically; AdjustDistance inflates it
// once to create clearance and seals it. A sealed envelope rejects further
// mutation — the zone builder must only ever see the final bounds.
type Envelope struct {
	xMin, xMax float64
	yMin, yMax float64
	zMax       float64
	sealed     bool
}

// NewEnvelope returns an empty envelope. The x/y bounds start inverted at
// ±Inf so the first update sets both sides.
func NewEnvelope() *Envelope {
	return &Envelope{
		xMin: math.Inf(1), xMax: math.Inf(-1),
		yMin: math.Inf(1), yMax: math.Inf(-1),
	}
}

func (e *Envelope) mustBeOpen() {
	if e.sealed {
		panic("windfarm: envelope updated after sealing")
	}
}

// UpdateXMin moves the lower x bound outward if x extends it.
func (e *Envelope) UpdateXMin(x float64) {
	e.mustBeOpen()
	if x < e.xMin {
		e.xMin = x
	}
}

// UpdateXMax moves the upper x bound outward if x extends it.
func (e *Envelope) UpdateXMax(x float64) {
	e.mustBeOpen()
	if x > e.xMax {
		e.xMax = x
	}
}

// UpdateYMin moves the lower y bound outward if y extends it.
func (e *Envelope) UpdateYMin(y float64) {
	e.mustBeOpen()
	if y < e.yMin {
		e.yMin = y
	}
}

// UpdateYMax moves the upper y bound outward if y extends it.
func (e *Envelope) UpdateYMax(y float64) {
	e.mustBeOpen()
	if y > e.yMax {
		e.yMax = y
	}
}

// UpdateZMax raises the upper z bound if z extends it.
func (e *Envelope) UpdateZMax(z float64) {
	e.mustBeOpen()
	if z > e.zMax {
		e.zMax = z
	}
}

// AdjustDistance inflates every bound by d (x/y bounds by ±d, zMax by +d)
// and seals the envelope. It must be called exactly once, after the last
// turbine update: inflating earlier would under-buffer later turbines.
func (e *Envelope) AdjustDistance(d float64) {
	e.mustBeOpen()
	e.xMin -= d
	e.xMax += d
	e.yMin -= d
	e.yMax += d
	e.zMax += d
	e.sealed = true
}

// Finalize seals the envelope without inflation.
func (e *Envelope) Finalize() {
	e.sealed = true
}

// Sealed reports whether the envelope still accepts updates.
func (e *Envelope) Sealed() bool { return e.sealed }

// Empty reports whether no update has occurred yet.
func (e *Envelope) Empty() bool { return e.xMin > e.xMax }

// XRange returns the x bounds.
func (e *Envelope) XRange() (min, max float64) { return e.xMin, e.xMax }

// YRange returns the y bounds.
func (e *Envelope) YRange() (min, max float64) { return e.yMin, e.yMax }

// ZMax returns the upper z bound.
func (e *Envelope) ZMax() float64 { return e.zMax }

// Center returns the planar midpoint of the envelope.
func (e *Envelope) Center() (x, y float64) {
	return (e.xMin + e.xMax) / 2, (e.yMin + e.yMax) / 2
}

// CornerRadius returns the planar distance from the envelope center to its
// far corner, the radius of the smallest vertical cylinder enclosing it.
func (e *Envelope) CornerRadius() float64 {
	cx, cy := e.Center()
	return math.Hypot(e.xMax-cx, e.yMax-cy)
}
