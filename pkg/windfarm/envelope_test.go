package windfarm

import "testing"

func TestEnvelopeExpansion(t *testing.T) {
	e := NewEnvelope()
	if !e.Empty() {
		t.Fatal("fresh envelope should be empty")
	}

	e.UpdateXMax(250)
	e.UpdateXMin(150)
	e.UpdateYMax(670)
	e.UpdateYMin(130)
	if e.Empty() {
		t.Fatal("updated envelope should not be empty")
	}

	// Inward values must not move the bounds.
	e.UpdateXMax(200)
	e.UpdateXMin(200)
	e.UpdateYMax(300)
	e.UpdateYMin(300)

	xMin, xMax := e.XRange()
	yMin, yMax := e.YRange()
	if xMin != 150 || xMax != 250 {
		t.Errorf("x range = [%g, %g], want [150, 250]", xMin, xMax)
	}
	if yMin != 130 || yMax != 670 {
		t.Errorf("y range = [%g, %g], want [130, 670]", yMin, yMax)
	}

	// Outward values expand.
	e.UpdateXMin(-1070)
	xMin, _ = e.XRange()
	if xMin != -1070 {
		t.Errorf("x min = %g, want -1070", xMin)
	}

	e.UpdateZMax(300)
	e.UpdateZMax(200)
	if e.ZMax() != 300 {
		t.Errorf("z max = %g, want 300", e.ZMax())
	}
}

// Inflation is linear in d: two identically built envelopes inflated by d
// and 2d differ by exactly d on every side.
func TestEnvelopeAdjustDistanceLinear(t *testing.T) {
	build := func() *Envelope {
		e := NewEnvelope()
		e.UpdateXMin(-100)
		e.UpdateXMax(100)
		e.UpdateYMin(-50)
		e.UpdateYMax(50)
		e.UpdateZMax(200)
		return e
	}

	a, b := build(), build()
	a.AdjustDistance(30)
	b.AdjustDistance(60)

	aMin, aMax := a.XRange()
	bMin, bMax := b.XRange()
	if bMin != aMin-30 || bMax != aMax+30 {
		t.Errorf("x inflation not linear: [%g, %g] vs [%g, %g]", aMin, aMax, bMin, bMax)
	}
	if b.ZMax() != a.ZMax()+30 {
		t.Errorf("z inflation not linear: %g vs %g", a.ZMax(), b.ZMax())
	}
	if !a.Sealed() || !b.Sealed() {
		t.Error("AdjustDistance must seal the envelope")
	}
}

func TestEnvelopeSealedPanics(t *testing.T) {
	e := NewEnvelope()
	e.UpdateXMax(10)
	e.Finalize()

	defer func() {
		if recover() == nil {
			t.Fatal("update after sealing should panic")
		}
	}()
	e.UpdateXMax(20)
}

func TestEnvelopeCylinderWrapper(t *testing.T) {
	e := NewEnvelope()
	e.UpdateXMin(0)
	e.UpdateXMax(200)
	e.UpdateYMin(0)
	e.UpdateYMax(100)

	cx, cy := e.Center()
	if cx != 100 || cy != 50 {
		t.Fatalf("center = (%g, %g), want (100, 50)", cx, cy)
	}
	want := 111.80339887498948 // hypot(100, 50)
	if r := e.CornerRadius(); abs(r-want) > 1e-9 {
		t.Fatalf("corner radius = %g, want %g", r, want)
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
