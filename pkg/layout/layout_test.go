package layout

import (
	"math"
	"strings"
	"testing"

	"github.com/galemesh/galemesh/pkg/windfarm"
)

// evalOK runs a script that must evaluate cleanly.
func evalOK(t *testing.T, source string) *Layout {
	t.Helper()
	l, evalErrs, err := NewEngine().Evaluate(source)
	if err != nil {
		t.Fatalf("fatal evaluation error: %v", err)
	}
	if len(evalErrs) > 0 {
		t.Fatalf("evaluation errors: %v", evalErrs)
	}
	if l == nil {
		t.Fatal("nil layout without errors")
	}
	return l
}

func TestEvaluateEmpty(t *testing.T) {
	l := evalOK(t, "   \n\t  ")
	if len(l.Turbines) != 0 || len(l.CustomZones) != 0 || l.HasInflow {
		t.Fatalf("empty script produced %+v", l)
	}
}

func TestEvaluateTurbines(t *testing.T) {
	l := evalOK(t, `
; two turbines, the second with an explicit hub elevation
(turbine :x 200 :y 400 :wake :y)
(turbine :x -800 :y 300 :elevation 150)
`)

	if len(l.Turbines) != 2 {
		t.Fatalf("turbine count = %d, want 2", len(l.Turbines))
	}
	first := l.Turbines[0]
	if first.X != 200 || first.Y != 400 || first.Wake != windfarm.WakeAlongY {
		t.Errorf("turbine 0 = %+v", first)
	}
	second := l.Turbines[1]
	if second.X != -800 || second.Wake != windfarm.WakeAlongX {
		t.Errorf("turbine 1 = %+v, want wake defaulting to x", second)
	}
	if !second.HasZ || second.Z != 150 {
		t.Errorf("turbine 1 elevation = %+v, want explicit 150", second)
	}
}

func TestEvaluateGrid(t *testing.T) {
	l := evalOK(t, `(grid :x 100 :y 0 :rows 2 :cols 3 :spacing-x 500 :spacing-y 400 :stagger 250 :wake :y)`)

	if len(l.Turbines) != 6 {
		t.Fatalf("turbine count = %d, want 6", len(l.Turbines))
	}
	// Row 0 anchored at x=100, row 1 shifted by the stagger.
	if l.Turbines[0].X != 100 || l.Turbines[0].Y != 0 {
		t.Errorf("first turbine at (%g, %g), want (100, 0)", l.Turbines[0].X, l.Turbines[0].Y)
	}
	if l.Turbines[2].X != 1100 {
		t.Errorf("last turbine of row 0 at x=%g, want 1100", l.Turbines[2].X)
	}
	if l.Turbines[3].X != 350 || l.Turbines[3].Y != 400 {
		t.Errorf("first turbine of row 1 at (%g, %g), want (350, 400)", l.Turbines[3].X, l.Turbines[3].Y)
	}
	for i, tb := range l.Turbines {
		if tb.Wake != windfarm.WakeAlongY {
			t.Errorf("turbine %d wake = %v, want along y", i, tb.Wake)
		}
	}
}

func TestEvaluateInflow(t *testing.T) {
	l := evalOK(t, `(inflow 90)`)
	if !l.HasInflow {
		t.Fatal("inflow not recorded")
	}
	if math.Abs(l.InflowAngle-math.Pi/2) > 1e-12 {
		t.Errorf("inflow angle = %g, want pi/2", l.InflowAngle)
	}
}

func TestEvaluateRefineZones(t *testing.T) {
	l := evalOK(t, `
(refine-box :x-min -100 :x-max 100 :y-min -50 :y-max 50 :height 500 :scale 40)
(refine-cylinder :x 500 :y 500 :radius 200 :height 400 :scale 35)
`)

	if len(l.CustomZones) != 2 {
		t.Fatalf("custom zone count = %d, want 2", len(l.CustomZones))
	}
	box := l.CustomZones[0]
	if box.Shape != windfarm.RefineBox || box.XRange != [2]float64{-100, 100} || box.LengthScale != 40 {
		t.Errorf("box zone = %+v", box)
	}
	cyl := l.CustomZones[1]
	if cyl.Shape != windfarm.RefineCylinder || cyl.Radius != 200 || cyl.Height != 400 {
		t.Errorf("cylinder zone = %+v", cyl)
	}
}

func TestEvaluateMissingArgument(t *testing.T) {
	l, evalErrs, err := NewEngine().Evaluate(`(turbine :y 400)`)
	if err != nil {
		t.Fatalf("fatal evaluation error: %v", err)
	}
	if l != nil {
		t.Error("layout should be nil on evaluation failure")
	}
	if len(evalErrs) == 0 {
		t.Fatal("expected an evaluation error")
	}
	found := false
	for _, e := range evalErrs {
		if strings.Contains(e.Message, "missing :x") {
			found = true
		}
	}
	if !found {
		t.Errorf("errors %v do not name the missing argument", evalErrs)
	}
}

func TestEvaluateBadWake(t *testing.T) {
	_, evalErrs, err := NewEngine().Evaluate(`(turbine :x 0 :y 0 :wake :diagonal)`)
	if err != nil {
		t.Fatalf("fatal evaluation error: %v", err)
	}
	if len(evalErrs) == 0 {
		t.Fatal("expected an evaluation error for a bad wake keyword")
	}
}

func TestEvaluateParseError(t *testing.T) {
	l, evalErrs, err := NewEngine().Evaluate(`(turbine :x 200`)
	if err != nil {
		t.Fatalf("fatal evaluation error: %v", err)
	}
	if l != nil {
		t.Error("layout should be nil on parse failure")
	}
	if len(evalErrs) == 0 {
		t.Fatal("expected a parse error")
	}
}

func TestPreprocessSource(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"keyword", `(turbine :x 1)`, `(turbine "__kw_x" 1)`},
		{"kebab keyword", `(:spacing-x 5)`, `("__kw_spacing_x" 5)`},
		{"kebab identifier", `(refine-box)`, `(refine_box)`},
		{"negative literal kept", `(turbine :x -800)`, `(turbine "__kw_x" -800)`},
		{"comment", "; note\n(inflow 5)", "// note\n(inflow 5)"},
		{"string untouched", `(f ":not-a-kw; still")`, `(f ":not-a-kw; still")`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := preprocessSource(tt.in); got != tt.want {
				t.Fatalf("preprocessSource(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestEngineGenerations(t *testing.T) {
	e := NewEngine()
	for i := 0; i < 3; i++ {
		l, evalErrs, err := e.Evaluate(`(turbine :x 0 :y 0)`)
		if err != nil || len(evalErrs) > 0 {
			t.Fatalf("run %d failed: %v %v", i, evalErrs, err)
		}
		if len(l.Turbines) != 1 {
			t.Fatalf("run %d turbine count = %d, want 1", i, len(l.Turbines))
		}
	}
}
