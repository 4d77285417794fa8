package layout

import (
	"fmt"
	"math"
	"strings"

	"github.com/galemesh/galemesh/pkg/windfarm"
	zygo "github.com/glycerine/zygomys/zygo"
)

// ---------------------------------------------------------------------------
// Source preprocessing
// ---------------------------------------------------------------------------

// kwPrefix marks keyword arguments after preprocessing.
const kwPrefix = "__kw_"

// preprocessSource rewrites layout Lisp into a form zygomys accepts:
//
//  1. :keyword -> "__kw_keyword" string literals, so keywords need no
//     global symbol registration.
//  2. kebab-case -> underscore (refine-box -> refine_box); zygomys reads a
//     hyphen inside an identifier as subtraction.
//  3. ; line comments -> // comments.
//
// String literal boundaries are respected throughout.
func preprocessSource(source string) string {
	out := make([]byte, 0, len(source)+len(source)/4)
	b := []byte(source)
	i := 0
	for i < len(b) {
		switch {
		case b[i] == '"':
			// Copy the string literal untouched.
			out = append(out, b[i])
			i++
			for i < len(b) && b[i] != '"' {
				if b[i] == '\\' && i+1 < len(b) {
					out = append(out, b[i], b[i+1])
					i += 2
					continue
				}
				out = append(out, b[i])
				i++
			}
			if i < len(b) {
				out = append(out, b[i])
				i++
			}
		case b[i] == ';':
			out = append(out, '/', '/')
			for i < len(b) && b[i] == ';' {
				i++
			}
			for i < len(b) && b[i] != '\n' {
				out = append(out, b[i])
				i++
			}
		case b[i] == ':' && i+1 < len(b) && isLetter(b[i+1]):
			j := i + 1
			for j < len(b) && isKWChar(b[j]) {
				j++
			}
			name := strings.ReplaceAll(string(b[i+1:j]), "-", "_")
			out = append(out, '"')
			out = append(out, kwPrefix...)
			out = append(out, name...)
			out = append(out, '"')
			i = j
		case b[i] == '-' && i > 0 && i+1 < len(b) && isIdentChar(b[i-1]) && isLetter(b[i+1]):
			out = append(out, '_')
			i++
		default:
			out = append(out, b[i])
			i++
		}
	}
	return string(out)
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isKWChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '-' || c == '_'
}

func isIdentChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '_'
}

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

// kwArgs is a parsed mixed positional+keyword argument list.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

func parseArgs(args []zygo.Sexp) kwArgs {
	out := kwArgs{kw: make(map[string]zygo.Sexp)}
	i := 0
	for i < len(args) {
		if name, ok := isKW(args[i]); ok {
			if i+1 < len(args) {
				out.kw[name] = args[i+1]
				i += 2
			} else {
				out.kw[name] = zygo.SexpNull
				i++
			}
			continue
		}
		out.positional = append(out.positional, args[i])
		i++
	}
	return out
}

// isKW reports whether s is a preprocessed keyword, returning its name.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", false
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], true
	}
	return "", false
}

func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

// toKeywordString accepts a preprocessed keyword or a plain string.
func toKeywordString(s zygo.Sexp) (string, error) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", fmt.Errorf("expected keyword or string, got %T (%s)", s, s.SexpString(nil))
	}
	return strings.TrimPrefix(str.S, kwPrefix), nil
}

// float pulls a required numeric keyword argument.
func (a kwArgs) float(builtin, name string) (float64, error) {
	v, ok := a.kw[name]
	if !ok {
		return 0, fmt.Errorf("%s: missing :%s", builtin, name)
	}
	f, err := toFloat64(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %s: %w", builtin, name, err)
	}
	return f, nil
}

// floatOr pulls an optional numeric keyword argument.
func (a kwArgs) floatOr(builtin, name string, def float64) (float64, error) {
	v, ok := a.kw[name]
	if !ok {
		return def, nil
	}
	f, err := toFloat64(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %s: %w", builtin, name, err)
	}
	return f, nil
}

// wakeOf parses an optional :wake keyword (:x or :y).
func (a kwArgs) wakeOf(builtin string) (windfarm.WakeAxis, error) {
	v, ok := a.kw["wake"]
	if !ok {
		return windfarm.WakeAlongX, nil
	}
	name, err := toKeywordString(v)
	if err != nil {
		return 0, fmt.Errorf("%s: wake: %w", builtin, err)
	}
	switch name {
	case "x":
		return windfarm.WakeAlongX, nil
	case "y":
		return windfarm.WakeAlongY, nil
	}
	return 0, fmt.Errorf("%s: wake must be :x or :y, got %q", builtin, name)
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// registerBuiltins installs the layout DSL into a zygomys environment. The
// builtins append to the provided Layout during evaluation.
func registerBuiltins(env *zygo.Zlisp, l *Layout) {

	// -----------------------------------------------------------------------
	// (turbine :x 200 :y 400 :wake :y :elevation 150)
	// -----------------------------------------------------------------------
	env.AddFunction("turbine", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)

		x, err := pa.float("turbine", "x")
		if err != nil {
			return zygo.SexpNull, err
		}
		y, err := pa.float("turbine", "y")
		if err != nil {
			return zygo.SexpNull, err
		}
		wake, err := pa.wakeOf("turbine")
		if err != nil {
			return zygo.SexpNull, err
		}

		spec := windfarm.TurbineSpec{X: x, Y: y, Wake: wake}
		if v, ok := pa.kw["elevation"]; ok {
			z, err := toFloat64(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("turbine: elevation: %w", err)
			}
			spec.Z = z
			spec.HasZ = true
		}

		l.Turbines = append(l.Turbines, spec)
		return zygo.SexpNull, nil
	})

	// -----------------------------------------------------------------------
	// (grid :x 0 :y 0 :rows 3 :cols 4 :spacing-x 500 :spacing-y 400
	//       :stagger 250 :wake :x)
	//
	// Places rows*cols turbines on a lattice anchored at (:x, :y); every
	// other row shifts by :stagger along x.
	// -----------------------------------------------------------------------
	env.AddFunction("grid", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)

		x0, err := pa.floatOr("grid", "x", 0)
		if err != nil {
			return zygo.SexpNull, err
		}
		y0, err := pa.floatOr("grid", "y", 0)
		if err != nil {
			return zygo.SexpNull, err
		}
		rows, err := pa.float("grid", "rows")
		if err != nil {
			return zygo.SexpNull, err
		}
		cols, err := pa.float("grid", "cols")
		if err != nil {
			return zygo.SexpNull, err
		}
		dx, err := pa.float("grid", "spacing_x")
		if err != nil {
			return zygo.SexpNull, err
		}
		dy, err := pa.float("grid", "spacing_y")
		if err != nil {
			return zygo.SexpNull, err
		}
		stagger, err := pa.floatOr("grid", "stagger", 0)
		if err != nil {
			return zygo.SexpNull, err
		}
		wake, err := pa.wakeOf("grid")
		if err != nil {
			return zygo.SexpNull, err
		}
		if rows < 1 || cols < 1 {
			return zygo.SexpNull, fmt.Errorf("grid: rows and cols must be at least 1")
		}

		for r := 0; r < int(rows); r++ {
			shift := 0.0
			if r%2 == 1 {
				shift = stagger
			}
			for c := 0; c < int(cols); c++ {
				l.Turbines = append(l.Turbines, windfarm.TurbineSpec{
					X:    x0 + shift + dx*float64(c),
					Y:    y0 + dy*float64(r),
					Wake: wake,
				})
			}
		}
		return zygo.SexpNull, nil
	})

	// -----------------------------------------------------------------------
	// (inflow 15)  ; degrees
	// -----------------------------------------------------------------------
	env.AddFunction("inflow", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) != 1 {
			return zygo.SexpNull, fmt.Errorf("inflow: expected one angle in degrees")
		}
		deg, err := toFloat64(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("inflow: %w", err)
		}
		l.InflowAngle = deg * math.Pi / 180
		l.HasInflow = true
		return zygo.SexpNull, nil
	})

	// -----------------------------------------------------------------------
	// (refine-box :x-min -100 :x-max 100 :y-min -100 :y-max 100
	//             :height 500 :scale 40)
	// -----------------------------------------------------------------------
	env.AddFunction("refine_box", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)

		xMin, err := pa.float("refine-box", "x_min")
		if err != nil {
			return zygo.SexpNull, err
		}
		xMax, err := pa.float("refine-box", "x_max")
		if err != nil {
			return zygo.SexpNull, err
		}
		yMin, err := pa.float("refine-box", "y_min")
		if err != nil {
			return zygo.SexpNull, err
		}
		yMax, err := pa.float("refine-box", "y_max")
		if err != nil {
			return zygo.SexpNull, err
		}
		height, err := pa.floatOr("refine-box", "height", 0)
		if err != nil {
			return zygo.SexpNull, err
		}
		scale, err := pa.float("refine-box", "scale")
		if err != nil {
			return zygo.SexpNull, err
		}

		l.CustomZones = append(l.CustomZones, windfarm.CustomZone{
			Shape:       windfarm.RefineBox,
			XRange:      [2]float64{xMin, xMax},
			YRange:      [2]float64{yMin, yMax},
			Height:      height,
			LengthScale: scale,
		})
		return zygo.SexpNull, nil
	})

	// -----------------------------------------------------------------------
	// (refine-cylinder :x 0 :y 0 :radius 300 :height 500 :scale 40)
	// -----------------------------------------------------------------------
	env.AddFunction("refine_cylinder", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)

		x, err := pa.float("refine-cylinder", "x")
		if err != nil {
			return zygo.SexpNull, err
		}
		y, err := pa.float("refine-cylinder", "y")
		if err != nil {
			return zygo.SexpNull, err
		}
		radius, err := pa.float("refine-cylinder", "radius")
		if err != nil {
			return zygo.SexpNull, err
		}
		height, err := pa.floatOr("refine-cylinder", "height", 0)
		if err != nil {
			return zygo.SexpNull, err
		}
		scale, err := pa.float("refine-cylinder", "scale")
		if err != nil {
			return zygo.SexpNull, err
		}

		l.CustomZones = append(l.CustomZones, windfarm.CustomZone{
			Shape:       windfarm.RefineCylinder,
			XCenter:     x,
			YCenter:     y,
			Radius:      radius,
			Height:      height,
			LengthScale: scale,
		})
		return zygo.SexpNull, nil
	})
}
