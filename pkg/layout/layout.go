// Package layout provides the scripting front end for programmatic farm
// layouts. It wraps zygomys in a sandboxed environment; a script places
// turbines and custom refinement zones through a small set of builtins,
// and evaluation produces the typed records the engine consumes. Grids and
// staggered rows become a few lines of Lisp instead of hand-enumerated
// YAML entries.
package layout

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/galemesh/galemesh/pkg/windfarm"
	zygo "github.com/glycerine/zygomys/zygo"
)

// Layout is the evaluated output of a script: the turbine list, custom
// zones, and an optional inflow angle override.
type Layout struct {
	Turbines    []windfarm.TurbineSpec
	CustomZones []windfarm.CustomZone

	InflowAngle float64 // radians
	HasInflow   bool
}

// EvalError is a non-fatal error from script evaluation, such as a parse
// error or a bad builtin argument.
type EvalError struct {
	Line    int
	Message string
}

func (e EvalError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Message)
	}
	return e.Message
}

// Engine wraps the zygomys interpreter. It is safe for concurrent use;
// each call to Evaluate creates a fresh sandboxed environment so scripts
// are deterministic.
type Engine struct {
	mu         sync.Mutex
	generation uint64
}

// NewEngine creates a new Engine.
func NewEngine() *Engine {
	return &Engine{}
}

// Evaluate runs a layout script and returns the layout it built.
//
// Return semantics:
//   - On success: layout + nil errors + nil error
//   - On parse/eval failure: nil layout + eval errors + nil error
//   - On fatal failure (timeout, panic): nil + nil + error
func (e *Engine) Evaluate(source string) (*Layout, []EvalError, error) {
	e.mu.Lock()
	e.generation++
	gen := e.generation
	e.mu.Unlock()

	ch := make(chan evalResult, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				ch <- evalResult{err: fmt.Errorf("panic during evaluation: %v", r)}
			}
		}()

		l, evalErrs, err := e.evaluate(source)
		ch <- evalResult{layout: l, errors: evalErrs, err: err}
	}()

	return waitWithTimeout(ch, gen, &e.mu, &e.generation)
}

// evaluate runs one script in a fresh sandbox.
func (e *Engine) evaluate(source string) (*Layout, []EvalError, error) {
	// An empty script is a valid layout with no turbines.
	if strings.TrimSpace(source) == "" {
		return &Layout{}, nil, nil
	}

	// Sandbox mode keeps user scripts away from the filesystem and
	// syscalls.
	env := zygo.NewZlispSandbox()
	defer env.Stop()

	l := &Layout{}
	registerBuiltins(env, l)

	if err := env.LoadString(preprocessSource(source)); err != nil {
		return nil, parseZygoError(err), nil
	}
	if _, err := env.Run(); err != nil {
		return nil, parseZygoError(err), nil
	}

	return l, nil, nil
}

// linePattern matches zygomys messages that carry "on line N: ...".
var linePattern = regexp.MustCompile(`(?i)(?:error )?on line (\d+):\s*(.*)`)

// linePatternShort matches plain "line N: ..." prefixes.
var linePatternShort = regexp.MustCompile(`(?i)^line (\d+):\s*(.*)`)

// parseZygoError converts a zygomys error into EvalError values, pulling a
// line number out of the message when one is present.
func parseZygoError(err error) []EvalError {
	msg := err.Error()

	if m := linePattern.FindStringSubmatch(msg); m != nil {
		line, _ := strconv.Atoi(m[1])
		return []EvalError{{Line: line, Message: strings.TrimSpace(m[2])}}
	}
	if m := linePatternShort.FindStringSubmatch(msg); m != nil {
		line, _ := strconv.Atoi(m[1])
		return []EvalError{{Line: line, Message: strings.TrimSpace(m[2])}}
	}
	return []EvalError{{Message: strings.TrimSpace(msg)}}
}
