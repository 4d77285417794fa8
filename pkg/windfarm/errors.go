package windfarm

import "fmt"

// OutOfDomainError reports a turbine whose center falls outside the domain.
// It is fatal for the run: a misplaced turbine invalidates the simulation,
// so the engine aborts rather than skipping the turbine.
type OutOfDomainError struct {
	X, Y, Z float64
}

func (e *OutOfDomainError) Error() string {
	return fmt.Sprintf("turbine out of domain: (%g, %g, %g)", e.X, e.Y, e.Z)
}

// DegeneracyError reports an inconsistent geometric configuration, such as
// an ellipse-radius argument outside the major axis or a zero-radius rotor.
// Degeneracies are configuration defects and are never clamped silently.
type DegeneracyError struct {
	Op     string
	Detail string
}

func (e *DegeneracyError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Detail)
}
