package windfarm

import "fmt"

// WakeAxis is the discrete wake-orientation flag used by the rectangular
// placement strategy: the wake corridor runs along either the x or the y
// axis.
type WakeAxis int

const (
	WakeAlongX WakeAxis = iota
	WakeAlongY
)

func (w WakeAxis) String() string {
	switch w {
	case WakeAlongX:
		return "x"
	case WakeAlongY:
		return "y"
	}
	return fmt.Sprintf("WakeAxis(%d)", int(w))
}

// TurbineSpec is one turbine's placement record. Elevation is either given
// explicitly (HasZ) or computed from the domain's ground function plus the
// hub height at placement time.
type TurbineSpec struct {
	X, Y float64
	Z    float64 // explicit elevation, used when HasZ
	HasZ bool
	Wake WakeAxis // rectangular strategy only
}

// DefaultHubHeight is the hub elevation above ground used when a turbine
// carries no explicit elevation.
const DefaultHubHeight = 100
