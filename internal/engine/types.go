// Package engine holds the insulin dosing decision logic: protocol selection,
// level transitions, dose-table lookup and recheck timing. Every function here is
// pure; the only shared state is the read-only DoseTable handed to New.
package engine

import "strings"

// Window sizes of the normalized input.
const (
	WindowSize  = 5 // glucose readings, most recent first
	HistorySize = 4 // prior insulin doses, most recent first
)

// DefaultLevel is where a patient without a known level starts.
const DefaultLevel = 2

// Algorithm is the insulin protocol chosen for a request.
type Algorithm int

const (
	IVInfusion Algorithm = iota + 1
	BasalBolus
)

// String returns the label used in responses.
func (a Algorithm) String() string {
	switch a {
	case IVInfusion:
		return "IV Insulin Infusion"
	case BasalBolus:
		return "Basal Bolus"
	default:
		return "unknown"
	}
}

// Key is the identifier used by the dose table file ("IV" | "Basal").
func (a Algorithm) Key() string {
	switch a {
	case IVInfusion:
		return "IV"
	case BasalBolus:
		return "Basal"
	default:
		return ""
	}
}

// Unit is the dosing unit of the protocol.
func (a Algorithm) Unit() string {
	if a == IVInfusion {
		return "IU/hr"
	}
	return "IU"
}

// Route is the delivery route the protocol uses.
func (a Algorithm) Route() Route {
	if a == IVInfusion {
		return RouteIV
	}
	return RouteSC
}

// ParseAlgorithm accepts a table key or a response label, case-insensitively.
func ParseAlgorithm(s string) (Algorithm, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "iv", "iv insulin infusion", "iv_infusion":
		return IVInfusion, true
	case "basal", "basal bolus", "basal_bolus", "basalbolus":
		return BasalBolus, true
	default:
		return 0, false
	}
}

// Route is the requested or chosen delivery route.
type Route string

const (
	RouteIV Route = "iv"
	RouteSC Route = "sc"
)

// Label returns the long form used in responses.
func (r Route) Label() string {
	if r == RouteIV {
		return "intravenous"
	}
	return "subcutaneous"
}

// Diet is the patient's diet order.
type Diet string

const (
	DietNPO   Diet = "npo"
	DietOther Diet = "other"
)

// Flags are comorbidity markers supplied with a request.
type Flags struct {
	CKD           bool
	DualInotropes bool
}

// ReadingWindow holds glucose readings in mg/dL, most recent first.
// A zero slot means the reading is absent.
type ReadingWindow [WindowSize]float64

// Real returns the present readings in order, skipping absent slots.
func (w ReadingWindow) Real() []float64 {
	out := make([]float64, 0, WindowSize)
	for _, v := range w {
		if v > 0 {
			out = append(out, v)
		}
	}
	return out
}

// Latest returns the most recent present reading.
func (w ReadingWindow) Latest() (float64, bool) {
	for _, v := range w {
		if v > 0 {
			return v, true
		}
	}
	return 0, false
}

// allWithin reports whether the first n slots all hold present readings
// within [lo, hi]. An absent slot fails the check.
func (w ReadingWindow) allWithin(n int, lo, hi float64) bool {
	for _, v := range w[:n] {
		if v <= 0 || v < lo || v > hi {
			return false
		}
	}
	return true
}

// countAbove counts present readings strictly above limit.
func (w ReadingWindow) countAbove(limit float64) int {
	n := 0
	for _, v := range w {
		if v > 0 && v > limit {
			n++
		}
	}
	return n
}

// countBelow counts present readings strictly below limit.
func (w ReadingWindow) countBelow(limit float64) int {
	n := 0
	for _, v := range w {
		if v > 0 && v < limit {
			n++
		}
	}
	return n
}

// DoseHistory holds prior doses, most recent first. Zero means no dose.
type DoseHistory [HistorySize]float64

// Latest returns the most recent non-zero dose.
func (h DoseHistory) Latest() (float64, bool) {
	for _, v := range h {
		if v > 0 {
			return v, true
		}
	}
	return 0, false
}

// Input is the normalized request record consumed by the engine.
type Input struct {
	Readings ReadingWindow
	Doses    DoseHistory
	Flags    Flags
	Route    Route
	Diet     Diet
	// CurrentLevel is the caller's current level; 0 means not supplied.
	CurrentLevel int
}
