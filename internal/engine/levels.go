package engine

// Transition is the direction a level moved in.
type Transition string

const (
	TransitionUp       Transition = "up"
	TransitionDown     Transition = "down"
	TransitionMaintain Transition = "maintain"
)

// Bounds is the inclusive level range the engine works in.
type Bounds struct {
	Min int
	Max int
}

// DefaultBounds is [1, 7].
var DefaultBounds = Bounds{Min: 1, Max: 7}

// Clamp forces level into b.
func (b Bounds) Clamp(level int) int {
	if level < b.Min {
		return b.Min
	}
	if level > b.Max {
		return b.Max
	}
	return level
}

// Contains reports whether level lies in b.
func (b Bounds) Contains(level int) bool {
	return level >= b.Min && level <= b.Max
}

// IV infusion thresholds in mg/dL.
const (
	ivDownBelow = 110.0
	ivUpAbove   = 150.0
	ivSharpDrop = -60.0 // a fall steeper than this holds the level
)

// Basal Bolus thresholds in mg/dL.
const (
	bbUpAbove   = 180.0
	bbUpCount   = 2
	bbDownBelow = 140.0
)

// NextLevel computes the level after applying the protocol's transition rules
// to current. The history is accepted for symmetry with the other stages; no
// current rule depends on it. The result always lies within b.
func NextLevel(alg Algorithm, current int, readings ReadingWindow, _ DoseHistory, b Bounds) (int, Transition) {
	current = b.Clamp(current)

	var move Transition
	switch alg {
	case IVInfusion:
		move = ivTransition(readings)
	case BasalBolus:
		move = basalTransition(readings)
	default:
		move = TransitionMaintain
	}

	next := current
	switch move {
	case TransitionUp:
		next = current + 1
	case TransitionDown:
		next = current - 1
	}
	next = b.Clamp(next)
	if next == current {
		return current, TransitionMaintain
	}
	return next, move
}

func ivTransition(readings ReadingWindow) Transition {
	present := readings.Real()
	if len(present) == 0 {
		return TransitionMaintain
	}
	g1 := present[0]
	delta := 0.0
	if len(present) > 1 {
		delta = g1 - present[1]
	}

	switch {
	case g1 < ivDownBelow:
		return TransitionDown
	case delta < ivSharpDrop:
		return TransitionMaintain
	case g1 > ivUpAbove:
		return TransitionUp
	default:
		return TransitionMaintain
	}
}

func basalTransition(readings ReadingWindow) Transition {
	// hypoglycaemia avoidance wins over escalation
	if readings.countBelow(bbDownBelow) > 0 {
		return TransitionDown
	}
	if readings.countAbove(bbUpAbove) >= bbUpCount {
		return TransitionUp
	}
	return TransitionMaintain
}
