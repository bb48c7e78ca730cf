package engine

import (
	"github.com/shopspring/decimal"
)

// LevelSource records where the starting level came from.
type LevelSource string

const (
	LevelSupplied LevelSource = "supplied" // caller sent current_level
	LevelInferred LevelSource = "inferred" // matched from the latest prior dose
	LevelDefault  LevelSource = "default"  // fresh patient, no transition applied
)

// Result is the recommendation for one request.
type Result struct {
	Algorithm      Algorithm
	Route          Route
	Level          int
	PreviousLevel  int
	Transition     Transition
	LevelSource    LevelSource
	Dose           decimal.Decimal
	Unit           string
	Action         string
	NextCheckHours int
}

// Engine runs the recommendation pipeline over an injected dose table.
type Engine struct {
	table  *DoseTable
	bounds Bounds
}

// Option customizes an Engine.
type Option func(*Engine)

// WithBounds sets the level range. Invalid ranges are ignored.
func WithBounds(b Bounds) Option {
	return func(e *Engine) {
		if b.Min >= 1 && b.Max >= b.Min {
			e.bounds = b
		}
	}
}

// New returns an Engine reading doses from table.
func New(table *DoseTable, opts ...Option) *Engine {
	e := &Engine{table: table, bounds: DefaultBounds}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Bounds returns the configured level range.
func (e *Engine) Bounds() Bounds { return e.bounds }

// Table returns the dose table the engine reads from.
func (e *Engine) Table() *DoseTable { return e.table }

// Recommend computes a recommendation. It returns *ValidationError for input the
// caller must fix and *ConfigurationError when the table lacks the chosen level.
func (e *Engine) Recommend(in Input) (Result, error) {
	if _, ok := in.Readings.Latest(); !ok {
		return Result{}, NewValidationError("GRBS", "at least one glucose reading is required")
	}
	if in.CurrentLevel != 0 && !e.bounds.Contains(in.CurrentLevel) {
		return Result{}, NewValidationError("current_level", "must be between %d and %d, got %d",
			e.bounds.Min, e.bounds.Max, in.CurrentLevel)
	}
	if in.Route == "" {
		in.Route = RouteSC
	}
	if in.Diet == "" {
		in.Diet = DietOther
	}

	alg := SelectAlgorithm(in.Readings, in.Flags, in.Route)

	start, source := e.startingLevel(alg, in)
	level, move := start, TransitionMaintain
	if source != LevelDefault {
		level, move = NextLevel(alg, start, in.Readings, in.Doses, e.bounds)
	}

	entry, err := e.table.Resolve(alg, level)
	if err != nil {
		return Result{}, err
	}

	route := alg.Route()
	return Result{
		Algorithm:      alg,
		Route:          route,
		Level:          level,
		PreviousLevel:  start,
		Transition:     move,
		LevelSource:    source,
		Dose:           entry.Dose,
		Unit:           entry.Unit(),
		Action:         entry.Label(),
		NextCheckHours: NextCheckHours(alg, in.Readings, in.Diet, route),
	}, nil
}

// startingLevel picks the level transitions are applied to.
func (e *Engine) startingLevel(alg Algorithm, in Input) (int, LevelSource) {
	if in.CurrentLevel != 0 {
		return in.CurrentLevel, LevelSupplied
	}
	last, ok := in.Doses.Latest()
	if !ok {
		return e.bounds.Clamp(DefaultLevel), LevelDefault
	}
	// patients on dual inotropes restart the drip conservatively
	if alg == IVInfusion && in.Flags.DualInotropes {
		return e.bounds.Clamp(DefaultLevel), LevelDefault
	}
	// a single reading is too little history to resume a basal regimen
	if alg == BasalBolus && len(in.Readings.Real()) <= 1 {
		return e.bounds.Clamp(DefaultLevel), LevelDefault
	}
	level, found := e.table.ClosestLevel(alg, decimal.NewFromFloat(last), e.bounds)
	if !found {
		return e.bounds.Clamp(DefaultLevel), LevelDefault
	}
	return level, LevelInferred
}
