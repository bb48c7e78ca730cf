package engine

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Band is the glucose range (mg/dL) a table row was written for. It documents
// the row; lookups are keyed on level only. A zero Min means "below Max" and a
// zero Max means "above Min".
type Band struct {
	Min float64 `json:"min"`
	Max float64 `json:"max,omitempty"`
}

func (b Band) String() string {
	switch {
	case b.Min == 0 && b.Max > 0:
		return fmt.Sprintf("<%g", b.Max)
	case b.Max == 0:
		return fmt.Sprintf(">%g", b.Min)
	default:
		return fmt.Sprintf("%g-%g", b.Min, b.Max)
	}
}

// ParseBand reads the forms written by String: "<110", "111-150", ">350".
func ParseBand(s string) (Band, error) {
	s = strings.TrimSpace(s)
	bad := fmt.Errorf("invalid glucose range %q", s)
	switch {
	case strings.HasPrefix(s, "<"):
		v, err := strconv.ParseFloat(strings.TrimSpace(s[1:]), 64)
		if err != nil || v <= 0 {
			return Band{}, bad
		}
		return Band{Max: v}, nil
	case strings.HasPrefix(s, ">"):
		v, err := strconv.ParseFloat(strings.TrimSpace(s[1:]), 64)
		if err != nil || v <= 0 {
			return Band{}, bad
		}
		return Band{Min: v}, nil
	}
	lo, hi, ok := strings.Cut(s, "-")
	if !ok {
		return Band{}, bad
	}
	minV, err1 := strconv.ParseFloat(strings.TrimSpace(lo), 64)
	maxV, err2 := strconv.ParseFloat(strings.TrimSpace(hi), 64)
	if err1 != nil || err2 != nil || minV < 0 || maxV <= minV {
		return Band{}, bad
	}
	return Band{Min: minV, Max: maxV}, nil
}

// Entry is one dose table row.
type Entry struct {
	Algorithm Algorithm
	Level     int
	Dose      decimal.Decimal
	Band      Band
	// Action overrides the label derived from the dose when non-empty.
	Action string
}

// Unit is the dosing unit for the entry's protocol.
func (e Entry) Unit() string { return e.Algorithm.Unit() }

// Label returns the action text for the entry.
func (e Entry) Label() string {
	if e.Action != "" {
		return e.Action
	}
	return ActionFor(e.Algorithm, e.Dose)
}

type tableKey struct {
	alg   Algorithm
	level int
}

// DoseTable maps (algorithm, level) to a dose. It is immutable once built;
// concurrent reads need no locking.
type DoseTable struct {
	entries map[tableKey]Entry
}

// NewDoseTable builds a table from rows. Duplicate (algorithm, level) pairs,
// unknown algorithms, non-positive levels and negative doses are rejected.
func NewDoseTable(rows []Entry) (*DoseTable, error) {
	t := &DoseTable{entries: make(map[tableKey]Entry, len(rows))}
	for i, r := range rows {
		if r.Algorithm != IVInfusion && r.Algorithm != BasalBolus {
			return nil, fmt.Errorf("row %d: unknown algorithm %d", i+1, r.Algorithm)
		}
		if r.Level < 1 {
			return nil, fmt.Errorf("row %d: level must be positive, got %d", i+1, r.Level)
		}
		if r.Dose.IsNegative() {
			return nil, fmt.Errorf("row %d: negative dose %s", i+1, r.Dose)
		}
		k := tableKey{alg: r.Algorithm, level: r.Level}
		if _, dup := t.entries[k]; dup {
			return nil, fmt.Errorf("row %d: duplicate entry for %s level %d", i+1, r.Algorithm.Key(), r.Level)
		}
		t.entries[k] = r
	}
	return t, nil
}

// Resolve returns the entry for (alg, level).
func (t *DoseTable) Resolve(alg Algorithm, level int) (Entry, error) {
	if t != nil {
		if e, ok := t.entries[tableKey{alg: alg, level: level}]; ok {
			return e, nil
		}
	}
	return Entry{}, &ConfigurationError{Algorithm: alg, Level: level}
}

// Validate checks that every level in b has an entry for both protocols.
func (t *DoseTable) Validate(b Bounds) error {
	var missing []string
	for _, alg := range []Algorithm{IVInfusion, BasalBolus} {
		for level := b.Min; level <= b.Max; level++ {
			if _, err := t.Resolve(alg, level); err != nil {
				missing = append(missing, fmt.Sprintf("%s/%d", alg.Key(), level))
			}
		}
	}
	if len(missing) > 0 {
		return &ConfigurationError{Msg: "missing entries " + strings.Join(missing, ", ")}
	}
	return nil
}

// Entries returns all rows ordered by algorithm then level.
func (t *DoseTable) Entries() []Entry {
	if t == nil {
		return nil
	}
	out := make([]Entry, 0, len(t.entries))
	for _, e := range t.entries {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Algorithm != out[j].Algorithm {
			return out[i].Algorithm < out[j].Algorithm
		}
		return out[i].Level < out[j].Level
	})
	return out
}

// Len is the number of rows.
func (t *DoseTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.entries)
}

// ClosestLevel returns the level in b whose dose for alg is nearest to dose.
// Ties go to the lower level. ok is false when no level in b has an entry.
func (t *DoseTable) ClosestLevel(alg Algorithm, dose decimal.Decimal, b Bounds) (level int, ok bool) {
	var best decimal.Decimal
	for l := b.Min; l <= b.Max; l++ {
		e, err := t.Resolve(alg, l)
		if err != nil {
			continue
		}
		diff := e.Dose.Sub(dose).Abs()
		if !ok || diff.LessThan(best) {
			level, best, ok = l, diff, true
		}
	}
	return level, ok
}

// DefaultDoseTable is the built-in table used when no table file is present.
func DefaultDoseTable() *DoseTable {
	iv := []struct {
		dose   float64
		band   Band
		action string
	}{
		{0, Band{0, 110}, "Turn off insulin"},
		{1, Band{111, 150}, "Maintain current rate"},
		{2, Band{151, 200}, "Increase rate"},
		{3, Band{201, 250}, "Increase rate"},
		{4, Band{251, 300}, "Increase rate"},
		{5, Band{301, 350}, "Increase rate"},
		{6, Band{351, 400}, "Increase rate"},
	}
	basal := []struct {
		dose   float64
		band   Band
		action string
	}{
		{0, Band{0, 140}, "No insulin"},
		{2, Band{141, 180}, "Low dose"},
		{4, Band{181, 220}, "Medium dose"},
		{6, Band{221, 260}, "High dose"},
		{8, Band{261, 300}, "Very high dose"},
		{16, Band{301, 350}, "Maximum dose"},
		{12, Band{350, 0}, "Critical dose"},
	}

	rows := make([]Entry, 0, len(iv)+len(basal))
	for i, r := range iv {
		rows = append(rows, Entry{Algorithm: IVInfusion, Level: i + 1, Dose: decimal.NewFromFloat(r.dose), Band: r.band, Action: r.action})
	}
	for i, r := range basal {
		rows = append(rows, Entry{Algorithm: BasalBolus, Level: i + 1, Dose: decimal.NewFromFloat(r.dose), Band: r.band, Action: r.action})
	}
	t, err := NewDoseTable(rows)
	if err != nil {
		panic(err) // literal table above is well-formed
	}
	return t
}

// ActionFor derives a human-readable label from a dose.
func ActionFor(alg Algorithm, dose decimal.Decimal) string {
	if alg == IVInfusion {
		switch {
		case dose.IsZero():
			return "Turn off insulin"
		case dose.LessThanOrEqual(decimal.NewFromInt(1)):
			return "Maintain current rate"
		case dose.GreaterThanOrEqual(decimal.NewFromInt(40)):
			return "Maximum rate"
		default:
			return "Increase rate"
		}
	}
	switch {
	case dose.IsZero():
		return "No insulin"
	case dose.LessThanOrEqual(decimal.NewFromInt(2)):
		return "Low dose"
	case dose.LessThanOrEqual(decimal.NewFromInt(6)):
		return "Medium dose"
	case dose.LessThanOrEqual(decimal.NewFromInt(12)):
		return "High dose"
	case dose.LessThanOrEqual(decimal.NewFromInt(20)):
		return "Very high dose"
	default:
		return "Critical dose"
	}
}
