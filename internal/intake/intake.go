// Package intake turns a raw recommendation payload into engine.Input.
//
// Two payload shapes are accepted. The array form carries "GRBS" and "Insulin"
// lists, most recent first. The flat form carries GRBS1..GRBS5 and
// Insulin1..Insulin4. When both are present the array form wins.
package intake

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"insulin_advisor/internal/engine"
)

const (
	keyReadings = "GRBS"
	keyDoses    = "Insulin"
	keyRoute    = "route"
	keyDiet     = "diet_order"
	keyLevel    = "current_level"

	// Upper limits of plausible values. Meters top out well below the glucose
	// limit, so anything above it is a typing or unit error.
	maxReading = 2000.0 // mg/dL
	maxDose    = 500.0  // IU or IU/hr
)

var (
	ckdKeys  = []string{"CKD", "ckd"}
	dualKeys = []string{"Dual inotropes", "dual_inotropes"}
)

type fields map[string]json.RawMessage

// Parse validates payload and normalizes it. Every failure is an
// *engine.ValidationError naming the offending field.
func Parse(payload []byte) (engine.Input, error) {
	var in engine.Input

	var f fields
	if err := json.Unmarshal(payload, &f); err != nil || f == nil {
		return in, engine.NewValidationError("", "payload must be a JSON object")
	}

	readings, err := f.series(keyReadings, engine.WindowSize, maxReading, true)
	if err != nil {
		return in, err
	}
	copy(in.Readings[:], readings)
	if _, ok := in.Readings.Latest(); !ok {
		return in, engine.NewValidationError(keyReadings, "at least one reading must be greater than zero")
	}

	doses, err := f.series(keyDoses, engine.HistorySize, maxDose, false)
	if err != nil {
		return in, err
	}
	copy(in.Doses[:], doses)

	if in.Flags.CKD, err = f.flag(ckdKeys...); err != nil {
		return in, err
	}
	if in.Flags.DualInotropes, err = f.flag(dualKeys...); err != nil {
		return in, err
	}
	if in.Route, err = f.route(); err != nil {
		return in, err
	}
	if in.Diet, err = f.diet(); err != nil {
		return in, err
	}
	if in.CurrentLevel, err = f.level(); err != nil {
		return in, err
	}
	return in, nil
}

// series reads the array form under name, falling back to the numbered flat
// fields name1..nameN. Extra array elements are dropped. Values above limit
// are rejected.
func (f fields) series(name string, size int, limit float64, required bool) ([]float64, error) {
	if raw, ok := f[name]; ok && !isNull(raw) {
		var items []json.RawMessage
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, engine.NewValidationError(name, "must be an array of numbers")
		}
		if required && len(items) == 0 {
			return nil, engine.NewValidationError(name, "at least one reading is required")
		}
		if len(items) > size {
			items = items[:size]
		}
		out := make([]float64, len(items))
		for i, item := range items {
			v, _, err := number(item)
			if err == nil {
				err = checkLimit(v, limit)
			}
			if err != nil {
				return nil, engine.NewValidationError(fmt.Sprintf("%s[%d]", name, i), "%v", err)
			}
			out[i] = v
		}
		return out, nil
	}

	out := make([]float64, size)
	found := false
	for i := range out {
		key := name + strconv.Itoa(i+1)
		raw, ok := f[key]
		if !ok {
			continue
		}
		v, present, err := number(raw)
		if err == nil {
			err = checkLimit(v, limit)
		}
		if err != nil {
			return nil, engine.NewValidationError(key, "%v", err)
		}
		if i == 0 && present {
			found = true
		}
		out[i] = v
	}
	if required && !found {
		if f.hasAny(name, size) {
			return nil, engine.NewValidationError(name+"1", "is required")
		}
		return nil, engine.NewValidationError(name, "glucose readings are required")
	}
	return out, nil
}

func (f fields) hasAny(name string, size int) bool {
	for i := 1; i <= size; i++ {
		if _, ok := f[name+strconv.Itoa(i)]; ok {
			return true
		}
	}
	return false
}

func (f fields) flag(keys ...string) (bool, error) {
	for _, key := range keys {
		raw, ok := f[key]
		if !ok || isNull(raw) {
			continue
		}
		var b bool
		if err := json.Unmarshal(raw, &b); err == nil {
			return b, nil
		}
		s, err := str(raw)
		if err != nil {
			return false, engine.NewValidationError(key, "must be a boolean")
		}
		if s == "" {
			continue
		}
		b, err = strconv.ParseBool(s)
		if err != nil {
			return false, engine.NewValidationError(key, "must be true or false, got %q", s)
		}
		return b, nil
	}
	return false, nil
}

func (f fields) route() (engine.Route, error) {
	s, err := f.text(keyRoute)
	if err != nil || s == "" {
		return engine.RouteSC, err
	}
	switch strings.ToLower(s) {
	case "iv":
		return engine.RouteIV, nil
	case "sc":
		return engine.RouteSC, nil
	}
	return "", engine.NewValidationError(keyRoute, "must be iv or sc, got %q", s)
}

func (f fields) diet() (engine.Diet, error) {
	s, err := f.text(keyDiet)
	if err != nil || s == "" {
		return engine.DietOther, err
	}
	switch strings.ToLower(s) {
	case "npo":
		return engine.DietNPO, nil
	case "other", "others":
		return engine.DietOther, nil
	}
	return "", engine.NewValidationError(keyDiet, "must be npo or other, got %q", s)
}

func (f fields) level() (int, error) {
	raw, ok := f[keyLevel]
	if !ok {
		return 0, nil
	}
	v, present, err := number(raw)
	if err != nil {
		return 0, engine.NewValidationError(keyLevel, "%v", err)
	}
	if !present {
		return 0, nil
	}
	if v < 1 || v != float64(int(v)) {
		return 0, engine.NewValidationError(keyLevel, "must be a positive integer, got %g", v)
	}
	return int(v), nil
}

// text reads an optional string field. Absent, null and blank all yield "".
func (f fields) text(key string) (string, error) {
	raw, ok := f[key]
	if !ok || isNull(raw) {
		return "", nil
	}
	s, err := str(raw)
	if err != nil {
		return "", engine.NewValidationError(key, "must be a string")
	}
	return s, nil
}

// number decodes a JSON number or numeric string. present is false for null
// and blank strings.
func number(raw json.RawMessage) (v float64, present bool, err error) {
	if isNull(raw) {
		return 0, false, nil
	}
	var lit string
	if err := json.Unmarshal(raw, &lit); err == nil {
		lit = strings.TrimSpace(lit)
		if lit == "" {
			return 0, false, nil
		}
	} else {
		var n json.Number
		if err := json.Unmarshal(raw, &n); err != nil {
			return 0, false, errors.New("must be a number")
		}
		lit = n.String()
	}

	d, err := decimal.NewFromString(lit)
	if err != nil {
		return 0, false, fmt.Errorf("must be a number, got %q", lit)
	}
	if d.IsNegative() {
		return 0, false, fmt.Errorf("must not be negative, got %s", d)
	}
	v = d.InexactFloat64()
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, false, fmt.Errorf("must be a finite number, got %s", lit)
	}
	return v, true, nil
}

func checkLimit(v, limit float64) error {
	if v > limit {
		return fmt.Errorf("must not exceed %g, got %g", limit, v)
	}
	return nil
}

func str(raw json.RawMessage) (string, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", err
	}
	return strings.TrimSpace(s), nil
}

func isNull(raw json.RawMessage) bool {
	return len(bytes.TrimSpace(raw)) == 0 || string(bytes.TrimSpace(raw)) == "null"
}
