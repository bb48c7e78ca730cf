package engine

import "fmt"

// ValidationError reports a request the caller can correct.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "invalid input: " + e.Msg
	}
	return fmt.Sprintf("invalid input: %s: %s", e.Field, e.Msg)
}

// NewValidationError builds a ValidationError for field.
func NewValidationError(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Msg: fmt.Sprintf(format, args...)}
}

// ConfigurationError reports a dose table without an entry for a reachable
// (algorithm, level) pair. It indicates a deployment defect, not bad input.
type ConfigurationError struct {
	Algorithm Algorithm
	Level     int
	Msg       string
}

func (e *ConfigurationError) Error() string {
	if e.Msg != "" {
		return "dose table: " + e.Msg
	}
	return fmt.Sprintf("dose table: no entry for %s level %d", e.Algorithm.Key(), e.Level)
}
