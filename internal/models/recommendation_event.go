package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecommendationEvent is one audit trail entry.
type RecommendationEvent struct {
	EventID        string          `json:"event_id"`
	OccurredAt     time.Time       `json:"occurred_at"`
	RequestID      string          `json:"request_id,omitempty"`
	Algorithm      string          `json:"algorithm"` // IV | Basal
	Route          string          `json:"route"`     // iv | sc
	Level          int             `json:"level"`
	PreviousLevel  int             `json:"previous_level"`
	Transition     string          `json:"transition"`
	LevelSource    string          `json:"level_source"`
	Dose           decimal.Decimal `json:"dose"`
	Unit           string          `json:"unit"`
	NextCheckHours int             `json:"next_check_hours"`
	Input          any             `json:"input,omitempty"` // normalized request
}
