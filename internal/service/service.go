package service

import (
	"context"
	"time"

	"insulin_advisor/internal/engine"
	"insulin_advisor/internal/logger"
	"insulin_advisor/internal/models"
	"insulin_advisor/internal/repository"
)

// Advisor turns a raw payload into a dosing recommendation.
type Advisor interface {
	Recommend(ctx context.Context, payload []byte, requestID string) (models.Recommendation, error)
}

// DoseTable exposes the loaded dose table read-only.
type DoseTable interface {
	Rows() []models.DoseTableRow
	Bounds() engine.Bounds
}

// EventLog exposes the recommendation audit trail with filtering access.
type EventLog interface {
	List(ctx context.Context, f LogFilter) ([]models.RecommendationEvent, error)
}

// Retention prunes old audit rows in the background.
// Stop via context cancellation in main() for graceful shutdown.
type Retention interface {
	Run(ctx context.Context, tick time.Duration)
	Prune(ctx context.Context) (int64, error)
}

type Service struct {
	Advisor
	DoseTable
	EventLog
	Retention
}

// NewService wires the engine and repository layer into concrete services.
// A nil repos disables the audit trail.
func NewService(repos *repository.Repository, eng *engine.Engine, log *logger.Logger, opts Options) *Service {
	if log == nil {
		log = logger.Nop()
	}
	var events repository.EventRepo
	if repos != nil {
		events = repos.EventRepo
	}
	return &Service{
		Advisor:   NewAdvisorService(eng, events, log),
		DoseTable: NewDoseTableService(eng),
		EventLog:  NewEventLogService(events),
		Retention: NewRetentionService(events, opts.Retention, log),
	}
}
