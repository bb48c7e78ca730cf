package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"insulin_advisor/internal/engine"
	"insulin_advisor/internal/intake"
	"insulin_advisor/internal/logger"
	"insulin_advisor/internal/models"
	"insulin_advisor/internal/repository"
)

type AdvisorService struct {
	engine    *engine.Engine
	eventRepo repository.EventRepo
	log       *logger.Logger
	now       func() time.Time
}

func NewAdvisorService(eng *engine.Engine, eventRepo repository.EventRepo, log *logger.Logger) *AdvisorService {
	return &AdvisorService{engine: eng, eventRepo: eventRepo, log: log, now: time.Now}
}

// Recommend normalizes payload, runs the engine and records the outcome.
// Errors are *engine.ValidationError or *engine.ConfigurationError; audit
// failures are logged and never returned.
func (s *AdvisorService) Recommend(ctx context.Context, payload []byte, requestID string) (models.Recommendation, error) {
	if err := ctx.Err(); err != nil {
		return models.Recommendation{}, err
	}

	in, err := intake.Parse(payload)
	if err != nil {
		return models.Recommendation{}, err
	}

	res, err := s.engine.Recommend(in)
	if err != nil {
		return models.Recommendation{}, err
	}

	s.audit(ctx, in, res, requestID)
	return toRecommendation(res, requestID), nil
}

func (s *AdvisorService) audit(ctx context.Context, in engine.Input, res engine.Result, requestID string) {
	if s.eventRepo == nil {
		return
	}
	ev := models.RecommendationEvent{
		EventID:        uuid.NewString(),
		OccurredAt:     s.now().UTC(),
		RequestID:      requestID,
		Algorithm:      res.Algorithm.Key(),
		Route:          string(res.Route),
		Level:          res.Level,
		PreviousLevel:  res.PreviousLevel,
		Transition:     string(res.Transition),
		LevelSource:    string(res.LevelSource),
		Dose:           res.Dose,
		Unit:           res.Unit,
		NextCheckHours: res.NextCheckHours,
		Input:          newAuditInput(in),
	}
	if err := s.eventRepo.Append(ctx, ev); err != nil {
		s.log.Warnw("audit_append_failed", "err", err, "request_id", requestID)
	}
}

func toRecommendation(res engine.Result, requestID string) models.Recommendation {
	return models.Recommendation{
		Dose:           res.Dose.InexactFloat64(),
		Unit:           res.Unit,
		Route:          res.Route.Label(),
		NextCheckHours: res.NextCheckHours,
		AlgorithmUsed:  res.Algorithm.String(),
		Level:          res.Level,
		Action:         res.Action,
		PreviousLevel:  res.PreviousLevel,
		Transition:     string(res.Transition),
		LevelSource:    string(res.LevelSource),
		RequestID:      requestID,
	}
}

// auditInput is the normalized request as stored with each event. Windows keep
// every slot so a zero sentinel stays at its position.
type auditInput struct {
	GRBS          engine.ReadingWindow `json:"GRBS"`
	Insulin       engine.DoseHistory   `json:"Insulin"`
	CKD           bool                 `json:"CKD"`
	DualInotropes bool                 `json:"dual_inotropes"`
	Route         string               `json:"route"`
	Diet          string               `json:"diet_order,omitempty"`
	CurrentLevel  int                  `json:"current_level,omitempty"`
}

func newAuditInput(in engine.Input) auditInput {
	route := in.Route
	if route == "" {
		route = engine.RouteSC
	}
	return auditInput{
		GRBS:          in.Readings,
		Insulin:       in.Doses,
		CKD:           in.Flags.CKD,
		DualInotropes: in.Flags.DualInotropes,
		Route:         string(route),
		Diet:          string(in.Diet),
		CurrentLevel:  in.CurrentLevel,
	}
}
