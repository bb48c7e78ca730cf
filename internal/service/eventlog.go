package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"insulin_advisor/internal/engine"
	"insulin_advisor/internal/models"
	"insulin_advisor/internal/repository"
)

type EventLogService struct {
	eventRepo repository.EventRepo
}

func NewEventLogService(eventRepo repository.EventRepo) *EventLogService {
	return &EventLogService{eventRepo: eventRepo}
}

var (
	ErrInvalidTimeRange = errors.New("invalid time range: From must be <= To")
	ErrInvalidAlgorithm = errors.New("invalid algorithm: must be IV or Basal")
	ErrAuditDisabled    = errors.New("audit trail is disabled")
)

// normalizeToUTC returns t in UTC, preserving zero time values.
func normalizeToUTC(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.UTC()
}

// normalizeAlgorithm maps a filter value to the stored algorithm key.
func normalizeAlgorithm(s string) (string, error) {
	if strings.TrimSpace(s) == "" {
		return "", nil
	}
	alg, ok := engine.ParseAlgorithm(s)
	if !ok {
		return "", ErrInvalidAlgorithm
	}
	return alg.Key(), nil
}

// normalizeAndValidateFilter prepares query parameters and validates the time range.
func normalizeAndValidateFilter(f LogFilter) (time.Time, time.Time, string, error) {
	from := normalizeToUTC(f.From)
	to := normalizeToUTC(f.To)

	if !from.IsZero() && !to.IsZero() && from.After(to) {
		return time.Time{}, time.Time{}, "", ErrInvalidTimeRange
	}

	alg, err := normalizeAlgorithm(f.Algorithm)
	if err != nil {
		return time.Time{}, time.Time{}, "", err
	}
	return from, to, alg, nil
}

func (s *EventLogService) List(ctx context.Context, f LogFilter) ([]models.RecommendationEvent, error) {
	if s.eventRepo == nil {
		return nil, ErrAuditDisabled
	}
	from, to, alg, err := normalizeAndValidateFilter(f)
	if err != nil {
		return nil, err
	}
	return s.eventRepo.List(ctx, from, to, alg)
}
