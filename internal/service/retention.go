package service

import (
	"context"
	"time"

	"insulin_advisor/internal/logger"
	"insulin_advisor/internal/repository"
)

// RetentionService deletes audit rows older than the retention window.
type RetentionService struct {
	eventRepo repository.EventRepo
	retention time.Duration
	log       *logger.Logger
	now       func() time.Time
}

func NewRetentionService(eventRepo repository.EventRepo, retention time.Duration, log *logger.Logger) *RetentionService {
	return &RetentionService{
		eventRepo: eventRepo,
		retention: retention,
		log:       log,
		now:       time.Now,
	}
}

func (s *RetentionService) enabled() bool {
	return s.eventRepo != nil && s.retention > 0
}

// Run prunes once immediately, then at every tick until ctx is canceled.
// It returns at once when retention is disabled.
func (s *RetentionService) Run(ctx context.Context, tick time.Duration) {
	if !s.enabled() || tick <= 0 {
		return
	}
	s.pruneAndLog(ctx)

	t := time.NewTicker(tick)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			s.pruneAndLog(ctx)
		}
	}
}

// Prune deletes rows older than the retention window.
func (s *RetentionService) Prune(ctx context.Context) (int64, error) {
	if !s.enabled() {
		return 0, nil
	}
	cutoff := s.now().UTC().Add(-s.retention)
	return s.eventRepo.DeleteBefore(ctx, cutoff)
}

func (s *RetentionService) pruneAndLog(ctx context.Context) {
	n, err := s.Prune(ctx)
	if err != nil {
		if ctx.Err() == nil {
			s.log.Warnw("audit_prune_failed", "err", err)
		}
		return
	}
	if n > 0 {
		s.log.Infow("audit_pruned", "deleted", n, "retention", s.retention.String())
	}
}
