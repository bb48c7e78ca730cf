package repository

import (
	"context"
	"database/sql"
	"time"

	"insulin_advisor/internal/models"
)

type EventRepo interface {
	Append(ctx context.Context, e models.RecommendationEvent) error
	List(ctx context.Context, from, to time.Time, algorithm string) ([]models.RecommendationEvent, error)
	DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

type Repository struct {
	EventRepo EventRepo
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		EventRepo: NewEventSQLite(db),
	}
}
