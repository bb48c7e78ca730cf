package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"insulin_advisor/internal/models"
)

const sqliteTimeFormat = "2006-01-02 15:04:05"

type EventSQLite struct {
	db *sql.DB
}

func NewEventSQLite(db *sql.DB) *EventSQLite { return &EventSQLite{db: db} }

// Append inserts a recommendation event. If EventID or OccurredAt are empty, they're set.
func (r *EventSQLite) Append(ctx context.Context, e models.RecommendationEvent) error {
	if e.EventID == "" {
		e.EventID = uuid.NewString()
	}
	if e.OccurredAt.IsZero() {
		e.OccurredAt = time.Now().UTC()
	} else {
		e.OccurredAt = e.OccurredAt.UTC()
	}

	var inputPtr *string
	if e.Input != nil {
		b, err := json.Marshal(e.Input)
		if err != nil {
			return fmt.Errorf("marshal recommendation input: %w", err)
		}
		s := string(b)
		inputPtr = &s
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO recommendation_events (id, occurred_at, request_id, algorithm, route, level, previous_level, transition, level_source, dose, unit, next_check_hours, input)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		e.EventID,
		e.OccurredAt.Format(sqliteTimeFormat),
		e.RequestID,
		e.Algorithm,
		e.Route,
		e.Level,
		e.PreviousLevel,
		e.Transition,
		e.LevelSource,
		e.Dose.String(),
		e.Unit,
		e.NextCheckHours,
		inputPtr,
	)
	if err != nil {
		return fmt.Errorf("insert recommendation event: %w", err)
	}
	return nil
}

// List returns events filtered by [from, to] (inclusive) and/or algorithm key, ordered ASC.
func (r *EventSQLite) List(ctx context.Context, from, to time.Time, algorithm string) ([]models.RecommendationEvent, error) {
	var (
		conds []string
		args  []any
	)

	if !from.IsZero() {
		conds = append(conds, "occurred_at >= ?")
		args = append(args, from.UTC().Format(sqliteTimeFormat))
	}
	if !to.IsZero() {
		conds = append(conds, "occurred_at <= ?")
		args = append(args, to.UTC().Format(sqliteTimeFormat))
	}
	if algorithm = strings.TrimSpace(algorithm); algorithm != "" {
		conds = append(conds, "algorithm = ?")
		args = append(args, algorithm)
	}

	q := `SELECT id, occurred_at, request_id, algorithm, route, level, previous_level, transition, level_source, dose, unit, next_check_hours, input FROM recommendation_events`
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	q += " ORDER BY occurred_at ASC"

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query recommendation events: %w", err)
	}
	defer rows.Close()

	out := make([]models.RecommendationEvent, 0, 64)
	for rows.Next() {
		var (
			ev       models.RecommendationEvent
			reqID    sql.NullString
			inputStr sql.NullString
		)
		if err := rows.Scan(
			&ev.EventID, &ev.OccurredAt, &reqID, &ev.Algorithm, &ev.Route,
			&ev.Level, &ev.PreviousLevel, &ev.Transition, &ev.LevelSource,
			&ev.Dose, &ev.Unit, &ev.NextCheckHours, &inputStr,
		); err != nil {
			return nil, fmt.Errorf("scan recommendation event: %w", err)
		}
		ev.OccurredAt = ev.OccurredAt.UTC()
		ev.RequestID = reqID.String

		if inputStr.Valid && inputStr.String != "" {
			var v any
			if err := json.Unmarshal([]byte(inputStr.String), &v); err == nil {
				ev.Input = v
			} else {
				ev.Input = inputStr.String // keep raw if malformed
			}
		}
		out = append(out, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteBefore removes events that occurred before cutoff and reports how many went.
func (r *EventSQLite) DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM recommendation_events WHERE occurred_at < ?`,
		cutoff.UTC().Format(sqliteTimeFormat),
	)
	if err != nil {
		return 0, fmt.Errorf("delete recommendation events: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return n, nil
}
