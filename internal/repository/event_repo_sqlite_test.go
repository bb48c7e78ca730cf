package repository_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"insulin_advisor/internal/models"
	"insulin_advisor/internal/repository"
	"insulin_advisor/internal/repository/db"
)

func TestEventSQLite_RoundTrip(t *testing.T) {
	conn, err := db.InitDB(filepath.Join(t.TempDir(), "audit.db"))
	if err != nil {
		t.Fatalf("InitDB: %v", err)
	}
	defer conn.Close()

	repo := repository.NewRepository(conn).EventRepo
	ctx := context.Background()
	base := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)

	events := []models.RecommendationEvent{
		{OccurredAt: base, Algorithm: "IV", Route: "iv", Level: 3, PreviousLevel: 2, Transition: "up", LevelSource: "supplied", Dose: decimal.NewFromInt(2), Unit: "IU/hr", NextCheckHours: 1},
		{OccurredAt: base.Add(time.Hour), Algorithm: "Basal", Route: "sc", Level: 2, PreviousLevel: 2, Transition: "maintain", LevelSource: "default", Dose: decimal.RequireFromString("2.5"), Unit: "IU", NextCheckHours: 6, Input: map[string]any{"diet": "other"}},
		{OccurredAt: base.Add(2 * time.Hour), Algorithm: "Basal", Route: "sc", Level: 3, PreviousLevel: 2, Transition: "up", LevelSource: "inferred", Dose: decimal.NewFromInt(4), Unit: "IU", NextCheckHours: 4},
	}
	for _, e := range events {
		if err := repo.Append(ctx, e); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	all, err := repo.List(ctx, time.Time{}, time.Time{}, "")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("want 3 events, got %d", len(all))
	}
	if all[0].EventID == "" || !all[0].OccurredAt.Equal(base) {
		t.Fatalf("unexpected first event: %+v", all[0])
	}
	if !all[1].Dose.Equal(decimal.RequireFromString("2.5")) {
		t.Fatalf("dose lost precision: %s", all[1].Dose)
	}

	basal, err := repo.List(ctx, base.Add(30*time.Minute), time.Time{}, "Basal")
	if err != nil {
		t.Fatalf("List filtered: %v", err)
	}
	if len(basal) != 2 {
		t.Fatalf("want 2 basal events, got %d", len(basal))
	}

	n, err := repo.DeleteBefore(ctx, base.Add(90*time.Minute))
	if err != nil {
		t.Fatalf("DeleteBefore: %v", err)
	}
	if n != 2 {
		t.Fatalf("want 2 deleted, got %d", n)
	}
	left, _ := repo.List(ctx, time.Time{}, time.Time{}, "")
	if len(left) != 1 || left[0].Level != 3 || left[0].Algorithm != "Basal" {
		t.Fatalf("unexpected remaining events: %+v", left)
	}
}
