package persistence

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/finance-tracker/goal-agent/internal/domain/entity"
	"github.com/finance-tracker/goal-agent/internal/integration/persistence/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.AutoMigrate(&model.EpisodicEventModel{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func newEvent(userID string, createdAt time.Time) *entity.EpisodicEvent {
	e := entity.NewEpisodicEvent(userID, "ADJUST_GOALS", entity.EventTypeAdjustGoals, "Goal adjustment completed",
		json.RawMessage(`{"user_id":"`+userID+`"}`), json.RawMessage(`{"surplus_used":100}`))
	e.CreatedAt = createdAt
	return e
}

func TestEpisodicRepository_CreateAndFindRecent(t *testing.T) {
	repo := NewEpisodicRepository(newTestDB(t))
	ctx := context.Background()
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 4; i++ {
		if err := repo.Create(ctx, newEvent("u1", base.Add(time.Duration(i)*time.Hour))); err != nil {
			t.Fatalf("create: %v", err)
		}
	}
	if err := repo.Create(ctx, newEvent("u2", base.Add(10*time.Hour))); err != nil {
		t.Fatalf("create: %v", err)
	}

	events, err := repo.FindRecentByUser(ctx, "u1", 3)
	if err != nil {
		t.Fatalf("find: %v", err)
	}

	if len(events) != 3 {
		t.Fatalf("expected 3 events, got %d", len(events))
	}
	for i, expected := range []time.Time{base.Add(3 * time.Hour), base.Add(2 * time.Hour), base.Add(time.Hour)} {
		if !events[i].CreatedAt.Equal(expected) {
			t.Errorf("position %d: expected %v, got %v", i, expected, events[i].CreatedAt)
		}
		if events[i].UserID != "u1" {
			t.Errorf("position %d: expected user u1, got %s", i, events[i].UserID)
		}
	}
	if string(events[0].PayloadOut) != `{"surplus_used":100}` {
		t.Errorf("unexpected payload_out %s", events[0].PayloadOut)
	}
	if events[0].EventType != entity.EventTypeAdjustGoals || events[0].GoalName != "ADJUST_GOALS" {
		t.Errorf("unexpected event %+v", events[0])
	}
}

func TestEpisodicRepository_FindRecentByUser_Unknown(t *testing.T) {
	repo := NewEpisodicRepository(newTestDB(t))

	events, err := repo.FindRecentByUser(context.Background(), "nobody", 5)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if len(events) != 0 {
		t.Errorf("expected no events, got %d", len(events))
	}
}

func TestEpisodicRepository_DeleteOlderThan(t *testing.T) {
	repo := NewEpisodicRepository(newTestDB(t))
	ctx := context.Background()
	cutoff := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	for _, createdAt := range []time.Time{
		cutoff.Add(-48 * time.Hour),
		cutoff.Add(-time.Minute),
		cutoff.Add(time.Minute),
	} {
		if err := repo.Create(ctx, newEvent("u1", createdAt)); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	deleted, err := repo.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if deleted != 2 {
		t.Errorf("expected 2 deleted events, got %d", deleted)
	}

	events, err := repo.FindRecentByUser(ctx, "u1", 10)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if len(events) != 1 || !events[0].CreatedAt.Equal(cutoff.Add(time.Minute)) {
		t.Errorf("expected only the newest event to survive, got %+v", events)
	}
}
