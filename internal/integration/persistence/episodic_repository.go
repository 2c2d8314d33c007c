// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/finance-tracker/goal-agent/internal/application/adapter"
	"github.com/finance-tracker/goal-agent/internal/domain/entity"
	"github.com/finance-tracker/goal-agent/internal/integration/persistence/model"
)

// episodicRepository implements the adapter.EpisodicRepository interface.
type episodicRepository struct {
	db *gorm.DB
}

// NewEpisodicRepository creates a new episodic repository instance.
func NewEpisodicRepository(db *gorm.DB) adapter.EpisodicRepository {
	return &episodicRepository{
		db: db,
	}
}

// Create stores a new episodic event.
func (r *episodicRepository) Create(ctx context.Context, event *entity.EpisodicEvent) error {
	eventModel := model.EpisodicEventFromEntity(event)
	result := r.db.WithContext(ctx).Create(eventModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// FindRecentByUser retrieves the user's latest events, newest first.
func (r *episodicRepository) FindRecentByUser(ctx context.Context, userID string, limit int) ([]*entity.EpisodicEvent, error) {
	var models []model.EpisodicEventModel
	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&models)

	if result.Error != nil {
		return nil, result.Error
	}

	events := make([]*entity.EpisodicEvent, len(models))
	for i := range models {
		events[i] = models[i].ToEntity()
	}
	return events, nil
}

// DeleteOlderThan removes every event created before the cutoff and returns how many were removed.
func (r *episodicRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("created_at < ?", cutoff.UTC()).
		Delete(&model.EpisodicEventModel{})

	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
