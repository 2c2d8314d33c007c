// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/finance-tracker/goal-agent/internal/domain/entity"
)

// EpisodicRepository defines the interface for episodic memory persistence operations.
type EpisodicRepository interface {
	// Create stores a new episodic event.
	Create(ctx context.Context, event *entity.EpisodicEvent) error

	// FindRecentByUser retrieves the most recent events for a user, newest first.
	FindRecentByUser(ctx context.Context, userID string, limit int) ([]*entity.EpisodicEvent, error)

	// DeleteOlderThan removes events created before the cutoff and returns how many were removed.
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// EpisodicCache keeps the latest episodic events of a user close at hand.
type EpisodicCache interface {
	// GetRecent returns the cached events for a user. The boolean is false on a cache miss.
	GetRecent(ctx context.Context, userID string) ([]*entity.EpisodicEvent, bool, error)

	// SetRecent replaces the cached events for a user.
	SetRecent(ctx context.Context, userID string, events []*entity.EpisodicEvent) error

	// Invalidate drops the cached events for a user.
	Invalidate(ctx context.Context, userID string) error
}
