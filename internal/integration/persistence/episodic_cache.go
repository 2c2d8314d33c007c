package persistence

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/finance-tracker/goal-agent/internal/application/adapter"
	"github.com/finance-tracker/goal-agent/internal/domain/entity"
	"github.com/finance-tracker/goal-agent/internal/integration/persistence/model"
)

const episodicCacheKeyPrefix = "goal-agent:episodic:recent:"

// episodicCache implements the adapter.EpisodicCache interface on Redis.
type episodicCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewEpisodicCache creates a new Redis-backed episodic cache.
func NewEpisodicCache(client *redis.Client, ttl time.Duration) adapter.EpisodicCache {
	return &episodicCache{
		client: client,
		ttl:    ttl,
	}
}

// GetRecent returns the cached events for the user. ok is false on a miss.
func (c *episodicCache) GetRecent(ctx context.Context, userID string) ([]*entity.EpisodicEvent, bool, error) {
	b, err := c.client.Get(ctx, episodicCacheKey(userID)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var models []model.EpisodicEventModel
	if err := json.Unmarshal(b, &models); err != nil {
		return nil, false, fmt.Errorf("failed to decode cached episodic events: %w", err)
	}

	events := make([]*entity.EpisodicEvent, len(models))
	for i := range models {
		events[i] = models[i].ToEntity()
	}
	return events, true, nil
}

// SetRecent caches the user's events for the configured TTL.
func (c *episodicCache) SetRecent(ctx context.Context, userID string, events []*entity.EpisodicEvent) error {
	models := make([]*model.EpisodicEventModel, len(events))
	for i, e := range events {
		models[i] = model.EpisodicEventFromEntity(e)
	}

	b, err := json.Marshal(models)
	if err != nil {
		return fmt.Errorf("failed to encode episodic events: %w", err)
	}
	return c.client.Set(ctx, episodicCacheKey(userID), b, c.ttl).Err()
}

// Invalidate drops the user's cached events.
func (c *episodicCache) Invalidate(ctx context.Context, userID string) error {
	return c.client.Del(ctx, episodicCacheKey(userID)).Err()
}

func episodicCacheKey(userID string) string {
	return episodicCacheKeyPrefix + userID
}
