package goal

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/finance-tracker/goal-agent/internal/application/adapter"
	"github.com/finance-tracker/goal-agent/internal/domain/entity"
)

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time {
	return c.now
}

type fakeEpisodicRepository struct {
	mu        sync.Mutex
	events    []*entity.EpisodicEvent
	createErr error
	findErr   error
	findCalls int
}

func (r *fakeEpisodicRepository) Create(_ context.Context, event *entity.EpisodicEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	r.events = append(r.events, event)
	return nil
}

func (r *fakeEpisodicRepository) FindRecentByUser(_ context.Context, userID string, limit int) ([]*entity.EpisodicEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.findCalls++
	if r.findErr != nil {
		return nil, r.findErr
	}

	matched := make([]*entity.EpisodicEvent, 0)
	for _, e := range r.events {
		if e.UserID == userID {
			matched = append(matched, e)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	if len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}

func (r *fakeEpisodicRepository) DeleteOlderThan(_ context.Context, cutoff time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.events[:0]
	var deleted int64
	for _, e := range r.events {
		if e.CreatedAt.Before(cutoff) {
			deleted++
			continue
		}
		kept = append(kept, e)
	}
	r.events = kept
	return deleted, nil
}

func (r *fakeEpisodicRepository) recorded() []*entity.EpisodicEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*entity.EpisodicEvent(nil), r.events...)
}

type fakeEpisodicCache struct {
	entries     map[string][]*entity.EpisodicEvent
	invalidated []string
	getErr      error
}

func newFakeEpisodicCache() *fakeEpisodicCache {
	return &fakeEpisodicCache{entries: make(map[string][]*entity.EpisodicEvent)}
}

func (c *fakeEpisodicCache) GetRecent(_ context.Context, userID string) ([]*entity.EpisodicEvent, bool, error) {
	if c.getErr != nil {
		return nil, false, c.getErr
	}
	events, ok := c.entries[userID]
	return events, ok, nil
}

func (c *fakeEpisodicCache) SetRecent(_ context.Context, userID string, events []*entity.EpisodicEvent) error {
	c.entries[userID] = events
	return nil
}

func (c *fakeEpisodicCache) Invalidate(_ context.Context, userID string) error {
	delete(c.entries, userID)
	c.invalidated = append(c.invalidated, userID)
	return nil
}

type fakeExplainer struct {
	available bool
	text      string
	err       error
	requests  []*adapter.ExplanationRequest
}

func (e *fakeExplainer) Explain(ctx context.Context, request *adapter.ExplanationRequest) (string, error) {
	e.requests = append(e.requests, request)
	if _, ok := ctx.Deadline(); !ok {
		return "", errors.New("explain called without a deadline")
	}
	return e.text, e.err
}

func (e *fakeExplainer) IsAvailable() bool {
	return e.available
}
