package goal

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/finance-tracker/goal-agent/internal/application/adapter"
	"github.com/finance-tracker/goal-agent/internal/domain/entity"
)

// DefaultSampleSize is the number of recent events shared with callers.
const DefaultSampleSize = 5

// EpisodicSample is a compact view of a past event.
type EpisodicSample struct {
	ID         string             `json:"id"`
	EventType  string             `json:"event_type"`
	CreatedAt  string             `json:"created_at"`
	Parameters EpisodicParameters `json:"parameters"`
}

// EpisodicParameters holds the request and response of a past event.
type EpisodicParameters struct {
	PayloadIn  json.RawMessage `json:"payload_in"`
	PayloadOut json.RawMessage `json:"payload_out"`
}

// EpisodicRecorder reads and writes a user's episodic memory.
// Every operation is best-effort: failures are logged and never reach the caller.
type EpisodicRecorder struct {
	repo       adapter.EpisodicRepository
	cache      adapter.EpisodicCache
	clock      adapter.Clock
	sampleSize int
}

// NewEpisodicRecorder creates a new EpisodicRecorder instance. cache may be nil.
func NewEpisodicRecorder(repo adapter.EpisodicRepository, cache adapter.EpisodicCache, clock adapter.Clock, sampleSize int) *EpisodicRecorder {
	if sampleSize <= 0 {
		sampleSize = DefaultSampleSize
	}
	return &EpisodicRecorder{
		repo:       repo,
		cache:      cache,
		clock:      clock,
		sampleSize: sampleSize,
	}
}

// Record stores one request/response pair for the user.
func (r *EpisodicRecorder) Record(ctx context.Context, userID string, eventType entity.EventType, message string, payloadIn map[string]any, payloadOut any) {
	if r == nil || r.repo == nil {
		return
	}

	in, err := json.Marshal(payloadIn)
	if err != nil {
		slog.Error("Failed to encode episodic payload_in", "user_id", userID, "event_type", eventType, "error", err)
		return
	}
	out, err := json.Marshal(payloadOut)
	if err != nil {
		slog.Error("Failed to encode episodic payload_out", "user_id", userID, "event_type", eventType, "error", err)
		return
	}

	event := entity.NewEpisodicEvent(userID, goalNameFor(payloadIn), eventType, message, in, out)
	if r.clock != nil {
		event.CreatedAt = r.clock.Now().UTC()
	}

	if err := r.repo.Create(ctx, event); err != nil {
		slog.Error("Unable to record episodic event", "user_id", userID, "event_type", eventType, "error", err)
		return
	}

	if r.cache != nil {
		if err := r.cache.Invalidate(ctx, userID); err != nil {
			slog.Warn("Failed to invalidate episodic cache", "user_id", userID, "error", err)
		}
	}

	slog.Info("Recorded episodic event", "event_id", event.ID, "user_id", userID, "event_type", eventType)
}

// Recent returns the user's latest events, newest first.
func (r *EpisodicRecorder) Recent(ctx context.Context, userID string) []*entity.EpisodicEvent {
	if r == nil || r.repo == nil {
		return nil
	}

	if r.cache != nil {
		events, ok, err := r.cache.GetRecent(ctx, userID)
		if err != nil {
			slog.Warn("Failed to read episodic cache", "user_id", userID, "error", err)
		} else if ok {
			return events
		}
	}

	events, err := r.repo.FindRecentByUser(ctx, userID, r.sampleSize)
	if err != nil {
		slog.Error("Failed to query episodic memory", "user_id", userID, "error", err)
		return nil
	}

	if r.cache != nil {
		if err := r.cache.SetRecent(ctx, userID, events); err != nil {
			slog.Warn("Failed to fill episodic cache", "user_id", userID, "error", err)
		}
	}

	return events
}

// RecentSamples returns the user's latest events in sample form.
func (r *EpisodicRecorder) RecentSamples(ctx context.Context, userID string) []EpisodicSample {
	return ToEpisodicSamples(r.Recent(ctx, userID))
}

// ToEpisodicSamples converts events to samples. The result is never nil.
func ToEpisodicSamples(events []*entity.EpisodicEvent) []EpisodicSample {
	samples := make([]EpisodicSample, 0, len(events))
	for _, e := range events {
		samples = append(samples, EpisodicSample{
			ID:        e.ID.String(),
			EventType: string(e.EventType),
			CreatedAt: e.CreatedAt.UTC().Format(time.RFC3339Nano),
			Parameters: EpisodicParameters{
				PayloadIn:  rawOrNull(e.PayloadIn),
				PayloadOut: rawOrNull(e.PayloadOut),
			},
		})
	}
	return samples
}

func rawOrNull(raw json.RawMessage) json.RawMessage {
	if len(raw) == 0 {
		return json.RawMessage("null")
	}
	return raw
}

// goalNameFor prefers new_goal_proposal.name, then the action name.
func goalNameFor(payload map[string]any) string {
	if name, ok := lookup(payload, "new_goal_proposal", "name").(string); ok && name != "" {
		return name
	}
	if action, ok := payload["action"].(string); ok && action != "" {
		return action
	}
	return ""
}
