// Package episodic provides background maintenance for episodic memory.
package episodic

import (
	"context"
	"log/slog"
	"time"

	"github.com/finance-tracker/goal-agent/internal/application/adapter"
)

// RetentionWorker deletes episodic events that fell out of the retention window.
type RetentionWorker struct {
	repo          adapter.EpisodicRepository
	clock         adapter.Clock
	retention     time.Duration
	sweepInterval time.Duration
}

// WorkerConfig holds configuration for the retention worker.
type WorkerConfig struct {
	Retention     time.Duration
	SweepInterval time.Duration
}

// DefaultWorkerConfig returns the default worker configuration.
func DefaultWorkerConfig() WorkerConfig {
	return WorkerConfig{
		Retention:     90 * 24 * time.Hour,
		SweepInterval: time.Hour,
	}
}

// NewRetentionWorker creates a new retention worker. Non-positive values fall back to the defaults.
func NewRetentionWorker(repo adapter.EpisodicRepository, clock adapter.Clock, config WorkerConfig) *RetentionWorker {
	defaults := DefaultWorkerConfig()
	if config.Retention <= 0 {
		config.Retention = defaults.Retention
	}
	if config.SweepInterval <= 0 {
		config.SweepInterval = defaults.SweepInterval
	}

	return &RetentionWorker{
		repo:          repo,
		clock:         clock,
		retention:     config.Retention,
		sweepInterval: config.SweepInterval,
	}
}

// Start begins the worker loop. It blocks until the context is cancelled.
func (w *RetentionWorker) Start(ctx context.Context) {
	slog.Info("Episodic retention worker started",
		"retention", w.retention,
		"sweep_interval", w.sweepInterval,
	)

	ticker := time.NewTicker(w.sweepInterval)
	defer ticker.Stop()

	w.sweep(ctx)

	for {
		select {
		case <-ctx.Done():
			slog.Info("Episodic retention worker shutting down")
			return
		case <-ticker.C:
			w.sweep(ctx)
		}
	}
}

// SweepNow runs one sweep and returns how many events were removed.
func (w *RetentionWorker) SweepNow(ctx context.Context) int64 {
	return w.sweep(ctx)
}

func (w *RetentionWorker) sweep(ctx context.Context) int64 {
	cutoff := w.clock.Now().UTC().Add(-w.retention)

	deleted, err := w.repo.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		slog.Error("Failed to delete expired episodic events", "cutoff", cutoff, "error", err)
		return 0
	}

	if deleted > 0 {
		slog.Info("Deleted expired episodic events", "count", deleted, "cutoff", cutoff)
	}
	return deleted
}
