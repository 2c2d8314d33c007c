// Package dependency provides dependency injection for the application.
package dependency

import (
	"context"
	"log/slog"
	"math"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/finance-tracker/goal-agent/config"
	"github.com/finance-tracker/goal-agent/internal/application/adapter"
	"github.com/finance-tracker/goal-agent/internal/application/usecase/goal"
	"github.com/finance-tracker/goal-agent/internal/domain/valueobject"
	"github.com/finance-tracker/goal-agent/internal/infra/server/router"
	"github.com/finance-tracker/goal-agent/internal/integration/adapters"
	"github.com/finance-tracker/goal-agent/internal/integration/entrypoint/controller"
	"github.com/finance-tracker/goal-agent/internal/integration/entrypoint/middleware"
	"github.com/finance-tracker/goal-agent/internal/integration/episodic"
	"github.com/finance-tracker/goal-agent/internal/integration/persistence"
)

// Injector holds all application dependencies.
type Injector struct {
	Config          *config.Config
	DB              *gorm.DB
	Router          *router.Router
	RateLimiter     *middleware.RateLimiter
	RetentionWorker *episodic.RetentionWorker
}

// NewInjector creates a new dependency injector with all dependencies wired.
// redisClient may be nil, in which case episodic samples are always read from the database.
// clock may be nil, in which case the system clock is used.
func NewInjector(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, clock adapter.Clock) *Injector {
	if clock == nil {
		clock = adapters.SystemClock{}
	}

	// Create repositories
	episodicRepo := persistence.NewEpisodicRepository(db)

	var episodicCache adapter.EpisodicCache
	if redisClient != nil {
		episodicCache = persistence.NewEpisodicCache(redisClient, cfg.Episodic.CacheTTL)
	}

	// Create adapters/services
	tokenService := adapters.NewTokenService(cfg.JWT.Secret)
	explanationService := adapters.NewGeminiService(cfg.AI.GeminiAPIKey, cfg.AI.Model)
	if !explanationService.IsAvailable() {
		slog.Info("Gemini API key not configured, allocations will not be explained")
	}

	recorder := goal.NewEpisodicRecorder(episodicRepo, episodicCache, clock, cfg.Episodic.SampleSize)

	// Create goal agent use cases
	adjustGoalsUseCase := goal.NewAdjustGoalsUseCase(recorder, explanationService, AllocationConfig(cfg.Engine), clock, cfg.AI.Timeout)
	trackGoalUseCase := goal.NewTrackGoalUseCase(recorder, clock)
	buildGoalContextUseCase := goal.NewBuildGoalContextUseCase(recorder, clock)
	handleActionUseCase := goal.NewHandleActionUseCase(adjustGoalsUseCase, trackGoalUseCase, buildGoalContextUseCase)
	listEpisodesUseCase := goal.NewListEpisodesUseCase(episodicRepo)

	// Create controllers
	healthController := controller.NewHealthController(
		func() bool {
			sqlDB, err := db.DB()
			if err != nil {
				return false
			}
			return sqlDB.Ping() == nil
		},
		func() bool {
			if redisClient == nil {
				return false
			}
			ctx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			return redisClient.Ping(ctx).Err() == nil
		},
	)

	goalAgentController := controller.NewGoalAgentController(handleActionUseCase, listEpisodesUseCase)

	// Create middleware
	// Use higher rate limits for E2E/test environments to prevent flaky tests
	var actionRateLimiter *middleware.RateLimiter
	if cfg.Server.Environment == "e2e" || cfg.Server.Environment == "test" {
		actionRateLimiter = middleware.NewRateLimiterWithConfig(1000, 1*time.Minute)
	} else {
		actionRateLimiter = middleware.NewRateLimiterWithConfig(cfg.RateLimit.MaxRequests, cfg.RateLimit.Window)
	}
	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	retentionWorker := episodic.NewRetentionWorker(episodicRepo, clock, episodic.WorkerConfig{
		Retention:     cfg.Episodic.Retention,
		SweepInterval: cfg.Episodic.SweepInterval,
	})

	// Create router
	r := router.NewRouter(healthController, goalAgentController, actionRateLimiter, authMiddleware)

	return &Injector{
		Config:          cfg,
		DB:              db,
		Router:          r,
		RateLimiter:     actionRateLimiter,
		RetentionWorker: retentionWorker,
	}
}

// AllocationConfig converts the configured surplus split into the allocator's config.
// An invalid or non-finite split is logged and replaced by the defaults.
func AllocationConfig(cfg config.EngineConfig) valueobject.AllocationConfig {
	for _, v := range []float64{cfg.LatePercent, cfg.BalancedPercent, cfg.AheadPercent, cfg.FloorPercent, cfg.FloorMinimum} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			slog.Error("Non-finite allocation config, using defaults", "config", cfg)
			return valueobject.DefaultAllocationConfig()
		}
	}

	allocation := valueobject.AllocationConfig{
		LatePercent:     decimal.NewFromFloat(cfg.LatePercent),
		BalancedPercent: decimal.NewFromFloat(cfg.BalancedPercent),
		AheadPercent:    decimal.NewFromFloat(cfg.AheadPercent),
		FloorPercent:    decimal.NewFromFloat(cfg.FloorPercent),
		FloorMinimum:    decimal.NewFromFloat(cfg.FloorMinimum),
	}

	if err := allocation.Validate(); err != nil {
		slog.Error("Invalid allocation config, using defaults", "config", cfg, "error", err)
		return valueobject.DefaultAllocationConfig()
	}
	return allocation
}
