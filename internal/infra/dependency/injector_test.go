package dependency

import (
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/glebarez/sqlite"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/finance-tracker/goal-agent/config"
	"github.com/finance-tracker/goal-agent/internal/domain/valueobject"
	"github.com/finance-tracker/goal-agent/internal/integration/persistence/model"
)

func TestAllocationConfig(t *testing.T) {
	t.Run("configured split is used", func(t *testing.T) {
		got := AllocationConfig(config.EngineConfig{
			LatePercent:     0.6,
			BalancedPercent: 0.3,
			AheadPercent:    0.1,
			FloorPercent:    0.02,
			FloorMinimum:    5,
		})

		if !got.LatePercent.Equal(decimal.NewFromFloat(0.6)) || !got.AheadPercent.Equal(decimal.NewFromFloat(0.1)) {
			t.Errorf("unexpected shares %+v", got)
		}
		if !got.FloorMinimum.Equal(decimal.NewFromInt(5)) {
			t.Errorf("expected floor minimum 5, got %s", got.FloorMinimum)
		}
	})

	t.Run("invalid split falls back to defaults", func(t *testing.T) {
		got := AllocationConfig(config.EngineConfig{LatePercent: 0.9, BalancedPercent: 0.3, AheadPercent: 0.2})

		defaults := valueobject.DefaultAllocationConfig()
		if !got.LatePercent.Equal(defaults.LatePercent) || !got.FloorMinimum.Equal(defaults.FloorMinimum) {
			t.Errorf("expected defaults, got %+v", got)
		}
	})

	t.Run("non-finite values fall back to defaults", func(t *testing.T) {
		for _, cfg := range []config.EngineConfig{
			{LatePercent: math.NaN(), BalancedPercent: 0.3, AheadPercent: 0.2, FloorPercent: 0.01, FloorMinimum: 1},
			{LatePercent: 0.5, BalancedPercent: 0.3, AheadPercent: 0.2, FloorPercent: 0.01, FloorMinimum: math.Inf(1)},
		} {
			got := AllocationConfig(cfg)

			defaults := valueobject.DefaultAllocationConfig()
			if !got.LatePercent.Equal(defaults.LatePercent) || !got.FloorMinimum.Equal(defaults.FloorMinimum) {
				t.Errorf("expected defaults for %+v, got %+v", cfg, got)
			}
		}
	})
}

func TestNewInjector_HealthReportsDependencies(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&model.EpisodicEventModel{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	defer client.Close()

	cfg := config.Load()
	cfg.Server.Environment = "test"

	tests := []struct {
		name          string
		redisClient   *redis.Client
		expectedCache string
	}{
		{name: "with redis", redisClient: client, expectedCache: "connected"},
		{name: "without redis", redisClient: nil, expectedCache: "disconnected"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			injector := NewInjector(cfg, db, tt.redisClient, nil)
			if injector.RetentionWorker == nil || injector.RateLimiter == nil {
				t.Fatal("expected worker and rate limiter to be wired")
			}

			engine := injector.Router.Setup(cfg.Server.Environment)
			w := httptest.NewRecorder()
			engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

			var body map[string]any
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if body["database"] != "connected" {
				t.Errorf("expected database connected, got %v", body["database"])
			}
			if body["cache"] != tt.expectedCache {
				t.Errorf("expected cache %s, got %v", tt.expectedCache, body["cache"])
			}
		})
	}
}
