package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	if cfg.Server.Port != 8080 {
		t.Errorf("expected port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Engine.LatePercent != 0.5 || cfg.Engine.BalancedPercent != 0.3 || cfg.Engine.AheadPercent != 0.2 {
		t.Errorf("unexpected engine shares %+v", cfg.Engine)
	}
	if cfg.Engine.FloorPercent != 0.01 || cfg.Engine.FloorMinimum != 1 {
		t.Errorf("unexpected floor %+v", cfg.Engine)
	}
	if cfg.Episodic.SampleSize != 5 {
		t.Errorf("expected sample size 5, got %d", cfg.Episodic.SampleSize)
	}
	if cfg.AI.Model != "gemini-2.5-flash-lite" {
		t.Errorf("unexpected model %q", cfg.AI.Model)
	}
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("ENV", "test")
	t.Setenv("ALLOCATION_LATE_PERCENT", "0.6")
	t.Setenv("EPISODIC_SAMPLE_SIZE", "3")
	t.Setenv("EPISODIC_RETENTION", "48h")
	t.Setenv("REDIS_ENABLED", "false")
	t.Setenv("RATE_LIMIT_MAX_REQUESTS", "0")

	cfg := Load()

	if cfg.Server.Port != 9090 {
		t.Errorf("expected port 9090, got %d", cfg.Server.Port)
	}
	if cfg.Server.Environment != "test" {
		t.Errorf("expected environment test, got %q", cfg.Server.Environment)
	}
	if cfg.Engine.LatePercent != 0.6 {
		t.Errorf("expected late share 0.6, got %v", cfg.Engine.LatePercent)
	}
	if cfg.Episodic.SampleSize != 3 {
		t.Errorf("expected sample size 3, got %d", cfg.Episodic.SampleSize)
	}
	if cfg.Episodic.Retention != 48*time.Hour {
		t.Errorf("expected retention 48h, got %v", cfg.Episodic.Retention)
	}
	if cfg.Redis.Enabled {
		t.Error("expected redis to be disabled")
	}
	if cfg.RateLimit.MaxRequests != 0 {
		t.Errorf("expected rate limit 0, got %d", cfg.RateLimit.MaxRequests)
	}
}

func TestEnvHelpers_FallBackOnInvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
		check func() bool
	}{
		{name: "int", key: "TEST_INT", value: "abc", check: func() bool { return getEnvAsInt("TEST_INT", 7) == 7 }},
		{name: "float", key: "TEST_FLOAT", value: "1,5", check: func() bool { return getEnvAsFloat("TEST_FLOAT", 0.25) == 0.25 }},
		{name: "float NaN", key: "TEST_FLOAT", value: "NaN", check: func() bool { return getEnvAsFloat("TEST_FLOAT", 0.25) == 0.25 }},
		{name: "float infinity", key: "TEST_FLOAT", value: "-Inf", check: func() bool { return getEnvAsFloat("TEST_FLOAT", 0.25) == 0.25 }},
		{name: "bool", key: "TEST_BOOL", value: "maybe", check: func() bool { return getEnvAsBool("TEST_BOOL", true) }},
		{name: "duration", key: "TEST_DURATION", value: "10", check: func() bool { return getEnvAsDuration("TEST_DURATION", time.Second) == time.Second }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			if !tt.check() {
				t.Errorf("expected default for %s=%q", tt.key, tt.value)
			}
		})
	}
}
