package config

import (
	"strings"
	"testing"
	"time"
)

func setRequired(t *testing.T) {
	t.Helper()
	vars := map[string]string{
		"APP_ENV":                "test",
		"APP_PORT":               "8080",
		"DB_USER":                "root",
		"DB_HOST":                "127.0.0.1",
		"DB_PORT":                "3306",
		"DB_NAME":                "hotel",
		"JWT_SECRET":             "secret",
		"ACCESS_TOKEN_TTL_MIN":   "15",
		"REFRESH_TOKEN_TTL_DAYS": "7",
		"BCRYPT_COST":            "10",
	}
	for k, v := range vars {
		t.Setenv(k, v)
	}
}

func TestLoad(t *testing.T) {
	setRequired(t)
	t.Setenv("BOOKING_LOG_DIR", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("RABBITMQ_URL", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Port != "8080" || cfg.AccessTTLMin != 15 || cfg.BcryptCost != 10 {
		t.Errorf("unexpected config: %+v", cfg)
	}
	if cfg.BookingLogDir != "logs" {
		t.Errorf("BookingLogDir = %q, want logs", cfg.BookingLogDir)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want info", cfg.LogLevel)
	}
	if cfg.RabbitURL != "" {
		t.Errorf("RabbitURL = %q, want empty", cfg.RabbitURL)
	}
}

func TestLoadReportsEveryProblem(t *testing.T) {
	setRequired(t)
	t.Setenv("JWT_SECRET", "")
	t.Setenv("BCRYPT_COST", "ten")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error")
	}
	msg := err.Error()
	for _, want := range []string{"JWT_SECRET", "BCRYPT_COST"} {
		if !strings.Contains(msg, want) {
			t.Errorf("error %q does not mention %s", msg, want)
		}
	}
}

func TestLoadRateLimitConfig(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want RateLimitConfig
	}{
		{
			name: "defaults",
			env:  map[string]string{},
			want: RateLimitConfig{Enabled: true, Capacity: 10, RefillTokens: 1, RefillInterval: 6 * time.Second, TTL: 10 * time.Minute, Prefix: "rl"},
		},
		{
			name: "capacity and interval",
			env:  map[string]string{"RATE_LIMIT_CAPACITY": "3", "RATE_LIMIT_REFILL_INTERVAL": "1m"},
			want: RateLimitConfig{Enabled: true, Capacity: 3, RefillTokens: 1, RefillInterval: time.Minute, TTL: 10 * time.Minute, Prefix: "rl"},
		},
		{
			name: "ttl raised to five refills",
			env:  map[string]string{"RATE_LIMIT_REFILL_INTERVAL": "1m", "RATE_LIMIT_TTL": "1m"},
			want: RateLimitConfig{Enabled: true, Capacity: 10, RefillTokens: 1, RefillInterval: time.Minute, TTL: 5 * time.Minute, Prefix: "rl"},
		},
		{
			name: "disabled",
			env:  map[string]string{"RATE_LIMIT_ENABLED": "off"},
			want: RateLimitConfig{Enabled: false, Capacity: 10, RefillTokens: 1, RefillInterval: 6 * time.Second, TTL: 10 * time.Minute, Prefix: "rl"},
		},
		{
			name: "garbage falls back",
			env:  map[string]string{"RATE_LIMIT_CAPACITY": "lots", "RATE_LIMIT_REFILL_INTERVAL": "-1s", "RATE_LIMIT_ENABLED": "maybe"},
			want: RateLimitConfig{Enabled: true, Capacity: 10, RefillTokens: 1, RefillInterval: 6 * time.Second, TTL: 10 * time.Minute, Prefix: "rl"},
		},
	}
	keys := []string{"RATE_LIMIT_ENABLED", "RATE_LIMIT_CAPACITY", "RATE_LIMIT_REFILL_TOKENS", "RATE_LIMIT_REFILL_INTERVAL",
		"RATE_LIMIT_TTL", "RATE_LIMIT_PREFIX"}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, k := range keys {
				t.Setenv(k, "")
			}
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if got := LoadRateLimitConfig(); got != tt.want {
				t.Errorf("LoadRateLimitConfig() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
