package config

import (
	"testing"
	"time"
)

func env(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse(env(map[string]string{
		"DATABASE_URL": "postgres://localhost/loyalty",
		"JWT_SECRET":   "secret",
	}))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.AppPort != "8080" {
		t.Fatalf("port = %q; want 8080", cfg.AppPort)
	}
	if cfg.Location.String() != "Asia/Seoul" {
		t.Fatalf("location = %s; want Asia/Seoul", cfg.Location)
	}
	if cfg.ActivityRateLimit != 30 || cfg.ActivityRateWindow != 60 {
		t.Fatalf("activity limit = %d/%d", cfg.ActivityRateLimit, cfg.ActivityRateWindow)
	}
	if cfg.ProductCacheTTL != 5*time.Minute {
		t.Fatalf("cache ttl = %s; want 5m", cfg.ProductCacheTTL)
	}
	if cfg.RedisAddr != "" || cfg.LogJSON {
		t.Fatalf("unexpected optional values: %+v", cfg)
	}
}

func TestParseOverrides(t *testing.T) {
	cfg, err := Parse(env(map[string]string{
		"DATABASE_URL":        "postgres://localhost/loyalty",
		"JWT_SECRET":          "secret",
		"APP_PORT":            "9000",
		"APP_TIMEZONE":        "UTC",
		"REDIS_ADDR":          "localhost:6379",
		"REDIS_DB":            "2",
		"ACTIVITY_RATE_LIMIT": "5",
		"PRODUCT_CACHE_TTL":   "not-a-number",
		"LOG_JSON":            "true",
	}))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.AppPort != "9000" || cfg.Location != time.UTC || cfg.RedisDB != 2 || cfg.ActivityRateLimit != 5 {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	if cfg.ProductCacheTTL != 5*time.Minute {
		t.Fatalf("bad ttl should fall back to default, got %s", cfg.ProductCacheTTL)
	}
	if !cfg.LogJSON {
		t.Fatalf("LOG_JSON not applied")
	}
}

func TestParseRequired(t *testing.T) {
	cases := []map[string]string{
		{"JWT_SECRET": "secret"},
		{"DATABASE_URL": "postgres://localhost/loyalty"},
		{"DATABASE_URL": "postgres://localhost/loyalty", "JWT_SECRET": "s", "APP_TIMEZONE": "Mars/Base"},
	}
	for i, m := range cases {
		if _, err := Parse(env(m)); err == nil {
			t.Fatalf("case %d: expected error", i)
		}
	}
}
