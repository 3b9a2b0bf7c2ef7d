package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	if cfg.ServerPort == "" {
		t.Fatalf("expected default server port")
	}
	if cfg.PostgresURL == "" {
		t.Fatalf("expected default postgres url")
	}
	if cfg.FrontendURL == "" {
		t.Fatalf("expected default frontend url")
	}
	if cfg.MaxImageBytes != 5*1024*1024 {
		t.Fatalf("expected 5MiB image limit, got %d", cfg.MaxImageBytes)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", ":9000")
	t.Setenv("POSTGRES_URL", "postgres://example")
	t.Setenv("REDIS_ADDR", "redis:6379")
	t.Setenv("MONGO_URI", "mongodb://mongo:27017")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("COOKIE_SECURE", "true")
	t.Setenv("MAX_IMAGE_BYTES", "1024")

	cfg := Load()
	if cfg.ServerPort != ":9000" {
		t.Fatalf("expected override port")
	}
	if cfg.PostgresURL != "postgres://example" {
		t.Fatalf("expected override postgres")
	}
	if cfg.RedisAddr != "redis:6379" {
		t.Fatalf("expected override redis")
	}
	if cfg.MongoURI != "mongodb://mongo:27017" {
		t.Fatalf("expected override mongo")
	}
	if cfg.JWTSecret != "secret" {
		t.Fatalf("expected override secret")
	}
	if !cfg.CookieSecure {
		t.Fatalf("expected secure cookies")
	}
	if cfg.MaxImageBytes != 1024 {
		t.Fatalf("expected override image limit")
	}
}

func TestLoadEmptyEnvDisablesOptionalStores(t *testing.T) {
	t.Setenv("REDIS_ADDR", "")
	t.Setenv("MONGO_URI", "")

	cfg := Load()
	if cfg.RedisAddr != "" || cfg.MongoURI != "" {
		t.Fatalf("expected empty env to disable stores, got redis=%q mongo=%q", cfg.RedisAddr, cfg.MongoURI)
	}
	if cfg.PostgresURL == "" {
		t.Fatalf("unset keys keep their defaults")
	}
}
