package config

import (
	"strings"
	"testing"
	"time"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/truthscope")
	t.Setenv("GEMINI_API_KEY", "test-key")
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.HTTPAddr != ":8080" {
		t.Fatalf("expected default addr :8080, got %q", cfg.HTTPAddr)
	}
	if cfg.GetAnalysisCacheTTL() != 24*time.Hour {
		t.Fatalf("expected 24h cache TTL, got %v", cfg.GetAnalysisCacheTTL())
	}
	if cfg.GetAsynqConcurrency() != 10 {
		t.Fatalf("expected default concurrency 10, got %d", cfg.GetAsynqConcurrency())
	}
	if cfg.GetGeminiModel() != "gemini-2.5-flash" {
		t.Fatalf("unexpected default model %q", cfg.GetGeminiModel())
	}
	if cfg.IsSearchEnabled() || cfg.IsFactCheckEnabled() || cfg.IsTranslateEnabled() {
		t.Fatal("optional connectors must default to disabled")
	}
	if cfg.IsMinIOEnabled() {
		t.Fatal("minio must default to disabled")
	}
}

func TestLoad_RequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("GEMINI_API_KEY", "test-key")

	if _, err := Load(); err == nil || !strings.Contains(err.Error(), "DATABASE_URL") {
		t.Fatalf("expected DATABASE_URL error, got %v", err)
	}
}

func TestLoad_RequiresGeminiKey(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/truthscope")
	t.Setenv("GEMINI_API_KEY", "")

	if _, err := Load(); err == nil || !strings.Contains(err.Error(), "GEMINI_API_KEY") {
		t.Fatalf("expected GEMINI_API_KEY error, got %v", err)
	}
}

func TestLoad_RejectsRetentionShorterThanTTL(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("ANALYSIS_CACHE_TTL", "48h")
	t.Setenv("CACHE_RETENTION", "24h")

	if _, err := Load(); err == nil || !strings.Contains(err.Error(), "CACHE_RETENTION") {
		t.Fatalf("expected CACHE_RETENTION error, got %v", err)
	}
}

func TestLoad_RejectsWildcardCORSWithCredentials(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("CORS_ORIGINS", "*")
	t.Setenv("CORS_ALLOW_CREDENTIALS", "true")

	if _, err := Load(); err == nil || !strings.Contains(err.Error(), "CORS_ALLOW_CREDENTIALS") {
		t.Fatalf("expected CORS error, got %v", err)
	}
}

func TestLoad_ExplicitOriginsAllowCredentials(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("CORS_ORIGINS", "https://app.truthscope.example")
	t.Setenv("CORS_ALLOW_CREDENTIALS", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.CORSAllowAll {
		t.Fatal("explicit origins must not enable allow-all")
	}
	if len(cfg.CORSOrigins) != 1 || cfg.CORSOrigins[0] != "https://app.truthscope.example" {
		t.Fatalf("unexpected origins: %v", cfg.CORSOrigins)
	}
}
