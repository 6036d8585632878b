package config

import (
	"log/slog"
	"testing"
	"time"
)

func TestLoadRequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error without DATABASE_URL")
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/players")
	t.Setenv("API_PORT", "")
	t.Setenv("PORT", "")
	t.Setenv("SEED_ON_STARTUP", "")
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("LOG_LEVEL", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.APIPort != 5000 {
		t.Errorf("APIPort = %d, want 5000", cfg.APIPort)
	}
	if !cfg.SeedOnStartup {
		t.Error("SeedOnStartup should default to true")
	}
	if cfg.SeedRetryInterval != 10*time.Minute {
		t.Errorf("SeedRetryInterval = %v, want 10m", cfg.SeedRetryInterval)
	}
	if cfg.DescriptionsEnabled() {
		t.Error("descriptions should be disabled without a key")
	}
	if cfg.OpenAIModel != "gpt-3.5-turbo" {
		t.Errorf("OpenAIModel = %q", cfg.OpenAIModel)
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Errorf("LogLevel = %v, want INFO", cfg.LogLevel)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/players")
	t.Setenv("PORT", "8080")
	t.Setenv("API_PORT", "")
	t.Setenv("SEED_RETRY_INTERVAL_MINUTES", "0")
	t.Setenv("CORS_ALLOW_ORIGINS", "https://a.example, ,https://b.example")
	t.Setenv("DESCRIBE_REQUESTS_PER_SECOND", "0.5")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("OPENAI_API_KEY", "sk-test")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.APIPort != 8080 {
		t.Errorf("APIPort = %d, want 8080 from PORT", cfg.APIPort)
	}
	if cfg.SeedRetryInterval != 0 {
		t.Errorf("SeedRetryInterval = %v, want 0", cfg.SeedRetryInterval)
	}
	if len(cfg.CORSAllowOrigins) != 2 || cfg.CORSAllowOrigins[1] != "https://b.example" {
		t.Errorf("CORSAllowOrigins = %v", cfg.CORSAllowOrigins)
	}
	if cfg.DescribeRequestsPerSecond != 0.5 {
		t.Errorf("DescribeRequestsPerSecond = %v", cfg.DescribeRequestsPerSecond)
	}
	if cfg.LogLevel != slog.LevelDebug {
		t.Errorf("LogLevel = %v, want DEBUG", cfg.LogLevel)
	}
	if !cfg.DescriptionsEnabled() {
		t.Error("descriptions should be enabled with a key")
	}
}

func TestLoadRejectsBadLogLevel(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/players")
	t.Setenv("LOG_LEVEL", "chatty")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for unknown LOG_LEVEL")
	}
}
