package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	for _, key := range []string{
		"PORT", "LOG_MODE", "LOVABLE_API_KEY", "AI_GATEWAY_URL", "AI_MODEL", "AI_REQUEST_TIMEOUT",
		"DB_HOST", "DB_PORT", "OTEL_ENABLED", "OTEL_SAMPLER_RATIO",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "test", cfg.Env)
	assert.Equal(t, "development", cfg.LogMode)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "", cfg.AI.APIKey)
	assert.Equal(t, DefaultGatewayURL, cfg.AI.BaseURL)
	assert.Equal(t, DefaultModel, cfg.AI.Model)
	assert.Equal(t, 2*time.Minute, cfg.AI.Timeout)
	assert.Equal(t, 5432, cfg.DB.Port)
	assert.False(t, cfg.AnalyticsEnabled())
	assert.False(t, cfg.OTel.Enabled)
	assert.Equal(t, 0.1, cfg.OTel.SampleRatio)
	assert.False(t, cfg.IsProduction())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("PORT", "9090")
	t.Setenv("LOG_MODE", "development")
	t.Setenv("LOVABLE_API_KEY", " key-123 ")
	t.Setenv("AI_GATEWAY_URL", "http://localhost:4000/v1/")
	t.Setenv("AI_MODEL", "google/gemini-2.5-flash")
	t.Setenv("AI_REQUEST_TIMEOUT", "30s")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PORT", "not-a-number")
	t.Setenv("OTEL_ENABLED", "yes")
	t.Setenv("OTEL_SAMPLER_RATIO", "4")

	cfg := Load()

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "development", cfg.LogMode)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "key-123", cfg.AI.APIKey)
	assert.Equal(t, "http://localhost:4000/v1/", cfg.AI.BaseURL)
	assert.Equal(t, "google/gemini-2.5-flash", cfg.AI.Model)
	assert.Equal(t, 30*time.Second, cfg.AI.Timeout)
	assert.True(t, cfg.AnalyticsEnabled())
	assert.Equal(t, 5432, cfg.DB.Port)
	assert.True(t, cfg.OTel.Enabled)
	assert.Equal(t, 1.0, cfg.OTel.SampleRatio)
}

func TestLogModeFollowsEnvironment(t *testing.T) {
	t.Setenv("LOG_MODE", "")

	t.Setenv("APP_ENV", "prod")
	assert.Equal(t, "production", Load().LogMode)

	t.Setenv("APP_ENV", "staging")
	assert.Equal(t, "development", Load().LogMode)
}

func TestConnString(t *testing.T) {
	cfg := &Config{DB: DBConfig{Host: "h", Port: 5433, User: "u", Password: "p", Name: "n", SSLMode: "require"}}
	assert.Equal(t, "host=h port=5433 user=u password=p dbname=n sslmode=require", cfg.ConnString())
}
