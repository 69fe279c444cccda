package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultGatewayURL = "https://ai.gateway.lovable.dev/v1/"
	DefaultModel      = "google/gemini-3-flash-preview"
)

type Config struct {
	Env     string
	Port    string
	LogMode string

	AI   AIConfig
	DB   DBConfig
	OTel OTelConfig
}

// AIConfig is handed to the upstream client at construction time.
type AIConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

type DBConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

type OTelConfig struct {
	Enabled     bool
	ServiceName string
	Endpoint    string
	Headers     string
	Insecure    bool
	SampleRatio float64
}

func Load() *Config {
	env := getEnv("APP_ENV", "development")
	if env == "development" {
		// .env is optional; real deployments set the environment directly.
		_ = godotenv.Load()
		env = getEnv("APP_ENV", "development")
	}

	cfg := &Config{
		Env:     env,
		Port:    getEnv("PORT", "8080"),
		LogMode: getEnv("LOG_MODE", ""),

		AI: AIConfig{
			APIKey:  getEnv("LOVABLE_API_KEY", ""),
			BaseURL: getEnv("AI_GATEWAY_URL", DefaultGatewayURL),
			Model:   getEnv("AI_MODEL", DefaultModel),
			Timeout: getEnvDuration("AI_REQUEST_TIMEOUT", 2*time.Minute),
		},

		DB: DBConfig{
			Host:     getEnv("DB_HOST", ""),
			Port:     getEnvInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", ""),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", ""),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},

		OTel: OTelConfig{
			Enabled:     getEnvBool("OTEL_ENABLED", false),
			ServiceName: getEnv("OTEL_SERVICE_NAME", "mentorship-ai-assistant"),
			Endpoint:    getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
			Headers:     getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""),
			Insecure:    getEnvBool("OTEL_EXPORTER_OTLP_INSECURE", false),
			SampleRatio: getEnvRatio("OTEL_SAMPLER_RATIO", 0.1),
		},
	}

	if cfg.LogMode == "" {
		cfg.LogMode = "development"
		if cfg.IsProduction() {
			cfg.LogMode = "production"
		}
	}
	return cfg
}

func (c *Config) IsProduction() bool {
	return c.Env == "production" || c.Env == "prod"
}

// AnalyticsEnabled reports whether request analytics should be written to Postgres.
func (c *Config) AnalyticsEnabled() bool {
	return c.DB.Host != ""
}

func (c *Config) ConnString() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.DB.Host, c.DB.Port, c.DB.User, c.DB.Password, c.DB.Name, c.DB.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return fallback
	}
	return v
}

func getEnvBool(key string, fallback bool) bool {
	switch strings.ToLower(getEnv(key, "")) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return fallback
	}
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(getEnv(key, ""))
	if err != nil || d < 0 {
		return fallback
	}
	return d
}

func getEnvRatio(key string, fallback float64) float64 {
	f, err := strconv.ParseFloat(getEnv(key, ""), 64)
	if err != nil {
		return fallback
	}
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}
