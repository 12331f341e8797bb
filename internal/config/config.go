package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration
	CORSOrigins     []string

	// Fixed historical simulation window and session lifecycle.
	WindowStart time.Time
	WindowEnd   time.Time
	SessionTTL  time.Duration

	// Gemini generative-AI configuration.
	GeminiAPIKey  string
	GeminiEnabled bool
	GeminiModel   string
	GeminiTimeout time.Duration

	// Optional Kafka export of generated event sets.
	ExportEnabled    bool
	KafkaBrokers     []string
	KafkaExportTopic string
}

// Load reads configuration from environment variables, applying defaults
// where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := parsePositiveDuration("SHUTDOWN_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}

	sessionTTL, err := parsePositiveDuration("SESSION_TTL", "30m")
	if err != nil {
		return nil, err
	}

	geminiTimeout, err := parsePositiveDuration("GEMINI_TIMEOUT", "30s")
	if err != nil {
		return nil, err
	}

	windowStart, err := parseDate("SIM_WINDOW_START", "2025-06-04")
	if err != nil {
		return nil, err
	}
	windowEnd, err := parseDate("SIM_WINDOW_END", "2025-06-10")
	if err != nil {
		return nil, err
	}

	geminiKey := os.Getenv("GEMINI_API_KEY")
	geminiEnabled := geminiKey != ""
	if v := os.Getenv("GEMINI_ENABLED"); v != "" {
		geminiEnabled = v == "true"
	}

	exportEnabled := os.Getenv("EXPORT_ENABLED") == "true"

	cfg := &Config{
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,
		CORSOrigins:     splitList(envOrDefault("CORS_ORIGINS", "*")),

		WindowStart: windowStart,
		WindowEnd:   windowEnd,
		SessionTTL:  sessionTTL,

		GeminiAPIKey:  geminiKey,
		GeminiEnabled: geminiEnabled,
		GeminiModel:   envOrDefault("GEMINI_MODEL", "gemini-2.0-flash"),
		GeminiTimeout: geminiTimeout,

		ExportEnabled:    exportEnabled,
		KafkaBrokers:     splitList(envOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaExportTopic: envOrDefault("KAFKA_EXPORT_TOPIC", "urban-sim-events"),
	}

	if cfg.WindowStart.After(cfg.WindowEnd) {
		return nil, errors.New("SIM_WINDOW_START is after SIM_WINDOW_END")
	}
	if cfg.GeminiEnabled && cfg.GeminiAPIKey == "" {
		return nil, errors.New("GEMINI_ENABLED is true but GEMINI_API_KEY is not set")
	}
	if cfg.ExportEnabled && len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("EXPORT_ENABLED is true but KAFKA_BROKERS is empty")
	}

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parsePositiveDuration(key, fallback string) (time.Duration, error) {
	d, err := time.ParseDuration(envOrDefault(key, fallback))
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return d, nil
}

func parseDate(key, fallback string) (time.Time, error) {
	t, err := time.Parse(time.DateOnly, envOrDefault(key, fallback))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid %s: %w", key, err)
	}
	return t.UTC(), nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
