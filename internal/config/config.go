// Package config provides application configuration.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds all application configuration.
type Config struct {
	Port            string
	GeminiAPIKey    string
	SessionsDir     string
	Model           string
	MaxOutputTokens int32
	Temperature     float32
	WindowSize      int
	CORSOrigins     []string
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		Port:            getEnv("PORT", "8000"),
		GeminiAPIKey:    os.Getenv("GEMINI_API_KEY"),
		SessionsDir:     getEnv("SESSIONS_DIR", "./sessions"),
		Model:           getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
		MaxOutputTokens: int32(getEnvInt("MAX_OUTPUT_TOKENS", 1000)),
		Temperature:     getEnvFloat("TEMPERATURE", 0.7),
		WindowSize:      getEnvInt("WINDOW_SIZE", 20),
		CORSOrigins:     splitList(getEnv("CORS_ORIGINS", "*")),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks that all required configuration fields are set.
func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("PORT cannot be empty")
	}
	if c.GeminiAPIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable not set")
	}
	if c.SessionsDir == "" {
		return fmt.Errorf("SESSIONS_DIR cannot be empty")
	}
	if c.Model == "" {
		return fmt.Errorf("GEMINI_MODEL cannot be empty")
	}
	if c.MaxOutputTokens <= 0 {
		return fmt.Errorf("MAX_OUTPUT_TOKENS must be > 0")
	}
	if c.WindowSize <= 0 {
		return fmt.Errorf("WINDOW_SIZE must be > 0")
	}
	if len(c.CORSOrigins) == 0 {
		return fmt.Errorf("CORS_ORIGINS cannot be empty")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return n
}

func getEnvFloat(key string, fallback float32) float32 {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(value), 32)
	if err != nil {
		return fallback
	}
	return float32(f)
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
