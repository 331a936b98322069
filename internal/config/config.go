package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config carries everything read from the environment. A .env file in the
// working directory is honored when present (Load never fails on a missing
// one).
type Config struct {
	// Database
	DBPath string

	// Photos
	PhotoDir string

	// Gemini vision API
	GeminiAPIKey      string
	GeminiModel       string
	GeminiTemperature float64
	GeminiMaxTokens   int
	GeminiTimeout     time.Duration
}

// Load reads configuration from the environment, after best-effort loading
// of a local .env file.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		DBPath:   getEnv("TRACKCAL_DB", ""),
		PhotoDir: getEnv("TRACKCAL_PHOTO_DIR", ""),

		GeminiAPIKey:      getEnv("GEMINI_API_KEY", ""),
		GeminiModel:       getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
		GeminiTemperature: getEnvFloat("GEMINI_TEMPERATURE", 0.1),
		GeminiMaxTokens:   getEnvInt("GEMINI_MAX_TOKENS", 1024),
		GeminiTimeout:     getEnvDuration("GEMINI_TIMEOUT", 30*time.Second),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getEnvFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
