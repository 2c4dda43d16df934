// Package config loads application configuration from environment variables,
// with .env files honored during local development.
package config

import (
	"errors"
	"os"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Gemini GeminiConfig
	Output OutputConfig
}

type GeminiConfig struct {
	APIKey string
	Model  string
}

type OutputConfig struct {
	// Dir is where renamed copies of matched PDFs are written.
	Dir string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Best effort; a missing .env file is not an error.
	_ = godotenv.Load()

	cfg := &Config{
		Gemini: GeminiConfig{
			APIKey: getEnv("GEMINI_API_KEY", ""),
			Model:  getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		},
		Output: OutputConfig{
			Dir: getEnv("OUTPUT_DIR", "./renomeados"),
		},
	}

	if cfg.Gemini.APIKey == "" {
		return nil, errors.New("GEMINI_API_KEY is required")
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
