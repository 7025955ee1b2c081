package api

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config carries environment-driven settings for the API process.
type Config struct {
	Port        string
	PostgresDSN string
}

// LoadConfig reads environment variables, applies defaults, and validates
// basic constraints. An empty POSTGRES_DSN selects the in-memory repository.
func LoadConfig() (Config, error) {
	cfg := Config{
		Port:        envDefault("PORT", "8080"),
		PostgresDSN: strings.TrimSpace(os.Getenv("POSTGRES_DSN")),
	}
	if _, err := strconv.Atoi(cfg.Port); err != nil {
		return Config{}, fmt.Errorf("PORT must be a number, got %q", cfg.Port)
	}
	return cfg, nil
}

func envDefault(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}
