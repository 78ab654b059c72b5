package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port           int
	DatabaseURL    string
	Location       *time.Location
	CentsHeuristic bool
	CentsThreshold float64
	MaxUploadBytes int64
	LogLevel       string
}

// Load reads .env (if present) and the environment; real environment
// variables win over the file.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	cfg := Config{
		Port:           8080,
		CentsThreshold: 100000,
		MaxUploadBytes: 32 << 20,
		LogLevel:       "info",
	}

	if portRaw := lookup("PORT"); portRaw != "" {
		port, err := strconv.Atoi(portRaw)
		if err != nil || port <= 0 {
			return Config{}, fmt.Errorf("invalid PORT: %q", portRaw)
		}
		cfg.Port = port
	}

	cfg.DatabaseURL = lookup("DATABASE_URL")

	tzName := lookup("SALES_TIMEZONE")
	if tzName == "" {
		tzName = "America/Sao_Paulo"
	}
	loc, err := time.LoadLocation(tzName)
	if err != nil {
		return Config{}, fmt.Errorf("invalid SALES_TIMEZONE: %q", tzName)
	}
	cfg.Location = loc

	if raw := lookup("SALES_CENTS_HEURISTIC"); raw != "" {
		enabled, err := strconv.ParseBool(raw)
		if err != nil {
			return Config{}, fmt.Errorf("invalid SALES_CENTS_HEURISTIC: %q", raw)
		}
		cfg.CentsHeuristic = enabled
	}

	if raw := lookup("SALES_CENTS_THRESHOLD"); raw != "" {
		threshold, err := strconv.ParseFloat(raw, 64)
		if err != nil || threshold <= 0 {
			return Config{}, fmt.Errorf("invalid SALES_CENTS_THRESHOLD: %q", raw)
		}
		cfg.CentsThreshold = threshold
	}

	if raw := lookup("MAX_UPLOAD_MB"); raw != "" {
		mb, err := strconv.Atoi(raw)
		if err != nil || mb <= 0 {
			return Config{}, fmt.Errorf("invalid MAX_UPLOAD_MB: %q", raw)
		}
		cfg.MaxUploadBytes = int64(mb) << 20
	}

	if raw := lookup("LOG_LEVEL"); raw != "" {
		cfg.LogLevel = strings.ToLower(raw)
	}

	return cfg, nil
}

func lookup(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}
