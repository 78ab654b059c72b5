package config

import (
	"strings"
	"testing"
)

var configKeys = []string{
	"PORT",
	"DATABASE_URL",
	"SALES_TIMEZONE",
	"SALES_CENTS_HEURISTIC",
	"SALES_CENTS_THRESHOLD",
	"MAX_UPLOAD_MB",
	"LOG_LEVEL",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range configKeys {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != 8080 || cfg.DatabaseURL != "" || cfg.LogLevel != "info" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.Location.String() != "America/Sao_Paulo" {
		t.Fatalf("location = %s", cfg.Location)
	}
	if cfg.CentsHeuristic || cfg.CentsThreshold != 100000 {
		t.Fatalf("cents heuristic should be off by default: %+v", cfg)
	}
	if cfg.MaxUploadBytes != 32<<20 {
		t.Fatalf("max upload = %d", cfg.MaxUploadBytes)
	}
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("DATABASE_URL", " postgres://localhost/sales ")
	t.Setenv("SALES_TIMEZONE", "UTC")
	t.Setenv("SALES_CENTS_HEURISTIC", "true")
	t.Setenv("SALES_CENTS_THRESHOLD", "50000")
	t.Setenv("MAX_UPLOAD_MB", "8")
	t.Setenv("LOG_LEVEL", "DEBUG")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != 9090 || cfg.DatabaseURL != "postgres://localhost/sales" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.Location.String() != "UTC" || !cfg.CentsHeuristic || cfg.CentsThreshold != 50000 {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.MaxUploadBytes != 8<<20 || cfg.LogLevel != "debug" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func TestLoadInvalid(t *testing.T) {
	cases := []struct {
		key   string
		value string
	}{
		{key: "PORT", value: "http"},
		{key: "PORT", value: "-1"},
		{key: "SALES_TIMEZONE", value: "Mars/Olympus"},
		{key: "SALES_CENTS_HEURISTIC", value: "maybe"},
		{key: "SALES_CENTS_THRESHOLD", value: "0"},
		{key: "MAX_UPLOAD_MB", value: "lots"},
	}
	for _, tc := range cases {
		t.Run(tc.key+"="+tc.value, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tc.key, tc.value)
			_, err := Load()
			if err == nil || !strings.Contains(err.Error(), tc.key) {
				t.Fatalf("expected %s error, got %v", tc.key, err)
			}
		})
	}
}
