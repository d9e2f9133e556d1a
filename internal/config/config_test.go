package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != 8080 {
		t.Errorf("expected port 8080, got %d", cfg.Port)
	}
	if cfg.Archive.Enabled() {
		t.Error("expected archival disabled without ARCHIVE_API_KEY")
	}
	if cfg.Years.Min != 1850 || cfg.Years.Max != 1930 {
		t.Errorf("expected years 1850-1930, got %d-%d", cfg.Years.Min, cfg.Years.Max)
	}
	if cfg.Archive.Host != "https://perma.cc" {
		t.Errorf("expected default archive host, got %s", cfg.Archive.Host)
	}
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("ARCHIVE_API_KEY", "secret")
	t.Setenv("ARCHIVE_FOLDER", "42")
	t.Setenv("ARCHIVE_HOST", "https://archive.example.org/")
	t.Setenv("ARCHIVE_TIMEOUT", "3s")
	t.Setenv("YEARS_MIN", "1900")
	t.Setenv("CACHE_TTL", "1m")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != 9000 {
		t.Errorf("expected port 9000, got %d", cfg.Port)
	}
	if !cfg.Archive.Enabled() {
		t.Error("expected archival enabled")
	}
	if cfg.Archive.Folder != "42" {
		t.Errorf("expected folder 42, got %s", cfg.Archive.Folder)
	}
	if cfg.Archive.Host != "https://archive.example.org" {
		t.Errorf("expected trailing slash trimmed, got %s", cfg.Archive.Host)
	}
	if cfg.Archive.Timeout != 3*time.Second {
		t.Errorf("expected 3s timeout, got %s", cfg.Archive.Timeout)
	}
	if cfg.Years.Min != 1900 {
		t.Errorf("expected min year 1900, got %d", cfg.Years.Min)
	}
	if cfg.Redis.CacheTTL != time.Minute {
		t.Errorf("expected 1m cache ttl, got %s", cfg.Redis.CacheTTL)
	}
}

func TestLoad_InvalidIntFallsBack(t *testing.T) {
	t.Setenv("YEARS_MAX", "nineteen-thirty")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Years.Max != 1930 {
		t.Errorf("expected fallback 1930, got %d", cfg.Years.Max)
	}
}

func TestDSN_AppendsDefaultPort(t *testing.T) {
	d := DatabaseConfig{Host: "mydb", User: "u", Password: "p@ss", Name: "timeline"}
	dsn := d.DSN()
	if !strings.Contains(dsn, "tcp(mydb:3306)") {
		t.Errorf("expected default port in DSN, got %s", dsn)
	}
	if !strings.Contains(dsn, "parseTime=true") {
		t.Errorf("expected parseTime in DSN, got %s", dsn)
	}
}

func TestDSN_Override(t *testing.T) {
	d := DatabaseConfig{dsnOverride: "root@tcp(db:3307)/x"}
	if d.DSN() != "root@tcp(db:3307)/x" {
		t.Errorf("expected override DSN, got %s", d.DSN())
	}
}
