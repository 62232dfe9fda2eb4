package web

import (
	"context"
	"flag"
	"testing"
	"time"
)

func TestParseConfigDefaults(t *testing.T) {
	t.Parallel()

	fs := flag.NewFlagSet("web", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}
	if cfg.HTTPAddr != "localhost:8080" {
		t.Fatalf("HTTPAddr = %q, want %q", cfg.HTTPAddr, "localhost:8080")
	}
	if cfg.BackendAddr != "localhost:8082" {
		t.Fatalf("BackendAddr = %q, want %q", cfg.BackendAddr, "localhost:8082")
	}
	if cfg.CacheDBPath != "" {
		t.Fatalf("CacheDBPath = %q, want empty", cfg.CacheDBPath)
	}
	if !cfg.EnableMCP {
		t.Fatalf("EnableMCP = false, want true")
	}
	if cfg.LogLevel != "info" {
		t.Fatalf("LogLevel = %q, want %q", cfg.LogLevel, "info")
	}
	if cfg.DailyVerseTTL != time.Hour {
		t.Fatalf("DailyVerseTTL = %v, want %v", cfg.DailyVerseTTL, time.Hour)
	}
	if cfg.ContentTTL != 30*time.Second {
		t.Fatalf("ContentTTL = %v, want %v", cfg.ContentTTL, 30*time.Second)
	}
	if cfg.GRPCDialTimeout != 2*time.Second {
		t.Fatalf("GRPCDialTimeout = %v, want %v", cfg.GRPCDialTimeout, 2*time.Second)
	}
}

func TestParseConfigFlagsOverrideDefaults(t *testing.T) {
	t.Parallel()

	fs := flag.NewFlagSet("web", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, []string{
		"-http-addr", "127.0.0.1:9002",
		"-backend-addr", "backend:9000",
		"-enable-mcp=false",
		"-daily-verse-ttl", "15m",
	})
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}
	if cfg.HTTPAddr != "127.0.0.1:9002" {
		t.Fatalf("HTTPAddr = %q, want %q", cfg.HTTPAddr, "127.0.0.1:9002")
	}
	if cfg.BackendAddr != "backend:9000" {
		t.Fatalf("BackendAddr = %q, want %q", cfg.BackendAddr, "backend:9000")
	}
	if cfg.EnableMCP {
		t.Fatalf("EnableMCP = true, want false")
	}
	if cfg.DailyVerseTTL != 15*time.Minute {
		t.Fatalf("DailyVerseTTL = %v, want %v", cfg.DailyVerseTTL, 15*time.Minute)
	}
}

func TestParseConfigReadsEnv(t *testing.T) {
	t.Setenv("SACRED_VERSES_WEB_CACHE_DB_PATH", "/var/lib/sacredverses/web.db")
	t.Setenv("SACRED_VERSES_WEB_SESSION_SECRET", "s3cret")
	t.Setenv("SACRED_VERSES_WEB_CONTENT_TTL", "2m")

	fs := flag.NewFlagSet("web", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, []string{"-content-ttl", "5m"})
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}
	if cfg.CacheDBPath != "/var/lib/sacredverses/web.db" {
		t.Fatalf("CacheDBPath = %q, want env value", cfg.CacheDBPath)
	}
	if cfg.SessionSecret != "s3cret" {
		t.Fatalf("SessionSecret = %q, want %q", cfg.SessionSecret, "s3cret")
	}
	if cfg.ContentTTL != 5*time.Minute {
		t.Fatalf("ContentTTL = %v, want flag value %v", cfg.ContentTTL, 5*time.Minute)
	}
}

func TestParseConfigRejectsBadEnv(t *testing.T) {
	t.Setenv("SACRED_VERSES_WEB_DAILY_VERSE_TTL", "soon")

	if _, err := ParseConfig(flag.NewFlagSet("web", flag.ContinueOnError), nil); err == nil {
		t.Fatalf("ParseConfig() error = nil, want error")
	}
}

func TestRunRejectsInvalidLogLevel(t *testing.T) {
	t.Parallel()

	err := Run(context.Background(), Config{HTTPAddr: "127.0.0.1:0", LogLevel: "loud"})
	if err == nil {
		t.Fatalf("Run() error = nil, want error")
	}
}
