// Package web parses web service flags and launches the service.
package web

import (
	"context"
	"flag"
	"fmt"
	"time"

	entrypoint "github.com/louisbranch/sacredverses/internal/platform/cmd"
	"github.com/louisbranch/sacredverses/internal/platform/logging"
	"github.com/louisbranch/sacredverses/internal/services/web"
)

// Version is stamped at build time with -ldflags.
var Version = "dev"

// Config holds the web command configuration.
type Config struct {
	HTTPAddr    string `env:"WEB_HTTP_ADDR" envDefault:"localhost:8080"`
	BackendAddr string `env:"WEB_BACKEND_ADDR" envDefault:"localhost:8082"`
	CacheDBPath string `env:"WEB_CACHE_DB_PATH"`

	SessionSecret string `env:"WEB_SESSION_SECRET"`
	SessionIssuer string `env:"WEB_SESSION_ISSUER"`
	LoginURL      string `env:"WEB_LOGIN_URL"`

	EnableMCP           bool `env:"WEB_ENABLE_MCP" envDefault:"true"`
	TrustForwardedProto bool `env:"WEB_TRUST_FORWARDED_PROTO"`
	SecureCookies       bool `env:"WEB_SECURE_COOKIES"`

	LogLevel  string `env:"WEB_LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"WEB_LOG_FORMAT" envDefault:"json"`

	DailyVerseTTL   time.Duration `env:"WEB_DAILY_VERSE_TTL" envDefault:"1h"`
	ContentTTL      time.Duration `env:"WEB_CONTENT_TTL" envDefault:"30s"`
	GRPCDialTimeout time.Duration `env:"WEB_GRPC_DIAL_TIMEOUT" envDefault:"2s"`
}

// ParseConfig parses environment and flags into Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP listen address")
	fs.StringVar(&cfg.BackendAddr, "backend-addr", cfg.BackendAddr, "Content backend gRPC address")
	fs.StringVar(&cfg.CacheDBPath, "cache-db-path", cfg.CacheDBPath, "SQLite query cache path (empty keeps the cache in memory)")
	fs.StringVar(&cfg.LoginURL, "login-url", cfg.LoginURL, "Identity provider login URL")
	fs.BoolVar(&cfg.EnableMCP, "enable-mcp", cfg.EnableMCP, "Serve MCP tools at /mcp")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format (json, console)")
	fs.DurationVar(&cfg.DailyVerseTTL, "daily-verse-ttl", cfg.DailyVerseTTL, "Stale time of the daily verse")
	fs.DurationVar(&cfg.ContentTTL, "content-ttl", cfg.ContentTTL, "Stale time of stories, verses and profiles")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the web server and blocks until ctx ends.
func Run(ctx context.Context, cfg Config) error {
	logger, err := logging.New(logging.Options{
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
		Service: entrypoint.ServiceWeb,
	})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceWeb, logger, func(ctx context.Context) error {
		server, err := web.NewServer(ctx, web.Config{
			HTTPAddr:            cfg.HTTPAddr,
			BackendAddr:         cfg.BackendAddr,
			CacheDBPath:         cfg.CacheDBPath,
			SessionSecret:       cfg.SessionSecret,
			SessionIssuer:       cfg.SessionIssuer,
			LoginURL:            cfg.LoginURL,
			EnableMCP:           cfg.EnableMCP,
			TrustForwardedProto: cfg.TrustForwardedProto,
			SecureCookies:       cfg.SecureCookies,
			ContentTTL:          cfg.ContentTTL,
			DailyVerseTTL:       cfg.DailyVerseTTL,
			GRPCDialTimeout:     cfg.GRPCDialTimeout,
			Version:             Version,
		}, logger)
		if err != nil {
			return fmt.Errorf("init web server: %w", err)
		}
		defer server.Close()

		if err := server.ListenAndServe(ctx); err != nil {
			return fmt.Errorf("serve web: %w", err)
		}
		return nil
	})
}
