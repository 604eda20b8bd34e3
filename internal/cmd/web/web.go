// Package web parses web command configuration and runs the browser server.
package web

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/louisbranch/lingo/internal/platform/cmd"
	"github.com/louisbranch/lingo/internal/platform/logging"
	"github.com/louisbranch/lingo/internal/services/lingoapi"
	"github.com/louisbranch/lingo/internal/services/web"
	"go.uber.org/zap"
)

// Config holds the web command configuration.
type Config struct {
	APIServerURL        string        `env:"API_SERVER_URL"                  envDefault:"http://localhost:8000"`
	APITimeout          time.Duration `env:"LINGO_WEB_API_TIMEOUT"`
	HTTPAddr            string        `env:"LINGO_WEB_HTTP_ADDR"             envDefault:"localhost:8050"`
	SessionDBPath       string        `env:"LINGO_WEB_SESSION_DB"            envDefault:"data/lingo-web.db"`
	SessionIdleTTL      time.Duration `env:"LINGO_WEB_SESSION_IDLE_TTL"      envDefault:"12h"`
	TrustForwardedProto bool          `env:"LINGO_WEB_TRUST_FORWARDED_PROTO" envDefault:"false"`
	LogLevel            string        `env:"LINGO_LOG_LEVEL"                 envDefault:"info"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := cmd.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	if fs == nil {
		return Config{}, fmt.Errorf("flag parser is required")
	}

	fs.StringVar(&cfg.APIServerURL, "api-server-url", cfg.APIServerURL, "Lingo API base URL")
	fs.DurationVar(&cfg.APITimeout, "api-timeout", cfg.APITimeout, "Timeout for each Lingo API call (0 leaves the transport default)")
	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP listen address")
	fs.StringVar(&cfg.SessionDBPath, "session-db", cfg.SessionDBPath, "SQLite file for browser sessions")
	fs.DurationVar(&cfg.SessionIdleTTL, "session-idle-ttl", cfg.SessionIdleTTL, "Idle time before a browser session is dropped")
	fs.BoolVar(&cfg.TrustForwardedProto, "trust-forwarded-proto", cfg.TrustForwardedProto, "Trust X-Forwarded-Proto when deciding cookie security")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	if err := cmd.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}

	cfg.APIServerURL = lingoapi.NormalizeBaseURL(cfg.APIServerURL)
	if _, err := logging.ParseLevel(cfg.LogLevel); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the web server and blocks until ctx is done.
func Run(ctx context.Context, cfg Config) error {
	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()
	logger = logger.With(zap.String("service", cmd.ServiceWeb))

	return cmd.RunWithTelemetryAndOptions(ctx, cmd.ServiceWeb, cmd.RunOptions{Logger: logger}, func(ctx context.Context) error {
		server, err := web.NewServer(ctx, web.Config{
			HTTPAddr:            cfg.HTTPAddr,
			APIBaseURL:          cfg.APIServerURL,
			APITimeout:          cfg.APITimeout,
			SessionDBPath:       cfg.SessionDBPath,
			SessionIdleTTL:      cfg.SessionIdleTTL,
			TrustForwardedProto: cfg.TrustForwardedProto,
			Logger:              logger,
		})
		if err != nil {
			return fmt.Errorf("init web server: %w", err)
		}
		defer server.Close()

		logger.Info("starting web", zap.String("api", cfg.APIServerURL))
		if err := server.ListenAndServe(ctx); err != nil {
			return fmt.Errorf("serve web: %w", err)
		}
		return nil
	})
}
