// Package mcp parses MCP command configuration and serves tools over stdio.
package mcp

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/louisbranch/lingo/internal/platform/cmd"
	"github.com/louisbranch/lingo/internal/platform/logging"
	"github.com/louisbranch/lingo/internal/services/lingoapi"
	mcpservice "github.com/louisbranch/lingo/internal/services/mcp/service"
	"go.uber.org/zap"
)

// Config holds MCP command configuration.
type Config struct {
	APIServerURL string        `env:"API_SERVER_URL"        envDefault:"http://localhost:8000"`
	APIToken     string        `env:"LINGO_MCP_API_TOKEN"`
	APITimeout   time.Duration `env:"LINGO_MCP_API_TIMEOUT" envDefault:"10s"`
	LogLevel     string        `env:"LINGO_LOG_LEVEL"       envDefault:"info"`
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
	fs.StringVar(&cfg.APIToken, "api-token", cfg.APIToken, "Bearer token used for every tool call")
	fs.DurationVar(&cfg.APITimeout, "api-timeout", cfg.APITimeout, "Timeout for each Lingo API call")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	if err := cmd.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}

	cfg.APIServerURL = lingoapi.NormalizeBaseURL(cfg.APIServerURL)
	cfg.APIToken = strings.TrimSpace(cfg.APIToken)
	if cfg.APIToken == "" {
		return Config{}, fmt.Errorf("api token is required (LINGO_MCP_API_TOKEN or -api-token)")
	}
	if _, err := logging.ParseLevel(cfg.LogLevel); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run serves the MCP tools on stdio until ctx is done or the client
// disconnects. Logs go to stderr so stdout stays reserved for the protocol.
func Run(ctx context.Context, cfg Config) error {
	logger, err := logging.NewWriter(os.Stderr, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()
	logger = logger.With(zap.String("service", cmd.ServiceMCP))

	return cmd.RunWithTelemetryAndOptions(ctx, cmd.ServiceMCP, cmd.RunOptions{Logger: logger}, func(ctx context.Context) error {
		return mcpservice.Run(ctx, mcpservice.Config{
			APIBaseURL: cfg.APIServerURL,
			APIToken:   cfg.APIToken,
			APITimeout: cfg.APITimeout,
			Logger:     logger,
		})
	})
}
