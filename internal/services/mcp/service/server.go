package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/louisbranch/lingo/internal/services/lingoapi"
	"github.com/louisbranch/lingo/internal/services/mcp/domain"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"
)

const (
	// serverName identifies the MCP server to clients.
	serverName = "lingo"
	// serverVersion identifies the MCP server version.
	serverVersion = "0.1.0"
)

// Config configures the MCP server.
type Config struct {
	APIBaseURL string
	APIToken   string
	APITimeout time.Duration
	Logger     *zap.Logger
}

// Server exposes the Lingo API as MCP tools.
type Server struct {
	mcpServer *mcp.Server
	logger    *zap.Logger
}

type toolModule struct {
	name     string
	register func(*mcp.Server, domain.Backend)
}

var toolModules = []toolModule{
	{name: "glossary-tools", register: func(s *mcp.Server, b domain.Backend) {
		mcp.AddTool(s, domain.WordsListTool(), domain.WordsListHandler(b))
		mcp.AddTool(s, domain.WordCreateTool(), domain.WordCreateHandler(b))
		mcp.AddTool(s, domain.MeaningsListTool(), domain.MeaningsListHandler(b))
		mcp.AddTool(s, domain.MeaningAddTool(), domain.MeaningAddHandler(b))
		mcp.AddTool(s, domain.ReflectionsListTool(), domain.ReflectionsListHandler(b))
		mcp.AddTool(s, domain.ReflectionAddTool(), domain.ReflectionAddHandler(b))
	}},
	{name: "team-tools", register: func(s *mcp.Server, b domain.Backend) {
		mcp.AddTool(s, domain.TeamsListTool(), domain.TeamsListHandler(b))
		mcp.AddTool(s, domain.TeamSelectTool(), domain.TeamSelectHandler(b))
	}},
}

// NewServer builds an MCP server backed by api.
func NewServer(api domain.API, token string, logger *zap.Logger) (*Server, error) {
	backend, err := domain.NewBackend(api, token)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	mcpServer := mcp.NewServer(&mcp.Implementation{Name: serverName, Version: serverVersion}, nil)
	for _, module := range toolModules {
		module.register(mcpServer, backend)
		logger.Debug("registered mcp module", zap.String("module", module.name))
	}
	return &Server{mcpServer: mcpServer, logger: logger}, nil
}

// Serve runs the MCP session on transport until it ends or ctx is done.
func (s *Server) Serve(ctx context.Context, transport mcp.Transport) error {
	if s == nil || s.mcpServer == nil {
		return errors.New("mcp server is nil")
	}
	if transport == nil {
		return errors.New("transport is required")
	}
	err := s.mcpServer.Run(ctx, transport)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		err = nil
	}
	return err
}

// Run builds the Lingo API client from cfg and serves MCP over stdio.
func Run(ctx context.Context, cfg Config) error {
	return runWithTransport(ctx, cfg, &mcp.StdioTransport{})
}

func runWithTransport(ctx context.Context, cfg Config, transport mcp.Transport) error {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	opts := []lingoapi.Option{lingoapi.WithLogger(logger.Named("lingoapi"))}
	if cfg.APITimeout > 0 {
		opts = append(opts, lingoapi.WithHTTPClient(&http.Client{Timeout: cfg.APITimeout}))
	}
	server, err := NewServer(lingoapi.New(cfg.APIBaseURL, opts...), cfg.APIToken, logger)
	if err != nil {
		return fmt.Errorf("init mcp server: %w", err)
	}
	logger.Info("serving mcp", zap.String("api", lingoapi.NormalizeBaseURL(cfg.APIBaseURL)))
	return server.Serve(ctx, transport)
}
