package web

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/louisbranch/lingo/internal/platform/timeouts"
	"github.com/louisbranch/lingo/internal/services/lingoapi"
	"github.com/louisbranch/lingo/internal/services/web/app"
	"github.com/louisbranch/lingo/internal/services/web/browser"
	module "github.com/louisbranch/lingo/internal/services/web/module"
	"github.com/louisbranch/lingo/internal/services/web/modules"
	"github.com/louisbranch/lingo/internal/services/web/platform/httpx"
	"github.com/louisbranch/lingo/internal/services/web/platform/observability"
	"github.com/louisbranch/lingo/internal/services/web/platform/requestmeta"
	"github.com/louisbranch/lingo/internal/services/web/platform/sessioncookie"
	"github.com/louisbranch/lingo/internal/services/web/routepath"
	"github.com/louisbranch/lingo/internal/services/web/static"
	"github.com/louisbranch/lingo/internal/services/web/storage/sqlite"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Config defines the inputs for the web server.
type Config struct {
	HTTPAddr string
	// APIBaseURL is the root of the Lingo API.
	APIBaseURL string
	// APITimeout bounds each Lingo API call. Zero keeps the transport
	// default.
	APITimeout time.Duration
	// SessionDBPath is the SQLite file holding browser sessions.
	SessionDBPath string
	// SessionIdleTTL is how long an untouched browser session survives.
	SessionIdleTTL time.Duration
	// SweepInterval is how often idle sessions are removed.
	SweepInterval       time.Duration
	TrustForwardedProto bool
	Logger              *zap.Logger
}

// Server hosts the web HTTP server.
type Server struct {
	httpAddr      string
	httpServer    *http.Server
	store         *sqlite.Store
	browsers      *browser.Manager
	sweepInterval time.Duration
	logger        *zap.Logger
}

// healthChecker reports whether the server can take traffic.
type healthChecker interface {
	Ping(ctx context.Context) error
}

// NewHandler assembles the full web handler: static assets, the health
// check and every module, wrapped in the request middleware chain.
func NewHandler(deps module.Dependencies, health healthChecker) (http.Handler, error) {
	deps = deps.WithDefaults()
	root, err := app.BuildRootHandler(app.Config{
		Dependencies:     deps,
		PublicModules:    modules.DefaultPublicModules(deps),
		ProtectedModules: modules.DefaultProtectedModules(deps),
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("compose web modules: %w", err)
	}

	mux := http.NewServeMux()
	mux.Handle(routepath.StaticPrefix, static.Handler())
	mux.HandleFunc(http.MethodGet+" "+routepath.Health, func(w http.ResponseWriter, r *http.Request) {
		if health != nil {
			if err := health.Ping(httpx.RequestContext(r)); err != nil {
				deps.Logger.Warn("health check failed", zap.Error(err))
				_ = httpx.WriteJSONError(w, http.StatusServiceUnavailable, "session storage unavailable")
				return
			}
		}
		_ = httpx.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.Handle(routepath.Root, root)

	return httpx.Chain(mux,
		httpx.RequestID(),
		observability.Trace(nil),
		observability.RequestLogger(deps.Logger),
		httpx.RecoverPanic(deps.Logger),
	), nil
}

// NewServer opens the session store and builds the server.
func NewServer(ctx context.Context, config Config) (*Server, error) {
	if ctx == nil {
		return nil, errors.New("context is required")
	}
	httpAddr := strings.TrimSpace(config.HTTPAddr)
	if httpAddr == "" {
		return nil, errors.New("http address is required")
	}
	if strings.TrimSpace(config.APIBaseURL) == "" {
		return nil, errors.New("api base url is required")
	}
	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	if config.SweepInterval <= 0 {
		config.SweepInterval = timeouts.LivenessTick
	}

	store, err := sqlite.Open(ctx, config.SessionDBPath)
	if err != nil {
		return nil, fmt.Errorf("open session store: %w", err)
	}

	clientOpts := []lingoapi.Option{lingoapi.WithLogger(logger.Named("lingoapi"))}
	if config.APITimeout > 0 {
		clientOpts = append(clientOpts, lingoapi.WithHTTPClient(&http.Client{Timeout: config.APITimeout}))
	}
	client := lingoapi.New(config.APIBaseURL, clientOpts...)
	policy := requestmeta.SchemePolicy{TrustForwardedProto: config.TrustForwardedProto}
	browsers, err := browser.NewManager(browser.Config{
		API:     client,
		Store:   store,
		Jar:     sessioncookie.Jar{Policy: policy},
		IdleTTL: config.SessionIdleTTL,
		Logger:  logger.Named("browser"),
	})
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	handler, err := NewHandler(module.Dependencies{
		Browsers: browsers,
		Reader:   client,
		Policy:   policy,
		Logger:   logger,
	}, store)
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	return &Server{
		httpAddr: httpAddr,
		httpServer: &http.Server{
			Addr:              httpAddr,
			Handler:           handler,
			ReadHeaderTimeout: timeouts.ReadHeader,
		},
		store:         store,
		browsers:      browsers,
		sweepInterval: config.SweepInterval,
		logger:        logger,
	}, nil
}

// Handler returns the server's root handler.
func (s *Server) Handler() http.Handler {
	if s == nil || s.httpServer == nil {
		return nil
	}
	return s.httpServer.Handler
}

// ListenAndServe listens on the configured address and serves until ctx
// is cancelled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if s == nil {
		return errors.New("web server is nil")
	}
	ln, err := net.Listen("tcp", s.httpAddr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.httpAddr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves HTTP on ln and sweeps idle sessions until ctx is cancelled,
// then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	if s == nil {
		return errors.New("web server is nil")
	}
	if ctx == nil {
		return errors.New("context is required")
	}
	if ln == nil {
		return errors.New("listener is required")
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("web listening", zap.String("addr", ln.Addr().String()))
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve http: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		s.sweep(gctx)
		return nil
	})
	return g.Wait()
}

func (s *Server) sweep(ctx context.Context) {
	ticker := time.NewTicker(s.sweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := s.browsers.Sweep(ctx); err != nil && ctx.Err() == nil {
				s.logger.Warn("sweep browser sessions", zap.Error(err))
			}
		}
	}
}

// Close releases the session store.
func (s *Server) Close() {
	if s == nil || s.store == nil {
		return
	}
	if err := s.store.Close(); err != nil {
		s.logger.Warn("close session store", zap.Error(err))
	}
}
