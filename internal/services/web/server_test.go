package web

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/louisbranch/lingo/internal/services/lingoapi/apitest"
	"github.com/louisbranch/lingo/internal/services/web/routepath"
	"github.com/louisbranch/lingo/internal/services/web/webtest"
	"go.uber.org/goleak"
)

func TestNewServerValidatesConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		config Config
	}{
		{name: "missing address", config: Config{APIBaseURL: "http://api.local"}},
		{name: "missing api url", config: Config{HTTPAddr: "localhost:8050"}},
		{name: "missing session db", config: Config{HTTPAddr: "localhost:8050", APIBaseURL: "http://api.local"}},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if _, err := NewServer(context.Background(), tc.config); err == nil {
				t.Fatal("expected config error")
			}
		})
	}
}

func TestNewHandlerServesInfrastructureRoutes(t *testing.T) {
	t.Parallel()

	env := webtest.New(t)
	h, err := NewHandler(env.Deps, env.Store)
	if err != nil {
		t.Fatalf("NewHandler() error = %v", err)
	}

	tests := []struct {
		name        string
		path        string
		wantStatus  int
		wantContent string
	}{
		{name: "health", path: routepath.Health, wantStatus: http.StatusOK, wantContent: "application/json"},
		{name: "stylesheet", path: routepath.StaticPrefix + "lingo.css", wantStatus: http.StatusOK, wantContent: "text/css"},
		{name: "dashboard", path: routepath.Root, wantStatus: http.StatusOK, wantContent: "text/html"},
		{name: "unknown page", path: "/nowhere", wantStatus: http.StatusNotFound, wantContent: "text/html"},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, webtest.Request(http.MethodGet, tc.path, nil))
			if rr.Code != tc.wantStatus {
				t.Fatalf("status = %d, want %d", rr.Code, tc.wantStatus)
			}
			if got := rr.Header().Get("Content-Type"); !strings.HasPrefix(got, tc.wantContent) {
				t.Fatalf("Content-Type = %q, want %q", got, tc.wantContent)
			}
			if got := rr.Header().Get("X-Request-ID"); !strings.HasPrefix(got, "web-") {
				t.Fatalf("X-Request-ID = %q, want web- prefix", got)
			}
		})
	}
}

type failingPing struct{}

func (failingPing) Ping(context.Context) error { return errors.New("disk gone") }

func TestHealthReportsStorageFailure(t *testing.T) {
	t.Parallel()

	env := webtest.New(t)
	h, err := NewHandler(env.Deps, failingPing{})
	if err != nil {
		t.Fatalf("NewHandler() error = %v", err)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, webtest.Request(http.MethodGet, routepath.Health, nil))
	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusServiceUnavailable)
	}
}

func TestServeStopsOnCancel(t *testing.T) {
	api := apitest.New(t)
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	server, err := NewServer(context.Background(), Config{
		HTTPAddr:       "127.0.0.1:0",
		APIBaseURL:     api.URL(),
		SessionDBPath:  filepath.Join(t.TempDir(), "lingo-web.db"),
		SessionIdleTTL: time.Hour,
		SweepInterval:  10 * time.Millisecond,
	})
	if err != nil {
		t.Fatalf("NewServer() error = %v", err)
	}
	defer server.Close()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- server.Serve(ctx, ln) }()

	client := &http.Client{Transport: &http.Transport{DisableKeepAlives: true}, Timeout: 5 * time.Second}
	resp, err := client.Get("http://" + ln.Addr().String() + routepath.Health)
	if err != nil {
		cancel()
		t.Fatalf("GET health: %v", err)
	}
	var body map[string]string
	decodeErr := json.NewDecoder(resp.Body).Decode(&body)
	_ = resp.Body.Close()
	if decodeErr != nil || body["status"] != "ok" {
		cancel()
		t.Fatalf("health body = %v, err = %v", body, decodeErr)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Serve() error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Serve() did not stop after cancel")
	}
}
