package mcp

import (
	"flag"
	"io"
	"testing"
	"time"
)

func TestParseConfigDefaults(t *testing.T) {
	t.Setenv("LINGO_MCP_API_TOKEN", "tok")

	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.APIServerURL != "http://localhost:8000" {
		t.Fatalf("APIServerURL = %q, want default", cfg.APIServerURL)
	}
	if cfg.APIToken != "tok" {
		t.Fatalf("APIToken = %q, want tok", cfg.APIToken)
	}
	if cfg.APITimeout != 10*time.Second {
		t.Fatalf("APITimeout = %v, want 10s", cfg.APITimeout)
	}
	if cfg.LogLevel != "info" {
		t.Fatalf("LogLevel = %q, want info", cfg.LogLevel)
	}
}

func TestParseConfigOverrides(t *testing.T) {
	t.Setenv("API_SERVER_URL", "https://env.lingo.test/")
	t.Setenv("LINGO_MCP_API_TOKEN", "env-tok")

	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)
	args := []string{"-api-token", " flag-tok ", "-api-timeout", "3s"}
	cfg, err := ParseConfig(fs, args)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.APIServerURL != "https://env.lingo.test" {
		t.Fatalf("APIServerURL = %q, want https://env.lingo.test", cfg.APIServerURL)
	}
	if cfg.APIToken != "flag-tok" {
		t.Fatalf("APIToken = %q, want flag-tok", cfg.APIToken)
	}
	if cfg.APITimeout != 3*time.Second {
		t.Fatalf("APITimeout = %v, want 3s", cfg.APITimeout)
	}
}

func TestParseConfigRequiresToken(t *testing.T) {
	t.Setenv("LINGO_MCP_API_TOKEN", "")

	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	if _, err := ParseConfig(fs, nil); err == nil {
		t.Fatal("expected error without token")
	}
}
