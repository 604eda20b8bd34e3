package config

import (
	"strings"
	"testing"
	"time"
)

type envTestConfig struct {
	Port    int           `env:"LINGO_TEST_PORT" envDefault:"123"`
	Timeout time.Duration `env:"LINGO_TEST_TIMEOUT" envDefault:"2s"`
}

func TestParseEnvDefaults(t *testing.T) {
	var cfg envTestConfig

	if err := ParseEnv(&cfg); err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if cfg.Port != 123 {
		t.Fatalf("expected default port 123, got %d", cfg.Port)
	}
}

func TestParseEnvError(t *testing.T) {
	var cfg envTestConfig
	t.Setenv("LINGO_TEST_PORT", "not-an-int")

	err := ParseEnv(&cfg)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env prefix, got %v", err)
	}
}

func TestParseEnvironUsesProvidedPairs(t *testing.T) {
	t.Parallel()

	var cfg envTestConfig
	err := ParseEnviron(&cfg, []string{"LINGO_TEST_PORT=9000", "LINGO_TEST_TIMEOUT=5s", "malformed", "=ignored"})
	if err != nil {
		t.Fatalf("ParseEnviron() error = %v", err)
	}
	if cfg.Port != 9000 {
		t.Fatalf("Port = %d, want %d", cfg.Port, 9000)
	}
	if cfg.Timeout != 5*time.Second {
		t.Fatalf("Timeout = %v, want %v", cfg.Timeout, 5*time.Second)
	}
}

func TestParseEnvironFallsBackToDefaults(t *testing.T) {
	t.Parallel()

	var cfg envTestConfig
	if err := ParseEnviron(&cfg, nil); err != nil {
		t.Fatalf("ParseEnviron() error = %v", err)
	}
	if cfg.Port != 123 || cfg.Timeout != 2*time.Second {
		t.Fatalf("cfg = %+v, want defaults", cfg)
	}
}
