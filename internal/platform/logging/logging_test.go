package logging

import (
	"bytes"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    zapcore.Level
		wantErr bool
	}{
		{input: "", want: zapcore.InfoLevel},
		{input: "debug", want: zapcore.DebugLevel},
		{input: " WARN ", want: zapcore.WarnLevel},
		{input: "loud", wantErr: true},
	}
	for _, tc := range tests {
		got, err := ParseLevel(tc.input)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("ParseLevel(%q) error = nil, want error", tc.input)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseLevel(%q) error = %v", tc.input, err)
		}
		if got != tc.want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", tc.input, got, tc.want)
		}
	}
}

func TestNewWriterFiltersBelowLevel(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger, err := NewWriter(&buf, "warn")
	if err != nil {
		t.Fatalf("NewWriter() error = %v", err)
	}
	logger.Info("hidden")
	logger.Warn("shown", zap.String("route", "/glossary"))
	_ = logger.Sync()

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("info line leaked at warn level: %q", out)
	}
	if !strings.Contains(out, `"route":"/glossary"`) {
		t.Fatalf("missing structured field: %q", out)
	}
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	t.Parallel()

	if _, err := New("verbose"); err == nil {
		t.Fatal("expected level error")
	}
}

func TestNewWriterRequiresWriter(t *testing.T) {
	t.Parallel()

	if _, err := NewWriter(nil, ""); err == nil {
		t.Fatal("expected writer error")
	}
}
