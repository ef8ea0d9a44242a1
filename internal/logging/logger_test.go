package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    zapcore.Level
		enabled bool
	}{
		{"debug", zapcore.DebugLevel, true},
		{"INFO", zapcore.InfoLevel, true},
		{"warn", zapcore.WarnLevel, true},
		{"error", zapcore.ErrorLevel, true},
		{"off", zapcore.InfoLevel, false},
		{"chatty", zapcore.InfoLevel, true},
	}
	for _, tt := range tests {
		got, enabled := ParseLevel(tt.in)
		if got != tt.want || enabled != tt.enabled {
			t.Errorf("ParseLevel(%q) = %v, %v, want %v, %v", tt.in, got, enabled, tt.want, tt.enabled)
		}
	}
}

func TestInitialize_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roon-tui.log")
	if err := Initialize(path, "debug"); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}
	t.Cleanup(func() { logger = nil })

	Debug("refreshed zones", zap.Int("count", 2))
	Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if !strings.Contains(string(data), "refreshed zones") {
		t.Errorf("log file = %q, want it to contain the message", data)
	}
}

func TestInitialize_EnvLevel(t *testing.T) {
	t.Setenv(LogLevelEnvVar, "error")
	path := filepath.Join(t.TempDir(), "roon-tui.log")
	if err := Initialize(path, ""); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}
	t.Cleanup(func() { logger = nil })

	if GetLogger().Core().Enabled(zapcore.WarnLevel) {
		t.Error("warn should be filtered when ROON_TUI_LOG=error")
	}
	if !GetLogger().Core().Enabled(zapcore.ErrorLevel) {
		t.Error("error should be enabled when ROON_TUI_LOG=error")
	}
}

func TestInitialize_UnwritablePathFallsBackToNop(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing-dir", "nested", "roon-tui.log")
	if err := Initialize(path, "debug"); err == nil {
		t.Error("Initialize() error = nil, want failure for missing directory")
	}
	t.Cleanup(func() { logger = nil })

	// Must not panic.
	Error("still fine")
	if GetLogger().Core().Enabled(zapcore.ErrorLevel) {
		t.Error("fallback logger should be a no-op")
	}
}

func TestInitialize_Off(t *testing.T) {
	if err := Initialize(filepath.Join(t.TempDir(), "x.log"), "off"); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}
	t.Cleanup(func() { logger = nil })

	if GetLogger().Core().Enabled(zapcore.ErrorLevel) {
		t.Error("logger should be disabled for level off")
	}
}
