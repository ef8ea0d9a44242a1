package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var logger *zap.Logger

// LogLevelEnvVar is the environment variable that controls logging verbosity.
// Valid values: "debug", "info", "warn", "error", "off"
const LogLevelEnvVar = "ROON_TUI_LOG"

// DefaultLevel is used when neither a level nor LogLevelEnvVar is set.
const DefaultLevel = "debug"

// DefaultPath returns the log file location, roon-tui.log in the temp directory.
func DefaultPath() string {
	return filepath.Join(os.TempDir(), "roon-tui.log")
}

// ParseLevel maps a level name to a zap level. ok is false for "off".
// Unknown names fall back to info.
func ParseLevel(level string) (lvl zapcore.Level, ok bool) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "off", "none":
		return zapcore.InfoLevel, false
	case "debug":
		return zapcore.DebugLevel, true
	case "info":
		return zapcore.InfoLevel, true
	case "warn", "warning":
		return zapcore.WarnLevel, true
	case "error":
		return zapcore.ErrorLevel, true
	default:
		return zapcore.InfoLevel, true
	}
}

// Initialize creates the global logger writing to path at the given level.
// An empty level falls back to ROON_TUI_LOG, then DefaultLevel; an empty path
// uses DefaultPath. The terminal belongs to the UI, so nothing is ever written
// to stdout or stderr.
//
// On error the global logger is left as a no-op so callers may carry on.
func Initialize(path, level string) error {
	logger = zap.NewNop()

	if level == "" {
		level = os.Getenv(LogLevelEnvVar)
	}
	if level == "" {
		level = DefaultLevel
	}
	zapLevel, enabled := ParseLevel(level)
	if !enabled {
		return nil
	}

	if path == "" {
		path = DefaultPath()
	}

	config := zap.Config{
		Level:            zap.NewAtomicLevelAt(zapLevel),
		Development:      false,
		Encoding:         "console",
		EncoderConfig:    zap.NewDevelopmentEncoderConfig(),
		OutputPaths:      []string{path},
		ErrorOutputPaths: []string{path},
	}

	config.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.EncoderConfig.EncodeCaller = zapcore.ShortCallerEncoder

	built, err := config.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	logger = built.Named("roon_tui")

	return nil
}

// GetLogger returns the global logger instance
func GetLogger() *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return logger
}

// Info logs an info message
func Info(msg string, fields ...zap.Field) {
	GetLogger().Info(msg, fields...)
}

// Debug logs a debug message
func Debug(msg string, fields ...zap.Field) {
	GetLogger().Debug(msg, fields...)
}

// Warn logs a warning message
func Warn(msg string, fields ...zap.Field) {
	GetLogger().Warn(msg, fields...)
}

// Error logs an error message
func Error(msg string, fields ...zap.Field) {
	GetLogger().Error(msg, fields...)
}

// Sync flushes any buffered log entries
func Sync() {
	if logger != nil {
		_ = logger.Sync()
	}
}
