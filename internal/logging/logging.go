// Package logging builds the zap loggers used by the server and the CLI.
//
// Logs always go to stderr because stdout carries the MCP protocol. The level
// comes from VISION_DIRECTOR_LOG_LEVEL unless the caller forces debug output.
package logging

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// EnvLogLevel selects the log level: debug, info, warn or error.
const EnvLogLevel = "VISION_DIRECTOR_LOG_LEVEL"

// New returns a production logger writing JSON to stderr. verbose forces the
// debug level regardless of the environment.
func New(verbose bool) (*zap.Logger, error) {
	level, err := levelFromEnv(os.Getenv(EnvLogLevel))
	if err != nil {
		return nil, err
	}
	if verbose {
		level = zapcore.DebugLevel
	}

	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(level)
	config.OutputPaths = []string{"stderr"}
	config.ErrorOutputPaths = []string{"stderr"}
	config.EncoderConfig.TimeKey = "ts"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}

// OrNop returns logger, or a no-op logger when logger is nil.
func OrNop(logger *zap.Logger) *zap.Logger {
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

func levelFromEnv(raw string) (zapcore.Level, error) {
	raw = strings.TrimSpace(strings.ToLower(raw))
	if raw == "" {
		return zapcore.InfoLevel, nil
	}
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(raw)); err != nil {
		return zapcore.InfoLevel, fmt.Errorf("invalid %s %q: %w", EnvLogLevel, raw, err)
	}
	return level, nil
}
