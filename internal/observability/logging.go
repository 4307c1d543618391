// Package observability provides logging utilities for the service.
package observability

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/cory-johannsen/menagerie/internal/config"
)

// serviceName tags every log line so aggregated logs from the worldserver
// and its tooling binaries stay attributable.
const serviceName = "menagerie"

// NewLogger creates a structured logger from the given logging configuration.
// Every entry carries a "service" field; use Component for per-subsystem
// child loggers.
//
// Precondition: cfg.Level must be one of "debug", "info", "warn", "error".
// Precondition: cfg.Format must be "json" or "console".
// Postcondition: returns a configured zap.Logger or a non-nil error.
func NewLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("parsing log level %q: %w", cfg.Level, err)
	}

	var zapCfg zap.Config
	switch cfg.Format {
	case "json":
		zapCfg = zap.NewProductionConfig()
		zapCfg.InitialFields = map[string]any{"service": serviceName}
	case "console":
		// Console output is for local development; skip the service tag
		// and sampling so every line of a content-debugging session shows.
		zapCfg = zap.NewDevelopmentConfig()
	default:
		return nil, fmt.Errorf("unknown log format %q", cfg.Format)
	}

	zapCfg.Level = zap.NewAtomicLevelAt(level)
	zapCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := zapCfg.Build()
	if err != nil {
		return nil, fmt.Errorf("building logger: %w", err)
	}
	return logger, nil
}

// Component returns a child logger scoped to one subsystem (unlock,
// encounter, api, storage). The component name lands in the "logger" field.
func Component(logger *zap.Logger, name string) *zap.Logger {
	return logger.Named(name)
}
