// Package observability provides logger construction for the game binaries.
package observability

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/cory-johannsen/rasaratnakara/internal/config"
)

// NewLogger creates a structured logger from the given logging configuration.
// Output "discard" yields a no-op logger; any value other than "stderr"
// is treated as a file path that is created or appended to.
//
// Precondition: cfg.Level must be one of "debug", "info", "warn", "error".
// Precondition: cfg.Format must be "json" or "console".
// Postcondition: Returns a configured zap.Logger or a non-nil error.
func NewLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("parsing log level %q: %w", cfg.Level, err)
	}

	var zapCfg zap.Config
	switch cfg.Format {
	case "json":
		zapCfg = zap.NewProductionConfig()
	case "console":
		zapCfg = zap.NewDevelopmentConfig()
	default:
		return nil, fmt.Errorf("unknown log format %q", cfg.Format)
	}

	switch cfg.Output {
	case "discard":
		return zap.NewNop(), nil
	case "", "stderr":
		zapCfg.OutputPaths = []string{"stderr"}
	default:
		zapCfg.OutputPaths = []string{cfg.Output}
	}
	zapCfg.ErrorOutputPaths = []string{"stderr"}

	zapCfg.Level = zap.NewAtomicLevelAt(level)
	zapCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := zapCfg.Build()
	if err != nil {
		return nil, fmt.Errorf("building logger: %w", err)
	}
	return logger, nil
}
