// Package observability builds the structured logger the rest of the
// service depends on.
package observability

import (
	"fmt"

	"github.com/upb/auth-gateway/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger builds a zap logger from the observability configuration.
// LogFormat selects json or console encoding; unknown levels fall back
// to info rather than failing startup.
func NewLogger(cfg config.ObservabilityConfig, environment string) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if parsed, err := zapcore.ParseLevel(cfg.LogLevel); err == nil {
		level = parsed
	}

	var zapCfg zap.Config
	if environment == "production" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
	}

	zapCfg.Level = zap.NewAtomicLevelAt(level)
	switch cfg.LogFormat {
	case "json":
		zapCfg.Encoding = "json"
		zapCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	case "text", "console":
		zapCfg.Encoding = "console"
	default:
		return nil, fmt.Errorf("unsupported log format: %q", cfg.LogFormat)
	}

	logger, err := zapCfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}

	return logger, nil
}
