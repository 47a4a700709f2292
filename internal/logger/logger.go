// Package logger builds the process logger.
package logger

import (
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Environment selects the baseline logger profile.
type Environment string

const (
	EnvironmentProduction  Environment = "production"
	EnvironmentDevelopment Environment = "development"
	EnvironmentLocal       Environment = "local"
)

// Config holds the logger inputs.
type Config struct {
	Environment Environment
	Level       string // overrides the profile level when set
}

// New builds a JSON logger writing to stderr.
func New(cfg Config) (*zap.Logger, error) {
	level, err := resolveLevel(cfg)
	if err != nil {
		return nil, err
	}

	base := buildConfig(cfg.Environment)
	base.Level = level
	base.DisableStacktrace = true

	l, err := base.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return l, nil
}

// NewWriter builds a logger with the same encoding that writes to w.
func NewWriter(w io.Writer, cfg Config) (*zap.Logger, error) {
	level, err := resolveLevel(cfg)
	if err != nil {
		return nil, err
	}
	enc := zapcore.NewJSONEncoder(buildConfig(cfg.Environment).EncoderConfig)
	return zap.New(zapcore.NewCore(enc, zapcore.AddSync(w), level)), nil
}

func resolveLevel(cfg Config) (zap.AtomicLevel, error) {
	if strings.TrimSpace(cfg.Level) != "" {
		var parsed zapcore.Level
		if err := parsed.Set(cfg.Level); err != nil {
			return zap.AtomicLevel{}, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
		}
		return zap.NewAtomicLevelAt(parsed), nil
	}

	switch cfg.Environment {
	case EnvironmentProduction:
		return zap.NewAtomicLevelAt(zapcore.InfoLevel), nil
	case EnvironmentDevelopment, EnvironmentLocal:
		return zap.NewAtomicLevelAt(zapcore.DebugLevel), nil
	default:
		return zap.AtomicLevel{}, fmt.Errorf("invalid environment %q", cfg.Environment)
	}
}

func buildConfig(env Environment) zap.Config {
	cfg := zap.NewProductionConfig()
	if env == EnvironmentDevelopment || env == EnvironmentLocal {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Encoding = "json"
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	return cfg
}
