// Package logging builds the zap loggers shared by the demo, the benchmark driver and
// the fx engine.
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config selects the log level and destination.
type Config struct {
	// Level is one of debug, info, warn, error. Empty means warn.
	Level string
	// File redirects output; empty logs to stderr.
	File string
	// ShowCaller adds file:line to each entry.
	ShowCaller bool
}

// New builds a development-style sugared logger.
func New(c Config) (*zap.SugaredLogger, error) {
	config := zap.NewDevelopmentConfig()
	config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	switch c.Level {
	case "debug":
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	case "info":
		config.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	case "warn", "":
		config.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	case "error":
		config.Level = zap.NewAtomicLevelAt(zapcore.ErrorLevel)
	default:
		return nil, fmt.Errorf("unknown log level %q", c.Level)
	}
	config.EncoderConfig.StacktraceKey = ""
	if !c.ShowCaller {
		config.EncoderConfig.CallerKey = ""
	}
	if c.File != "" {
		config.OutputPaths = []string{c.File}
		config.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	}

	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return logger.Sugar(), nil
}

// Nop returns a logger that discards everything.
func Nop() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}

// OrNop returns l, or a no-op logger when l is nil.
func OrNop(l *zap.SugaredLogger) *zap.SugaredLogger {
	if l == nil {
		return Nop()
	}
	return l
}
