// Package telemetry constructs the structured logger shared by every
// core package, replacing ad hoc fmt.Println/log.Printf calls with a
// single zap-backed constructor.
package telemetry

import (
	"go.uber.org/zap"
)

// NewLogger builds a *zap.SugaredLogger for the given level name
// ("debug", "info", "warn", "error"; anything else falls back to
// "info"). Callers that don't care about logging can pass a nil
// *zap.SugaredLogger around; every core package treats a nil logger
// as the package-level no-op returned by Nop().
func NewLogger(level string) *zap.SugaredLogger {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.EncoderConfig.TimeKey = "ts"

	switch level {
	case "debug":
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	case "warn":
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	case "error":
		cfg.Level = zap.NewAtomicLevelAt(zap.ErrorLevel)
	default:
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}

	logger, err := cfg.Build()
	if err != nil {
		// Construction only fails on a malformed config; fall back to
		// a usable logger rather than propagating this to callers that
		// just want to log.
		logger = zap.NewNop()
	}
	return logger.Sugar()
}

// Nop returns a logger that discards everything, used as the fallback
// whenever a package receives a nil logger.
func Nop() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}

// Or returns l if non-nil, otherwise the shared no-op logger. Every
// constructor in this module that accepts a *zap.SugaredLogger calls
// this once and stores the result, normalizing a possibly-zero-value
// dependency in the constructor.
func Or(l *zap.SugaredLogger) *zap.SugaredLogger {
	if l == nil {
		return Nop()
	}
	return l
}
