package logger

import (
	"go.uber.org/zap"
)

// New builds the application logger. Production emits JSON, everything else
// gets the human readable development encoder.
func New(env string, debug bool) (*zap.Logger, error) {
	if env == "production" {
		cfg := zap.NewProductionConfig()
		if debug {
			cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
		}
		return cfg.Build()
	}
	return zap.NewDevelopment()
}

// Must is New that falls back to a no-op logger instead of failing.
func Must(env string, debug bool) *zap.Logger {
	l, err := New(env, debug)
	if err != nil {
		return zap.NewNop()
	}
	return l
}
