// Package logger builds the zap loggers used across hindsight.
package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New creates the process logger. Development mode uses the colored
// console encoder at debug level; production mode emits JSON with
// RFC 3339 timestamps. Backtest runs are short-lived batch work, so
// production logging skips stacktraces and sampling.
func New(development bool) (*zap.Logger, error) {
	var cfg zap.Config

	if development {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		cfg = zap.NewProductionConfig()
		cfg.EncoderConfig.EncodeTime = zapcore.RFC3339TimeEncoder
		cfg.DisableStacktrace = true
		cfg.Sampling = nil
	}

	return cfg.Build()
}

// Must is New for contexts where a missing logger is fatal.
func Must(development bool) *zap.Logger {
	log, err := New(development)
	if err != nil {
		panic(err)
	}
	return log
}
