package logging

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds the JSON production logger. Unknown levels fall back to info.
func New(level string) (*zap.Logger, error) {
	return NewWithService(level, "")
}

// NewWithService is New with a constant "service" field on every entry.
func NewWithService(level, service string) (*zap.Logger, error) {
	lvl := zapcore.InfoLevel
	if err := lvl.Set(strings.ToLower(strings.TrimSpace(level))); err != nil {
		lvl = zapcore.InfoLevel
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.Encoding = "json"
	cfg.EncoderConfig.TimeKey = "ts"
	if service = strings.TrimSpace(service); service != "" {
		cfg.InitialFields = map[string]any{"service": service}
	}
	return cfg.Build()
}
