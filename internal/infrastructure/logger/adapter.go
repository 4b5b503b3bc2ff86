package logger

import (
	"fmt"
	"sort"

	"go.uber.org/zap"

	"element-inspector/internal/application/port/output"
)

var _ output.LoggerPort = (*LoggerAdapter)(nil)

type Config struct {
	Level string
	// Output: пути zap ("stderr", "stdout" или файл). По умолчанию stderr:
	// отчёт уходит в stdout и не должен смешиваться с логами.
	Output []string
}

func DefaultConfig() Config {
	return Config{
		Level:  "info",
		Output: []string{"stderr"},
	}
}

type LoggerAdapter struct {
	base  *zap.Logger
	sugar *zap.SugaredLogger
}

func NewLoggerAdapter(cfg Config) (*LoggerAdapter, error) {
	level, err := zap.ParseAtomicLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("parse log level %q: %w", cfg.Level, err)
	}

	zcfg := zap.NewProductionConfig()
	zcfg.Level = level
	zcfg.Encoding = "json"
	zcfg.DisableStacktrace = true
	if len(cfg.Output) > 0 {
		zcfg.OutputPaths = cfg.Output
		zcfg.ErrorOutputPaths = cfg.Output
	}

	base, err := zcfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return NewFromZap(base), nil
}

// NewFromZap оборачивает готовый *zap.Logger (в тестах observer).
func NewFromZap(base *zap.Logger) *LoggerAdapter {
	return &LoggerAdapter{
		base:  base,
		sugar: base.Sugar(),
	}
}

func NewNop() *LoggerAdapter {
	return NewFromZap(zap.NewNop())
}

func (l *LoggerAdapter) Debug(msg string, args ...any) {
	l.sugar.Debugw(msg, args...)
}

func (l *LoggerAdapter) Info(msg string, args ...any) {
	l.sugar.Infow(msg, args...)
}

func (l *LoggerAdapter) Warn(msg string, args ...any) {
	l.sugar.Warnw(msg, args...)
}

func (l *LoggerAdapter) Error(msg string, args ...any) {
	l.sugar.Errorw(msg, args...)
}

func (l *LoggerAdapter) WithField(key string, value any) output.LoggerPort {
	return NewFromZap(l.base.With(zap.Any(key, value)))
}

func (l *LoggerAdapter) WithFields(fields map[string]any) output.LoggerPort {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	zf := make([]zap.Field, 0, len(keys))
	for _, k := range keys {
		zf = append(zf, zap.Any(k, fields[k]))
	}
	return NewFromZap(l.base.With(zf...))
}

// Close сбрасывает буферы. Ошибку Sync на stderr/консоли игнорируем: это известное поведение zap.
func (l *LoggerAdapter) Close() error {
	_ = l.base.Sync()
	return nil
}
