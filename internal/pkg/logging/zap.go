package logging

import (
	"fmt"
	"strings"

	"github.com/go-kratos/kratos/v2/log"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Formats accepted by New.
const (
	FormatJSON    = "json"
	FormatConsole = "console"
)

// ZapLogger adapts a zap logger to the kratos log.Logger interface.
type ZapLogger struct {
	log *zap.Logger
}

var _ log.Logger = (*ZapLogger)(nil)

// NewZapLogger wraps l.
func NewZapLogger(l *zap.Logger) *ZapLogger {
	return &ZapLogger{log: l}
}

// Log implements log.Logger. Key-value pairs become zap fields.
func (l *ZapLogger) Log(level log.Level, keyvals ...any) error {
	if len(keyvals) == 0 || len(keyvals)%2 != 0 {
		l.log.Warn(fmt.Sprint("keyvals must appear in pairs: ", keyvals))
		return nil
	}

	fields := make([]zap.Field, 0, len(keyvals)/2)
	for i := 0; i < len(keyvals); i += 2 {
		fields = append(fields, zap.Any(fmt.Sprint(keyvals[i]), keyvals[i+1]))
	}

	switch level {
	case log.LevelDebug:
		l.log.Debug("", fields...)
	case log.LevelInfo:
		l.log.Info("", fields...)
	case log.LevelWarn:
		l.log.Warn("", fields...)
	case log.LevelError:
		l.log.Error("", fields...)
	case log.LevelFatal:
		l.log.Fatal("", fields...)
	}
	return nil
}

// Sync flushes buffered entries.
func (l *ZapLogger) Sync() error {
	return l.log.Sync()
}

// New builds a zap-backed logger writing to stderr. An empty level means info,
// an empty format means json.
func New(level, format string) (*ZapLogger, error) {
	lvl := zapcore.InfoLevel
	if level != "" {
		parsed, err := zapcore.ParseLevel(level)
		if err != nil {
			return nil, fmt.Errorf("logging: %w", err)
		}
		lvl = parsed
	}

	var cfg zap.Config
	switch strings.ToLower(format) {
	case "", FormatJSON:
		cfg = zap.NewProductionConfig()
	case FormatConsole:
		cfg = zap.NewDevelopmentConfig()
	default:
		return nil, fmt.Errorf("logging: unknown format %q", format)
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.DisableCaller = true

	l, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("logging: %w", err)
	}
	return NewZapLogger(l), nil
}
