package logger

import (
	"context"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// requestIDKey matches the string key the request-id middleware stores on
// the request context.
const requestIDKey = "request_id"

var (
	log  *zap.Logger
	once sync.Once
)

// Init builds the process-wide logger. "development" selects the colored
// console encoder; anything else gets production JSON. Safe to call more
// than once; only the first call wins.
func Init(env string) {
	once.Do(func() {
		cfg := zap.NewProductionConfig()
		cfg.EncoderConfig.TimeKey = "timestamp"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		if env == "development" {
			cfg = zap.NewDevelopmentConfig()
			cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		}

		l, err := cfg.Build(zap.AddCallerSkip(1))
		if err != nil {
			panic(err)
		}
		log = l
	})
}

// WithContext returns the logger annotated with the request id, when the
// context carries one.
func WithContext(ctx context.Context) *zap.Logger {
	if ctx == nil {
		return log
	}
	if id, ok := ctx.Value(requestIDKey).(string); ok && id != "" {
		return log.With(zap.String("request_id", id))
	}
	return log
}

// Debug logs at DebugLevel with context fields
func Debug(ctx context.Context, msg string, fields ...zap.Field) {
	WithContext(ctx).Debug(msg, fields...)
}

// Info logs at InfoLevel with context fields
func Info(ctx context.Context, msg string, fields ...zap.Field) {
	WithContext(ctx).Info(msg, fields...)
}

// Warn logs at WarnLevel with context fields
func Warn(ctx context.Context, msg string, fields ...zap.Field) {
	WithContext(ctx).Warn(msg, fields...)
}

// Error logs at ErrorLevel with context fields
func Error(ctx context.Context, msg string, fields ...zap.Field) {
	WithContext(ctx).Error(msg, fields...)
}
