// Package logger wraps log/slog with request-scoped fields.
package logger

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"
)

type ctxKey string

const (
	requestIDKey ctxKey = "request_id"
	userIDKey    ctxKey = "user_id"
)

var (
	mu            sync.RWMutex
	defaultLogger = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
)

// Init replaces the process logger. format is "json" or "text".
func Init(level, format string) {
	opts := &slog.HandlerOptions{Level: parseLevel(level)}

	var handler slog.Handler
	if strings.EqualFold(format, "text") {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	l := slog.New(handler)
	mu.Lock()
	defaultLogger = l
	mu.Unlock()
	slog.SetDefault(l)
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func Default() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return defaultLogger
}

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

func WithUserID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, userIDKey, id)
}

// RequestID returns the id stored by WithRequestID, or "".
func RequestID(ctx context.Context) string {
	rid, _ := ctx.Value(requestIDKey).(string)
	return rid
}

// FromContext returns the default logger enriched with request_id and user_id.
func FromContext(ctx context.Context) *slog.Logger {
	l := Default()
	if rid := RequestID(ctx); rid != "" {
		l = l.With("request_id", rid)
	}
	if uid, ok := ctx.Value(userIDKey).(string); ok && uid != "" {
		l = l.With("user_id", uid)
	}
	return l
}

// Logger is an operation-scoped logger used by services.
type Logger struct {
	base *slog.Logger
}

// NewLogger creates a logger carrying the request fields found in ctx.
func NewLogger(ctx context.Context) *Logger {
	return &Logger{base: FromContext(ctx)}
}

// With returns a copy carrying extra attributes (provider, task, project_id...).
func (l *Logger) With(args ...any) *Logger {
	return &Logger{base: l.base.With(args...)}
}

func (l *Logger) LogError(operation string, err error) {
	l.base.Error("operation failed", "operation", operation, "error", err)
}

func (l *Logger) LogInfof(operation string, format string, args ...any) {
	l.base.Info(fmt.Sprintf(format, args...), "operation", operation)
}

func (l *Logger) LogWarn(operation string, err error) {
	l.base.Warn("operation degraded", "operation", operation, "error", err)
}

func (l *Logger) LogWarnf(operation string, format string, args ...any) {
	l.base.Warn(fmt.Sprintf(format, args...), "operation", operation)
}
