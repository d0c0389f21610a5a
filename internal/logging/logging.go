// Package logging configures logrus and carries request-scoped loggers through contexts.
package logging

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// Config holds logger settings.
type Config struct {
	// Level is a logrus level name (e.g., "debug", "info")
	Level string

	// Format is "text" or "json"
	Format string

	// Output defaults to stderr
	Output io.Writer
}

type contextKey string

const (
	loggerKey    contextKey = "focus.logging.logger"
	requestIDKey contextKey = "focus.logging.request_id"
)

// New creates a logger from cfg.
func New(cfg Config) (*logrus.Logger, error) {
	logger := logrus.New()

	level := cfg.Level
	if level == "" {
		level = "info"
	}
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}
	logger.SetLevel(parsed)

	switch strings.ToLower(cfg.Format) {
	case "", "text":
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{})
	default:
		return nil, fmt.Errorf("unsupported log format %q", cfg.Format)
	}

	if cfg.Output != nil {
		logger.SetOutput(cfg.Output)
	} else {
		logger.SetOutput(os.Stderr)
	}

	return logger, nil
}

// Discard returns a logger that drops every entry.
func Discard() *logrus.Entry {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logrus.NewEntry(logger)
}

// ContextWithLogger returns a context carrying logger.
func ContextWithLogger(ctx context.Context, logger *logrus.Entry) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// LoggerFromContext returns the logger stored in ctx, or the standard logger.
func LoggerFromContext(ctx context.Context) *logrus.Entry {
	if logger, ok := ctx.Value(loggerKey).(*logrus.Entry); ok && logger != nil {
		return logger
	}
	return logrus.NewEntry(logrus.StandardLogger())
}

// ContextWithRequestID stores a request correlation ID and tags the context logger with it.
func ContextWithRequestID(ctx context.Context, requestID string) context.Context {
	ctx = context.WithValue(ctx, requestIDKey, requestID)
	return ContextWithLogger(ctx, LoggerFromContext(ctx).WithField("request_id", requestID))
}

// RequestIDFromContext returns the request ID stored in ctx, if any.
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// WithTool returns a logger tagged with an MCP tool name.
func WithTool(base *logrus.Entry, toolName string) *logrus.Entry {
	return base.WithField("tool", toolName)
}

// RequestStart logs the beginning of an operation.
func RequestStart(ctx context.Context, operation string, fields logrus.Fields) {
	LoggerFromContext(ctx).WithField("operation", operation).WithFields(fields).Debug("Request started")
}

// RequestEnd logs the outcome of an operation.
func RequestEnd(ctx context.Context, operation string, success bool, duration time.Duration, err error) {
	entry := LoggerFromContext(ctx).WithFields(logrus.Fields{
		"operation":   operation,
		"success":     success,
		"duration_ms": duration.Milliseconds(),
	})
	if err != nil {
		entry.WithError(err).Warn("Request failed")
		return
	}
	entry.Info("Request completed")
}
