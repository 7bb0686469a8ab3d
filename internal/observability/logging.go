// Package observability provides logging and metrics for the client.
package observability

import (
	"context"
	"log/slog"
	"os"

	"github.com/google/uuid"
)

// Logger wraps slog.Logger to provide specialized logging methods.
type Logger struct {
	*slog.Logger
}

// GlobalLogger is the default logger instance for the application.
var GlobalLogger *Logger

func init() {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	GlobalLogger = &Logger{Logger: slog.New(handler)}
}

// LogContextKey is a type for context keys used by the logging package.
type LogContextKey string

// CorrelationID tags every log line that belongs to one refresh cycle.
const CorrelationID LogContextKey = "correlation_id"

// GenerateCorrelationID creates a new unique correlation ID.
func GenerateCorrelationID() string {
	return uuid.NewString()
}

// WithCorrelationID returns a new context with the given correlation ID.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, CorrelationID, id)
}

// ExtractCorrelationID retrieves the correlation ID from the context.
func ExtractCorrelationID(ctx context.Context) string {
	if id := ctx.Value(CorrelationID); id != nil {
		return id.(string)
	}
	return ""
}

// FetchLogger provides structured logging for backend fetch cycles
// (aggregator builds, badge polls).
type FetchLogger struct {
	component string
	logger    *Logger
}

// NewFetchLogger creates a FetchLogger for the given component name.
func NewFetchLogger(component string) *FetchLogger {
	return &FetchLogger{
		component: component,
		logger:    GlobalLogger,
	}
}

// LogCycleStart logs the beginning of a refresh cycle.
func (l *FetchLogger) LogCycleStart(ctx context.Context, fields map[string]interface{}) {
	attrs := []any{
		slog.String("component", l.component),
		slog.String("event", "cycle_start"),
		slog.String("correlation_id", ExtractCorrelationID(ctx)),
	}
	for k, v := range fields {
		attrs = append(attrs, slog.Any(k, v))
	}
	l.logger.InfoContext(ctx, "refresh cycle started", attrs...)
}

// LogCycleEnd logs the completion of a refresh cycle.
func (l *FetchLogger) LogCycleEnd(ctx context.Context, fields map[string]interface{}) {
	attrs := []any{
		slog.String("component", l.component),
		slog.String("event", "cycle_end"),
		slog.String("correlation_id", ExtractCorrelationID(ctx)),
	}
	for k, v := range fields {
		attrs = append(attrs, slog.Any(k, v))
	}
	l.logger.InfoContext(ctx, "refresh cycle completed", attrs...)
}

// LogSourceSkipped logs a per-source fetch failure that the cycle tolerated.
func (l *FetchLogger) LogSourceSkipped(ctx context.Context, source string, err error) {
	l.logger.WarnContext(ctx, "source fetch failed, skipping",
		slog.String("component", l.component),
		slog.String("source", source),
		slog.String("error", err.Error()),
		slog.String("correlation_id", ExtractCorrelationID(ctx)),
	)
}

// LogError logs a cycle-level error.
func (l *FetchLogger) LogError(ctx context.Context, err error, operation string) {
	l.logger.ErrorContext(ctx, "fetch error",
		slog.String("component", l.component),
		slog.String("operation", operation),
		slog.String("error", err.Error()),
		slog.String("correlation_id", ExtractCorrelationID(ctx)),
	)
}

// SessionLogger provides structured logging for session lifecycle events.
type SessionLogger struct {
	logger *Logger
}

// NewSessionLogger creates a new SessionLogger.
func NewSessionLogger() *SessionLogger {
	return &SessionLogger{logger: GlobalLogger}
}

// LogLogin logs a successful login or restore.
func (l *SessionLogger) LogLogin(userID uint, username, origin string) {
	l.logger.Info("session established",
		slog.Uint64("user_id", uint64(userID)),
		slog.String("username", username),
		slog.String("origin", origin),
	)
}

// LogLogout logs a session teardown.
func (l *SessionLogger) LogLogout(userID uint) {
	l.logger.Info("session cleared",
		slog.Uint64("user_id", uint64(userID)),
	)
}

// LogRestoreSkipped logs why a persisted session was not restored.
func (l *SessionLogger) LogRestoreSkipped(reason string) {
	l.logger.Warn("session restore skipped",
		slog.String("reason", reason),
	)
}

// LogTokenExpired warns that a restored access token is already past its
// expiry claim. There is no refresh flow; requests made with it will fail.
func (l *SessionLogger) LogTokenExpired(userID uint) {
	l.logger.Warn("restored access token is expired",
		slog.Uint64("user_id", uint64(userID)),
	)
}
