// Package logger builds the service-wide slog logger.
package logger

import (
	"log/slog"
	"os"
)

// New creates a slog.Logger: JSON in deployed environments for log
// aggregation, text for local development.
func New() *slog.Logger {
	env := os.Getenv("ENV")
	if env == "" || env == "local" {
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
}

// NewWithServiceContext returns New() with service identity attributes
// attached to every record.
func NewWithServiceContext(serviceName, version string) *slog.Logger {
	return New().With(
		slog.String("service", serviceName),
		slog.String("version", version),
	)
}
