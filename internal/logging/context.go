package logging

import (
	"context"

	"github.com/rs/zerolog"
)

// WithContext attaches logger to ctx so downstream components can retrieve it
// via FromContext.
func WithContext(ctx context.Context, logger zerolog.Logger) context.Context {
	return logger.WithContext(ctx)
}

// FromContext returns the logger attached to ctx. When none was attached,
// zerolog hands back a disabled logger, so callers never need a nil check.
func FromContext(ctx context.Context) zerolog.Logger {
	return *zerolog.Ctx(ctx)
}
