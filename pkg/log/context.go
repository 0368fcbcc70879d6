package log

import (
	"context"

	"github.com/rs/zerolog"
)

type ctxKey struct{}

// WithLogger stores a logger in the context.
func WithLogger(ctx context.Context, logger zerolog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, logger)
}

// Ctx returns the context logger, or the global logger when none is set.
func Ctx(ctx context.Context) zerolog.Logger {
	if l, ok := ctx.Value(ctxKey{}).(zerolog.Logger); ok {
		return l
	}
	return L()
}

// WithProfile scopes the context logger to an ID profile so every line
// logged further down carries profile and kind.
func WithProfile(ctx context.Context, profile, kind string) context.Context {
	l := Ctx(ctx).With().
		Str(FieldProfile, profile).
		Str(FieldKind, kind).
		Logger()
	return WithLogger(ctx, l)
}
