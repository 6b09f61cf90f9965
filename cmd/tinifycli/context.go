package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
)

// appKey is the context key for the per-invocation state.
type appKey struct{}

// app holds what PersistentPreRunE prepared for the command being run.
type app struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	logger *slog.Logger
}

func withApp(ctx context.Context, a *app) context.Context {
	return context.WithValue(ctx, appKey{}, a)
}

// appFromContext retrieves the invocation state from context.
// Returns an error if it is not found.
func appFromContext(ctx context.Context) (*app, error) {
	a, ok := ctx.Value(appKey{}).(*app)
	if !ok || a == nil {
		return nil, errors.New("app state not found in context")
	}
	return a, nil
}
