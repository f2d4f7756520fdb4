package services

import "context"

type contextKey string

const (
	runIDKey  contextKey = "run_id"
	targetKey contextKey = "target"
)

// WithRunID annotates context with the organize run correlation identifier.
func WithRunID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, runIDKey, id)
}

// RunIDFromContext extracts the run identifier if present.
func RunIDFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(runIDKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithTarget annotates context with the directory being organized.
func WithTarget(ctx context.Context, dir string) context.Context {
	if dir == "" {
		return ctx
	}
	return context.WithValue(ctx, targetKey, dir)
}

// TargetFromContext returns the target directory if present.
func TargetFromContext(ctx context.Context) (string, bool) {
	v := ctx.Value(targetKey)
	if str, ok := v.(string); ok && str != "" {
		return str, true
	}
	return "", false
}
