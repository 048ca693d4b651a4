package environment

import (
	"context"
	"slices"
)

type ctxKey struct{}

// WithContext stores env in ctx.
func WithContext(ctx context.Context, env Environment) context.Context {
	return context.WithValue(ctx, ctxKey{}, env)
}

// FromContext returns the environment stored in ctx, or "" when none is set.
func FromContext(ctx context.Context) Environment {
	if ctx == nil {
		return ""
	}
	env, _ := ctx.Value(ctxKey{}).(Environment)
	return env
}

// Is reports whether the environment in ctx is one of envs.
func Is(ctx context.Context, envs ...Environment) bool {
	env := FromContext(ctx)
	return env != "" && slices.Contains(envs, env)
}

func IsProduction(ctx context.Context) bool  { return Is(ctx, Production) }
func IsDevelopment(ctx context.Context) bool { return Is(ctx, Development) }
func IsStaging(ctx context.Context) bool     { return Is(ctx, Staging) }
