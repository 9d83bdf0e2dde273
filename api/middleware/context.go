package middleware

import (
	"context"

	"github.com/budunsigorta/backend/pkg/tenant"
)

type contextKey string

const (
	ctxActor    contextKey = "actor"
	ctxAccessID contextKey = "access_id"
)

// ActorFromContext returns the authenticated actor, or false when the
// request was not authenticated.
func ActorFromContext(ctx context.Context) (tenant.Actor, bool) {
	if ctx == nil {
		return tenant.Actor{}, false
	}
	actor, ok := ctx.Value(ctxActor).(tenant.Actor)
	return actor, ok
}

// AccessIDFromContext returns the JWT jti of the current session.
func AccessIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxAccessID).(string); ok {
		return v
	}
	return ""
}

// WithActor injects the actor into the context. Exposed for handler tests.
func WithActor(ctx context.Context, actor tenant.Actor) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxActor, actor)
}

// WithAccessID injects the session access id into the context.
func WithAccessID(ctx context.Context, accessID string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxAccessID, accessID)
}
