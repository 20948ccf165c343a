package services

import "context"

type actorKey struct{}

// WithActor stores the acting user id on ctx.
func WithActor(ctx context.Context, userID uint) context.Context {
	return context.WithValue(ctx, actorKey{}, userID)
}

// ActorFromContext returns the acting user id put there by WithActor.
func ActorFromContext(ctx context.Context) (uint, bool) {
	if ctx == nil {
		return 0, false
	}
	id, ok := ctx.Value(actorKey{}).(uint)
	return id, ok && id != 0
}

// actorOr resolves the acting user, falling back to the configured system user.
func actorOr(ctx context.Context, system uint) *uint {
	if id, ok := ActorFromContext(ctx); ok {
		return &id
	}
	if system == 0 {
		return nil
	}
	return &system
}
