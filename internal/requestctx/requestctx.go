// Package requestctx carries request-scoped values that are set by
// middleware and read by lower layers, without those layers importing
// net/http. The audit interceptor reads the mutation actor from here.
package requestctx

import "context"

type actorKey struct{}

// WithActor records the id of the user performing mutations in this request.
func WithActor(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, actorKey{}, userID)
}

// ActorID returns the current actor and whether one was set. Background
// jobs and tests that never pass through the auth middleware report false.
func ActorID(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(actorKey{}).(string)
	return v, ok && v != ""
}
