package trace

import "context"

type requestIDKey struct{}

// WithRequestID returns a copy of ctx carrying id, retrievable via
// [RequestIDFrom]. An empty string is a valid id, distinct from "no id set".
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIDFrom reports the request id stored in ctx, if any.
func RequestIDFrom(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(requestIDKey{}).(string)
	return id, ok
}
