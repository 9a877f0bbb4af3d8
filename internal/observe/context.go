package observe

import (
	"context"

	"github.com/google/uuid"
)

type requestIDKey struct{}

// WithRequestID stores id on ctx.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestID returns the ID stored on ctx, minting a fresh one if absent.
func RequestID(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey{}).(string); ok && id != "" {
		return id
	}
	return uuid.NewString()
}

type transportKey struct{}

// WithTransport records which transport received the request.
func WithTransport(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, transportKey{}, name)
}

// Transport returns the transport name on ctx, or "direct".
func Transport(ctx context.Context) string {
	if name, ok := ctx.Value(transportKey{}).(string); ok && name != "" {
		return name
	}
	return "direct"
}
