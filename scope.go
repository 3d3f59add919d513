package dijay

import (
	"context"

	"github.com/google/uuid"

	"github.com/danpasecinic/dijay/internal/scope"
)

type Scope = scope.Scope

const (
	Singleton = scope.Singleton
	Transient = scope.Transient
	Request   = scope.Request
)

func ParseScope(name string) (Scope, error) {
	return scope.Parse(name)
}

type requestIDKey struct{}

// WithRequestID attaches a request id to ctx. Request-scoped tokens resolved
// with the returned context share one instance per id.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// NewRequest attaches a freshly generated request id to ctx.
func NewRequest(ctx context.Context) (context.Context, string) {
	id := uuid.NewString()
	return WithRequestID(ctx, id), id
}

func RequestID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(requestIDKey{}).(string)
	if !ok || id == "" {
		return "", false
	}
	return id, true
}

// ReleaseRequest drops the instances cached for id. Request caches are
// otherwise kept until Stop.
func (c *Container) ReleaseRequest(id string) bool {
	released := c.cache.ReleaseRequest(id)
	if released {
		c.logger.Debug("released request scope", zapRequest(id))
	}
	return released
}
