package api

import (
	"context"
	"time"

	"github.com/whisprnet/whispr-api/models"
)

// QueryTimeout is the default timeout for database queries
const QueryTimeout = 10 * time.Second

// WithQueryTimeout creates a context with query timeout
func WithQueryTimeout(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	return context.WithTimeout(parent, QueryTimeout)
}

type principalContextKey struct{}

// ContextWithPrincipal stores the authenticated caller principal on the context
func ContextWithPrincipal(ctx context.Context, principal models.Principal) context.Context {
	return context.WithValue(ctx, principalContextKey{}, principal)
}

// PrincipalFromContext returns the caller principal stored by the
// middleware, or the anonymous principal when none was stored
func PrincipalFromContext(ctx context.Context) models.Principal {
	if principal, ok := ctx.Value(principalContextKey{}).(models.Principal); ok {
		return principal
	}
	return models.Anonymous
}
