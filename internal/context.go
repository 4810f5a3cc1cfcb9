package internal

import (
	"context"
	"time"

	coreUser "github.com/frahmantamala/enterprise-admin/internal/core/user"
)

type ctxKey string

const ContextPrincipalKey ctxKey = "principal"

func PrincipalFromContext(ctx context.Context) (*coreUser.Principal, bool) {
	if ctx == nil {
		return nil, false
	}
	p, ok := ctx.Value(ContextPrincipalKey).(*coreUser.Principal)
	return p, ok && p != nil
}

func ContextWithPrincipal(ctx context.Context, p *coreUser.Principal) context.Context {
	return context.WithValue(ctx, ContextPrincipalKey, p)
}

// WithTimeout bounds a downstream call. A non-positive duration means 5 seconds.
func WithTimeout(ctx context.Context, duration time.Duration) (context.Context, context.CancelFunc) {
	if duration <= 0 {
		duration = 5 * time.Second
	}
	return context.WithTimeout(ctx, duration)
}
