package httpapi

import (
	"context"

	"github.com/riskibarqy/volley-club/internal/domain/account"
)

type contextKey string

const (
	principalContextKey   contextKey = "auth_principal"
	errorDetailContextKey contextKey = "error_detail"
)

func withPrincipal(ctx context.Context, p account.Principal) context.Context {
	return context.WithValue(ctx, principalContextKey, p)
}

func principalFromContext(ctx context.Context) (account.Principal, bool) {
	p, ok := ctx.Value(principalContextKey).(account.Principal)
	return p, ok
}

func withErrorDetail(ctx context.Context, enabled bool) context.Context {
	return context.WithValue(ctx, errorDetailContextKey, enabled)
}

func errorDetailEnabled(ctx context.Context) bool {
	enabled, _ := ctx.Value(errorDetailContextKey).(bool)
	return enabled
}
