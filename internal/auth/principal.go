package auth

import "context"

// Authentication methods
const (
	MethodJWT    = "jwt"
	MethodAPIKey = "api_key"
)

// Principal is the authenticated caller of the query service
type Principal struct {
	ID     string
	Method string
}

type principalKey struct{}

func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// PrincipalFromContext returns the caller stored by WithPrincipal
func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(Principal)
	return p, ok
}
