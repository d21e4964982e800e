// Package auth resolves caller identity from a bearer credential and carries
// it through the request context.
package auth

import (
	"context"
	"slices"
)

// Identity is a caller resolved from a verified credential. It is constructed
// once per request by the gate and never persisted.
type Identity struct {
	UserID string `json:"userId"`
	Role   string `json:"role"`
}

// HasAnyRole reports whether the identity's role is in the allowed set. An
// empty set allows any authenticated caller.
func (i Identity) HasAnyRole(roles ...string) bool {
	if len(roles) == 0 {
		return true
	}
	return slices.Contains(roles, i.Role)
}

// Verifier checks a bearer credential and resolves the caller identity.
type Verifier interface {
	Verify(token string) (Identity, error)
}

type contextKey struct{}

// WithIdentity stashes the caller identity in the request context.
func WithIdentity(ctx context.Context, ident Identity) context.Context {
	return context.WithValue(ctx, contextKey{}, ident)
}

// IdentityFromContext retrieves the caller identity set by the gate.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	ident, ok := ctx.Value(contextKey{}).(Identity)
	return ident, ok
}
