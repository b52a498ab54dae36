// Package http provides HTTP handlers and middleware for user accounts and
// bearer token authentication.
package http

import (
	"context"

	userDomain "github.com/allisson/photosafe/internal/user/domain"
)

// userKey is a context key type for storing the authenticated user.
type userKey struct{}

// WithUser stores an authenticated user in the context. Called by the
// authentication middleware after successful token validation.
func WithUser(ctx context.Context, user *userDomain.User) context.Context {
	return context.WithValue(ctx, userKey{}, user)
}

// GetUser retrieves the authenticated user from the context.
// Returns (user, true) if present, or (nil, false) if no user was set.
func GetUser(ctx context.Context) (*userDomain.User, bool) {
	user, ok := ctx.Value(userKey{}).(*userDomain.User)
	return user, ok
}
