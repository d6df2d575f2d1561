package middleware

import (
	"context"

	"aaaquest/internal/domain"
)

type contextKey int

const userKey contextKey = iota

// WithUser returns a copy of ctx carrying the signed-in user
func WithUser(ctx context.Context, user *domain.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// UserFromContext returns the user set by Auth, or nil
func UserFromContext(ctx context.Context) *domain.User {
	user, _ := ctx.Value(userKey).(*domain.User)
	return user
}
