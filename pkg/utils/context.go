package utils

import (
	"context"

	"github.com/google/uuid"
)

type contextKey string

const claimsKey contextKey = "auth_claims"

// SetClaimsContext stores the authenticated identity on the request context.
func SetClaimsContext(ctx context.Context, claims *AuthClaims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

// GetClaimsFromContext returns the authenticated identity, if any.
func GetClaimsFromContext(ctx context.Context) (*AuthClaims, bool) {
	claims, ok := ctx.Value(claimsKey).(*AuthClaims)
	return claims, ok
}

// GetUserIDFromContext returns the authenticated user's UUID.
func GetUserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	claims, ok := GetClaimsFromContext(ctx)
	if !ok {
		return uuid.Nil, false
	}

	userID, err := uuid.Parse(claims.ID)
	if err != nil {
		return uuid.Nil, false
	}

	return userID, true
}

// GetRoleFromContext returns the authenticated user's role.
func GetRoleFromContext(ctx context.Context) (string, bool) {
	claims, ok := GetClaimsFromContext(ctx)
	if !ok {
		return "", false
	}
	return claims.Role, true
}
