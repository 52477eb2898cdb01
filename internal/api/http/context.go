package http

import (
	"context"

	"github.com/Krishnakantdwivedi2006/saikisan-backend/internal/security"
)

type contextKey string

const (
	claimsContextKey    contextKey = "claims"
	requestIDContextKey contextKey = "request_id"
)

func withClaims(ctx context.Context, claims *security.UserClaims) context.Context {
	return context.WithValue(ctx, claimsContextKey, claims)
}

// GetClaimsFromContext extracts the validated token claims placed by the auth
// middleware.
func GetClaimsFromContext(ctx context.Context) (*security.UserClaims, bool) {
	claims, ok := ctx.Value(claimsContextKey).(*security.UserClaims)
	return claims, ok
}

// GetUserIDFromContext extracts the authenticated user id, or 0 when the
// request did not pass through the auth middleware.
func GetUserIDFromContext(ctx context.Context) int32 {
	if claims, ok := GetClaimsFromContext(ctx); ok {
		return claims.UserID
	}
	return 0
}

func withRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDContextKey, requestID)
}

// GetRequestIDFromContext returns the request id assigned by the request-id
// middleware, or "" when absent.
func GetRequestIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDContextKey).(string); ok {
		return id
	}
	return ""
}
