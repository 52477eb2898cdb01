package http

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/Krishnakantdwivedi2006/saikisan-backend/internal/domain"
	"github.com/Krishnakantdwivedi2006/saikisan-backend/internal/security"
)

// requestIDMiddleware assigns every request a correlation id and echoes it
// back in the X-Request-Id header.
func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-Id")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set("X-Request-Id", requestID)
		next.ServeHTTP(w, r.WithContext(withRequestID(r.Context(), requestID)))
	})
}

// authMiddleware validates the Bearer token and stores the claims on the
// request context. Identity is minted elsewhere; this service only verifies.
func authMiddleware(tokens security.TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				writeJSON(w, http.StatusUnauthorized, errorResponse{
					Error:   "UNAUTHENTICATED",
					Message: "missing authorization header",
				})
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				writeJSON(w, http.StatusUnauthorized, errorResponse{
					Error:   "UNAUTHENTICATED",
					Message: "authorization header must be a Bearer token",
				})
				return
			}

			claims, err := tokens.ValidateToken(parts[1])
			if err != nil {
				writeJSON(w, http.StatusUnauthorized, errorResponse{
					Error:   "UNAUTHENTICATED",
					Message: err.Error(),
				})
				return
			}

			next.ServeHTTP(w, r.WithContext(withClaims(r.Context(), claims)))
		})
	}
}

// requireRole gates a subtree on a role claim. Runs after authMiddleware.
func requireRole(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := GetClaimsFromContext(r.Context())
			if !ok {
				writeJSON(w, http.StatusUnauthorized, errorResponse{
					Error:   "UNAUTHENTICATED",
					Message: "missing credentials",
				})
				return
			}
			if !claims.HasRole(role) {
				writeError(w, r, domain.NewUnauthorized("%s role required", role))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
