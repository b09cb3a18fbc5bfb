// Package middleware provides HTTP middlewares for authentication,
// authorization, and logging.
package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/atinyakov/TaskTracker/internal/token"
)

type ctxKey string

const claimsKey ctxKey = "claims"

// TokenVerifier validates a raw bearer token and returns its claims.
type TokenVerifier interface {
	Verify(raw string) (*token.Claims, error)
}

// Authenticate is a middleware that enforces bearer-token authentication.
//
// It requires an "Authorization: Bearer <token>" header on every request it
// wraps. A missing, malformed, invalid or expired token terminates the
// request with 401; it never falls through to the handler. On success the
// verified claims are stored in the request context for downstream use.
func Authenticate(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			raw, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || raw == "" {
				unauthorized(w)
				return
			}

			claims, err := verifier.Verify(raw)
			if err != nil {
				unauthorized(w)
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole is a middleware that gates a route on the authenticated
// user's role claim. A mismatch terminates the request with 403.
// It must run inside Authenticate.
func RequireRole(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := ClaimsFromContext(r.Context())
			if claims == nil {
				unauthorized(w)
				return
			}
			if claims.Role != role {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusForbidden)
				_ = json.NewEncoder(w).Encode(map[string]string{"error": "Forbidden"})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ClaimsFromContext extracts the verified token claims from the request
// context. Returns nil if the request was not authenticated.
func ClaimsFromContext(ctx context.Context) *token.Claims {
	val := ctx.Value(claimsKey)
	if c, ok := val.(*token.Claims); ok {
		return c
	}
	return nil
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": "Authentication required"})
}
