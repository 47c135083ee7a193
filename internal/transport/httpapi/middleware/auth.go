// Package middleware holds the HTTP middleware stack: authentication,
// request logging, panic recovery, CORS and rate limiting.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/goldguard-app/backend/internal/platform/session"
)

// ContextKey is the type for context keys set by this package
type ContextKey string

// IdentityKey is the context key the authenticated identity is stored under
const IdentityKey ContextKey = "identity"

// TokenValidator validates an access token and returns its identity
type TokenValidator interface {
	Validate(token string) (*session.Identity, error)
}

// Auth returns a middleware that requires a valid bearer token and puts the
// resolved identity on the request context.
func Auth(tokens TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				http.Error(w, "missing authorization header", http.StatusUnauthorized)
				return
			}

			scheme, token, found := strings.Cut(authHeader, " ")
			if !found || scheme != "Bearer" {
				http.Error(w, "invalid authorization header format", http.StatusUnauthorized)
				return
			}

			id, err := tokens.Validate(token)
			if err != nil {
				http.Error(w, "invalid or expired token", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), IdentityKey, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// IdentityFromContext extracts the authenticated identity from the context
func IdentityFromContext(ctx context.Context) (*session.Identity, bool) {
	id, ok := ctx.Value(IdentityKey).(*session.Identity)
	return id, ok
}
