// Package middleware provides HTTP middlewares for authentication and logging.
package middleware

import (
	"context"
	"net/http"
	"strings"
)

type ctxKey string

const (
	userKey  ctxKey = "user"
	tokenKey ctxKey = "token"
)

// SessionResolver resolves a bearer session token to the owning
// user's uid.
type SessionResolver interface {
	GetSessionUID(ctx context.Context, token string) (string, error)
}

// TokenAuth is a middleware that enforces bearer-token authentication.
//
// It checks whether the incoming HTTP request carries a valid session
// token in the Authorization header. The /api/signup and /api/signin
// endpoints are excluded so that users can obtain a token in the first
// place.
//
// On successful validation, it stores the resolved uid and the raw
// token in the request context, so they can be used downstream as the
// authenticated identity.
func TokenAuth(sessions SessionResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/api/signup" || r.URL.Path == "/api/signin" {
				// Allow obtaining a session without one
				next.ServeHTTP(w, r)
				return
			}

			auth := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(auth, "Bearer ")
			if !ok || token == "" {
				http.Error(w, "no session token provided", http.StatusUnauthorized)
				return
			}

			uid, err := sessions.GetSessionUID(r.Context(), token)
			if err != nil {
				http.Error(w, "invalid or expired session", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), userKey, uid)
			ctx = context.WithValue(ctx, tokenKey, token)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUserIDFromContext extracts the authenticated user's uid from the
// request context. Returns an empty string if not found.
func GetUserIDFromContext(ctx context.Context) string {
	if s, ok := ctx.Value(userKey).(string); ok {
		return s
	}
	return ""
}

// GetTokenFromContext extracts the raw session token from the request
// context. Returns an empty string if not found.
func GetTokenFromContext(ctx context.Context) string {
	if s, ok := ctx.Value(tokenKey).(string); ok {
		return s
	}
	return ""
}
