// Package middleware provides HTTP middlewares for authentication and logging.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/califeryan/goutte-server/internal/auth"
)

type ctxKey string

const principalKey ctxKey = "principal"

// SessionValidator resolves a bearer token to an authenticated principal.
type SessionValidator interface {
	Validate(token string) (*auth.Principal, error)
}

// SessionAuth is a middleware that authenticates requests carrying a
// "Bearer" token in the Authorization header.
//
// On success it stores the resolved principal in the request context so
// handlers can enforce ownership. Requests without a valid token are
// rejected with 401; handlers that are public simply aren't wrapped.
func SessionAuth(sessions SessionValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				http.Error(w, "missing bearer token", http.StatusUnauthorized)
				return
			}

			principal, err := sessions.Validate(token)
			if err != nil {
				http.Error(w, "invalid or expired session", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), principalKey, principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin rejects requests whose principal is not an administrator.
// It must run after SessionAuth.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal := GetPrincipalFromContext(r.Context())
		if principal == nil || !principal.Admin {
			http.Error(w, "administrator access required", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetPrincipalFromContext extracts the authenticated principal from the
// request context. Returns nil if not found.
func GetPrincipalFromContext(ctx context.Context) *auth.Principal {
	val := ctx.Value(principalKey)
	if p, ok := val.(*auth.Principal); ok {
		return p
	}
	return nil
}

// WithPrincipal returns a context carrying the given principal. Intended for
// handler tests.
func WithPrincipal(ctx context.Context, p *auth.Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}
