// Package middleware holds the bearer-token authentication stage of the
// request pipeline.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/dfreire/financas/internal/auth"
	"github.com/dfreire/financas/internal/user"
)

type contextKey struct{}

// Auth extracts and validates the bearer token and injects the resolved user
// into the request context. Paths on the allow-list skip the check entirely.
type Auth struct {
	tokens *auth.TokenService
	users  *user.Service
	skip   map[string]bool
}

// NewAuth builds the middleware. skipRoutes entries are "METHOD /path".
func NewAuth(tokens *auth.TokenService, users *user.Service, skipRoutes []string) *Auth {
	skip := make(map[string]bool, len(skipRoutes))
	for _, route := range skipRoutes {
		skip[route] = true
	}

	return &Auth{tokens: tokens, users: users, skip: skip}
}

func (a *Auth) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if a.skip[r.Method+" "+r.URL.Path] {
			next.ServeHTTP(w, r)
			return
		}

		token := bearerToken(r)
		if token == "" || !a.tokens.Valid(token) {
			http.Error(w, "token inválido ou expirado", http.StatusUnauthorized)
			return
		}

		email, err := a.tokens.Subject(token)
		if err != nil {
			http.Error(w, "token inválido ou expirado", http.StatusUnauthorized)
			return
		}

		// The subject must still resolve to a user; a token can outlive the
		// account it was issued for.
		u, err := a.users.GetByEmail(r.Context(), email)
		if err != nil {
			http.Error(w, "token inválido ou expirado", http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r.WithContext(withUser(r.Context(), u)))
	})
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}

	return parts[1]
}

func withUser(ctx context.Context, u *user.User) context.Context {
	return context.WithValue(ctx, contextKey{}, u)
}

// CurrentUser returns the authenticated user stored by the middleware.
func CurrentUser(ctx context.Context) (*user.User, bool) {
	u, ok := ctx.Value(contextKey{}).(*user.User)
	return u, ok
}
