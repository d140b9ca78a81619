package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/dfreire/financas/internal/auth"
	"github.com/dfreire/financas/internal/http/middleware"
	"github.com/dfreire/financas/internal/user"
)

func newAuth(t *testing.T) (*middleware.Auth, *auth.TokenService, *user.MockRepository) {
	t.Helper()

	ctrl := gomock.NewController(t)

	repo := user.NewMockRepository(ctrl)
	users := user.NewService(repo, user.NewMockHasher(ctrl))
	tokens := auth.NewTokenService("test-secret", 30)

	mw := middleware.NewAuth(tokens, users, []string{"POST /api/usuarios"})

	return mw, tokens, repo
}

func TestAuth_SkipsAllowListedRoutes(t *testing.T) {
	mw, _, _ := newAuth(t)

	var called bool

	handler := mw.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/usuarios", nil))

	assert.True(t, called)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuth_RejectsMissingOrBadTokens(t *testing.T) {
	mw, _, _ := newAuth(t)

	handler := mw.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("next handler should not run")
	}))

	tests := []struct {
		name   string
		header string
	}{
		{name: "NoHeader"},
		{name: "NotBearer", header: "Basic abc"},
		{name: "Malformed", header: "Bearer not.a.token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/lancamentos", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

func TestAuth_ResolvesUserIntoContext(t *testing.T) {
	mw, tokens, repo := newAuth(t)

	stored := &user.User{ID: 1, Name: "Maria", Email: "maria@example.com"}
	repo.EXPECT().GetByEmail(gomock.Any(), "maria@example.com").Return(stored, nil)

	token, err := tokens.Issue(stored)
	require.NoError(t, err)

	var got *user.User

	handler := mw.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u, ok := middleware.CurrentUser(r.Context())
		require.True(t, ok)
		got = u
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/lancamentos", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, stored, got)
}
