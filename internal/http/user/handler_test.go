package user_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/dfreire/financas/internal/auth"
	"github.com/dfreire/financas/internal/entry"
	"github.com/dfreire/financas/internal/errs"
	userHandler "github.com/dfreire/financas/internal/http/user"
	"github.com/dfreire/financas/internal/user"
)

type fixture struct {
	router    http.Handler
	userRepo  *user.MockRepository
	hasher    *user.MockHasher
	entryRepo *entry.MockRepository
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	userRepo := user.NewMockRepository(ctrl)
	hasher := user.NewMockHasher(ctrl)
	entryRepo := entry.NewMockRepository(ctrl)

	h := userHandler.NewHandler(
		user.NewService(userRepo, hasher),
		entry.NewService(entryRepo),
		auth.NewTokenService("test-secret", 30),
	)

	router := chi.NewRouter()
	h.Routes(router)

	return fixture{router: router, userRepo: userRepo, hasher: hasher, entryRepo: entryRepo}
}

func (f fixture) do(method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	return rec
}

func TestHandler_Authenticate(t *testing.T) {
	stored := &user.User{ID: 1, Name: "Maria", Email: "maria@example.com", PasswordHash: "$hashed$"}

	t.Run("Success", func(t *testing.T) {
		f := newFixture(t)

		f.userRepo.EXPECT().GetByEmail(gomock.Any(), "maria@example.com").Return(stored, nil)
		f.hasher.EXPECT().Matches("secret", "$hashed$").Return(true)
		f.userRepo.EXPECT().TouchLastLogin(gomock.Any(), int64(1)).Return(nil)

		rec := f.do(http.MethodPost, "/autenticar", `{"email":"maria@example.com","senha":"secret"}`)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"nome":"Maria"`)
		assert.Contains(t, rec.Body.String(), `"token":"`)
	})

	t.Run("UnknownEmail", func(t *testing.T) {
		f := newFixture(t)

		f.userRepo.EXPECT().
			GetByEmail(gomock.Any(), "maria@example.com").
			Return(nil, errs.NotFound("usuário não encontrado"))

		rec := f.do(http.MethodPost, "/autenticar", `{"email":"maria@example.com","senha":"secret"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Usuário não encontrado para o email informado.", strings.TrimSpace(rec.Body.String()))
	})

	t.Run("WrongPassword", func(t *testing.T) {
		f := newFixture(t)

		f.userRepo.EXPECT().GetByEmail(gomock.Any(), "maria@example.com").Return(stored, nil)
		f.hasher.EXPECT().Matches("wrong", "$hashed$").Return(false)

		rec := f.do(http.MethodPost, "/autenticar", `{"email":"maria@example.com","senha":"wrong"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Senha inválida.", strings.TrimSpace(rec.Body.String()))
	})
}

func TestHandler_Register(t *testing.T) {
	t.Run("Created", func(t *testing.T) {
		f := newFixture(t)

		f.userRepo.EXPECT().ExistsByEmail(gomock.Any(), "maria@example.com").Return(false, nil)
		f.hasher.EXPECT().Hash("secret").Return("$hashed$", nil)
		f.userRepo.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, u *user.User) error {
				u.ID = 1
				return nil
			})

		rec := f.do(http.MethodPost, "/", `{"nome":"Maria","email":"maria@example.com","senha":"secret"}`)

		require.Equal(t, http.StatusCreated, rec.Code)
		assert.Contains(t, rec.Body.String(), `"email":"maria@example.com"`)
		assert.NotContains(t, rec.Body.String(), "$hashed$")
	})

	t.Run("DuplicateEmail", func(t *testing.T) {
		f := newFixture(t)

		f.userRepo.EXPECT().ExistsByEmail(gomock.Any(), "maria@example.com").Return(true, nil)

		rec := f.do(http.MethodPost, "/", `{"nome":"Maria","email":"maria@example.com","senha":"secret"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "a user with this email already exists", strings.TrimSpace(rec.Body.String()))
	})
}

func TestHandler_Balance(t *testing.T) {
	t.Run("UserNotFound", func(t *testing.T) {
		f := newFixture(t)

		f.userRepo.EXPECT().
			GetByID(gomock.Any(), int64(9)).
			Return(nil, errs.NotFound("usuário não encontrado"))

		rec := f.do(http.MethodGet, "/9/saldo", "")

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("NumericBody", func(t *testing.T) {
		f := newFixture(t)

		f.userRepo.EXPECT().GetByID(gomock.Any(), int64(1)).Return(&user.User{ID: 1}, nil)
		f.entryRepo.EXPECT().
			SumByTypeAndStatus(gomock.Any(), int64(1), entry.TypeIncome, entry.StatusSettled).
			Return(decimal.NewFromInt(100), nil)
		f.entryRepo.EXPECT().
			SumByTypeAndStatus(gomock.Any(), int64(1), entry.TypeExpense, entry.StatusSettled).
			Return(decimal.NewFromInt(30), nil)

		rec := f.do(http.MethodGet, "/1/saldo", "")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "70", strings.TrimSpace(rec.Body.String()))
	})
}

func TestHandler_List(t *testing.T) {
	f := newFixture(t)

	f.userRepo.EXPECT().List(gomock.Any()).Return([]*user.User{
		{ID: 1, Name: "Maria", Email: "maria@example.com"},
		{ID: 2, Name: "João", Email: "joao@example.com"},
	}, nil)

	rec := f.do(http.MethodGet, "/", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"nome":"Maria"`)
	assert.Contains(t, rec.Body.String(), `"nome":"João"`)
}
