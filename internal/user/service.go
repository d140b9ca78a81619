package user

import (
	"context"
	"log/slog"

	"github.com/dfreire/financas/internal/errs"
)

//go:generate mockgen -source=service.go -destination=service_mock.go -package=user
type Repository interface {
	Create(ctx context.Context, u *User) error
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id int64) (*User, error)
	List(ctx context.Context) ([]*User, error)
	TouchLastLogin(ctx context.Context, id int64) error
}

// Hasher is the password hashing primitive (adaptive, salted).
type Hasher interface {
	Hash(password string) (string, error)
	Matches(password, hash string) bool
}

type Service struct {
	repo   Repository
	hasher Hasher
}

func NewService(repo Repository, hasher Hasher) *Service {
	return &Service{repo: repo, hasher: hasher}
}

// Authenticate verifies the email/password pair and returns the matching
// user. The failure messages are displayed verbatim by the front-end.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*User, error) {
	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errs.IsNotFound(err) {
			return nil, errs.Authentication("Usuário não encontrado para o email informado.")
		}

		return nil, err
	}

	if !s.hasher.Matches(password, u.PasswordHash) {
		return nil, errs.Authentication("Senha inválida.")
	}

	// Best effort; a failed stamp must not fail the login.
	if err := s.repo.TouchLastLogin(ctx, u.ID); err != nil {
		slog.Warn("failed to stamp last login", "user_id", u.ID, "error", err)
	}

	return u, nil
}

type RegisterParams struct {
	Name     string
	Email    string
	Password string
}

// Register creates a user after checking email uniqueness and hashing the
// password. The store is never reached when the email is already taken.
func (s *Service) Register(ctx context.Context, params RegisterParams) (*User, error) {
	if err := s.ValidateEmail(ctx, params.Email); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(params.Password)
	if err != nil {
		return nil, err
	}

	u := &User{
		Name:         params.Name,
		Email:        params.Email,
		PasswordHash: hash,
	}

	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}

	return u, nil
}

// ValidateEmail fails when a user with the given email already exists.
func (s *Service) ValidateEmail(ctx context.Context, email string) error {
	exists, err := s.repo.ExistsByEmail(ctx, email)
	if err != nil {
		return err
	}

	if exists {
		return errs.BusinessRule("a user with this email already exists")
	}

	return nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) GetByEmail(ctx context.Context, email string) (*User, error) {
	return s.repo.GetByEmail(ctx, email)
}

func (s *Service) List(ctx context.Context) ([]*User, error) {
	return s.repo.List(ctx)
}
