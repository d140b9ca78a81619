package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dfreire/financas/internal/errs"
	"github.com/dfreire/financas/internal/user"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// Expected column order: id, nome, email, senha, ultimo_login
func scanUser(s scanner) (*user.User, error) {
	var u user.User

	var lastLogin sql.NullTime

	if err := s.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &lastLogin); err != nil {
		return nil, err
	}

	if lastLogin.Valid {
		u.LastLogin = &lastLogin.Time
	}

	return &u, nil
}

const selectUserColumns = `id, nome, email, senha, ultimo_login`

func (s *Store) Create(ctx context.Context, u *user.User) error {
	query := `
		INSERT INTO financas.usuario (nome, email, senha)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	err := s.db.QueryRowContext(ctx, query, u.Name, u.Email, u.PasswordHash).Scan(&u.ID)
	if err != nil {
		return fmt.Errorf("creating user: %w", err)
	}

	return nil
}

func (s *Store) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM financas.usuario WHERE email = $1)`

	var exists bool
	if err := s.db.QueryRowContext(ctx, query, email).Scan(&exists); err != nil {
		return false, fmt.Errorf("checking email existence: %w", err)
	}

	return exists, nil
}

func (s *Store) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	query := `SELECT ` + selectUserColumns + ` FROM financas.usuario WHERE email = $1`

	u, err := scanUser(s.db.QueryRowContext(ctx, query, email))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errs.NotFound("usuário não encontrado")
		}

		return nil, fmt.Errorf("getting user by email: %w", err)
	}

	return u, nil
}

func (s *Store) GetByID(ctx context.Context, id int64) (*user.User, error) {
	query := `SELECT ` + selectUserColumns + ` FROM financas.usuario WHERE id = $1`

	u, err := scanUser(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errs.NotFound("usuário não encontrado")
		}

		return nil, fmt.Errorf("getting user: %w", err)
	}

	return u, nil
}

func (s *Store) List(ctx context.Context) ([]*user.User, error) {
	query := `SELECT ` + selectUserColumns + ` FROM financas.usuario ORDER BY id`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	defer rows.Close()

	var users []*user.User

	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning user: %w", err)
		}

		users = append(users, u)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating user rows: %w", err)
	}

	return users, nil
}

func (s *Store) TouchLastLogin(ctx context.Context, id int64) error {
	query := `UPDATE financas.usuario SET ultimo_login = NOW() WHERE id = $1`

	if _, err := s.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("touching last login: %w", err)
	}

	return nil
}
