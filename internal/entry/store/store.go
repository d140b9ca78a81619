package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/dfreire/financas/internal/entry"
	"github.com/dfreire/financas/internal/errs"
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

// Expected column order: id, descricao, mes, ano, valor, tipo, status, usuario_id, data_cadastro
func scanEntry(s scanner) (*entry.Entry, error) {
	var e entry.Entry

	var typeStr, statusStr string

	if err := s.Scan(
		&e.ID, &e.Description, &e.Month, &e.Year, &e.Amount,
		&typeStr, &statusStr, &e.UserID, &e.CreatedAt,
	); err != nil {
		return nil, err
	}

	e.Type = entry.Type(typeStr)
	e.Status = entry.Status(statusStr)

	return &e, nil
}

const selectEntryColumns = `id, descricao, mes, ano, valor, tipo, status, usuario_id, data_cadastro`

func (s *Store) Create(ctx context.Context, e *entry.Entry) error {
	query := `
		INSERT INTO financas.lancamento (descricao, mes, ano, valor, tipo, status, usuario_id, data_cadastro)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		RETURNING id, data_cadastro
	`

	err := s.db.QueryRowContext(ctx, query,
		e.Description,
		e.Month,
		e.Year,
		e.Amount,
		e.Type,
		e.Status,
		e.UserID,
	).Scan(&e.ID, &e.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating entry: %w", err)
	}

	return nil
}

func (s *Store) Update(ctx context.Context, e *entry.Entry) error {
	query := `
		UPDATE financas.lancamento
		SET descricao = $1, mes = $2, ano = $3, valor = $4, tipo = $5, status = $6, usuario_id = $7
		WHERE id = $8
	`

	_, err := s.db.ExecContext(ctx, query,
		e.Description,
		e.Month,
		e.Year,
		e.Amount,
		e.Type,
		e.Status,
		e.UserID,
		e.ID,
	)
	if err != nil {
		return fmt.Errorf("updating entry: %w", err)
	}

	return nil
}

func (s *Store) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM financas.lancamento WHERE id = $1`

	if _, err := s.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("deleting entry: %w", err)
	}

	return nil
}

func (s *Store) Get(ctx context.Context, id int64) (*entry.Entry, error) {
	query := `SELECT ` + selectEntryColumns + ` FROM financas.lancamento WHERE id = $1`

	e, err := scanEntry(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errs.NotFound("lançamento não encontrado")
		}

		return nil, fmt.Errorf("getting entry: %w", err)
	}

	return e, nil
}

// Search matches entries against the set fields of the filter, always scoped
// to the filter's owner. Description is a case-insensitive contains match.
func (s *Store) Search(ctx context.Context, filter entry.Filter) ([]*entry.Entry, error) {
	query := `SELECT ` + selectEntryColumns + `
		FROM financas.lancamento
		WHERE usuario_id = $1`

	args := []any{filter.UserID}

	argIdx := 2

	if filter.Description != "" {
		query += fmt.Sprintf(" AND descricao ILIKE $%d", argIdx)

		args = append(args, "%"+filter.Description+"%")
		argIdx++
	}

	if filter.Month != nil {
		query += fmt.Sprintf(" AND mes = $%d", argIdx)

		args = append(args, *filter.Month)
		argIdx++
	}

	if filter.Year != nil {
		query += fmt.Sprintf(" AND ano = $%d", argIdx)

		args = append(args, *filter.Year)
		argIdx++
	}

	if filter.Type != nil {
		query += fmt.Sprintf(" AND tipo = $%d", argIdx)

		args = append(args, *filter.Type)
		argIdx++
	}

	query += " ORDER BY ano, mes, id"

	return s.list(ctx, query, args...)
}

// SumByTypeAndStatus returns the amount sum for the user's entries of the
// given type and status, zero when nothing matches.
func (s *Store) SumByTypeAndStatus(ctx context.Context, userID int64, t entry.Type, status entry.Status) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(valor), 0)
		FROM financas.lancamento
		WHERE usuario_id = $1 AND tipo = $2 AND status = $3
	`

	var sum decimal.Decimal
	if err := s.db.QueryRowContext(ctx, query, userID, t, status).Scan(&sum); err != nil {
		return decimal.Zero, fmt.Errorf("summing entries: %w", err)
	}

	return sum, nil
}

// ListByPeriod returns the user's entries whose (ano, mes) falls within the
// inclusive range, compared lexicographically so ranges may cross year ends.
func (s *Store) ListByPeriod(ctx context.Context, userID int64, monthStart, monthEnd, yearStart, yearEnd int) ([]*entry.Entry, error) {
	query := `SELECT ` + selectEntryColumns + `
		FROM financas.lancamento
		WHERE usuario_id = $1
		  AND (ano > $2 OR (ano = $2 AND mes >= $3))
		  AND (ano < $4 OR (ano = $4 AND mes <= $5))
		ORDER BY ano, mes, id`

	return s.list(ctx, query, userID, yearStart, monthStart, yearEnd, monthEnd)
}

func (s *Store) list(ctx context.Context, query string, args ...any) ([]*entry.Entry, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing entries: %w", err)
	}
	defer rows.Close()

	var entries []*entry.Entry

	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning entry: %w", err)
		}

		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating entry rows: %w", err)
	}

	return entries, nil
}
