package entry

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/dfreire/financas/internal/errs"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=entry
type Repository interface {
	Create(ctx context.Context, e *Entry) error
	Update(ctx context.Context, e *Entry) error
	Delete(ctx context.Context, id int64) error
	Get(ctx context.Context, id int64) (*Entry, error)
	Search(ctx context.Context, filter Filter) ([]*Entry, error)
	SumByTypeAndStatus(ctx context.Context, userID int64, t Type, status Status) (decimal.Decimal, error)
	ListByPeriod(ctx context.Context, userID int64, monthStart, monthEnd, yearStart, yearEnd int) ([]*Entry, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Validate runs the ordered field checks. The first violated check wins and
// its message is the contract, so the order here is fixed.
func (s *Service) Validate(e *Entry) error {
	if strings.TrimSpace(e.Description) == "" {
		return errs.BusinessRule("Provide a valid description.")
	}

	if e.Month < 1 || e.Month > 12 {
		return errs.BusinessRule("Provide a valid month.")
	}

	if len(strconv.Itoa(e.Year)) != 4 {
		return errs.BusinessRule("Provide a valid year.")
	}

	if e.UserID == 0 {
		return errs.BusinessRule("Provide a user.")
	}

	if e.Amount.Sign() <= 0 {
		return errs.BusinessRule("Provide a valid amount.")
	}

	if e.Type == "" {
		return errs.BusinessRule("Provide an entry type.")
	}

	return nil
}

// Save validates and persists a new entry. The status is forced to pending
// regardless of what the caller supplied.
func (s *Service) Save(ctx context.Context, e *Entry) (*Entry, error) {
	if err := s.Validate(e); err != nil {
		return nil, err
	}

	e.Status = StatusPending

	if err := s.repo.Create(ctx, e); err != nil {
		return nil, err
	}

	return e, nil
}

// Update re-validates and persists an existing entry. A missing id is a
// programmer error, not a business failure, and never reaches the store.
func (s *Service) Update(ctx context.Context, e *Entry) (*Entry, error) {
	if e.ID == 0 {
		return nil, errors.New("entry id is required for update")
	}

	if err := s.Validate(e); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, e); err != nil {
		return nil, err
	}

	return e, nil
}

func (s *Service) Delete(ctx context.Context, e *Entry) error {
	if e.ID == 0 {
		return errors.New("entry id is required for delete")
	}

	return s.repo.Delete(ctx, e.ID)
}

// SetStatus flips the settlement status and persists through Update, so the
// entry is re-validated on the way.
func (s *Service) SetStatus(ctx context.Context, e *Entry, status Status) (*Entry, error) {
	e.Status = status
	return s.Update(ctx, e)
}

func (s *Service) GetByID(ctx context.Context, id int64) (*Entry, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) Search(ctx context.Context, filter Filter) ([]*Entry, error) {
	return s.repo.Search(ctx, filter)
}

// Balance is settled income minus settled expense for the user. Pending and
// cancelled entries never contribute; an absent sum counts as zero.
func (s *Service) Balance(ctx context.Context, userID int64) (decimal.Decimal, error) {
	income, err := s.repo.SumByTypeAndStatus(ctx, userID, TypeIncome, StatusSettled)
	if err != nil {
		return decimal.Zero, err
	}

	expense, err := s.repo.SumByTypeAndStatus(ctx, userID, TypeExpense, StatusSettled)
	if err != nil {
		return decimal.Zero, err
	}

	return income.Sub(expense), nil
}

// InPeriod lists the user's entries whose (year, month) falls within the
// inclusive range described by the four bounds.
func (s *Service) InPeriod(ctx context.Context, userID int64, monthStart, monthEnd, yearStart, yearEnd int) ([]*Entry, error) {
	return s.repo.ListByPeriod(ctx, userID, monthStart, monthEnd, yearStart, yearEnd)
}
