package entry

import (
	"time"

	"github.com/shopspring/decimal"
)

// Type distinguishes income from expense. The values are the Portuguese
// strings the front-end sends and expects back.
type Type string

const (
	TypeIncome  Type = "RECEITA"
	TypeExpense Type = "DESPESA"
)

// Status is the settlement lifecycle state of an entry.
type Status string

const (
	StatusPending   Status = "PENDENTE"
	StatusSettled   Status = "EFETIVADO"
	StatusCancelled Status = "CANCELADO"
)

// ParseStatus maps a wire value to a Status, reporting whether it is known.
func ParseStatus(s string) (Status, bool) {
	switch Status(s) {
	case StatusPending, StatusSettled, StatusCancelled:
		return Status(s), true
	}

	return "", false
}

// Entry is a single income or expense record owned by a user.
type Entry struct {
	ID          int64
	Description string
	Month       int
	Year        int
	Amount      decimal.Decimal
	Type        Type
	Status      Status
	UserID      int64
	CreatedAt   time.Time
}

// Filter matches entries against its set fields; unset fields match anything.
// UserID must be set, every search is scoped to one owner.
type Filter struct {
	UserID      int64
	Description string
	Month       *int
	Year        *int
	Type        *Type
}
