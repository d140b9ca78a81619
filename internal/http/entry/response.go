package entry

import (
	"github.com/shopspring/decimal"

	"github.com/dfreire/financas/internal/entry"
)

type entryResponse struct {
	ID        int64           `json:"id"`
	Descricao string          `json:"descricao"`
	Mes       int             `json:"mes"`
	Ano       int             `json:"ano"`
	Valor     decimal.Decimal `json:"valor"`
	Tipo      entry.Type      `json:"tipo"`
	Status    entry.Status    `json:"status"`
	Usuario   int64           `json:"usuario"`
}

func toResponse(e *entry.Entry) entryResponse {
	return entryResponse{
		ID:        e.ID,
		Descricao: e.Description,
		Mes:       e.Month,
		Ano:       e.Year,
		Valor:     e.Amount,
		Tipo:      e.Type,
		Status:    e.Status,
		Usuario:   e.UserID,
	}
}

func toResponseList(entries []*entry.Entry) []entryResponse {
	resp := make([]entryResponse, len(entries))
	for i, e := range entries {
		resp[i] = toResponse(e)
	}

	return resp
}
