package entry

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/dfreire/financas/internal/entry"
	"github.com/dfreire/financas/internal/errs"
	"github.com/dfreire/financas/internal/http/respond"
	"github.com/dfreire/financas/internal/user"
)

type Handler struct {
	svc   *entry.Service
	users *user.Service
}

func NewHandler(svc *entry.Service, users *user.Service) *Handler {
	return &Handler{svc: svc, users: users}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.search)
	// Path spelling kept for front-end compatibility.
	r.Get("/peridoLancamento", h.inPeriod)
	r.Get("/{id}", h.get)
	r.Post("/", h.create)
	r.Put("/{id}", h.update)
	r.Put("/{id}/atualiza-status", h.updateStatus)
	r.Delete("/{id}", h.delete)
}

type entryRequest struct {
	Descricao string          `json:"descricao"`
	Mes       int             `json:"mes"`
	Ano       int             `json:"ano"`
	Valor     decimal.Decimal `json:"valor"`
	Tipo      string          `json:"tipo"`
	Status    string          `json:"status"`
	Usuario   int64           `json:"usuario"`
}

// toEntry resolves the owner before the entry is built, so an entry can never
// reach the service without a resolvable user.
func (h *Handler) toEntry(r *http.Request, req entryRequest) (*entry.Entry, error) {
	u, err := h.users.GetByID(r.Context(), req.Usuario)
	if err != nil {
		if errs.IsNotFound(err) {
			return nil, errs.BusinessRule("Usuário não encontrado para o ID informado.")
		}

		return nil, err
	}

	e := &entry.Entry{
		Description: req.Descricao,
		Month:       req.Mes,
		Year:        req.Ano,
		Amount:      req.Valor,
		UserID:      u.ID,
	}

	if req.Tipo != "" {
		e.Type = entry.Type(req.Tipo)
	}

	if req.Status != "" {
		e.Status = entry.Status(req.Status)
	}

	return e, nil
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req entryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	e, err := h.toEntry(r, req)
	if err != nil {
		respond.Error(w, err)
		return
	}

	saved, err := h.svc.Save(r.Context(), e)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(saved))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	e, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(e))
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if _, err := h.svc.GetByID(r.Context(), id); err != nil {
		if errs.IsNotFound(err) {
			http.Error(w, "Lancamento não encontrado na base de dados.", http.StatusBadRequest)
			return
		}

		respond.Error(w, err)

		return
	}

	var req entryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	e, err := h.toEntry(r, req)
	if err != nil {
		respond.Error(w, err)
		return
	}

	e.ID = id

	updated, err := h.svc.Update(r.Context(), e)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(updated))
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

func (h *Handler) updateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	e, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		if errs.IsNotFound(err) {
			http.Error(w, "Lançamento não encontrado na base de dados.", http.StatusBadRequest)
			return
		}

		respond.Error(w, err)

		return
	}

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	status, ok := entry.ParseStatus(req.Status)
	if !ok {
		http.Error(w, "Não foi possível atualizar o status do lançamento, envia um status válido.", http.StatusBadRequest)
		return
	}

	updated, err := h.svc.SetStatus(r.Context(), e, status)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(updated))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	e, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		if errs.IsNotFound(err) {
			http.Error(w, "Lançamento não encontrado na base de dados.", http.StatusBadRequest)
			return
		}

		respond.Error(w, err)

		return
	}

	if err := h.svc.Delete(r.Context(), e); err != nil {
		respond.Error(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) search(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(r.URL.Query().Get("usuario"), 10, 64)
	if err != nil {
		http.Error(w, "Não foi possível realizar a consulta. Usuário não encontrado para ID informado.", http.StatusBadRequest)
		return
	}

	if _, err := h.users.GetByID(r.Context(), userID); err != nil {
		if errs.IsNotFound(err) {
			http.Error(w, "Não foi possível realizar a consulta. Usuário não encontrado para ID informado.", http.StatusBadRequest)
			return
		}

		respond.Error(w, err)

		return
	}

	filter := entry.Filter{
		UserID:      userID,
		Description: r.URL.Query().Get("descricao"),
	}

	if s := r.URL.Query().Get("mes"); s != "" {
		mes, err := strconv.Atoi(s)
		if err != nil {
			http.Error(w, "parâmetro inválido: mes", http.StatusBadRequest)
			return
		}

		filter.Month = &mes
	}

	if s := r.URL.Query().Get("ano"); s != "" {
		ano, err := strconv.Atoi(s)
		if err != nil {
			http.Error(w, "parâmetro inválido: ano", http.StatusBadRequest)
			return
		}

		filter.Year = &ano
	}

	if s := r.URL.Query().Get("tipo"); s != "" {
		tipo := entry.Type(s)
		filter.Type = &tipo
	}

	entries, err := h.svc.Search(r.Context(), filter)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponseList(entries))
}

func (h *Handler) inPeriod(w http.ResponseWriter, r *http.Request) {
	params := map[string]int{}

	for _, name := range []string{"mesAtual", "mesFinal", "anoAtual", "anoFinal"} {
		v, err := strconv.Atoi(r.URL.Query().Get(name))
		if err != nil {
			http.Error(w, "parâmetro inválido: "+name, http.StatusBadRequest)
			return
		}

		params[name] = v
	}

	userID, err := strconv.ParseInt(r.URL.Query().Get("usuarioId"), 10, 64)
	if err != nil {
		http.Error(w, "parâmetro inválido: usuarioId", http.StatusBadRequest)
		return
	}

	if _, err := h.users.GetByID(r.Context(), userID); err != nil {
		if errs.IsNotFound(err) {
			http.Error(w, "Não foi possível realizar a consulta. Usuário não encontrado para ID informado.", http.StatusBadRequest)
			return
		}

		respond.Error(w, err)

		return
	}

	entries, err := h.svc.InPeriod(r.Context(), userID,
		params["mesAtual"], params["mesFinal"], params["anoAtual"], params["anoFinal"])
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponseList(entries))
}
