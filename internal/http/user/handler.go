package user

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/dfreire/financas/internal/auth"
	"github.com/dfreire/financas/internal/entry"
	"github.com/dfreire/financas/internal/errs"
	"github.com/dfreire/financas/internal/http/respond"
	"github.com/dfreire/financas/internal/user"
)

type Handler struct {
	svc     *user.Service
	entries *entry.Service
	tokens  *auth.TokenService
}

func NewHandler(svc *user.Service, entries *entry.Service, tokens *auth.TokenService) *Handler {
	return &Handler{svc: svc, entries: entries, tokens: tokens}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/autenticar", h.authenticate)
	r.Post("/", h.register)
	r.Get("/{id}/saldo", h.balance)
	r.Get("/", h.list)
}

type credentialsRequest struct {
	Email string `json:"email"`
	Senha string `json:"senha"`
}

func (h *Handler) authenticate(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	u, err := h.svc.Authenticate(r.Context(), req.Email, req.Senha)
	if err != nil {
		respond.Error(w, err)
		return
	}

	token, err := h.tokens.Issue(u)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, tokenResponse{Nome: u.Name, Token: token})
}

type registerRequest struct {
	Nome  string `json:"nome"`
	Email string `json:"email"`
	Senha string `json:"senha"`
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	u, err := h.svc.Register(r.Context(), user.RegisterParams{
		Name:     req.Nome,
		Email:    req.Email,
		Password: req.Senha,
	})
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toResponse(u))
}

func (h *Handler) balance(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if _, err := h.svc.GetByID(r.Context(), id); err != nil {
		if errs.IsNotFound(err) {
			w.WriteHeader(http.StatusNotFound)
			return
		}

		respond.Error(w, err)

		return
	}

	saldo, err := h.entries.Balance(r.Context(), id)
	if err != nil {
		respond.Error(w, err)
		return
	}

	// A bare number is valid JSON; keeps the wire format numeric.
	respond.Raw(w, http.StatusOK, saldo.String())
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	users, err := h.svc.List(r.Context())
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponseList(users))
}
