package balance

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/cambio/internal/balance"
	"github.com/MrJamesThe3rd/cambio/internal/caja"
	"github.com/MrJamesThe3rd/cambio/internal/http/render"
)

var errorStatus = map[error]int{
	balance.ErrNotFound: http.StatusNotFound,
	caja.ErrNotOpen:     http.StatusConflict,
}

// SessionProvider returns the register session new balances belong to.
type SessionProvider interface {
	Current() caja.Session
}

type Handler struct {
	svc      *balance.Service
	sessions SessionProvider
}

func NewHandler(svc *balance.Service, sessions SessionProvider) *Handler {
	return &Handler{svc: svc, sessions: sessions}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.delete)
	r.Post("/{id}/toggle", h.toggle)
}

func (h *Handler) list(w http.ResponseWriter, _ *http.Request) {
	render.JSON(w, http.StatusOK, h.svc.List())
}

type createBalanceRequest struct {
	Name         string          `json:"name" validate:"required"`
	CurrencyCode string          `json:"currencyCode" validate:"required"`
	Amount       decimal.Decimal `json:"amount"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createBalanceRequest
	if !render.Decode(w, r, &req) {
		return
	}

	sess := h.sessions.Current()
	if !sess.IsOpen || sess.ID == uuid.Nil {
		render.Status(w, caja.ErrNotOpen, errorStatus)
		return
	}

	b, err := h.svc.Create(r.Context(), balance.CreateParams{
		Name:         req.Name,
		CurrencyCode: req.CurrencyCode,
		Amount:       req.Amount,
		SessionID:    sess.ID,
	})
	if err != nil {
		render.Status(w, err, errorStatus)
		return
	}

	render.JSON(w, http.StatusCreated, b)
}

type updateBalanceRequest struct {
	Name         *string          `json:"name,omitempty" validate:"omitempty,min=1"`
	CurrencyCode *string          `json:"currencyCode,omitempty" validate:"omitempty,min=1"`
	Amount       *decimal.Decimal `json:"amount,omitempty"`
	Active       *bool            `json:"active,omitempty"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, ok := render.ID(w, r)
	if !ok {
		return
	}

	var req updateBalanceRequest
	if !render.Decode(w, r, &req) {
		return
	}

	b, err := h.svc.Update(r.Context(), id, balance.UpdateParams{
		Name:         req.Name,
		CurrencyCode: req.CurrencyCode,
		Amount:       req.Amount,
		Active:       req.Active,
	})
	if err != nil {
		render.Status(w, err, errorStatus)
		return
	}

	render.JSON(w, http.StatusOK, b)
}

func (h *Handler) toggle(w http.ResponseWriter, r *http.Request) {
	id, ok := render.ID(w, r)
	if !ok {
		return
	}

	b, err := h.svc.ToggleActive(r.Context(), id)
	if err != nil {
		render.Status(w, err, errorStatus)
		return
	}

	render.JSON(w, http.StatusOK, b)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := render.ID(w, r)
	if !ok {
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		render.Status(w, err, errorStatus)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
