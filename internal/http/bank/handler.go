package bank

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/cambio/internal/bank"
	"github.com/MrJamesThe3rd/cambio/internal/http/render"
)

var errorStatus = map[error]int{
	bank.ErrNotFound: http.StatusNotFound,
}

type Handler struct {
	svc *bank.Service
}

func NewHandler(svc *bank.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/balances", h.balances)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
	r.Put("/{id}/balances/{currency}", h.setBalance)
}

type bankRequest struct {
	Name    string `json:"name" validate:"required"`
	Code    string `json:"code"`
	Country string `json:"country" validate:"omitempty,len=2"`
	Active  bool   `json:"active"`
}

func (req bankRequest) params() bank.Params {
	return bank.Params{Name: req.Name, Code: req.Code, Country: req.Country, Active: req.Active}
}

func (h *Handler) list(w http.ResponseWriter, _ *http.Request) {
	render.JSON(w, http.StatusOK, h.svc.List())
}

func (h *Handler) balances(w http.ResponseWriter, _ *http.Request) {
	render.JSON(w, http.StatusOK, h.svc.Balances())
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req bankRequest
	if !render.Decode(w, r, &req) {
		return
	}

	b, err := h.svc.Create(r.Context(), req.params())
	if err != nil {
		render.Status(w, err, errorStatus)
		return
	}

	render.JSON(w, http.StatusCreated, b)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, ok := render.ID(w, r)
	if !ok {
		return
	}

	var req bankRequest
	if !render.Decode(w, r, &req) {
		return
	}

	b, err := h.svc.Update(r.Context(), id, req.params())
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

type setBalanceRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

func (h *Handler) setBalance(w http.ResponseWriter, r *http.Request) {
	id, ok := render.ID(w, r)
	if !ok {
		return
	}

	var req setBalanceRequest
	if !render.Decode(w, r, &req) {
		return
	}

	cur := strings.ToUpper(chi.URLParam(r, "currency"))

	b, err := h.svc.SetBalance(r.Context(), id, cur, req.Amount)
	if err != nil {
		render.Status(w, err, errorStatus)
		return
	}

	render.JSON(w, http.StatusOK, b)
}
