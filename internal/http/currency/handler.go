// Package currency serves fiat currencies and cryptos, which share one table.
package currency

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/cambio/internal/currency"
	"github.com/MrJamesThe3rd/cambio/internal/http/render"
)

var errorStatus = map[error]int{
	currency.ErrNotFound:    http.StatusNotFound,
	currency.ErrInvalidCode: http.StatusUnprocessableEntity,
}

type Handler struct {
	svc *currency.Service
}

func NewHandler(svc *currency.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) CurrencyRoutes(r chi.Router) {
	r.Get("/", h.listCurrencies)
	r.Post("/", h.createCurrency)
	r.Put("/{id}", h.updateCurrency)
	r.Delete("/{id}", h.deleteCurrency)
}

func (h *Handler) CryptoRoutes(r chi.Router) {
	r.Get("/", h.listCryptos)
	r.Post("/", h.createCrypto)
	r.Put("/{id}", h.updateCrypto)
	r.Delete("/{id}", h.deleteCrypto)
}

type currencyRequest struct {
	Code     string          `json:"code" validate:"required,len=3"`
	Name     string          `json:"name" validate:"required"`
	Symbol   string          `json:"symbol"`
	BuyRate  decimal.Decimal `json:"buyRate" validate:"gte=0"`
	SellRate decimal.Decimal `json:"sellRate" validate:"gte=0"`
	Active   bool            `json:"active"`
}

func (req currencyRequest) params() currency.CurrencyParams {
	return currency.CurrencyParams{
		Code:     req.Code,
		Name:     req.Name,
		Symbol:   req.Symbol,
		BuyRate:  req.BuyRate,
		SellRate: req.SellRate,
		Active:   req.Active,
	}
}

type cryptoRequest struct {
	Code    string `json:"code" validate:"required"`
	Name    string `json:"name" validate:"required"`
	Network string `json:"network"`
	Active  bool   `json:"active"`
}

func (req cryptoRequest) params() currency.CryptoParams {
	return currency.CryptoParams{
		Code:    req.Code,
		Name:    req.Name,
		Network: req.Network,
		Active:  req.Active,
	}
}

func (h *Handler) listCurrencies(w http.ResponseWriter, _ *http.Request) {
	render.JSON(w, http.StatusOK, h.svc.Currencies())
}

func (h *Handler) createCurrency(w http.ResponseWriter, r *http.Request) {
	var req currencyRequest
	if !render.Decode(w, r, &req) {
		return
	}

	c, err := h.svc.CreateCurrency(r.Context(), req.params())
	if err != nil {
		render.Status(w, err, errorStatus)
		return
	}

	render.JSON(w, http.StatusCreated, c)
}

func (h *Handler) updateCurrency(w http.ResponseWriter, r *http.Request) {
	id, ok := render.ID(w, r)
	if !ok {
		return
	}

	var req currencyRequest
	if !render.Decode(w, r, &req) {
		return
	}

	c, err := h.svc.UpdateCurrency(r.Context(), id, req.params())
	if err != nil {
		render.Status(w, err, errorStatus)
		return
	}

	render.JSON(w, http.StatusOK, c)
}

func (h *Handler) deleteCurrency(w http.ResponseWriter, r *http.Request) {
	id, ok := render.ID(w, r)
	if !ok {
		return
	}

	if err := h.svc.DeleteCurrency(r.Context(), id); err != nil {
		render.Status(w, err, errorStatus)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) listCryptos(w http.ResponseWriter, _ *http.Request) {
	render.JSON(w, http.StatusOK, h.svc.Cryptos())
}

func (h *Handler) createCrypto(w http.ResponseWriter, r *http.Request) {
	var req cryptoRequest
	if !render.Decode(w, r, &req) {
		return
	}

	c, err := h.svc.CreateCrypto(r.Context(), req.params())
	if err != nil {
		render.Status(w, err, errorStatus)
		return
	}

	render.JSON(w, http.StatusCreated, c)
}

func (h *Handler) updateCrypto(w http.ResponseWriter, r *http.Request) {
	id, ok := render.ID(w, r)
	if !ok {
		return
	}

	var req cryptoRequest
	if !render.Decode(w, r, &req) {
		return
	}

	c, err := h.svc.UpdateCrypto(r.Context(), id, req.params())
	if err != nil {
		render.Status(w, err, errorStatus)
		return
	}

	render.JSON(w, http.StatusOK, c)
}

func (h *Handler) deleteCrypto(w http.ResponseWriter, r *http.Request) {
	id, ok := render.ID(w, r)
	if !ok {
		return
	}

	if err := h.svc.DeleteCrypto(r.Context(), id); err != nil {
		render.Status(w, err, errorStatus)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
