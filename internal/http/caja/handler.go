package caja

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/cambio/internal/caja"
	"github.com/MrJamesThe3rd/cambio/internal/http/middleware"
	"github.com/MrJamesThe3rd/cambio/internal/http/render"
)

var errorStatus = map[error]int{
	caja.ErrAlreadyOpen: http.StatusConflict,
	caja.ErrNotOpen:     http.StatusConflict,
	caja.ErrNoOperator:  http.StatusUnauthorized,
}

type Handler struct {
	svc *caja.Service
}

func NewHandler(svc *caja.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.current)
	r.Post("/open", h.open)
	r.Post("/close", h.close)
	r.Get("/history", h.history)
}

func (h *Handler) current(w http.ResponseWriter, _ *http.Request) {
	render.JSON(w, http.StatusOK, h.svc.Current())
}

func (h *Handler) open(w http.ResponseWriter, r *http.Request) {
	sess, err := h.svc.Open(r.Context(), middleware.OperatorID(r.Context()))
	if err != nil {
		render.Status(w, err, errorStatus)
		return
	}

	render.JSON(w, http.StatusCreated, sess)
}

func (h *Handler) close(w http.ResponseWriter, r *http.Request) {
	sess, err := h.svc.Close(r.Context(), middleware.OperatorID(r.Context()))
	if err != nil {
		render.Status(w, err, errorStatus)
		return
	}

	render.JSON(w, http.StatusOK, sess)
}

func (h *Handler) history(w http.ResponseWriter, r *http.Request) {
	entries, err := h.svc.History(r.Context())
	if err != nil {
		render.Status(w, err, errorStatus)
		return
	}

	if entries == nil {
		entries = []caja.HistoryEntry{}
	}

	render.JSON(w, http.StatusOK, entries)
}
