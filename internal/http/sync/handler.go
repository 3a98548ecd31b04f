// Package sync exposes the full-refresh status and a manual trigger.
package sync

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/cambio/internal/http/render"
	"github.com/MrJamesThe3rd/cambio/internal/refresh"
)

type Refresher interface {
	Sync(ctx context.Context) error
	Status() refresh.Status
}

type Handler struct {
	refresher Refresher
}

func NewHandler(refresher Refresher) *Handler {
	return &Handler{refresher: refresher}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.status)
	r.Post("/", h.sync)
}

func (h *Handler) status(w http.ResponseWriter, _ *http.Request) {
	render.JSON(w, http.StatusOK, h.refresher.Status())
}

// sync runs a refresh and reports the resulting status. A refresh already in
// progress is not restarted.
func (h *Handler) sync(w http.ResponseWriter, r *http.Request) {
	if err := h.refresher.Sync(r.Context()); err != nil {
		render.JSON(w, http.StatusBadGateway, h.refresher.Status())
		return
	}

	render.JSON(w, http.StatusOK, h.refresher.Status())
}
