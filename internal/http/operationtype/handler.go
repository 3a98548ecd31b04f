package operationtype

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/cambio/internal/http/render"
	"github.com/MrJamesThe3rd/cambio/internal/operationtype"
)

var errorStatus = map[error]int{
	operationtype.ErrNotFound:      http.StatusNotFound,
	operationtype.ErrDuplicateCode: http.StatusConflict,
}

type Handler struct {
	svc *operationtype.Service
}

func NewHandler(svc *operationtype.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

type operationTypeRequest struct {
	Name        string `json:"name" validate:"required"`
	Code        string `json:"code" validate:"required"`
	Description string `json:"description"`
	Active      bool   `json:"active"`
}

func (req operationTypeRequest) params() operationtype.Params {
	return operationtype.Params{
		Name:        req.Name,
		Code:        req.Code,
		Description: req.Description,
		Active:      req.Active,
	}
}

func (h *Handler) list(w http.ResponseWriter, _ *http.Request) {
	render.JSON(w, http.StatusOK, h.svc.List())
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req operationTypeRequest
	if !render.Decode(w, r, &req) {
		return
	}

	ot, err := h.svc.Create(r.Context(), req.params())
	if err != nil {
		render.Status(w, err, errorStatus)
		return
	}

	render.JSON(w, http.StatusCreated, ot)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, ok := render.ID(w, r)
	if !ok {
		return
	}

	var req operationTypeRequest
	if !render.Decode(w, r, &req) {
		return
	}

	ot, err := h.svc.Update(r.Context(), id, req.params())
	if err != nil {
		render.Status(w, err, errorStatus)
		return
	}

	render.JSON(w, http.StatusOK, ot)
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
