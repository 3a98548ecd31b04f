package operator

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/cambio/internal/http/render"
	"github.com/MrJamesThe3rd/cambio/internal/operator"
)

var errorStatus = map[error]int{
	operator.ErrNotFound:       http.StatusNotFound,
	operator.ErrDuplicateEmail: http.StatusConflict,
	operator.ErrInvalidRole:    http.StatusUnprocessableEntity,
}

type Handler struct {
	svc *operator.Service
}

func NewHandler(svc *operator.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

func (h *Handler) list(w http.ResponseWriter, _ *http.Request) {
	render.JSON(w, http.StatusOK, h.svc.List())
}

type createOperatorRequest struct {
	Name        string               `json:"name" validate:"required"`
	Email       string               `json:"email" validate:"required,email"`
	Password    string               `json:"password" validate:"required,min=8"`
	Role        operator.Role        `json:"role"`
	Permissions operator.Permissions `json:"permissions"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createOperatorRequest
	if !render.Decode(w, r, &req) {
		return
	}

	op, err := h.svc.Create(r.Context(), operator.CreateParams{
		Name:        req.Name,
		Email:       req.Email,
		Password:    req.Password,
		Role:        req.Role,
		Permissions: req.Permissions,
	})
	if err != nil {
		render.Status(w, err, errorStatus)
		return
	}

	render.JSON(w, http.StatusCreated, op)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, ok := render.ID(w, r)
	if !ok {
		return
	}

	op, err := h.svc.Get(r.Context(), id)
	if err != nil {
		render.Status(w, err, errorStatus)
		return
	}

	render.JSON(w, http.StatusOK, op)
}

type updateOperatorRequest struct {
	Name        *string               `json:"name,omitempty" validate:"omitempty,min=1"`
	Role        *operator.Role        `json:"role,omitempty"`
	Permissions *operator.Permissions `json:"permissions,omitempty"`
	Active      *bool                 `json:"active,omitempty"`
	Password    *string               `json:"password,omitempty" validate:"omitempty,min=8"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, ok := render.ID(w, r)
	if !ok {
		return
	}

	var req updateOperatorRequest
	if !render.Decode(w, r, &req) {
		return
	}

	op, err := h.svc.Update(r.Context(), id, operator.UpdateParams{
		Name:        req.Name,
		Role:        req.Role,
		Permissions: req.Permissions,
		Active:      req.Active,
		Password:    req.Password,
	})
	if err != nil {
		render.Status(w, err, errorStatus)
		return
	}

	render.JSON(w, http.StatusOK, op)
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
