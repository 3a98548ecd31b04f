package client

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/cambio/internal/client"
	"github.com/MrJamesThe3rd/cambio/internal/http/render"
)

var errorStatus = map[error]int{
	client.ErrNotFound:         http.StatusNotFound,
	client.ErrInvalidKYCStatus: http.StatusUnprocessableEntity,
}

type Handler struct {
	svc *client.Service
}

func NewHandler(svc *client.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

type clientRequest struct {
	Name           string           `json:"name" validate:"required"`
	DocumentType   string           `json:"documentType"`
	DocumentNumber string           `json:"documentNumber"`
	Phone          string           `json:"phone"`
	Email          string           `json:"email" validate:"omitempty,email"`
	Address        string           `json:"address"`
	KYCStatus      client.KYCStatus `json:"kycStatus"`
	Active         *bool            `json:"active"`
}

func (req clientRequest) params() client.Params {
	active := true
	if req.Active != nil {
		active = *req.Active
	}

	return client.Params{
		Name:           req.Name,
		DocumentType:   req.DocumentType,
		DocumentNumber: req.DocumentNumber,
		Phone:          req.Phone,
		Email:          req.Email,
		Address:        req.Address,
		KYCStatus:      req.KYCStatus,
		Active:         active,
	}
}

func (h *Handler) list(w http.ResponseWriter, _ *http.Request) {
	render.JSON(w, http.StatusOK, h.svc.List())
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req clientRequest
	if !render.Decode(w, r, &req) {
		return
	}

	c, err := h.svc.Create(r.Context(), req.params())
	if err != nil {
		render.Status(w, err, errorStatus)
		return
	}

	render.JSON(w, http.StatusCreated, c)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, ok := render.ID(w, r)
	if !ok {
		return
	}

	c, err := h.svc.Get(r.Context(), id)
	if err != nil {
		render.Status(w, err, errorStatus)
		return
	}

	render.JSON(w, http.StatusOK, c)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, ok := render.ID(w, r)
	if !ok {
		return
	}

	var req clientRequest
	if !render.Decode(w, r, &req) {
		return
	}

	c, err := h.svc.Update(r.Context(), id, req.params())
	if err != nil {
		render.Status(w, err, errorStatus)
		return
	}

	render.JSON(w, http.StatusOK, c)
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
