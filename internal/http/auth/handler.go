package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/cambio/internal/auth"
	"github.com/MrJamesThe3rd/cambio/internal/http/render"
)

type Handler struct {
	svc *auth.Service
}

func NewHandler(svc *auth.Service) *Handler {
	return &Handler{svc: svc}
}

// PublicRoutes are reachable without a token.
func (h *Handler) PublicRoutes(r chi.Router) {
	r.Post("/login", h.login)
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/logout", h.logout)
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !render.Decode(w, r, &req) {
		return
	}

	sess, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		render.Status(w, err, map[error]int{auth.ErrInvalidCredentials: http.StatusUnauthorized})
		return
	}

	render.JSON(w, http.StatusOK, sess)
}

func (h *Handler) logout(w http.ResponseWriter, _ *http.Request) {
	h.svc.Logout()
	w.WriteHeader(http.StatusNoContent)
}
