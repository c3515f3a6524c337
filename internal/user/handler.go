package user

import (
	"net/http"

	"gridiron-be/internal/auth"
	"gridiron-be/internal/utils"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

// Register mounts the user routes on a router rooted at /api/v1.
func (h *Handler) Register(r chi.Router) {
	r.Post("/users/public/customer", h.createCustomer)
	r.Post("/users/public/authenticate", h.authenticate)
	r.Post("/users/private/admin", h.createAdmin)
}

func (h *Handler) createCustomer(w http.ResponseWriter, r *http.Request) {
	h.create(w, r, auth.RoleCustomer, "Customer Created Successfully")
}

func (h *Handler) createAdmin(w http.ResponseWriter, r *http.Request) {
	h.create(w, r, auth.RoleAdmin, "Admin Created Successfully")
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request, role auth.Role, message string) {
	var req CreateUserRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.WriteError(w, r, err)
		return
	}

	if _, err := h.svc.CreateUser(r.Context(), req, role); err != nil {
		utils.WriteError(w, r, err)
		return
	}

	utils.WriteSuccess(w, http.StatusCreated, message, nil)
}

func (h *Handler) authenticate(w http.ResponseWriter, r *http.Request) {
	var req AuthenticateUserRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.WriteError(w, r, err)
		return
	}

	profile, err := h.svc.AuthenticateUser(r.Context(), req)
	if err != nil {
		utils.WriteError(w, r, err)
		return
	}

	utils.WriteSuccess(w, http.StatusCreated, "Account Authenticated Successfully", profile)
}
