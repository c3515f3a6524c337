package product

import (
	"net/http"

	"gridiron-be/internal/utils"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

// Register mounts the product routes on a router rooted at /api/v1.
func (h *Handler) Register(r chi.Router) {
	r.Get("/products/public", h.list)
	r.Get("/products/public/{productId}", h.get)
	r.Post("/products/private", h.create)
	r.Put("/products/private/{productId}", h.edit)
	r.Delete("/products/private/{productId}", h.delete)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req ProductRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.WriteError(w, r, err)
		return
	}

	p, err := h.svc.CreateProduct(r.Context(), req)
	if err != nil {
		utils.WriteError(w, r, err)
		return
	}

	utils.WriteSuccess(w, http.StatusCreated, "Product Created Successfully", p)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	page, size, err := utils.ParsePageParams(r)
	if err != nil {
		utils.WriteError(w, r, err)
		return
	}

	data, err := h.svc.FetchProducts(r.Context(), page, size)
	if err != nil {
		utils.WriteError(w, r, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, "Products Fetched Successfully", data)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ParseID(chi.URLParam(r, "productId"), "productId")
	if err != nil {
		utils.WriteError(w, r, err)
		return
	}

	p, err := h.svc.FetchProduct(r.Context(), id)
	if err != nil {
		utils.WriteError(w, r, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, "Product Fetched Successfully", p)
}

func (h *Handler) edit(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ParseID(chi.URLParam(r, "productId"), "productId")
	if err != nil {
		utils.WriteError(w, r, err)
		return
	}

	var req ProductRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.WriteError(w, r, err)
		return
	}

	p, err := h.svc.EditProduct(r.Context(), id, req)
	if err != nil {
		utils.WriteError(w, r, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, "Product Edited Successfully", p)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ParseID(chi.URLParam(r, "productId"), "productId")
	if err != nil {
		utils.WriteError(w, r, err)
		return
	}

	if err := h.svc.DeleteProduct(r.Context(), id); err != nil {
		utils.WriteError(w, r, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, "Product Deleted Successfully", nil)
}
