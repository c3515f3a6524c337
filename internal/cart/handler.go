package cart

import (
	"net/http"

	"gridiron-be/internal/apperror"
	"gridiron-be/internal/utils"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

// Register mounts the cart routes on a router rooted at /api/v1.
func (h *Handler) Register(r chi.Router) {
	r.Post("/carts/private", h.addItem)
	r.Put("/carts/private", h.removeItem)
	r.Get("/carts/private", h.listItems)
}

func currentUser(w http.ResponseWriter, r *http.Request) (int64, bool) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.WriteError(w, r, apperror.Unauthorized("Invalid or missing JWT"))
	}
	return userID, ok
}

func (h *Handler) addItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req AddToCartRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.WriteError(w, r, err)
		return
	}

	if err := h.svc.AddItemToCart(r.Context(), userID, req); err != nil {
		utils.WriteError(w, r, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, "Added to cart successfully", nil)
}

func (h *Handler) removeItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	cartItemID, err := utils.ParseID(r.URL.Query().Get("cartItemId"), "cartItemId")
	if err != nil {
		utils.WriteError(w, r, err)
		return
	}

	if err := h.svc.DeleteItemFromCart(r.Context(), userID, cartItemID); err != nil {
		utils.WriteError(w, r, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, "Product removed successfully", nil)
}

func (h *Handler) listItems(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	page, size, err := utils.ParsePageParams(r)
	if err != nil {
		utils.WriteError(w, r, err)
		return
	}

	data, err := h.svc.FetchProductInCartByCartID(r.Context(), userID, page, size)
	if err != nil {
		utils.WriteError(w, r, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, "Product fetched successfully", data)
}
