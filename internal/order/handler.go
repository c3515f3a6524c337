package order

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

// Register mounts the order routes on a router rooted at /api/v1.
func (h *Handler) Register(r chi.Router) {
	r.Post("/orders/customer", h.placeOrder)
	r.Get("/orders/customer", h.listMine)
	r.Get("/orders/admin", h.listAll)
	r.Put("/orders/admin/{orderId}", h.updateStatus)
	r.Get("/orders/admin/{orderId}", h.listItems)
}

func (h *Handler) placeOrder(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.WriteError(w, r, apperror.Unauthorized("Invalid or missing JWT"))
		return
	}

	if _, err := h.svc.CreateOrderForUser(r.Context(), userID); err != nil {
		utils.WriteError(w, r, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, "Order Placed Successfully", nil)
}

func (h *Handler) listMine(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.WriteError(w, r, apperror.Unauthorized("Invalid or missing JWT"))
		return
	}

	page, size, err := utils.ParsePageParams(r)
	if err != nil {
		utils.WriteError(w, r, err)
		return
	}

	data, err := h.svc.FetchOrdersForUser(r.Context(), userID, page, size)
	if err != nil {
		utils.WriteError(w, r, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, "Fetched Orders Successfully", data)
}

func (h *Handler) listAll(w http.ResponseWriter, r *http.Request) {
	page, size, err := utils.ParsePageParams(r)
	if err != nil {
		utils.WriteError(w, r, err)
		return
	}

	data, err := h.svc.FetchAllOrders(r.Context(), page, size)
	if err != nil {
		utils.WriteError(w, r, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, "Fetched All Orders Successfully", data)
}

func (h *Handler) updateStatus(w http.ResponseWriter, r *http.Request) {
	orderID, err := utils.ParseID(chi.URLParam(r, "orderId"), "orderId")
	if err != nil {
		utils.WriteError(w, r, err)
		return
	}

	status := r.URL.Query().Get("status")
	if status == "" {
		utils.WriteError(w, r, apperror.InvalidInput("status is required"))
		return
	}

	if err := h.svc.UpdateOrderStatusByOrderID(r.Context(), orderID, status); err != nil {
		utils.WriteError(w, r, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, "Order Status Updated Successfully", nil)
}

func (h *Handler) listItems(w http.ResponseWriter, r *http.Request) {
	orderID, err := utils.ParseID(chi.URLParam(r, "orderId"), "orderId")
	if err != nil {
		utils.WriteError(w, r, err)
		return
	}

	page, size, err := utils.ParsePageParams(r)
	if err != nil {
		utils.WriteError(w, r, err)
		return
	}

	data, err := h.svc.FetchAllOrderItemsByOrderID(r.Context(), orderID, page, size)
	if err != nil {
		utils.WriteError(w, r, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, "Fetched All Orders Successfully", data)
}
