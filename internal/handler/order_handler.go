package handler

import (
	"net/http"

	"educk/internal/model"
	"educk/internal/service"

	"github.com/rs/zerolog"
)

// OrderHandler handles order-related HTTP requests.
type OrderHandler struct {
	service service.OrderService
	logger  zerolog.Logger
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(service service.OrderService, logger zerolog.Logger) *OrderHandler {
	return &OrderHandler{
		service: service,
		logger:  logger.With().Str("handler", "order").Logger(),
	}
}

// ListMine handles GET /orders/me.
func (h *OrderHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	caller, err := principal(r)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	orders, err := h.service.ListMine(r.Context(), caller.UserID)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}
	if orders == nil {
		orders = []model.Order{}
	}

	writeJSON(w, http.StatusOK, orders)
}

// GetByID handles GET /orders/{id}.
func (h *OrderHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	caller, err := principal(r)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	orderID, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	order, err := h.service.GetByID(r.Context(), caller, orderID)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, order)
}

// PaymentStatus handles GET /orders/{id}/payment-status.
func (h *OrderHandler) PaymentStatus(w http.ResponseWriter, r *http.Request) {
	caller, err := principal(r)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	orderID, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	status, err := h.service.PaymentStatus(r.Context(), caller, orderID)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, status)
}

// Receipt handles GET /orders/{id}/receipt.
func (h *OrderHandler) Receipt(w http.ResponseWriter, r *http.Request) {
	caller, err := principal(r)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	orderID, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	receipt, err := h.service.Receipt(r.Context(), caller, orderID)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, receipt)
}

// List handles the admin GET /orders listing.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	page, limit, err := paging(r)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	filter := model.OrderFilter{Limit: limit, Offset: (page - 1) * limit}
	if s := r.URL.Query().Get("status"); s != "" {
		status := model.OrderStatus(s)
		filter.Status = &status
	}

	orders, total, err := h.service.List(r.Context(), filter)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}
	if orders == nil {
		orders = []model.Order{}
	}

	writeJSON(w, http.StatusOK, model.OrderPage{
		Orders:     orders,
		Pagination: model.NewPagination(total, page, limit),
	})
}

// UpdateStatus handles the admin PUT /orders/{id}/status.
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	orderID, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	var req model.StatusUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err, h.logger)
		return
	}

	order, err := h.service.UpdateStatus(r.Context(), orderID, &req)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, model.StatusUpdateResponse{
		Message: "Order status updated",
		ID:      order.ID,
		Status:  order.Status,
		Payment: order.PaymentStatus,
	})
}
