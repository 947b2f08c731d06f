package handler

import (
	"net/http"

	"educk/internal/model"
	"educk/internal/service"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// CartHandler handles cart and checkout HTTP requests.
type CartHandler struct {
	carts  service.CartService
	orders service.OrderService
	logger zerolog.Logger
}

// NewCartHandler creates a new cart handler.
func NewCartHandler(carts service.CartService, orders service.OrderService, logger zerolog.Logger) *CartHandler {
	return &CartHandler{
		carts:  carts,
		orders: orders,
		logger: logger.With().Str("handler", "cart").Logger(),
	}
}

// Get handles GET /cart.
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	caller, err := principal(r)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	cart, err := h.carts.Get(r.Context(), caller.UserID)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, cart)
}

// Add handles POST /cart/add.
func (h *CartHandler) Add(w http.ResponseWriter, r *http.Request) {
	caller, err := principal(r)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	var req model.AddToCartRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err, h.logger)
		return
	}
	if req.CourseID == "" {
		writeError(w, model.NewDomainError(model.ErrCodeMissingField, "courseId is required"), h.logger)
		return
	}
	courseID, err := uuid.Parse(req.CourseID)
	if err != nil {
		writeError(w, model.NewDomainError(model.ErrCodeInvalidID, "invalid courseId"), h.logger)
		return
	}

	if err := h.carts.Add(r.Context(), caller.UserID, courseID); err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Course added to cart"})
}

// Remove handles DELETE /cart/remove/{courseId}.
func (h *CartHandler) Remove(w http.ResponseWriter, r *http.Request) {
	caller, err := principal(r)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	courseID, err := pathUUID(r, "courseId")
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	if err := h.carts.Remove(r.Context(), caller.UserID, courseID); err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Course removed from cart"})
}

// Clear handles DELETE /cart/clear.
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	caller, err := principal(r)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	if err := h.carts.Clear(r.Context(), caller.UserID); err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Cart cleared"})
}

// ApplyCoupon handles POST /cart/apply-coupon.
func (h *CartHandler) ApplyCoupon(w http.ResponseWriter, r *http.Request) {
	caller, err := principal(r)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	var req model.ApplyCouponRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err, h.logger)
		return
	}
	if req.CouponCode == "" {
		writeError(w, model.NewDomainError(model.ErrCodeMissingField, "couponCode is required"), h.logger)
		return
	}

	quote, err := h.carts.ApplyCoupon(r.Context(), caller.UserID, req.CouponCode)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, quote)
}

// Checkout handles POST /cart/checkout.
func (h *CartHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	caller, err := principal(r)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	var req model.CheckoutRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err, h.logger)
		return
	}

	order, err := h.orders.Checkout(r.Context(), caller.UserID, &req)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, model.CheckoutResponse{
		Message: "Order created successfully",
		Order:   order.Summary(),
	})
}
