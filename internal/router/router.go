package router

import (
	"net/http"

	"educk/internal/handler"
	"educk/internal/middleware"
	"educk/internal/model"

	"github.com/rs/zerolog"
)

// New creates a new HTTP router with all routes and middleware configured.
func New(
	cartHandler *handler.CartHandler,
	orderHandler *handler.OrderHandler,
	courseHandler *handler.CourseHandler,
	tokens middleware.TokenParser,
	logger zerolog.Logger,
) http.Handler {
	mux := http.NewServeMux()

	authed := middleware.Authenticate(tokens, logger)
	admin := func(h http.HandlerFunc) http.Handler {
		return authed(middleware.RequireRole(logger, model.RoleAdmin)(h))
	}
	user := func(h http.HandlerFunc) http.Handler {
		return authed(h)
	}

	// Health check endpoint (no authentication required)
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	// Catalogue
	mux.HandleFunc("GET /courses", courseHandler.List)
	mux.Handle("GET /courses/enrolled/me", user(courseHandler.Enrolled))
	mux.HandleFunc("GET /courses/{id}", courseHandler.GetByID)

	// Cart
	mux.Handle("GET /cart", user(cartHandler.Get))
	mux.Handle("POST /cart/add", user(cartHandler.Add))
	mux.Handle("DELETE /cart/remove/{courseId}", user(cartHandler.Remove))
	mux.Handle("DELETE /cart/clear", user(cartHandler.Clear))
	mux.Handle("POST /cart/apply-coupon", user(cartHandler.ApplyCoupon))
	mux.Handle("POST /cart/checkout", user(cartHandler.Checkout))

	// Orders
	mux.Handle("GET /orders/me", user(orderHandler.ListMine))
	mux.Handle("GET /orders/{id}", user(orderHandler.GetByID))
	mux.Handle("GET /orders/{id}/payment-status", user(orderHandler.PaymentStatus))
	mux.Handle("GET /orders/{id}/receipt", user(orderHandler.Receipt))
	mux.Handle("GET /orders", admin(orderHandler.List))
	mux.Handle("PUT /orders/{id}/status", admin(orderHandler.UpdateStatus))

	// Apply middleware in order: Recovery -> Logging -> CORS
	var h http.Handler = mux
	h = middleware.CORS(h)
	h = middleware.Logging(logger)(h)
	h = middleware.Recovery(logger)(h)

	return h
}
