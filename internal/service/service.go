package service

import (
	"context"

	"educk/internal/model"

	"github.com/google/uuid"
)

// CartService defines operations on a user's shopping cart.
type CartService interface {
	// Get returns the cart with per-line final prices and totals.
	Get(ctx context.Context, userID uuid.UUID) (*model.CartResponse, error)

	// Add puts a course in the cart.
	Add(ctx context.Context, userID, courseID uuid.UUID) error

	// Remove takes a course out of the cart.
	Remove(ctx context.Context, userID, courseID uuid.UUID) error

	// Clear empties the cart.
	Clear(ctx context.Context, userID uuid.UUID) error

	// ApplyCoupon quotes a coupon against the current cart total without
	// persisting anything.
	ApplyCoupon(ctx context.Context, userID uuid.UUID, code string) (*model.CouponQuote, error)
}

// OrderService defines checkout and order management.
type OrderService interface {
	// Checkout turns the user's cart into a priced, persisted order.
	Checkout(ctx context.Context, userID uuid.UUID, req *model.CheckoutRequest) (*model.Order, error)

	// UpdateStatus applies an administrative status change.
	UpdateStatus(ctx context.Context, orderID uuid.UUID, req *model.StatusUpdateRequest) (*model.Order, error)

	// GetByID returns an order visible to caller.
	GetByID(ctx context.Context, caller model.Principal, id uuid.UUID) (*model.Order, error)

	// ListMine returns the caller's orders, newest first.
	ListMine(ctx context.Context, userID uuid.UUID) ([]model.Order, error)

	// List returns one page of all orders for administrators.
	List(ctx context.Context, filter model.OrderFilter) ([]model.Order, int, error)

	// PaymentStatus returns the payment view of an order visible to caller.
	PaymentStatus(ctx context.Context, caller model.Principal, id uuid.UUID) (*model.PaymentStatusResponse, error)

	// Receipt renders the receipt of an order visible to caller.
	Receipt(ctx context.Context, caller model.Principal, id uuid.UUID) (*model.Receipt, error)
}

// CourseService defines read operations on the catalogue.
type CourseService interface {
	// List returns one page of published courses and the total match count.
	List(ctx context.Context, filter model.CourseFilter) ([]model.Course, int, error)

	// GetByID retrieves a single course.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Course, error)

	// Enrolled lists the courses the user owns.
	Enrolled(ctx context.Context, userID uuid.UUID) ([]model.Course, error)
}
