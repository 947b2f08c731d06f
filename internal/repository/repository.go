package repository

import (
	"context"

	"educk/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// querier is satisfied by both *pgxpool.Pool and pgx.Tx.
type querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// UserRepository defines data access for accounts and their enrollments.
type UserRepository interface {
	// GetByID retrieves a user by ID. Returns nil, nil when absent.
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)

	// IsEnrolled reports whether the user already owns the course.
	IsEnrolled(ctx context.Context, userID, courseID uuid.UUID) (bool, error)

	// Enroll appends courseID to the user's enrolled courses within tx.
	// It reports whether a new enrollment was created.
	Enroll(ctx context.Context, tx pgx.Tx, userID, courseID uuid.UUID) (bool, error)

	// EnrolledCourses lists the user's courses, most recent enrollment first.
	EnrolledCourses(ctx context.Context, userID uuid.UUID) ([]model.Course, error)
}

// CourseRepository defines data access for the course catalogue.
type CourseRepository interface {
	// List returns one page of published courses and the total match count.
	List(ctx context.Context, filter model.CourseFilter) ([]model.Course, int, error)

	// GetByID retrieves a course by ID. Returns nil, nil when absent.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Course, error)

	// RecordSale adds userID to the course's students within tx and bumps the
	// sales counter when the student is new. It reports whether a sale was recorded.
	RecordSale(ctx context.Context, tx pgx.Tx, courseID, userID uuid.UUID) (bool, error)
}

// CartRepository defines data access for shopping carts.
type CartRepository interface {
	// Items returns the user's cart joined with current course prices.
	Items(ctx context.Context, userID uuid.UUID) ([]model.CartItem, error)

	// ItemsForUpdate is Items with the cart rows locked for the rest of tx.
	ItemsForUpdate(ctx context.Context, tx pgx.Tx, userID uuid.UUID) ([]model.CartItem, error)

	// Add puts a course in the cart. Returns model.ErrAlreadyInCart on duplicates.
	Add(ctx context.Context, userID, courseID uuid.UUID) error

	// Remove takes a course out of the cart. Returns model.ErrNotInCart when absent.
	Remove(ctx context.Context, userID, courseID uuid.UUID) error

	// Clear empties the cart.
	Clear(ctx context.Context, userID uuid.UUID) error

	// ClearTx empties the cart within tx.
	ClearTx(ctx context.Context, tx pgx.Tx, userID uuid.UUID) error
}

// OrderRepository defines the interface for order data access operations.
type OrderRepository interface {
	// BeginTx starts a new database transaction.
	BeginTx(ctx context.Context) (pgx.Tx, error)

	// CreateOrder inserts an order and its line snapshots within tx.
	CreateOrder(ctx context.Context, tx pgx.Tx, order *model.Order) error

	// GetByID retrieves an order with its items. Returns nil, nil when absent.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error)

	// GetForUpdate is GetByID with the order row locked for the rest of tx.
	GetForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*model.Order, error)

	// ListByUser returns the user's orders, newest first.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Order, error)

	// List returns one page of orders and the total match count.
	List(ctx context.Context, filter model.OrderFilter) ([]model.Order, int, error)

	// UpdateStatus persists the order's statuses and payment details within tx.
	UpdateStatus(ctx context.Context, tx pgx.Tx, order *model.Order) error
}
