package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"educk/internal/coupon"
	"educk/internal/database"
	"educk/internal/model"
	"educk/internal/payment"
	"educk/internal/pricing"
	"educk/internal/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

// orderService implements OrderService.
type orderService struct {
	orders   repository.OrderRepository
	carts    repository.CartRepository
	courses  repository.CourseRepository
	users    repository.UserRepository
	coupons  coupon.Registry
	payments payment.Processor
	now      func() time.Time
	logger   zerolog.Logger
}

// NewOrderService creates a new order service.
func NewOrderService(
	orders repository.OrderRepository,
	carts repository.CartRepository,
	courses repository.CourseRepository,
	users repository.UserRepository,
	coupons coupon.Registry,
	payments payment.Processor,
	logger zerolog.Logger,
) OrderService {
	return &orderService{
		orders:   orders,
		carts:    carts,
		courses:  courses,
		users:    users,
		coupons:  coupons,
		payments: payments,
		now:      time.Now,
		logger:   logger.With().Str("service", "order").Logger(),
	}
}

// Checkout prices the user's cart, persists the order, settles payment and,
// for immediately settled methods, grants the purchased courses. The whole
// unit runs in one transaction; on any error nothing is committed.
func (s *orderService) Checkout(ctx context.Context, userID uuid.UUID, req *model.CheckoutRequest) (*model.Order, error) {
	if req == nil {
		return nil, model.ErrInvalidPaymentMethod
	}

	method := model.PaymentMethod(req.PaymentMethod)
	if !method.Valid() {
		s.logger.Warn().Str("payment_method", req.PaymentMethod).Msg("invalid payment method")
		return nil, model.ErrInvalidPaymentMethod
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if user == nil {
		return nil, model.ErrUserNotFound
	}

	var order *model.Order
	err = database.WithTx(ctx, s.orders, func(tx pgx.Tx) error {
		items, err := s.carts.ItemsForUpdate(ctx, tx, userID)
		if err != nil {
			return fmt.Errorf("failed to load cart: %w", err)
		}

		breakdown, err := pricing.Price(ctx, s.coupons, cartLines(items), req.CouponCode)
		if err != nil {
			return err
		}

		now := s.now()
		o := &model.Order{
			ID:             uuid.New(),
			UserID:         userID,
			Items:          snapshot(items),
			TotalAmount:    breakdown.Subtotal,
			DiscountAmount: breakdown.DiscountAmount,
			FinalAmount:    breakdown.FinalAmount,
			PaymentMethod:  method,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		if breakdown.Coupon != nil {
			o.Coupon = &model.AppliedCoupon{
				Code:       breakdown.Coupon.Code,
				Percentage: breakdown.Coupon.Percentage,
			}
		}

		result, err := s.payments.Process(ctx, method, o.ID, o.FinalAmount)
		if err != nil {
			return fmt.Errorf("failed to process payment: %w", err)
		}
		o.PaymentStatus = result.PaymentStatus
		o.Status = result.OrderStatus
		o.PaymentDetails = result.Details

		if err := s.orders.CreateOrder(ctx, tx, o); err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}

		if result.Settled() {
			if err := s.grant(ctx, tx, o); err != nil {
				return err
			}
		}

		if err := s.carts.ClearTx(ctx, tx, userID); err != nil {
			return fmt.Errorf("failed to clear cart: %w", err)
		}

		order = o
		return nil
	})
	if err != nil {
		s.logDomainOrError(err, userID, "checkout failed")
		return nil, err
	}

	s.logger.Info().
		Str("order_id", order.ID.String()).
		Str("user_id", userID.String()).
		Int("item_count", len(order.Items)).
		Str("final_amount", order.FinalAmount.StringFixed(2)).
		Str("payment_status", string(order.PaymentStatus)).
		Msg("order created successfully")

	return order, nil
}

// UpdateStatus applies an administrative status change. Access is granted
// exactly once, when the payment moves from pending or failed to completed.
func (s *orderService) UpdateStatus(ctx context.Context, orderID uuid.UUID, req *model.StatusUpdateRequest) (*model.Order, error) {
	if req == nil || (req.Status == nil && req.PaymentStatus == nil) {
		return nil, model.ErrNoStatusFields
	}
	if req.Status != nil && !req.Status.Valid() {
		return nil, model.ErrInvalidStatus
	}
	if req.PaymentStatus != nil && !req.PaymentStatus.Valid() {
		return nil, model.ErrInvalidStatus
	}

	var order *model.Order
	err := database.WithTx(ctx, s.orders, func(tx pgx.Tx) error {
		o, err := s.orders.GetForUpdate(ctx, tx, orderID)
		if err != nil {
			return fmt.Errorf("failed to load order: %w", err)
		}
		if o == nil {
			return model.ErrOrderNotFound
		}

		changed := false
		settles := false

		if req.Status != nil && *req.Status != o.Status {
			if !o.Status.CanTransitionTo(*req.Status) {
				return model.ErrInvalidStatusTransition
			}
			o.Status = *req.Status
			changed = true
		}

		if req.PaymentStatus != nil && *req.PaymentStatus != o.PaymentStatus {
			if !o.PaymentStatus.CanTransitionTo(*req.PaymentStatus) {
				return model.ErrInvalidStatusTransition
			}
			settles = o.PaymentStatus.Settles(*req.PaymentStatus)
			o.PaymentStatus = *req.PaymentStatus
			changed = true
		}

		if changed {
			now := s.now()
			if settles && o.PaymentDetails.PaymentDate == nil {
				paidAt := now.UTC()
				o.PaymentDetails.PaymentDate = &paidAt
			}
			o.UpdatedAt = now

			if err := s.orders.UpdateStatus(ctx, tx, o); err != nil {
				return err
			}
		}

		if settles {
			if err := s.grant(ctx, tx, o); err != nil {
				return err
			}
		}

		order = o
		return nil
	})
	if err != nil {
		var domainErr *model.DomainError
		if !errors.As(err, &domainErr) {
			s.logger.Error().Err(err).Str("order_id", orderID.String()).Msg("failed to update order status")
			return nil, fmt.Errorf("failed to update order status: %w", err)
		}
		return nil, err
	}

	s.logger.Info().
		Str("order_id", order.ID.String()).
		Str("status", string(order.Status)).
		Str("payment_status", string(order.PaymentStatus)).
		Msg("order status updated")

	return order, nil
}

// GetByID returns an order owned by caller, or any order for administrators.
func (s *orderService) GetByID(ctx context.Context, caller model.Principal, id uuid.UUID) (*model.Order, error) {
	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to get order")
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	if order == nil {
		return nil, model.ErrOrderNotFound
	}
	if order.UserID != caller.UserID && !caller.IsAdmin() {
		s.logger.Warn().
			Str("order_id", id.String()).
			Str("caller_id", caller.UserID.String()).
			Msg("order access denied")
		return nil, model.ErrForbidden
	}
	return order, nil
}

// ListMine returns the caller's orders, newest first.
func (s *orderService) ListMine(ctx context.Context, userID uuid.UUID) ([]model.Order, error) {
	orders, err := s.orders.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

// List returns one page of all orders.
func (s *orderService) List(ctx context.Context, filter model.OrderFilter) ([]model.Order, int, error) {
	if filter.Status != nil && !filter.Status.Valid() {
		return nil, 0, model.ErrInvalidStatus
	}
	orders, total, err := s.orders.List(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, total, nil
}

// PaymentStatus returns the payment view of an order.
func (s *orderService) PaymentStatus(ctx context.Context, caller model.Principal, id uuid.UUID) (*model.PaymentStatusResponse, error) {
	order, err := s.GetByID(ctx, caller, id)
	if err != nil {
		return nil, err
	}
	return &model.PaymentStatusResponse{
		OrderID:        order.ID,
		PaymentStatus:  order.PaymentStatus,
		PaymentMethod:  order.PaymentMethod,
		PaymentDetails: order.PaymentDetails,
	}, nil
}

// Receipt renders the receipt of an order.
func (s *orderService) Receipt(ctx context.Context, caller model.Principal, id uuid.UUID) (*model.Receipt, error) {
	order, err := s.GetByID(ctx, caller, id)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(ctx, order.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load customer: %w", err)
	}
	if user == nil {
		return nil, model.ErrUserNotFound
	}

	return &model.Receipt{
		ReceiptNumber:  ReceiptNumber(order.ID),
		OrderDate:      order.CreatedAt,
		Customer:       model.Customer{Name: user.Name, Email: user.Email},
		Items:          order.Items,
		PaymentMethod:  order.PaymentMethod,
		TotalAmount:    order.TotalAmount,
		DiscountAmount: order.DiscountAmount,
		FinalAmount:    order.FinalAmount,
		Status:         order.Status,
	}, nil
}

// ReceiptNumber derives the human-facing receipt number of an order.
func ReceiptNumber(orderID uuid.UUID) string {
	return "REC-" + strings.ToUpper(orderID.String()[:8])
}

// grant enrolls the order's owner in every purchased course and records one
// sale per course for students not already counted.
func (s *orderService) grant(ctx context.Context, tx pgx.Tx, o *model.Order) error {
	for _, courseID := range o.CourseIDs() {
		if _, err := s.users.Enroll(ctx, tx, o.UserID, courseID); err != nil {
			return fmt.Errorf("failed to enroll user: %w", err)
		}
		recorded, err := s.courses.RecordSale(ctx, tx, courseID, o.UserID)
		if err != nil {
			return fmt.Errorf("failed to record sale: %w", err)
		}
		s.logger.Debug().
			Str("order_id", o.ID.String()).
			Str("course_id", courseID.String()).
			Bool("sale_recorded", recorded).
			Msg("course access granted")
	}
	return nil
}

func (s *orderService) logDomainOrError(err error, userID uuid.UUID, msg string) {
	var domainErr *model.DomainError
	if errors.As(err, &domainErr) {
		s.logger.Warn().Str("user_id", userID.String()).Str("code", domainErr.Code).Msg(msg)
		return
	}
	s.logger.Error().Err(err).Str("user_id", userID.String()).Msg(msg)
}

func snapshot(items []model.CartItem) []model.LineSnapshot {
	lines := make([]model.LineSnapshot, len(items))
	for i, item := range items {
		lines[i] = model.LineSnapshot{
			CourseID:      item.CourseID,
			Title:         item.Title,
			Price:         item.Price,
			DiscountPrice: item.DiscountPrice,
		}
	}
	return lines
}
