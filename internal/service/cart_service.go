package service

import (
	"context"
	"errors"
	"fmt"

	"educk/internal/coupon"
	"educk/internal/model"
	"educk/internal/pricing"
	"educk/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// cartService implements CartService.
type cartService struct {
	carts   repository.CartRepository
	courses repository.CourseRepository
	users   repository.UserRepository
	coupons coupon.Registry
	logger  zerolog.Logger
}

// NewCartService creates a new cart service.
func NewCartService(
	carts repository.CartRepository,
	courses repository.CourseRepository,
	users repository.UserRepository,
	coupons coupon.Registry,
	logger zerolog.Logger,
) CartService {
	return &cartService{
		carts:   carts,
		courses: courses,
		users:   users,
		coupons: coupons,
		logger:  logger.With().Str("service", "cart").Logger(),
	}
}

// Get returns the cart with per-line final prices and totals.
func (s *cartService) Get(ctx context.Context, userID uuid.UUID) (*model.CartResponse, error) {
	items, err := s.carts.Items(ctx, userID)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID.String()).Msg("failed to load cart")
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	lines := cartLines(items)
	totals := pricing.ComputeCartTotals(lines)

	resp := &model.CartResponse{
		Items:     make([]model.CartLine, len(items)),
		Subtotal:  totals.Subtotal,
		Discount:  totals.PerItemDiscount,
		Total:     totals.Total,
		ItemCount: len(items),
	}
	for i, item := range items {
		resp.Items[i] = model.CartLine{
			CourseID:      item.CourseID,
			Title:         item.Title,
			Price:         item.Price,
			DiscountPrice: item.DiscountPrice,
			FinalPrice:    lines[i].FinalPrice(),
			AddedAt:       item.AddedAt,
		}
	}

	return resp, nil
}

// Add puts a published course the user does not own yet in the cart.
func (s *cartService) Add(ctx context.Context, userID, courseID uuid.UUID) error {
	course, err := s.courses.GetByID(ctx, courseID)
	if err != nil {
		return fmt.Errorf("failed to load course: %w", err)
	}
	if course == nil || !course.IsPublished {
		s.logger.Debug().Str("course_id", courseID.String()).Msg("course not available")
		return model.ErrCourseNotFound
	}

	enrolled, err := s.users.IsEnrolled(ctx, userID, courseID)
	if err != nil {
		return fmt.Errorf("failed to check enrollment: %w", err)
	}
	if enrolled {
		return model.ErrAlreadyEnrolled
	}

	if err := s.carts.Add(ctx, userID, courseID); err != nil {
		var domainErr *model.DomainError
		if errors.As(err, &domainErr) {
			return err
		}
		return fmt.Errorf("failed to add to cart: %w", err)
	}

	s.logger.Info().
		Str("user_id", userID.String()).
		Str("course_id", courseID.String()).
		Msg("course added to cart")

	return nil
}

// Remove takes a course out of the cart.
func (s *cartService) Remove(ctx context.Context, userID, courseID uuid.UUID) error {
	if err := s.carts.Remove(ctx, userID, courseID); err != nil {
		if errors.Is(err, model.ErrNotInCart) {
			return err
		}
		return fmt.Errorf("failed to remove from cart: %w", err)
	}
	return nil
}

// Clear empties the cart.
func (s *cartService) Clear(ctx context.Context, userID uuid.UUID) error {
	if err := s.carts.Clear(ctx, userID); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}

// ApplyCoupon quotes code against the current cart total.
func (s *cartService) ApplyCoupon(ctx context.Context, userID uuid.UUID, code string) (*model.CouponQuote, error) {
	items, err := s.carts.Items(ctx, userID)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID.String()).Msg("failed to load cart")
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	totals, err := pricing.ComputeCheckoutTotals(cartLines(items))
	if err != nil {
		return nil, err
	}

	quote, err := pricing.ApplyCoupon(ctx, s.coupons, totals.Total, code)
	if err != nil {
		s.logger.Warn().Str("coupon_code", code).Err(err).Msg("invalid coupon code")
		return nil, err
	}

	return &model.CouponQuote{
		Coupon: model.AppliedCoupon{
			Code:       quote.Coupon.Code,
			Percentage: quote.Coupon.Percentage,
		},
		Discount: quote.DiscountAmount,
		Total:    quote.FinalTotal,
	}, nil
}

func cartLines(items []model.CartItem) []pricing.Line {
	lines := make([]pricing.Line, len(items))
	for i, item := range items {
		lines[i] = pricing.Line{Price: item.Price, DiscountPrice: item.DiscountPrice}
	}
	return lines
}
