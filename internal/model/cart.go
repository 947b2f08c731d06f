package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartItem is a course sitting in a user's cart, joined with the course's
// current prices.
type CartItem struct {
	CourseID      uuid.UUID       `json:"courseId"`
	Title         string          `json:"title"`
	Price         decimal.Decimal `json:"price"`
	DiscountPrice decimal.Decimal `json:"discountPrice"`
	AddedAt       time.Time       `json:"addedAt"`
}

// AddToCartRequest represents the payload of POST /cart/add.
type AddToCartRequest struct {
	CourseID string `json:"courseId"`
}

// ApplyCouponRequest represents the payload of POST /cart/apply-coupon.
type ApplyCouponRequest struct {
	CouponCode string `json:"couponCode"`
}

// CheckoutRequest represents the payload of POST /cart/checkout.
type CheckoutRequest struct {
	PaymentMethod string  `json:"paymentMethod"`
	CouponCode    *string `json:"couponCode,omitempty"`
}

// CartLine is one rendered cart entry.
type CartLine struct {
	CourseID      uuid.UUID       `json:"courseId"`
	Title         string          `json:"title"`
	Price         decimal.Decimal `json:"price"`
	DiscountPrice decimal.Decimal `json:"discountPrice"`
	FinalPrice    decimal.Decimal `json:"finalPrice"`
	AddedAt       time.Time       `json:"addedAt"`
}

// CartResponse is the body of GET /cart.
type CartResponse struct {
	Items     []CartLine      `json:"items"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	Discount  decimal.Decimal `json:"discount"`
	Total     decimal.Decimal `json:"total"`
	ItemCount int             `json:"itemCount"`
}

// AppliedCoupon describes a coupon accepted by the registry.
type AppliedCoupon struct {
	Code       string `json:"code"`
	Percentage int    `json:"percentage"`
}

// CouponQuote is the body of POST /cart/apply-coupon.
type CouponQuote struct {
	Coupon   AppliedCoupon   `json:"coupon"`
	Discount decimal.Decimal `json:"discount"`
	Total    decimal.Decimal `json:"total"`
}
