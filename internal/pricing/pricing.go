// Package pricing computes cart totals and coupon discounts.
//
// A line's DiscountPrice is the markdown taken off its list Price; zero means
// no markdown. All amounts are decimal currency values rounded to cents.
package pricing

import (
	"context"

	"educk/internal/coupon"
	"educk/internal/model"

	"github.com/shopspring/decimal"
)

// Line is the price information of one cart or order line.
type Line struct {
	Price         decimal.Decimal
	DiscountPrice decimal.Decimal
}

// Totals is the result of aggregating a set of lines.
type Totals struct {
	Subtotal        decimal.Decimal
	PerItemDiscount decimal.Decimal
	Total           decimal.Decimal
}

// Quote is the result of applying a coupon to a total.
type Quote struct {
	Coupon         coupon.Coupon
	DiscountAmount decimal.Decimal
	FinalTotal     decimal.Decimal
}

// Breakdown is the full price computation persisted on an order.
type Breakdown struct {
	Totals
	Coupon         *coupon.Coupon
	CouponDiscount decimal.Decimal
	DiscountAmount decimal.Decimal
	FinalAmount    decimal.Decimal
}

var hundred = decimal.NewFromInt(100)

// Markdown returns the amount taken off a line, zero when no markdown is set.
// It never exceeds the line's list price.
func (l Line) Markdown() decimal.Decimal {
	if !l.DiscountPrice.IsPositive() {
		return decimal.Zero
	}
	return decimal.Min(l.DiscountPrice, floor(l.Price))
}

// FinalPrice returns the amount charged for the line, never below zero.
func (l Line) FinalPrice() decimal.Decimal {
	return floor(l.Price.Sub(l.Markdown()))
}

// ComputeCartTotals aggregates lines. An empty slice yields zero totals.
func ComputeCartTotals(lines []Line) Totals {
	subtotal := decimal.Zero
	markdown := decimal.Zero
	for _, l := range lines {
		subtotal = subtotal.Add(l.Price)
		markdown = markdown.Add(l.Markdown())
	}
	return Totals{
		Subtotal:        subtotal.Round(2),
		PerItemDiscount: markdown.Round(2),
		Total:           subtotal.Sub(markdown).Round(2),
	}
}

// ComputeCheckoutTotals is ComputeCartTotals for paths that require items.
func ComputeCheckoutTotals(lines []Line) (Totals, error) {
	if len(lines) == 0 {
		return Totals{}, model.ErrEmptyCart
	}
	return ComputeCartTotals(lines), nil
}

// ApplyCoupon looks up code in registry and discounts total by its percentage.
// An unknown code returns model.ErrInvalidCoupon and a zero Quote.
func ApplyCoupon(ctx context.Context, registry coupon.Registry, total decimal.Decimal, code string) (Quote, error) {
	c, err := registry.Lookup(ctx, code)
	if err != nil {
		return Quote{}, err
	}
	discount := Percent(total, c.Percentage)
	return Quote{
		Coupon:         c,
		DiscountAmount: discount,
		FinalTotal:     floor(total.Sub(discount)),
	}, nil
}

// Percent returns pct percent of amount rounded to cents.
func Percent(amount decimal.Decimal, pct int) decimal.Decimal {
	return amount.Mul(decimal.NewFromInt(int64(pct))).Div(hundred).Round(2)
}

// Price computes the order breakdown for lines with an optional coupon code.
// A nil code means no coupon; an unknown code fails the whole computation.
func Price(ctx context.Context, registry coupon.Registry, lines []Line, code *string) (Breakdown, error) {
	totals, err := ComputeCheckoutTotals(lines)
	if err != nil {
		return Breakdown{}, err
	}

	b := Breakdown{
		Totals:         totals,
		CouponDiscount: decimal.Zero,
	}

	if code != nil && *code != "" {
		quote, err := ApplyCoupon(ctx, registry, totals.Total, *code)
		if err != nil {
			return Breakdown{}, err
		}
		c := quote.Coupon
		b.Coupon = &c
		b.CouponDiscount = quote.DiscountAmount
	}

	b.DiscountAmount = totals.PerItemDiscount.Add(b.CouponDiscount)
	b.FinalAmount = floor(totals.Subtotal.Sub(b.DiscountAmount))
	return b, nil
}

func floor(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
