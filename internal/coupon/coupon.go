package coupon

import (
	"context"
)

// Coupon is a percentage-off code.
type Coupon struct {
	Code       string `json:"code"`
	Percentage int    `json:"percentage"`
}

// Registry resolves coupon codes.
type Registry interface {
	// Lookup returns the coupon for code, or model.ErrInvalidCoupon when
	// the code is unknown.
	Lookup(ctx context.Context, code string) (Coupon, error)

	// Size returns the number of coupons in the registry.
	Size() int
}

// Loader defines the interface for loading coupon tables.
type Loader interface {
	// Load reads a gzipped coupon table and returns a Registry.
	Load(ctx context.Context, filePath string) (Registry, error)
}
