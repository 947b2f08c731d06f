package coupon

import (
	"context"
	"fmt"
	"strings"

	"educk/internal/model"

	"github.com/rs/zerolog"
)

// MapRegistry implements Registry using a map for O(1) lookups.
// It is read-only once handed out.
type MapRegistry struct {
	coupons map[string]int
}

// NewMapRegistry creates a new, empty map-based registry.
func NewMapRegistry(capacity int) *MapRegistry {
	return &MapRegistry{
		coupons: make(map[string]int, capacity),
	}
}

// DefaultRegistry returns the built-in coupon table.
func DefaultRegistry() Registry {
	r := NewMapRegistry(3)
	r.Add("WELCOME10", 10)
	r.Add("EDUCK20", 20)
	r.Add("STUDENT50", 50)
	return r
}

// Lookup returns the coupon for code.
func (r *MapRegistry) Lookup(_ context.Context, code string) (Coupon, error) {
	code = strings.TrimSpace(code)
	pct, ok := r.coupons[code]
	if !ok {
		return Coupon{}, model.ErrInvalidCoupon
	}
	return Coupon{Code: code, Percentage: pct}, nil
}

// Size returns the number of coupons in the registry.
func (r *MapRegistry) Size() int {
	return len(r.coupons)
}

// Add registers code with the given percentage, replacing any previous entry.
func (r *MapRegistry) Add(code string, percentage int) {
	r.coupons[code] = percentage
}

// NewRegistry returns the registry loaded from filePath, or the built-in
// table when filePath is empty.
func NewRegistry(ctx context.Context, filePath string, loader Loader, logger zerolog.Logger) (Registry, error) {
	logger = logger.With().Str("component", "coupon-registry").Logger()

	if filePath == "" {
		r := DefaultRegistry()
		logger.Info().Int("coupons", r.Size()).Msg("using built-in coupon table")
		return r, nil
	}

	r, err := loader.Load(ctx, filePath)
	if err != nil {
		logger.Error().Err(err).Str("file", filePath).Msg("failed to load coupon table")
		return nil, fmt.Errorf("failed to load coupon table %s: %w", filePath, err)
	}

	logger.Info().
		Str("file", filePath).
		Int("coupons", r.Size()).
		Msg("coupon registry initialised")

	return r, nil
}
