// Package payment settles checkout payments. Settlement is simulated: no
// gateway is contacted and results depend only on the method, order and clock.
package payment

import (
	"context"
	"fmt"
	"time"

	"educk/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Result is the outcome of a settlement attempt.
type Result struct {
	PaymentStatus model.PaymentStatus
	OrderStatus   model.OrderStatus
	Details       model.PaymentDetails
}

// Settled reports whether the payment completed immediately.
func (r Result) Settled() bool {
	return r.PaymentStatus == model.PaymentCompleted
}

// Processor settles a payment for an order.
type Processor interface {
	Process(ctx context.Context, method model.PaymentMethod, orderID uuid.UUID, amount decimal.Decimal) (Result, error)
}

// Option configures a SimulatedProcessor.
type Option func(*SimulatedProcessor)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(p *SimulatedProcessor) { p.now = now }
}

// WithBoletoBaseURL overrides the base URL boleto slips are served from.
func WithBoletoBaseURL(url string) Option {
	return func(p *SimulatedProcessor) { p.boletoBaseURL = url }
}

// SimulatedProcessor completes card and Pix payments immediately and leaves
// boleto payments pending until an administrator confirms them.
type SimulatedProcessor struct {
	now           func() time.Time
	boletoBaseURL string
	logger        zerolog.Logger
}

// NewSimulatedProcessor creates a payment processor that never calls out.
func NewSimulatedProcessor(logger zerolog.Logger, opts ...Option) *SimulatedProcessor {
	p := &SimulatedProcessor{
		now:           time.Now,
		boletoBaseURL: "https://boleto.educk.com.br",
		logger:        logger.With().Str("component", "payment-processor").Logger(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Process settles amount for orderID using method.
func (p *SimulatedProcessor) Process(ctx context.Context, method model.PaymentMethod, orderID uuid.UUID, amount decimal.Decimal) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	now := p.now().UTC()
	stamp := now.UnixMilli()

	var result Result
	switch method {
	case model.PaymentCreditCard:
		result = Result{
			PaymentStatus: model.PaymentCompleted,
			OrderStatus:   model.OrderCompleted,
			Details: model.PaymentDetails{
				TransactionID: fmt.Sprintf("TR%d", stamp),
				PaymentDate:   &now,
				CardLastFour:  "4242",
			},
		}
	case model.PaymentPix:
		result = Result{
			PaymentStatus: model.PaymentCompleted,
			OrderStatus:   model.OrderCompleted,
			Details: model.PaymentDetails{
				TransactionID: fmt.Sprintf("PIX%d", stamp),
				PaymentDate:   &now,
				PixCode:       pixCode(orderID, amount),
			},
		}
	case model.PaymentBoleto:
		result = Result{
			PaymentStatus: model.PaymentPending,
			OrderStatus:   model.OrderPending,
			Details: model.PaymentDetails{
				TransactionID: fmt.Sprintf("BOL%d", stamp),
				BoletoURL:     fmt.Sprintf("%s/%s", p.boletoBaseURL, orderID),
			},
		}
	default:
		return Result{}, model.ErrInvalidPaymentMethod
	}

	p.logger.Info().
		Str("order_id", orderID.String()).
		Str("method", string(method)).
		Str("amount", amount.StringFixed(2)).
		Str("payment_status", string(result.PaymentStatus)).
		Str("transaction_id", result.Details.TransactionID).
		Msg("payment processed")

	return result, nil
}

// pixCode renders a static Pix copy-and-paste payload for the order.
func pixCode(orderID uuid.UUID, amount decimal.Decimal) string {
	value := amount.StringFixed(2)
	ref := orderID.String()[:8]
	return fmt.Sprintf("00020126580014br.gov.bcb.pix0136%s52040000530398654%02d%s5802BR5913Educk Cursos6008Sorocaba62120508%s6304",
		orderID, len(value), value, ref)
}
