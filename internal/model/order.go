package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentMethod is the instrument chosen at checkout.
type PaymentMethod string

const (
	PaymentCreditCard PaymentMethod = "credit_card"
	PaymentPix        PaymentMethod = "pix"
	PaymentBoleto     PaymentMethod = "boleto"
)

// Valid reports whether m is one of the accepted payment methods.
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCreditCard, PaymentPix, PaymentBoleto:
		return true
	}
	return false
}

// PaymentStatus tracks the money side of an order.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
	PaymentRefunded  PaymentStatus = "refunded"
)

var paymentTransitions = map[PaymentStatus][]PaymentStatus{
	PaymentPending:   {PaymentCompleted, PaymentFailed},
	PaymentFailed:    {PaymentCompleted},
	PaymentCompleted: {PaymentRefunded},
}

// Valid reports whether s is a known payment status.
func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentPending, PaymentCompleted, PaymentFailed, PaymentRefunded:
		return true
	}
	return false
}

// CanTransitionTo reports whether moving from s to next is allowed.
// Re-applying the current value is always allowed and is a no-op.
func (s PaymentStatus) CanTransitionTo(next PaymentStatus) bool {
	if s == next {
		return true
	}
	for _, allowed := range paymentTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Settles reports whether moving from s to next is the settlement edge that
// grants course access.
func (s PaymentStatus) Settles(next PaymentStatus) bool {
	return next == PaymentCompleted && (s == PaymentPending || s == PaymentFailed)
}

// OrderStatus tracks the fulfilment side of an order.
type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderProcessing OrderStatus = "processing"
	OrderCompleted  OrderStatus = "completed"
	OrderCancelled  OrderStatus = "cancelled"
)

var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderPending:    {OrderProcessing, OrderCancelled},
	OrderProcessing: {OrderCompleted, OrderCancelled},
}

// Valid reports whether s is a known order status.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderProcessing, OrderCompleted, OrderCancelled:
		return true
	}
	return false
}

// CanTransitionTo reports whether moving from s to next is allowed.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	if s == next {
		return true
	}
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// PaymentDetails holds method-specific fields produced by the payment processor.
type PaymentDetails struct {
	TransactionID string     `json:"transactionId,omitempty"`
	PaymentDate   *time.Time `json:"paymentDate,omitempty"`
	CardLastFour  string     `json:"cardLastFour,omitempty"`
	PixCode       string     `json:"pixCode,omitempty"`
	BoletoURL     string     `json:"boletoUrl,omitempty"`
}

// LineSnapshot freezes a course's prices at checkout time.
type LineSnapshot struct {
	CourseID      uuid.UUID       `json:"courseId" db:"course_id"`
	Title         string          `json:"title" db:"title"`
	Price         decimal.Decimal `json:"price" db:"price"`
	DiscountPrice decimal.Decimal `json:"discountPrice" db:"discount_price"`
}

// Order represents a persisted purchase.
type Order struct {
	ID             uuid.UUID       `json:"id" db:"id"`
	UserID         uuid.UUID       `json:"userId" db:"user_id"`
	Items          []LineSnapshot  `json:"items"`
	TotalAmount    decimal.Decimal `json:"totalAmount" db:"total_amount"`
	DiscountAmount decimal.Decimal `json:"discountAmount" db:"discount_amount"`
	FinalAmount    decimal.Decimal `json:"finalAmount" db:"final_amount"`
	Coupon         *AppliedCoupon  `json:"coupon,omitempty"`
	PaymentMethod  PaymentMethod   `json:"paymentMethod" db:"payment_method"`
	PaymentStatus  PaymentStatus   `json:"paymentStatus" db:"payment_status"`
	Status         OrderStatus     `json:"status" db:"status"`
	PaymentDetails PaymentDetails  `json:"paymentDetails" db:"payment_details"`
	CreatedAt      time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time       `json:"updatedAt" db:"updated_at"`
}

// CourseIDs returns the distinct course ids of the order, in line order.
func (o *Order) CourseIDs() []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(o.Items))
	ids := make([]uuid.UUID, 0, len(o.Items))
	for _, item := range o.Items {
		if _, ok := seen[item.CourseID]; ok {
			continue
		}
		seen[item.CourseID] = struct{}{}
		ids = append(ids, item.CourseID)
	}
	return ids
}

// OrderSummary is the public projection returned by checkout.
type OrderSummary struct {
	ID             uuid.UUID       `json:"id"`
	TotalAmount    decimal.Decimal `json:"totalAmount"`
	DiscountAmount decimal.Decimal `json:"discountAmount"`
	FinalAmount    decimal.Decimal `json:"finalAmount"`
	PaymentMethod  PaymentMethod   `json:"paymentMethod"`
	PaymentStatus  PaymentStatus   `json:"paymentStatus"`
	Status         OrderStatus     `json:"status"`
	PaymentDetails PaymentDetails  `json:"paymentDetails"`
}

// Summary projects the order for checkout responses.
func (o *Order) Summary() OrderSummary {
	return OrderSummary{
		ID:             o.ID,
		TotalAmount:    o.TotalAmount,
		DiscountAmount: o.DiscountAmount,
		FinalAmount:    o.FinalAmount,
		PaymentMethod:  o.PaymentMethod,
		PaymentStatus:  o.PaymentStatus,
		Status:         o.Status,
		PaymentDetails: o.PaymentDetails,
	}
}

// CheckoutResponse is the body of POST /cart/checkout.
type CheckoutResponse struct {
	Message string       `json:"message"`
	Order   OrderSummary `json:"order"`
}

// StatusUpdateRequest represents the payload of PUT /orders/{id}/status.
type StatusUpdateRequest struct {
	Status        *OrderStatus   `json:"status,omitempty"`
	PaymentStatus *PaymentStatus `json:"paymentStatus,omitempty"`
}

// StatusUpdateResponse is the body returned after an admin status update.
type StatusUpdateResponse struct {
	Message string        `json:"message"`
	ID      uuid.UUID     `json:"id"`
	Status  OrderStatus   `json:"status"`
	Payment PaymentStatus `json:"paymentStatus"`
}

// PaymentStatusResponse is the body of GET /orders/{id}/payment-status.
type PaymentStatusResponse struct {
	OrderID        uuid.UUID      `json:"orderId"`
	PaymentStatus  PaymentStatus  `json:"paymentStatus"`
	PaymentMethod  PaymentMethod  `json:"paymentMethod"`
	PaymentDetails PaymentDetails `json:"paymentDetails"`
}

// Customer identifies the buyer on a receipt.
type Customer struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Receipt is the body of GET /orders/{id}/receipt.
type Receipt struct {
	ReceiptNumber  string          `json:"receiptNumber"`
	OrderDate      time.Time       `json:"orderDate"`
	Customer       Customer        `json:"customer"`
	Items          []LineSnapshot  `json:"items"`
	PaymentMethod  PaymentMethod   `json:"paymentMethod"`
	TotalAmount    decimal.Decimal `json:"totalAmount"`
	DiscountAmount decimal.Decimal `json:"discountAmount"`
	FinalAmount    decimal.Decimal `json:"finalAmount"`
	Status         OrderStatus     `json:"status"`
}

// OrderFilter narrows admin order listings.
type OrderFilter struct {
	Status *OrderStatus
	Limit  int
	Offset int
}

// Pagination describes a page of a listing.
type Pagination struct {
	Total int `json:"total"`
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Pages int `json:"pages"`
}

// OrderPage is the body of the admin GET /orders listing.
type OrderPage struct {
	Orders     []Order    `json:"orders"`
	Pagination Pagination `json:"pagination"`
}
