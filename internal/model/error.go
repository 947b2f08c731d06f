package model

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON             = "INVALID_JSON"
	ErrCodeMissingField            = "MISSING_FIELD"
	ErrCodeInvalidID               = "INVALID_ID"
	ErrCodeInvalidPaging           = "INVALID_PAGING"
	ErrCodeInvalidSort             = "INVALID_SORT"
	ErrCodeUserNotFound            = "USER_NOT_FOUND"
	ErrCodeCourseNotFound          = "COURSE_NOT_FOUND"
	ErrCodeOrderNotFound           = "ORDER_NOT_FOUND"
	ErrCodeEmptyCart               = "EMPTY_CART"
	ErrCodeInvalidCoupon           = "INVALID_COUPON"
	ErrCodeInvalidPaymentMethod    = "INVALID_PAYMENT_METHOD"
	ErrCodeAlreadyEnrolled         = "ALREADY_ENROLLED"
	ErrCodeAlreadyInCart           = "ALREADY_IN_CART"
	ErrCodeNotInCart               = "NOT_IN_CART"
	ErrCodeInvalidStatus           = "INVALID_STATUS"
	ErrCodeInvalidStatusTransition = "INVALID_STATUS_TRANSITION"
	ErrCodeUnauthorised            = "UNAUTHORIZED"
	ErrCodeForbidden               = "FORBIDDEN"
	ErrCodeInternalError           = "INTERNAL_ERROR"
)

// Domain errors for business logic
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrUserNotFound            = NewDomainError(ErrCodeUserNotFound, "User not found")
	ErrCourseNotFound          = NewDomainError(ErrCodeCourseNotFound, "Course not found")
	ErrOrderNotFound           = NewDomainError(ErrCodeOrderNotFound, "Order not found")
	ErrEmptyCart               = NewDomainError(ErrCodeEmptyCart, "Your cart is empty")
	ErrInvalidCoupon           = NewDomainError(ErrCodeInvalidCoupon, "Invalid or expired coupon")
	ErrInvalidPaymentMethod    = NewDomainError(ErrCodeInvalidPaymentMethod, "Payment method must be one of credit_card, pix or boleto")
	ErrAlreadyEnrolled         = NewDomainError(ErrCodeAlreadyEnrolled, "You are already enrolled in this course")
	ErrAlreadyInCart           = NewDomainError(ErrCodeAlreadyInCart, "This course is already in your cart")
	ErrNotInCart               = NewDomainError(ErrCodeNotInCart, "This course is not in your cart")
	ErrInvalidStatus           = NewDomainError(ErrCodeInvalidStatus, "Unknown order or payment status")
	ErrInvalidStatusTransition = NewDomainError(ErrCodeInvalidStatusTransition, "Status transition is not allowed")
	ErrNoStatusFields          = NewDomainError(ErrCodeMissingField, "status or paymentStatus is required")
	ErrUnauthorised            = NewDomainError(ErrCodeUnauthorised, "Authentication required")
	ErrForbidden               = NewDomainError(ErrCodeForbidden, "Access denied")
)
