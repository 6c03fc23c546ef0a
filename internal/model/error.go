package model

import "errors"

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON        = "INVALID_JSON"
	ErrCodeInvalidForm        = "INVALID_FORM"
	ErrCodeMissingField       = "MISSING_FIELD"
	ErrCodeMissingFile        = "MISSING_FILE"
	ErrCodeBrandExists        = "BRAND_EXISTS"
	ErrCodeBrandNotFound      = "BRAND_NOT_FOUND"
	ErrCodeProductNotFound    = "PRODUCT_NOT_FOUND"
	ErrCodeOrderNotFound      = "ORDER_NOT_FOUND"
	ErrCodeInvalidPayment     = "INVALID_PAYMENT_METHOD"
	ErrCodeInvalidPrice       = "INVALID_PRICE"
	ErrCodeUnauthorised       = "UNAUTHORIZED"
	ErrCodeInvalidCredentials = "INVALID_CREDENTIALS"
	ErrCodeNotFound           = "NOT_FOUND"
	ErrCodeMethodNotAllowed   = "METHOD_NOT_ALLOWED"
	ErrCodePayloadTooLarge    = "PAYLOAD_TOO_LARGE"
	ErrCodeInternalError      = "INTERNAL_ERROR"
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

// MissingField returns a MISSING_FIELD domain error naming the field.
func MissingField(field string) *DomainError {
	return NewDomainError(ErrCodeMissingField, field+" is required")
}

// AsDomainError returns the first DomainError in err's chain, if any.
func AsDomainError(err error) (*DomainError, bool) {
	var de *DomainError
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

// Common domain errors
var (
	ErrMissingLogo          = NewDomainError(ErrCodeMissingFile, "No logo uploaded")
	ErrMissingImage         = NewDomainError(ErrCodeMissingFile, "No image uploaded")
	ErrMissingOrderFields   = NewDomainError(ErrCodeMissingField, "Missing required fields")
	ErrBrandExists          = NewDomainError(ErrCodeBrandExists, "Brand ID already exists")
	ErrBrandNotFound        = NewDomainError(ErrCodeBrandNotFound, "Brand not found")
	ErrProductNotFound      = NewDomainError(ErrCodeProductNotFound, "Product not found")
	ErrOrderNotFound        = NewDomainError(ErrCodeOrderNotFound, "Order not found")
	ErrInvalidPaymentMethod = NewDomainError(ErrCodeInvalidPayment, "Payment method must be one of: upi, cod")
	ErrInvalidPrice         = NewDomainError(ErrCodeInvalidPrice, "Prices must be between 0 and 99999999.99")
	ErrMissingPassword      = NewDomainError(ErrCodeMissingField, "Password is required")
	ErrInvalidCredentials   = NewDomainError(ErrCodeInvalidCredentials, "Invalid password")
	ErrUnauthorised         = NewDomainError(ErrCodeUnauthorised, "Valid admin token required")
)
