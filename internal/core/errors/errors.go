package errors

import (
	"errors"
	"fmt"
)

const (
	HttpInternalError          = "internal_error"
	HttpInvalidJsonError       = "invalid_json"
	HttpValidationError        = "validation_failed"
	HttpNotFoundError          = "not_found"
	HttpInsufficientStockError = "insufficient_stock"
)

// Error kinds returned by the ledger services. Match with errors.Is.
var (
	ErrInvalid           = errors.New("invalid request")
	ErrNotFound          = errors.New("not found")
	ErrInsufficientStock = errors.New("insufficient stock")
)

// ErrorResponse is the error response body for every API error.
type ErrorResponse struct {
	ErrorType string      `json:"error_type"`
	Message   string      `json:"message"`
	Details   interface{} `json:"details,omitempty"`
}

// Error is a client-facing failure: Kind classifies it, Message is shown to the operator.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Kind
}

// Invalidf builds a validation error.
func Invalidf(format string, args ...interface{}) error {
	return &Error{Kind: ErrInvalid, Message: fmt.Sprintf(format, args...)}
}

// NotFoundf builds a not-found error.
func NotFoundf(format string, args ...interface{}) error {
	return &Error{Kind: ErrNotFound, Message: fmt.Sprintf(format, args...)}
}

// InsufficientStockf builds an insufficient-stock error.
func InsufficientStockf(format string, args ...interface{}) error {
	return &Error{Kind: ErrInsufficientStock, Message: fmt.Sprintf(format, args...)}
}
