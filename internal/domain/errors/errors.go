package errors

import (
	"errors"
	"net/http"
)

// Domain errors
var (
	ErrNotFound      = errors.New("resource not found")
	ErrAlreadyExists = errors.New("resource already exists")
	ErrInvalidInput  = errors.New("invalid input")
	ErrBadRequest    = errors.New("bad request")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrForbidden     = errors.New("forbidden")

	// ErrInvalidAmount is returned for non-positive charge amounts
	ErrInvalidAmount = errors.New("amount must be positive")
	// ErrInvalidRate is returned for commission rates outside [0, 100]%
	ErrInvalidRate = errors.New("commission rate out of range")
	// ErrUnknownProcessor is returned for processor types outside the supported set
	ErrUnknownProcessor = errors.New("unknown processor type")

	// ErrNoHealthyProcessor means no viable processor could be selected.
	// Surfaced to the caller; never retried automatically.
	ErrNoHealthyProcessor = errors.New("no healthy processor available")
	// ErrProcessorDeclined means the gateway explicitly rejected the charge.
	// Surfaced immediately and never triggers fallback.
	ErrProcessorDeclined = errors.New("processor declined the charge")
	// ErrProcessorUnavailable covers network errors, timeouts and gateway 5xx.
	// The only error class that triggers a platform fallback attempt.
	ErrProcessorUnavailable = errors.New("processor unavailable")
	// ErrUnknownGateway covers gateway responses that fit no known class
	ErrUnknownGateway = errors.New("unknown gateway error")

	// ErrCollectionFailed means an ACH/card collection attempt failed and will
	// be retried on the backoff schedule until attempts are exhausted.
	ErrCollectionFailed = errors.New("collection attempt failed")
)

// AppError represents application error with HTTP status
type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new app error
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common error constructors
func NotFound(message string) *AppError {
	return NewAppError(http.StatusNotFound, message, ErrNotFound)
}

func BadRequest(message string) *AppError {
	return NewAppError(http.StatusBadRequest, message, ErrInvalidInput)
}

func Unauthorized(message string) *AppError {
	return NewAppError(http.StatusUnauthorized, message, ErrUnauthorized)
}

func Forbidden(message string) *AppError {
	return NewAppError(http.StatusForbidden, message, ErrForbidden)
}

func InternalError(err error) *AppError {
	return NewAppError(http.StatusInternalServerError, "internal server error", err)
}

// PaymentFailed maps a routing error to the user-visible payment failure.
// Decline reasons pass through; everything else gets the generic message.
func PaymentFailed(err error) *AppError {
	switch {
	case errors.Is(err, ErrProcessorDeclined):
		return NewAppError(http.StatusPaymentRequired, "payment declined, please try another method", err)
	case errors.Is(err, ErrNoHealthyProcessor), errors.Is(err, ErrProcessorUnavailable), errors.Is(err, ErrUnknownGateway):
		return NewAppError(http.StatusServiceUnavailable, "payment could not be processed, please try another method", err)
	}
	return InternalError(err)
}
