// Package errors provides the structured error type used across the service
// layer. Handlers translate AppErrors into JSON responses without ever
// leaking internal details to clients.
package errors

import "net/http"

// AppError is a structured application error: a stable machine code, a
// human-readable message, the HTTP status it maps to, and an optional wrapped
// internal error.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap exposes the internal error to errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Wrap returns a copy of sentinel carrying internal as its wrapped cause.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage returns a copy of sentinel with a more specific message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrNotFound       = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
	ErrUnauthorized   = &AppError{Code: "UNAUTHORIZED", Message: "Caller identity required", StatusCode: http.StatusUnauthorized}
)

// User errors.
var (
	ErrUserNotFound  = &AppError{Code: "USER_NOT_FOUND", Message: "User not found", StatusCode: http.StatusNotFound}
	ErrUserInactive  = &AppError{Code: "USER_INACTIVE", Message: "User is inactive", StatusCode: http.StatusForbidden}
	ErrUnknownPreset = &AppError{Code: "UNKNOWN_PRESET", Message: "Unknown allocation preset", StatusCode: http.StatusBadRequest}
	ErrInvalidRule   = &AppError{Code: "INVALID_ROUNDUP_RULE", Message: "Invalid roundup rule configuration", StatusCode: http.StatusBadRequest}
)

// Ledger errors.
var (
	ErrInvalidAmount = &AppError{Code: "INVALID_AMOUNT", Message: "Amount must be a positive finite number", StatusCode: http.StatusBadRequest}
)

// Sweep and portfolio errors.
var (
	ErrSweepBelowFloor = &AppError{Code: "SWEEP_BELOW_FLOOR", Message: "Balance is below the minimum sweep amount", StatusCode: http.StatusConflict}
	ErrNotSweepDay     = &AppError{Code: "NOT_SWEEP_DAY", Message: "Automatic sweeps only run on sweep days", StatusCode: http.StatusConflict}
	ErrNoOrders        = &AppError{Code: "NO_ORDERS", Message: "Balance buys no whole units at current prices", StatusCode: http.StatusConflict}
	ErrInvalidUnits    = &AppError{Code: "INVALID_UNITS", Message: "Fill quantity must be positive", StatusCode: http.StatusBadRequest}
	ErrHoldingNotFound = &AppError{Code: "HOLDING_NOT_FOUND", Message: "Holding not found", StatusCode: http.StatusNotFound}
)
