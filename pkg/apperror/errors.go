package apperror

import (
	"errors"
	"net/http"
)

// AppError represents an application error with HTTP status code
type AppError struct {
	Code    int          `json:"code"`
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
	cause   error
}

// FieldError represents a validation error for a specific field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	return e.Message
}

// Unwrap exposes the underlying cause for errors.Is/As chains
func (e *AppError) Unwrap() error {
	return e.cause
}

// Common errors
var (
	ErrNotFound           = &AppError{Code: http.StatusNotFound, Message: "Resource not found"}
	ErrUnauthorized       = &AppError{Code: http.StatusUnauthorized, Message: "Unauthorized"}
	ErrForbidden          = &AppError{Code: http.StatusForbidden, Message: "Forbidden"}
	ErrBadRequest         = &AppError{Code: http.StatusBadRequest, Message: "Bad request"}
	ErrInternalServer     = &AppError{Code: http.StatusInternalServerError, Message: "Internal server error"}
	ErrConflict           = &AppError{Code: http.StatusConflict, Message: "Resource already exists"}
	ErrInvalidCredentials = &AppError{Code: http.StatusUnauthorized, Message: "Invalid email or password"}
	ErrTokenExpired       = &AppError{Code: http.StatusUnauthorized, Message: "Token has expired"}
	ErrInvalidToken       = &AppError{Code: http.StatusUnauthorized, Message: "Invalid token"}
)

// Reconciliation and ledger errors
var (
	// ErrInvalidActionForDivergence rejects an action outside the divergence type's allowed set.
	ErrInvalidActionForDivergence = &AppError{Code: http.StatusUnprocessableEntity, Message: "Action is not valid for this divergence type"}
	// ErrDivergenceAlreadyResolved rejects re-resolution of a record already marked OK.
	ErrDivergenceAlreadyResolved = &AppError{Code: http.StatusConflict, Message: "Divergence has already been resolved"}
	// ErrInvalidSettlementAmount rejects settlements outside (0, open balance].
	ErrInvalidSettlementAmount = &AppError{Code: http.StatusUnprocessableEntity, Message: "Settlement amount must be greater than zero and no more than the open balance"}
	// ErrReceivableNotFound rejects settlements against an unknown receivable.
	ErrReceivableNotFound = &AppError{Code: http.StatusNotFound, Message: "Receivable not found"}
	// ErrPeriodLocked rejects writes to a closed period.
	ErrPeriodLocked = &AppError{Code: http.StatusConflict, Message: "Period is locked"}
	// ErrInvalidAmount rejects absent, zero or unparsable monetary amounts.
	ErrInvalidAmount = &AppError{Code: http.StatusUnprocessableEntity, Message: "Amount is missing or invalid"}
)

// NewAppError creates a new application error
func NewAppError(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// NewValidationError creates a new validation error
func NewValidationError(fieldErrors []FieldError) *AppError {
	return &AppError{
		Code:    http.StatusUnprocessableEntity,
		Message: "Validation failed",
		Errors:  fieldErrors,
	}
}

// NewNotFoundError creates a not found error with a custom message
func NewNotFoundError(resource string) *AppError {
	return &AppError{
		Code:    http.StatusNotFound,
		Message: resource + " not found",
	}
}

// NewConflictError creates a conflict error with a custom message
func NewConflictError(message string) *AppError {
	return &AppError{
		Code:    http.StatusConflict,
		Message: message,
	}
}

// NewBadRequestError creates a bad request error with a custom message
func NewBadRequestError(message string) *AppError {
	return &AppError{
		Code:    http.StatusBadRequest,
		Message: message,
	}
}

// Wrap attaches an underlying cause to a copy of the given AppError
func Wrap(base *AppError, cause error) *AppError {
	return &AppError{
		Code:    base.Code,
		Message: base.Message,
		Errors:  base.Errors,
		cause:   cause,
	}
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError converts an error to AppError if possible
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return &AppError{
		Code:    http.StatusInternalServerError,
		Message: err.Error(),
	}
}
