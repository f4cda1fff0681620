package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError carries the HTTP status a failure maps to and the message shown
// to the client.
type AppError struct {
	Code    int          `json:"code"`
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
	cause   error
}

// FieldError is a single rejected input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	return e.Message
}

// Unwrap exposes the underlying failure to errors.Is and errors.As.
func (e *AppError) Unwrap() error {
	return e.cause
}

var (
	ErrInvalidCredentials = &AppError{Code: http.StatusUnauthorized, Message: "Invalid email or password"}
	ErrInvalidToken       = &AppError{Code: http.StatusUnauthorized, Message: "Invalid token"}
	ErrAccountDisabled    = &AppError{Code: http.StatusForbidden, Message: "Account is disabled"}
	ErrExportFailed       = &AppError{Code: http.StatusInternalServerError, Message: "Export failed"}
)

// NewAppError creates an error with an explicit status code.
func NewAppError(code int, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// Wrap attaches cause to a new error so the original failure can still be
// logged while the client only sees message.
func Wrap(code int, message string, cause error) *AppError {
	if cause != nil {
		message = fmt.Sprintf("%s: %v", message, cause)
	}
	return &AppError{Code: code, Message: message, cause: cause}
}

// NewValidationError reports rejected fields under the generic message.
func NewValidationError(fieldErrors []FieldError) *AppError {
	return NewValidationMessage("Validation failed", fieldErrors...)
}

// NewValidationMessage reports a 422 with a custom message.
func NewValidationMessage(message string, fieldErrors ...FieldError) *AppError {
	return &AppError{
		Code:    http.StatusUnprocessableEntity,
		Message: message,
		Errors:  fieldErrors,
	}
}

// NewNotFoundError reports that resource does not exist, e.g. "Sale not found".
func NewNotFoundError(resource string) *AppError {
	return NewAppError(http.StatusNotFound, resource+" not found")
}

func NewConflictError(message string) *AppError {
	return NewAppError(http.StatusConflict, message)
}

func NewBadRequestError(message string) *AppError {
	return NewAppError(http.StatusBadRequest, message)
}

// NewUnavailableError reports a dependency such as the receipt printer that
// could not be reached.
func NewUnavailableError(message string, cause error) *AppError {
	return Wrap(http.StatusServiceUnavailable, message, cause)
}

// IsValidation reports whether err is a 422 validation error.
func IsValidation(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == http.StatusUnprocessableEntity
}

// GetAppError converts err to an AppError. Unknown errors become a 500 that
// carries the backend message.
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return &AppError{
		Code:    http.StatusInternalServerError,
		Message: err.Error(),
		cause:   err,
	}
}

// Required returns a field error for a missing required value.
func Required(field string) FieldError {
	return FieldError{Field: field, Message: field + " is required"}
}
