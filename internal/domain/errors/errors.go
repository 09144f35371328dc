package errors

import (
	"net/http"

	"homecafe/internal/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// WithDetails adds detailed error information
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// Predefined error types
var (
	// Catalog-related errors
	ErrItemNotFound = NewBaseError(
		http.StatusNotFound,
		"ITEM_NOT_FOUND",
		"That drink is no longer on the menu",
		"",
	)

	ErrItemTitleRequired = NewBaseError(
		http.StatusBadRequest,
		"ITEM_TITLE_REQUIRED",
		"Every menu item needs a title",
		"",
	)

	ErrInvalidCategory = NewBaseError(
		http.StatusBadRequest,
		"INVALID_CATEGORY",
		"Unknown menu category",
		"",
	)

	ErrCatalogWriteFailed = NewBaseError(
		http.StatusBadGateway,
		"CATALOG_WRITE_FAILED",
		"The menu change could not be saved, please retry",
		"",
	)

	ErrReorderFailed = NewBaseError(
		http.StatusBadGateway,
		"REORDER_FAILED",
		"The new drink order was not fully saved, please retry",
		"",
	)

	// Draft/session-related errors
	ErrSessionNotFound = NewBaseError(
		http.StatusNotFound,
		"SESSION_NOT_FOUND",
		"No order in progress for this session",
		"",
	)

	ErrItemComingSoon = NewBaseError(
		http.StatusConflict,
		"ITEM_COMING_SOON",
		"That drink is coming soon and cannot be ordered yet",
		"",
	)

	ErrNameRequired = NewBaseError(
		http.StatusBadRequest,
		"NAME_REQUIRED",
		"Please tell us a name for the order",
		"",
	)

	ErrInvalidTemperature = NewBaseError(
		http.StatusBadRequest,
		"INVALID_TEMPERATURE",
		"That temperature is not offered for this drink",
		"",
	)

	ErrInvalidStep = NewBaseError(
		http.StatusConflict,
		"INVALID_STEP",
		"That action is not available at this step",
		"",
	)

	ErrUnknownField = NewBaseError(
		http.StatusBadRequest,
		"UNKNOWN_FIELD",
		"Unknown customization field",
		"",
	)

	// Queue-related errors
	ErrInvalidStatus = NewBaseError(
		http.StatusBadRequest,
		"INVALID_STATUS",
		"Unknown order status",
		"",
	)

	// Validation-related errors
	ErrValidationFailed = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"Input validation failed",
		"",
	)

	// General errors
	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"Internal server error",
		"",
	)

	ErrNotFound = NewBaseError(
		http.StatusNotFound,
		"NOT_FOUND",
		"Resource not found",
		"",
	)
)
