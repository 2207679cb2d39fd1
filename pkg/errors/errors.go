package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// ErrorType represents different categories of errors
type ErrorType string

const (
	ErrorTypeNoSessionSelected   ErrorType = "no_session_selected"
	ErrorTypeRetrieval           ErrorType = "retrieval"
	ErrorTypeDecode              ErrorType = "decode"
	ErrorTypeUnsupportedDocument ErrorType = "unsupported_document"
	ErrorTypeGeneration          ErrorType = "generation"
	ErrorTypeRender              ErrorType = "render"

	ErrorTypeValidation    ErrorType = "validation"
	ErrorTypeUnauthorized  ErrorType = "unauthorized"
	ErrorTypeNotFound      ErrorType = "not_found"
	ErrorTypeNotConfigured ErrorType = "not_configured"
	ErrorTypeInternal      ErrorType = "internal"
)

// AppError represents a structured application error
type AppError struct {
	Type       ErrorType `json:"type"`
	Message    string    `json:"message"`
	Details    string    `json:"details,omitempty"`
	StatusCode int       `json:"-"`
	Cause      error     `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Type, e.Message)
	if e.Details != "" {
		msg = fmt.Sprintf("%s: %s (%s)", e.Type, e.Message, e.Details)
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// NewNoSessionSelectedError is returned when an action needs a chat session and none is selected.
func NewNoSessionSelectedError(cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeNoSessionSelected,
		Message:    "Please select a chat first.",
		StatusCode: http.StatusConflict,
		Cause:      cause,
	}
}

// NewRetrievalError wraps a Record Store or Blob Store failure.
func NewRetrievalError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeRetrieval,
		Message:    message,
		StatusCode: http.StatusBadGateway,
		Cause:      cause,
	}
}

// NewDecodeError creates a new decode error
func NewDecodeError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeDecode,
		Message:    message,
		StatusCode: http.StatusUnprocessableEntity,
		Cause:      cause,
	}
}

// NewUnsupportedDocumentError creates a new unsupported document error
func NewUnsupportedDocumentError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeUnsupportedDocument,
		Message:    message,
		StatusCode: http.StatusUnprocessableEntity,
		Cause:      cause,
	}
}

// NewGenerationError wraps an empty or failed Text Generation Service response.
func NewGenerationError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeGeneration,
		Message:    message,
		StatusCode: http.StatusBadGateway,
		Cause:      cause,
	}
}

// NewRenderError creates a new render error
func NewRenderError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeRender,
		Message:    message,
		StatusCode: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// NewValidationError creates a new validation error
func NewValidationError(message string, details ...string) *AppError {
	detail := ""
	if len(details) > 0 {
		detail = details[0]
	}
	return &AppError{
		Type:       ErrorTypeValidation,
		Message:    message,
		Details:    detail,
		StatusCode: http.StatusBadRequest,
	}
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(message string) *AppError {
	return &AppError{
		Type:       ErrorTypeNotFound,
		Message:    message,
		StatusCode: http.StatusNotFound,
	}
}

// NewUnauthorizedError creates a new unauthorized error
func NewUnauthorizedError(message string) *AppError {
	return &AppError{
		Type:       ErrorTypeUnauthorized,
		Message:    message,
		StatusCode: http.StatusUnauthorized,
	}
}

// NewNotConfiguredError is returned when an external collaborator has no credentials.
func NewNotConfiguredError(message string) *AppError {
	return &AppError{
		Type:       ErrorTypeNotConfigured,
		Message:    message,
		StatusCode: http.StatusServiceUnavailable,
	}
}

// NewInternalError creates a new internal server error
func NewInternalError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeInternal,
		Message:    message,
		StatusCode: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// As returns the first AppError in err's chain.
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsType checks if the error is of a specific type
func IsType(err error, errorType ErrorType) bool {
	if appErr, ok := As(err); ok {
		return appErr.Type == errorType
	}
	return false
}

// GetType returns the error type, or ErrorTypeInternal for foreign errors.
func GetType(err error) ErrorType {
	if appErr, ok := As(err); ok {
		return appErr.Type
	}
	return ErrorTypeInternal
}

// GetStatusCode returns the HTTP status code for an error
func GetStatusCode(err error) int {
	if appErr, ok := As(err); ok {
		return appErr.StatusCode
	}
	return http.StatusInternalServerError
}
