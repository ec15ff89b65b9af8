// Package errors provides unified error handling across the revisa system.
//
// Every failure in the prompt-building core maps onto one of the codes
// below; there is no fatal class. Parse failures reject a single document,
// render failures degrade to a marked string, transport failures fall back
// to local data, and clipboard failures are absorbed. Interface-specific
// formatting (CLI text, HTTP JSON) lives in handlers.go.
package errors

import (
	"fmt"
	"time"
)

// ErrorCode represents standardized error codes
type ErrorCode string

const (
	// Template parse errors
	ErrCodeMalformedTemplate ErrorCode = "MALFORMED_TEMPLATE"
	ErrCodeMissingField      ErrorCode = "MISSING_FIELD"

	// Rendering errors
	ErrCodeRenderFailure ErrorCode = "RENDER_FAILURE"

	// Validation errors
	ErrCodeValidation   ErrorCode = "VALIDATION_ERROR"
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"

	// Resource errors
	ErrCodeNotFound      ErrorCode = "NOT_FOUND"
	ErrCodeAlreadyExists ErrorCode = "ALREADY_EXISTS"

	// Storage errors
	ErrCodeStorageFailure ErrorCode = "STORAGE_FAILURE"
	ErrCodeFileNotFound   ErrorCode = "FILE_NOT_FOUND"

	// Transport errors
	ErrCodeNetworkFailure ErrorCode = "NETWORK_FAILURE"
	ErrCodeTimeout        ErrorCode = "TIMEOUT"

	// Authentication errors
	ErrCodeUnauthenticated ErrorCode = "UNAUTHENTICATED"

	// Clipboard errors
	ErrCodeClipboardUnavailable ErrorCode = "CLIPBOARD_UNAVAILABLE"

	// Catch-all
	ErrCodeInternalError ErrorCode = "INTERNAL_ERROR"
)

// ErrorSeverity represents the severity level of an error
type ErrorSeverity string

const (
	SeverityInfo     ErrorSeverity = "info"
	SeverityWarning  ErrorSeverity = "warning"
	SeverityError    ErrorSeverity = "error"
	SeverityCritical ErrorSeverity = "critical"
)

// ErrorCategory represents the category of an error
type ErrorCategory string

const (
	CategoryParse          ErrorCategory = "parse"
	CategoryRender         ErrorCategory = "render"
	CategoryValidation     ErrorCategory = "validation"
	CategoryStorage        ErrorCategory = "storage"
	CategoryTransport      ErrorCategory = "transport"
	CategoryAuthentication ErrorCategory = "authentication"
	CategoryClipboard      ErrorCategory = "clipboard"
	CategorySystem         ErrorCategory = "system"
)

// AppError represents a standardized application error
type AppError struct {
	Code      ErrorCode      `json:"code"`
	Message   string         `json:"message"`
	Details   string         `json:"details,omitempty"`
	Severity  ErrorSeverity  `json:"severity"`
	Category  ErrorCategory  `json:"category"`
	Cause     error          `json:"-"`
	Context   map[string]any `json:"context,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
	Retryable bool           `json:"retryable"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithContext adds context to the error
func (e *AppError) WithContext(key string, value any) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]any)
	}
	e.Context[key] = value
	return e
}

// WithDetails adds details to the error
func (e *AppError) WithDetails(details string) *AppError {
	e.Details = details
	return e
}

// NewAppError creates a new application error
func NewAppError(code ErrorCode, message string) *AppError {
	category, severity := categorizeError(code)
	return &AppError{
		Code:      code,
		Message:   message,
		Severity:  severity,
		Category:  category,
		Timestamp: time.Now(),
		Retryable: isRetryable(code),
	}
}

// Wrap wraps an existing error with application error context
func Wrap(err error, code ErrorCode, message string) *AppError {
	appErr := NewAppError(code, message)
	appErr.Cause = err
	return appErr
}

func categorizeError(code ErrorCode) (ErrorCategory, ErrorSeverity) {
	switch code {
	case ErrCodeMalformedTemplate, ErrCodeMissingField:
		return CategoryParse, SeverityWarning
	case ErrCodeRenderFailure:
		return CategoryRender, SeverityWarning
	case ErrCodeValidation, ErrCodeInvalidInput:
		return CategoryValidation, SeverityWarning
	case ErrCodeNotFound, ErrCodeFileNotFound:
		return CategoryStorage, SeverityInfo
	case ErrCodeAlreadyExists:
		return CategoryStorage, SeverityWarning
	case ErrCodeStorageFailure:
		return CategoryStorage, SeverityError
	case ErrCodeNetworkFailure, ErrCodeTimeout:
		return CategoryTransport, SeverityError
	case ErrCodeUnauthenticated:
		return CategoryAuthentication, SeverityWarning
	case ErrCodeClipboardUnavailable:
		return CategoryClipboard, SeverityInfo
	default:
		return CategorySystem, SeverityError
	}
}

func isRetryable(code ErrorCode) bool {
	switch code {
	case ErrCodeNetworkFailure, ErrCodeTimeout, ErrCodeStorageFailure:
		return true
	default:
		return false
	}
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	_, ok := err.(*AppError)
	return ok
}

// GetAppError extracts an AppError from an error, or converts it to one
func GetAppError(err error) *AppError {
	if appErr, ok := err.(*AppError); ok {
		return appErr
	}
	return Wrap(err, ErrCodeInternalError, "Internal error occurred")
}

// Common error constructors for frequently used errors

func MalformedTemplateError(reason string) *AppError {
	return NewAppError(ErrCodeMalformedTemplate, fmt.Sprintf("Malformed template: %s", reason))
}

func ValidationError(message string) *AppError {
	return NewAppError(ErrCodeValidation, message)
}

func NotFoundError(resource string) *AppError {
	return NewAppError(ErrCodeNotFound, fmt.Sprintf("%s not found", resource))
}

func InternalError(message string) *AppError {
	return NewAppError(ErrCodeInternalError, message)
}

func StorageError(operation string, err error) *AppError {
	return Wrap(err, ErrCodeStorageFailure, fmt.Sprintf("Storage operation failed: %s", operation))
}

func NetworkError(operation string, err error) *AppError {
	return Wrap(err, ErrCodeNetworkFailure, fmt.Sprintf("Network operation failed: %s", operation))
}

func UnauthenticatedError(message string) *AppError {
	return NewAppError(ErrCodeUnauthenticated, message)
}

func RenderError(err error) *AppError {
	return Wrap(err, ErrCodeRenderFailure, "Template rendering failed")
}
