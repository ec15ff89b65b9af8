package errors

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// ErrorHandler provides interface-specific error handling
type ErrorHandler interface {
	HandleError(err error) error
	FormatError(err error) string
}

// CLIErrorHandler handles errors for CLI interface
type CLIErrorHandler struct {
	Verbose bool
}

// NewCLIErrorHandler creates a new CLI error handler
func NewCLIErrorHandler(verbose bool) *CLIErrorHandler {
	return &CLIErrorHandler{Verbose: verbose}
}

// HandleError returns a formatted error for terminal display
func (h *CLIErrorHandler) HandleError(err error) error {
	return fmt.Errorf("%s", h.FormatError(err))
}

// FormatError formats an error for CLI display
func (h *CLIErrorHandler) FormatError(err error) string {
	appErr := GetAppError(err)

	var prefix string
	switch appErr.Severity {
	case SeverityCritical:
		prefix = "CRITICAL"
	case SeverityError:
		prefix = "ERROR"
	case SeverityWarning:
		prefix = "WARNING"
	default:
		prefix = "INFO"
	}

	if h.Verbose && appErr.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", prefix, appErr.Message, appErr.Cause)
	}
	return fmt.Sprintf("%s: %s", prefix, appErr.Message)
}

// HTTPErrorHandler handles errors for the HTTP API
type HTTPErrorHandler struct {
	IncludeDetails bool
}

// NewHTTPErrorHandler creates a new HTTP error handler
func NewHTTPErrorHandler(includeDetails bool) *HTTPErrorHandler {
	return &HTTPErrorHandler{IncludeDetails: includeDetails}
}

// httpErrorBody is the JSON error envelope written to API clients
type httpErrorBody struct {
	Success bool           `json:"success"`
	Error   map[string]any `json:"error"`
}

// WriteHTTPError writes an AppError as a JSON response with the mapped status
func (h *HTTPErrorHandler) WriteHTTPError(w http.ResponseWriter, err error) {
	appErr := GetAppError(err)

	body := httpErrorBody{
		Error: map[string]any{
			"code":    appErr.Code,
			"message": appErr.Message,
		},
	}
	if h.IncludeDetails && appErr.Details != "" {
		body.Error["details"] = appErr.Details
	}
	if len(appErr.Context) > 0 {
		body.Error["context"] = appErr.Context
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(HTTPStatusCode(appErr))
	_ = json.NewEncoder(w).Encode(body)
}

// HTTPStatusCode maps an AppError to an HTTP status code
func HTTPStatusCode(appErr *AppError) int {
	switch appErr.Code {
	case ErrCodeValidation, ErrCodeInvalidInput, ErrCodeMalformedTemplate, ErrCodeMissingField:
		return http.StatusBadRequest
	case ErrCodeNotFound, ErrCodeFileNotFound:
		return http.StatusNotFound
	case ErrCodeAlreadyExists:
		return http.StatusConflict
	case ErrCodeUnauthenticated:
		return http.StatusUnauthorized
	case ErrCodeTimeout:
		return http.StatusGatewayTimeout
	case ErrCodeNetworkFailure:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
