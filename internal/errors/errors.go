package errors

import (
	"encoding/json"
	stderrors "errors"
	"net/http"

	"github.com/aashari/go-ai-proxy-server/internal/logger"
)

// ErrorType represents different types of errors
type ErrorType string

const (
	ErrorTypeValidation      ErrorType = "validation_error"
	ErrorTypeRequestTooLarge ErrorType = "request_too_large_error"
	ErrorTypeInternal        ErrorType = "internal_error"
	ErrorTypeExternal        ErrorType = "external_error"
	ErrorTypeConfiguration   ErrorType = "configuration_error"
)

// Public messages
const (
	MessageInternalServerError = "Internal Server Error"
	MessageInvalidRequestBody  = "Invalid request body"
	MessageRequestTooLarge     = "Request body too large"
)

// APIError is an error with a message that is safe to return to clients.
// Cause carries the internal failure and is only ever logged.
type APIError struct {
	Type       ErrorType
	Message    string
	StatusCode int
	Cause      error
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *APIError) Unwrap() error {
	return e.Cause
}

// ErrorResponse represents the JSON error response format
type ErrorResponse struct {
	Error string `json:"error" example:"Query is required"`
}

// NewAPIError creates a new APIError
func NewAPIError(errorType ErrorType, statusCode int, message string) *APIError {
	return &APIError{
		Type:       errorType,
		Message:    message,
		StatusCode: statusCode,
	}
}

// HandleError writes {"error": message} with the status carried by err.
// Errors that are not APIErrors are reported as a generic 500 so their
// text never reaches the client.
func HandleError(w http.ResponseWriter, err error) {
	var apiError *APIError
	if !stderrors.As(err, &apiError) {
		apiError = NewInternalError(err)
	}

	statusCode := apiError.StatusCode
	if statusCode == 0 {
		statusCode = http.StatusInternalServerError
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if jsonBytes, jsonErr := json.Marshal(ErrorResponse{Error: apiError.Message}); jsonErr == nil {
		w.Write(jsonBytes)
	} else {
		logger.Error("Error marshaling error response", "error", jsonErr)
		w.Write([]byte(`{"error":"Internal Server Error"}`))
	}
}

// Common error constructors for convenience

// NewValidationError creates a 400 error with a client-facing message
func NewValidationError(message string) *APIError {
	return NewAPIError(ErrorTypeValidation, http.StatusBadRequest, message)
}

// NewRequestTooLargeError creates a 413 error
func NewRequestTooLargeError() *APIError {
	return NewAPIError(ErrorTypeRequestTooLarge, http.StatusRequestEntityTooLarge, MessageRequestTooLarge)
}

// NewInternalError wraps cause behind the generic 500 message
func NewInternalError(cause error) *APIError {
	e := NewAPIError(ErrorTypeInternal, http.StatusInternalServerError, MessageInternalServerError)
	e.Cause = cause
	return e
}

// NewExternalError reports an upstream provider failure as a 500 with a fixed
// public message; cause keeps the vendor detail for logging.
func NewExternalError(publicMessage string, cause error) *APIError {
	if publicMessage == "" {
		publicMessage = MessageInternalServerError
	}
	e := NewAPIError(ErrorTypeExternal, http.StatusInternalServerError, publicMessage)
	e.Cause = cause
	return e
}

// NewConfigurationError creates a configuration error
func NewConfigurationError(message string) *APIError {
	return NewAPIError(ErrorTypeConfiguration, http.StatusInternalServerError, message)
}
