// Package apierror defines the coded errors returned by the HTTP transport.
// Validation outcomes are never errors; they travel in the report. These codes
// cover requests that never reached the validator.
package apierror

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Transport error codes
const (
	CodeInvalidParameter = "000002"
	CodeUnsupportedMedia = "000004"
	CodeRateLimited      = "000429"
)

// HTTPStatus returns the HTTP status for a given error code.
func HTTPStatus(code string) int {
	mapping := map[string]int{
		CodeInvalidParameter: http.StatusBadRequest,
		CodeUnsupportedMedia: http.StatusUnsupportedMediaType,
		CodeRateLimited:      http.StatusTooManyRequests,
	}

	if status, ok := mapping[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// APIError represents a transport-level failure.
type APIError struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Data    map[string]any `json:"data,omitempty"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Status returns the HTTP status the error is reported with.
func (e *APIError) Status() int {
	return HTTPStatus(e.Code)
}

// ErrorResponse is the JSON body of every transport error.
type ErrorResponse struct {
	Success bool           `json:"success"`
	Message string         `json:"message"`
	Code    string         `json:"code"`
	Data    map[string]any `json:"data,omitempty"`
}

// ToResponse converts the APIError to an ErrorResponse.
func (e *APIError) ToResponse() *ErrorResponse {
	data := make(map[string]any, len(e.Data))
	for k, v := range e.Data {
		data[k] = v
	}

	return &ErrorResponse{
		Success: false,
		Message: e.Message,
		Code:    e.Code,
		Data:    data,
	}
}

// New creates a new APIError with the given code and message.
func New(code, message string) *APIError {
	return &APIError{
		Code:    code,
		Message: message,
		Data:    make(map[string]any),
	}
}

// NewInvalidParameterError creates an invalid parameter error.
func NewInvalidParameterError(paramName, reason string) *APIError {
	message := fmt.Sprintf("Invalid parameter '%s': %s", paramName, reason)
	return &APIError{
		Code:    CodeInvalidParameter,
		Message: message,
		Data: map[string]any{
			"paramName": paramName,
		},
	}
}

// NewRateLimitedError creates a rate limit error.
func NewRateLimitedError() *APIError {
	return New(CodeRateLimited, "Too many validation requests, retry later")
}

// WrapError wraps a standard Go error into an APIError.
func WrapError(code, message string, err error) *APIError {
	return &APIError{
		Code:    code,
		Message: message,
		Data: map[string]any{
			"originalError": err.Error(),
		},
	}
}

// Write sends err as a JSON error response with its mapped status.
func Write(w http.ResponseWriter, err *APIError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(err.Status())
	_ = json.NewEncoder(w).Encode(err.ToResponse())
}
