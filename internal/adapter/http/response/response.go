// Package response provides standardized HTTP response builders for the fare search API.
// It centralizes response formatting so every endpoint reports errors the same way.
package response

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Response is the envelope used when a handler could not produce its own payload,
// such as after a recovered panic.
type Response struct {
	// Success indicates whether the request was successful
	Success bool `json:"success"`

	// Error contains error details
	Error *ErrorDetail `json:"error,omitempty"`
}

// ErrorDetail contains structured error information.
type ErrorDetail struct {
	// Code is a machine-readable error code
	Code string `json:"code" example:"validation_error"`

	// Message is a human-readable error message
	Message string `json:"message" example:"Request validation failed"`

	// Details contains field-specific error details (for validation errors)
	Details map[string]string `json:"details,omitempty"`
}

// Error codes used in API responses.
const (
	CodeInvalidRequest  = "invalid_request"
	CodeValidationError = "validation_error"
	CodeProviderError   = "provider_error"
	CodeRateLimited     = "rate_limited"
	CodeTimeout         = "timeout"
	CodeInternalError   = "internal_error"
)

// Error messages used in API responses.
const (
	MsgInvalidRequestBody = "Failed to parse request body"
	MsgValidationFailed   = "Request validation failed"
	MsgProviderError      = "The fare provider could not be queried"
	MsgRateLimited        = "The fare provider is rate limiting requests, try again later"
	MsgTimeout            = "Request timed out"
	MsgRequestCancelled   = "Request was cancelled"
	MsgInternalError      = "An unexpected error occurred"
)

// Failure creates a failed response envelope.
func Failure(code, message string, details map[string]string) *Response {
	return &Response{
		Success: false,
		Error: &ErrorDetail{
			Code:    code,
			Message: message,
			Details: details,
		},
	}
}

// OK writes a 200 OK response with the given data.
func OK(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, data)
}
