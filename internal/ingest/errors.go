package ingest

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// ErrorType represents the category of error that occurred during an
// ingestion step
type ErrorType string

const (
	// ErrorTypeTransport indicates a network-level error (connection refused, DNS, etc.)
	ErrorTypeTransport ErrorType = "transport"
	// ErrorTypeTimeout indicates the request exceeded the fixed API timeout
	ErrorTypeTimeout ErrorType = "timeout"
	// ErrorTypeAuth indicates the API rejected the credentials (HTTP 401/403)
	ErrorTypeAuth ErrorType = "auth"
	// ErrorTypeAPI indicates any other non-2xx response from the API
	ErrorTypeAPI ErrorType = "api"
	// ErrorTypeFormat indicates the response body was not valid JSON
	ErrorTypeFormat ErrorType = "format"
)

// APIError represents a structured error from a data-source API call
type APIError struct {
	Type       ErrorType
	StatusCode int
	Message    string
	Cause      error
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s error (status %d): %s", e.Type, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s error: %s", e.Type, e.Message)
}

// Unwrap implements error unwrapping for errors.Is and errors.As
func (e *APIError) Unwrap() error {
	return e.Cause
}

// classifyTransport wraps a request error as a timeout or transport APIError
func classifyTransport(err error) *APIError {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return &APIError{
			Type:    ErrorTypeTimeout,
			Message: "request timed out",
			Cause:   err,
		}
	}
	return &APIError{
		Type:    ErrorTypeTransport,
		Message: "request failed",
		Cause:   err,
	}
}

// classifyStatus classifies a non-2xx HTTP status code into an APIError
func classifyStatus(statusCode int) *APIError {
	if statusCode == 401 || statusCode == 403 {
		return &APIError{
			Type:       ErrorTypeAuth,
			StatusCode: statusCode,
			Message:    "credentials rejected",
		}
	}
	return &APIError{
		Type:       ErrorTypeAPI,
		StatusCode: statusCode,
		Message:    "API returned an error",
	}
}
