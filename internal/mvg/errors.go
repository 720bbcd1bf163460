package mvg

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"strings"
	"syscall"
)

// ErrorType represents the category of error that occurred
type ErrorType int

const (
	// ErrTypeNetwork indicates a network-level error (unreachable host, reset connection, etc.)
	ErrTypeNetwork ErrorType = iota
	// ErrTypeTimeout indicates a request timeout
	ErrTypeTimeout
	// ErrTypeConnectionRefused indicates the service refused the connection
	ErrTypeConnectionRefused
	// ErrTypeDNS indicates a DNS resolution failure
	ErrTypeDNS
	// ErrTypeHTTP indicates an HTTP-level error (non-200 status code)
	ErrTypeHTTP
	// ErrTypeParse indicates a response body that could not be decoded
	ErrTypeParse
	// ErrTypeCanceled indicates the caller gave up (context canceled or deadline exceeded)
	ErrTypeCanceled
	// ErrTypeUnknown indicates an unknown or unexpected error
	ErrTypeUnknown
)

// String returns a human-readable name for the error type
func (et ErrorType) String() string {
	switch et {
	case ErrTypeNetwork:
		return "Network Error"
	case ErrTypeTimeout:
		return "Timeout"
	case ErrTypeConnectionRefused:
		return "Connection Refused"
	case ErrTypeDNS:
		return "DNS Error"
	case ErrTypeHTTP:
		return "HTTP Error"
	case ErrTypeParse:
		return "Parse Error"
	case ErrTypeCanceled:
		return "Canceled"
	case ErrTypeUnknown:
		return "Unknown Error"
	default:
		return fmt.Sprintf("ErrorType(%d)", et)
	}
}

// APIError represents an error that occurred while talking to the MVG API
type APIError struct {
	Type       ErrorType // Category of error
	Message    string    // Human-readable error message
	StatusCode int       // HTTP status code (if applicable)
	Endpoint   string    // API path that failed (for context)
	Err        error     // Underlying error (if any)
	Retryable  bool      // Whether the error is retryable
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error for error chain inspection
func (e *APIError) Unwrap() error {
	return e.Err
}

// ClassifyNetworkError analyzes a transport error and returns a more specific APIError.
// It cannot tell whose deadline expired: an HTTP client timeout and a caller's context
// deadline both classify as ErrTypeTimeout. Callers that own the context check it first
// and use NewCanceledError.
func ClassifyNetworkError(err error, endpoint string) *APIError {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.Canceled) {
		return NewCanceledError(endpoint, err)
	}

	if os.IsTimeout(err) || errors.Is(err, context.DeadlineExceeded) {
		return &APIError{
			Type:      ErrTypeTimeout,
			Message:   "Request timed out",
			Endpoint:  endpoint,
			Err:       err,
			Retryable: true,
		}
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return &APIError{
			Type:     ErrTypeDNS,
			Message:  fmt.Sprintf("DNS resolution failed for %s", dnsErr.Name),
			Endpoint: endpoint,
			Err:      err,
		}
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		if errors.Is(opErr.Err, syscall.ECONNREFUSED) {
			return &APIError{
				Type:      ErrTypeConnectionRefused,
				Message:   "Service refused connection",
				Endpoint:  endpoint,
				Err:       err,
				Retryable: true,
			}
		}
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Err != nil && urlErr.Err != err {
		return ClassifyNetworkError(urlErr.Err, endpoint)
	}

	return &APIError{
		Type:      ErrTypeNetwork,
		Message:   "Network error occurred",
		Endpoint:  endpoint,
		Err:       err,
		Retryable: true,
	}
}

// NewNetworkError creates a network-level error with automatic classification
func NewNetworkError(message string, endpoint string, err error) *APIError {
	classified := ClassifyNetworkError(err, endpoint)
	if classified != nil {
		classified.Message = message
		return classified
	}
	return &APIError{
		Type:      ErrTypeNetwork,
		Message:   message,
		Endpoint:  endpoint,
		Retryable: true,
	}
}

// NewCanceledError reports a request abandoned because the caller's context ended.
// It is never retried.
func NewCanceledError(endpoint string, err error) *APIError {
	return &APIError{
		Type:     ErrTypeCanceled,
		Message:  "Request canceled",
		Endpoint: endpoint,
		Err:      err,
	}
}

// NewHTTPError creates an HTTP-level error
func NewHTTPError(statusCode int, endpoint string, message string) *APIError {
	return &APIError{
		Type:       ErrTypeHTTP,
		Message:    message,
		StatusCode: statusCode,
		Endpoint:   endpoint,
		// Server errors and rate limiting are worth another attempt
		Retryable: statusCode >= 500 || statusCode == 429,
	}
}

// NewParseError creates a parsing error
func NewParseError(message string, endpoint string, err error) *APIError {
	return &APIError{
		Type:     ErrTypeParse,
		Message:  message,
		Endpoint: endpoint,
		Err:      err,
	}
}

func asAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// IsNetworkError checks if an error is a network error (including timeout, connection refused, DNS)
func IsNetworkError(err error) bool {
	if apiErr, ok := asAPIError(err); ok {
		return apiErr.Type == ErrTypeNetwork ||
			apiErr.Type == ErrTypeTimeout ||
			apiErr.Type == ErrTypeConnectionRefused ||
			apiErr.Type == ErrTypeDNS
	}
	return false
}

// IsHTTPError checks if an error is an HTTP error
func IsHTTPError(err error) bool {
	if apiErr, ok := asAPIError(err); ok {
		return apiErr.Type == ErrTypeHTTP
	}
	return false
}

// IsParseError checks if an error is a parse error
func IsParseError(err error) bool {
	if apiErr, ok := asAPIError(err); ok {
		return apiErr.Type == ErrTypeParse
	}
	return false
}

// IsRetryable checks if an error should be retried
func IsRetryable(err error) bool {
	if apiErr, ok := asAPIError(err); ok {
		return apiErr.Retryable
	}
	return false
}

// ShortMessage returns a concise, user-friendly error message
func ShortMessage(err error) string {
	apiErr, ok := asAPIError(err)
	if !ok {
		return err.Error()
	}

	switch apiErr.Type {
	case ErrTypeTimeout:
		return "MVG not responding (timeout)"
	case ErrTypeConnectionRefused:
		return "MVG refused the connection"
	case ErrTypeDNS:
		return "Cannot resolve the MVG host"
	case ErrTypeNetwork:
		return "Network error - check connection"
	case ErrTypeHTTP:
		return fmt.Sprintf("MVG error (HTTP %d)", apiErr.StatusCode)
	case ErrTypeParse:
		return "Unexpected response from MVG"
	case ErrTypeCanceled:
		if errors.Is(apiErr, context.DeadlineExceeded) {
			return "Search took too long (request timeout)"
		}
		return "Request canceled"
	default:
		return apiErr.Message
	}
}

// TroubleshootingHint returns user-friendly troubleshooting advice for an error
func TroubleshootingHint(err error) string {
	apiErr, ok := asAPIError(err)
	if !ok {
		return "An unexpected error occurred. Please try again."
	}

	switch apiErr.Type {
	case ErrTypeTimeout, ErrTypeCanceled:
		return strings.Join([]string{
			"The MVG service did not answer in time.",
			"Troubleshooting:",
			"  • Check your internet connection",
			"  • Raise api.timeout or api.request_timeout in the config file",
		}, "\n")

	case ErrTypeDNS, ErrTypeConnectionRefused, ErrTypeNetwork:
		return strings.Join([]string{
			"Could not reach the MVG service.",
			"Troubleshooting:",
			"  • Check your internet connection",
			"  • Verify api.base_url in the config file",
		}, "\n")

	case ErrTypeHTTP:
		if apiErr.StatusCode >= 500 {
			return fmt.Sprintf("The MVG service is having trouble (HTTP %d). Try again later.", apiErr.StatusCode)
		}
		return fmt.Sprintf("The MVG service rejected the request (HTTP %d).", apiErr.StatusCode)

	case ErrTypeParse:
		return "The MVG API answered with data this version does not understand."

	default:
		return "An error occurred. Please check the error message for details."
	}
}
