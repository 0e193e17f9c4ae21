package mem0

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"syscall"
)

// Error represents a general error in the mem0 client.
type Error struct {
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// NewError creates a new general Error.
func NewError(message string) error {
	return &Error{Message: message}
}

// WrapError wraps an existing error with a message.
func WrapError(err error, message string) error {
	return &Error{Message: message, Err: err}
}

// TransportError represents a failure to construct or rebuild the HTTP client.
type TransportError struct {
	Message string
	Err     error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("transport error: %s: %v", e.Message, e.Err)
	}
	return fmt.Sprintf("transport error: %s", e.Message)
}

// Unwrap returns the underlying error.
func (e *TransportError) Unwrap() error {
	return e.Err
}

// NewTransportError creates a new TransportError.
func NewTransportError(message string, err error) error {
	return &TransportError{Message: message, Err: err}
}

// HTTPError represents a well-formed error response from the mem0 API
// (non-2xx status code). It is terminal: the request reached the service
// and was rejected, so retrying cannot help.
type HTTPError struct {
	StatusCode int
	Body       string
	URL        string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("http error for URL '%s': status %d, body: %s", e.URL, e.StatusCode, e.Body)
}

// NewHTTPError creates a new HTTPError.
func NewHTTPError(statusCode int, body string, url string) error {
	return &HTTPError{StatusCode: statusCode, Body: body, URL: url}
}

// NetworkError represents a network-level failure (timeout, connect, read,
// reset). It is retryable.
type NetworkError struct {
	URL     string
	Message string
	Err     error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error for URL '%s': %s: %v", e.URL, e.Message, e.Err)
}

// Unwrap returns the underlying error.
func (e *NetworkError) Unwrap() error {
	return e.Err
}

// NewNetworkError creates a new NetworkError.
func NewNetworkError(url, message string, err error) error {
	return &NetworkError{URL: url, Message: message, Err: err}
}

// RetriesExhaustedError wraps the last retryable error after the retry
// budget has been spent. Callers see it as terminal.
type RetriesExhaustedError struct {
	Attempts int
	Err      error
}

func (e *RetriesExhaustedError) Error() string {
	return fmt.Sprintf("retries exhausted after %d attempts: %v", e.Attempts, e.Err)
}

// Unwrap returns the underlying error.
func (e *RetriesExhaustedError) Unwrap() error {
	return e.Err
}

// ChunkWriteError reports a multi-chunk write that failed partway through.
// Chunks already sent are not rolled back; Sent tells the caller how far the
// write got.
type ChunkWriteError struct {
	Sent  int
	Total int
	Err   error
}

func (e *ChunkWriteError) Error() string {
	return fmt.Sprintf("chunked write failed after %d/%d chunks sent: %v", e.Sent, e.Total, e.Err)
}

// Unwrap returns the underlying error.
func (e *ChunkWriteError) Unwrap() error {
	return e.Err
}

// IsRetryable classifies an error as retryable (transient network condition)
// or terminal (well-formed rejection, validation failure, anything else).
// It is a pure function over the error value.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}

	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return false
	}

	var netErr *NetworkError
	if errors.As(err, &netErr) {
		return true
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	if errors.Is(err, syscall.ECONNRESET) || errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.EPIPE) {
		return true
	}
	if errors.Is(err, io.ErrUnexpectedEOF) {
		return true
	}

	var timeoutErr net.Error
	if errors.As(err, &timeoutErr) && timeoutErr.Timeout() {
		return true
	}

	var opErr *net.OpError
	return errors.As(err, &opErr)
}

// needsRebuild reports whether a retryable failure indicates a broken
// connection (connect failure or reset) that warrants rebuilding the HTTP
// client before the next attempt.
func needsRebuild(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, syscall.ECONNRESET) || errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.EPIPE) || errors.Is(err, io.ErrUnexpectedEOF) {
		return true
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return opErr.Op == "dial" || opErr.Op == "read"
	}

	return false
}
