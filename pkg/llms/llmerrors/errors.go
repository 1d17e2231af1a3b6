// Package llmerrors classifies provider failures so the retry layer can
// decide what is transient and what is fatal without knowing the vendor.
package llmerrors

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
)

// ErrorType represents a category of provider errors.
type ErrorType int8

const (
	// TypeRateLimit represents rate limiting errors (429, quota exceeded).
	TypeRateLimit ErrorType = iota
	// TypeServer represents transient server errors (5xx, overloaded, timeout).
	TypeServer
	// TypeAuth represents authentication errors (401/403, bad API key).
	TypeAuth
	// TypeBadRequest represents malformed request errors.
	TypeBadRequest
	// TypeDecode represents a response that could not be decoded.
	TypeDecode
	// TypeUnknown is the default for unclassified errors.
	TypeUnknown
)

// String returns the string representation of the error type.
func (et ErrorType) String() string {
	switch et {
	case TypeRateLimit:
		return "rate_limit"
	case TypeServer:
		return "server"
	case TypeAuth:
		return "auth"
	case TypeBadRequest:
		return "bad_request"
	case TypeDecode:
		return "decode"
	default:
		return "unknown"
	}
}

// Error is a classified provider error with retry metadata.
type Error struct {
	// Err is the wrapped underlying error.
	Err error
	// Message is a human-readable error message.
	Message string
	// Type is the classified error type.
	Type ErrorType
	// StatusCode is the HTTP status code, if applicable.
	StatusCode int
	// RetryAfter is an explicit wait hint supplied by the provider,
	// zero when none was given.
	RetryAfter time.Duration
	// Header carries the response headers for hint extractors.
	Header http.Header
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if e.StatusCode != 0 {
		return fmt.Sprintf("llm error (%s, status %d): %s", e.Type, e.StatusCode, msg)
	}
	return fmt.Sprintf("llm error (%s): %s", e.Type, msg)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// IsRetryable reports whether this error class is expected to resolve with
// time. Only rate limiting and server errors qualify; everything else is
// fatal and propagates immediately.
func (e *Error) IsRetryable() bool {
	switch e.Type {
	case TypeRateLimit, TypeServer:
		return true
	default:
		return false
	}
}

// New creates a new classified error.
func New(typ ErrorType, message string) *Error {
	return &Error{
		Type:    typ,
		Message: message,
	}
}

// WithCause creates a new classified error wrapping another error.
func WithCause(typ ErrorType, cause error, message string) *Error {
	return &Error{
		Type:    typ,
		Err:     cause,
		Message: message,
	}
}

// FromStatus creates a classified error from an HTTP status and response
// headers. A Retry-After header on a 429 becomes the wait hint.
func FromStatus(statusCode int, header http.Header, cause error) *Error {
	e := &Error{
		Err:        cause,
		StatusCode: statusCode,
		Header:     header,
	}
	switch {
	case statusCode == http.StatusTooManyRequests:
		e.Type = TypeRateLimit
		e.RetryAfter = ParseRetryAfter(header.Get("Retry-After"))
	case statusCode >= 500:
		e.Type = TypeServer
	case statusCode == http.StatusUnauthorized || statusCode == http.StatusForbidden:
		e.Type = TypeAuth
	case statusCode >= 400:
		e.Type = TypeBadRequest
	default:
		e.Type = TypeUnknown
	}
	return e
}

// ParseRetryAfter parses a Retry-After header value as seconds.
func ParseRetryAfter(header string) time.Duration {
	if header == "" {
		return 0
	}
	secs, err := strconv.Atoi(header)
	if err != nil || secs < 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}

// Is checks if an error is of a specific classified type.
func Is(err error, typ ErrorType) bool {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Type == typ
	}
	return false
}

// TypeOf returns the error type of an error, or TypeUnknown if not classified.
func TypeOf(err error) ErrorType {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Type
	}
	return TypeUnknown
}

// Classify wraps an arbitrary error into a classified one. Errors already
// classified pass through; context cancellation is never retryable; the
// rest are matched on common provider message patterns.
func Classify(err error) *Error {
	if err == nil {
		return nil
	}
	var ce *Error
	if errors.As(err, &ce) {
		return ce
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return WithCause(TypeBadRequest, err, "request cancelled")
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "rate") || strings.Contains(msg, "429") || strings.Contains(msg, "quota"):
		return WithCause(TypeRateLimit, err, "")
	case strings.Contains(msg, "overloaded") ||
		strings.Contains(msg, "timeout") ||
		strings.Contains(msg, "connection") ||
		strings.Contains(msg, "500") ||
		strings.Contains(msg, "502") ||
		strings.Contains(msg, "503") ||
		strings.Contains(msg, "504"):
		return WithCause(TypeServer, err, "")
	case strings.Contains(msg, "401") || strings.Contains(msg, "403") ||
		strings.Contains(msg, "api key") || strings.Contains(msg, "unauthorized"):
		return WithCause(TypeAuth, err, "")
	default:
		return WithCause(TypeUnknown, err, "")
	}
}
