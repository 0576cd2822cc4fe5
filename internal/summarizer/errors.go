package summarizer

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"

	"github.com/openai/openai-go/v3"
)

type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindUnavailable
	KindTimeout
	KindMalformedInput
	KindResourceExhausted
	KindEmptyOutput
)

func (k ErrorKind) String() string {
	switch k {
	case KindUnavailable:
		return "unavailable"
	case KindTimeout:
		return "timeout"
	case KindMalformedInput:
		return "malformed_input"
	case KindResourceExhausted:
		return "resource_exhausted"
	case KindEmptyOutput:
		return "empty_output"
	default:
		return "unknown"
	}
}

// ErrModelNotLoaded is reported when no summarizer was initialized.
var ErrModelNotLoaded = errors.New("summarization model not loaded")

// Error is a summarization failure. Every kind is recoverable by Fallback.
type Error struct {
	Kind ErrorKind
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("summarize (kind = %s): %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// statusError carries a non-2xx status from an inference endpoint.
type statusError struct {
	StatusCode int
	Message    string
}

func (e *statusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("unexpected status: %d", e.StatusCode)
	}

	return fmt.Sprintf("unexpected status: %d: %s", e.StatusCode, e.Message)
}

// Classify wraps err into an *Error with the most specific kind it can tell.
// Errors that already are *Error are returned unchanged.
func Classify(err error) *Error {
	if err == nil {
		return nil
	}

	var summarizeErr *Error
	if errors.As(err, &summarizeErr) {
		return summarizeErr
	}

	return &Error{Kind: classifyKind(err), Err: err}
}

func classifyKind(err error) ErrorKind {
	if errors.Is(err, ErrModelNotLoaded) {
		return KindUnavailable
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return KindTimeout
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return KindTimeout
	}

	if kind, ok := kindFromStatus(err); ok {
		return kind
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "out of memory"), strings.Contains(msg, "currently loading"):
		return KindResourceExhausted
	case strings.Contains(msg, "timed out"), strings.Contains(msg, "timeout"):
		return KindTimeout
	}

	return KindUnknown
}

func kindFromStatus(err error) (ErrorKind, bool) {
	var code int

	var apiErr *openai.Error
	var stErr *statusError

	switch {
	case errors.As(err, &apiErr):
		code = apiErr.StatusCode
	case errors.As(err, &stErr):
		code = stErr.StatusCode
	default:
		return KindUnknown, false
	}

	switch {
	case code == http.StatusTooManyRequests,
		code == http.StatusServiceUnavailable,
		code == http.StatusInsufficientStorage:
		return KindResourceExhausted, true
	case code == http.StatusRequestTimeout, code == http.StatusGatewayTimeout:
		return KindTimeout, true
	case code >= 400 && code < 500:
		return KindMalformedInput, true
	default:
		return KindUnknown, true
	}
}
