package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
)

// ErrorKind classifies completion failures.
type ErrorKind string

const (
	KindNetwork           ErrorKind = "network"
	KindAuth              ErrorKind = "auth"
	KindRateLimit         ErrorKind = "rate_limit"
	KindMalformedResponse ErrorKind = "malformed_response"
	KindUnknown           ErrorKind = "unknown"
)

// CompletionError is returned by every Client when a completion call fails.
type CompletionError struct {
	Kind       ErrorKind
	StatusCode int
	Err        error
}

func (e *CompletionError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("completion failed (%s, status %d): %v", e.Kind, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("completion failed (%s): %v", e.Kind, e.Err)
}

func (e *CompletionError) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of a completion failure, or KindUnknown when err
// is not a *CompletionError.
func KindOf(err error) ErrorKind {
	var ce *CompletionError
	if errors.As(err, &ce) {
		return ce.Kind
	}
	return KindUnknown
}

// KindForStatus maps an HTTP status code to an error kind.
func KindForStatus(code int) ErrorKind {
	switch {
	case code == http.StatusUnauthorized, code == http.StatusForbidden:
		return KindAuth
	case code == http.StatusTooManyRequests:
		return KindRateLimit
	case code >= http.StatusInternalServerError:
		return KindNetwork
	default:
		return KindUnknown
	}
}

func statusError(code int, err error) *CompletionError {
	return &CompletionError{Kind: KindForStatus(code), StatusCode: code, Err: err}
}

func malformed(format string, args ...any) *CompletionError {
	return &CompletionError{Kind: KindMalformedResponse, Err: fmt.Errorf(format, args...)}
}

// transportError classifies failures that carry no HTTP status.
func transportError(err error) *CompletionError {
	var (
		netErr    net.Error
		syntaxErr *json.SyntaxError
		typeErr   *json.UnmarshalTypeError
	)
	switch {
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return &CompletionError{Kind: KindNetwork, Err: err}
	case errors.As(err, &netErr):
		return &CompletionError{Kind: KindNetwork, Err: err}
	case errors.As(err, &syntaxErr), errors.As(err, &typeErr):
		return &CompletionError{Kind: KindMalformedResponse, Err: err}
	default:
		return &CompletionError{Kind: KindUnknown, Err: err}
	}
}
