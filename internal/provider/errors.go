package provider

import (
	"context"
	"errors"
	"net"

	xhttp "StockMind/pkg/http"
)

// Terminal per-provider failures. They short-circuit to the next provider
// instead of consuming the retry budget.
var (
	ErrSymbolNotFound = errors.New("provider: symbol not found")
	ErrEmptySeries    = errors.New("provider: empty payload")
	ErrNotConfigured  = errors.New("provider: not configured")
)

// Retryable reports whether a fetch failure is worth another attempt
// against the same provider: timeouts, rate limits and server-side errors.
func Retryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrSymbolNotFound) || errors.Is(err, ErrEmptySeries) || errors.Is(err, ErrNotConfigured) {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var se *xhttp.StatusError
	if errors.As(err, &se) {
		return se.StatusCode == 429 || se.StatusCode >= 500
	}

	var ne net.Error
	if errors.As(err, &ne) {
		return true
	}

	return false
}

// FailureKind labels an error for metrics.
func FailureKind(err error) string {
	if Retryable(err) {
		return "retryable"
	}
	return "terminal"
}
