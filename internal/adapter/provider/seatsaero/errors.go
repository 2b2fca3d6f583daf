package seatsaero

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/award-search/award-flight-finder/internal/domain"
)

// StatusError is a non-2xx response from the partner API.
type StatusError struct {
	StatusCode int
	Body       string

	// wait is the Retry-After value of a 429, zero when absent
	wait time.Duration
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("unexpected status %d", e.StatusCode)
	}
	return fmt.Sprintf("unexpected status %d: %s", e.StatusCode, e.Body)
}

// RetryAfter returns the server-requested wait so the retry loop can honor it.
func (e *StatusError) RetryAfter() time.Duration {
	return e.wait
}

// parseRetryAfter reads a Retry-After header given in seconds or as an HTTP date.
func parseRetryAfter(v string, now time.Time) time.Duration {
	if v == "" {
		return 0
	}
	if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	if at, err := http.ParseTime(v); err == nil && at.After(now) {
		return at.Sub(now)
	}
	return 0
}

// kindForStatus maps an HTTP status to a provider error kind.
func kindForStatus(code int) domain.ProviderErrorKind {
	switch {
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		return domain.KindAuth
	case code == http.StatusTooManyRequests:
		return domain.KindRateLimited
	case code == http.StatusRequestTimeout || code == http.StatusGatewayTimeout:
		return domain.KindTimeout
	case code >= 500:
		return domain.KindUnreachable
	default:
		return domain.KindMalformedResponse
	}
}

// classify wraps a transport or decode failure into a ProviderError.
func classify(err error) *domain.ProviderError {
	var pe *domain.ProviderError
	if errors.As(err, &pe) {
		return pe
	}

	var se *StatusError
	if errors.As(err, &se) {
		return domain.NewProviderErrorOfKind(ProviderName, kindForStatus(se.StatusCode), err)
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return domain.NewProviderErrorOfKind(ProviderName, domain.KindTimeout, fmt.Errorf("%w: %w", domain.ErrProviderTimeout, err))
	}
	if errors.Is(err, context.Canceled) {
		return &domain.ProviderError{Provider: ProviderName, Kind: domain.KindCanceled, Err: err}
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return domain.NewProviderErrorOfKind(ProviderName, domain.KindTimeout, fmt.Errorf("%w: %w", domain.ErrProviderTimeout, err))
	}

	return domain.NewProviderErrorOfKind(ProviderName, domain.KindUnreachable, fmt.Errorf("%w: %w", domain.ErrProviderUnavailable, err))
}

// malformed builds a non-retryable decode error.
func malformed(err error) *domain.ProviderError {
	return domain.NewProviderErrorOfKind(ProviderName, domain.KindMalformedResponse, err)
}
