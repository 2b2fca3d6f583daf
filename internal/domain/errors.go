package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Configuration errors. These are fatal, raised before any network activity and never retried.
var (
	// ErrInvalidRequest indicates the search request failed validation.
	ErrInvalidRequest = errors.New("invalid request")

	// ErrUnknownCreditCard indicates the credit card identifier is not in the catalog.
	ErrUnknownCreditCard = errors.New("unknown credit card")

	// ErrUnknownProgram indicates one or more program identifiers are not registered.
	ErrUnknownProgram = errors.New("unknown program")

	// ErrEmptyQueryPlan indicates the request expands to zero atomic queries.
	ErrEmptyQueryPlan = errors.New("empty query plan")

	// ErrInvalidMaxResults indicates max_results is not a positive integer.
	ErrInvalidMaxResults = errors.New("invalid max results")

	// ErrQueryBudgetExceeded indicates the plan needs more API calls than allowed per search.
	ErrQueryBudgetExceeded = errors.New("query plan exceeds call budget")
)

// Search-time errors.
var (
	// ErrAggregationFailed indicates every atomic query failed.
	ErrAggregationFailed = errors.New("aggregation failed: all queries failed")

	// ErrInvalidMilesCost indicates CPP cannot be computed because miles <= 0.
	ErrInvalidMilesCost = errors.New("invalid miles cost")

	// ErrProviderTimeout indicates a provider call exceeded its deadline.
	ErrProviderTimeout = errors.New("provider timeout")

	// ErrProviderUnavailable indicates the provider could not be reached.
	ErrProviderUnavailable = errors.New("provider unavailable")
)

// ProviderErrorKind classifies a failed provider call.
type ProviderErrorKind string

// Provider error kinds.
const (
	KindAuth              ProviderErrorKind = "auth_error"
	KindRateLimited       ProviderErrorKind = "rate_limited"
	KindTimeout           ProviderErrorKind = "timeout"
	KindMalformedResponse ProviderErrorKind = "malformed_response"
	KindUnreachable       ProviderErrorKind = "unreachable"
	KindCanceled          ProviderErrorKind = "canceled"
)

// ProviderError represents a failure of a single atomic query.
type ProviderError struct {
	// Provider is the name of the provider that failed
	Provider string

	// Kind classifies the failure
	Kind ProviderErrorKind

	// Query is the atomic query that failed (zero value when unknown)
	Query AtomicQuery

	// Err is the underlying cause
	Err error

	// Retryable reports whether the transport may retry the call
	Retryable bool
}

// Error implements the error interface.
func (e *ProviderError) Error() string {
	var b strings.Builder
	b.WriteString("provider ")
	b.WriteString(e.Provider)
	if e.Kind != "" {
		b.WriteString(" [")
		b.WriteString(string(e.Kind))
		b.WriteString("]")
	}
	if !e.Query.IsZero() {
		b.WriteString(" ")
		b.WriteString(e.Query.String())
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *ProviderError) Unwrap() error {
	return e.Err
}

// WithQuery returns a copy of the error bound to the given query.
func (e *ProviderError) WithQuery(q AtomicQuery) *ProviderError {
	cp := *e
	cp.Query = q
	return &cp
}

// NewProviderError creates a non-retryable provider error of kind unreachable.
func NewProviderError(provider string, err error) *ProviderError {
	return &ProviderError{Provider: provider, Kind: KindUnreachable, Err: err}
}

// NewProviderErrorOfKind creates a provider error with an explicit kind.
// Rate limits, timeouts and unreachable hosts are retryable; the rest are not.
func NewProviderErrorOfKind(provider string, kind ProviderErrorKind, err error) *ProviderError {
	return &ProviderError{
		Provider:  provider,
		Kind:      kind,
		Err:       err,
		Retryable: kind == KindRateLimited || kind == KindTimeout || kind == KindUnreachable,
	}
}

// NewProviderTimeoutError creates a timeout error for the given provider.
func NewProviderTimeoutError(provider string) *ProviderError {
	return NewProviderErrorOfKind(provider, KindTimeout, ErrProviderTimeout)
}

// AggregationError is returned when every atomic query of a search failed.
type AggregationError struct {
	Failures []*ProviderError
}

// Error implements the error interface.
func (e *AggregationError) Error() string {
	return fmt.Sprintf("%s (%d failures)", ErrAggregationFailed.Error(), len(e.Failures))
}

// Unwrap makes errors.Is(err, ErrAggregationFailed) succeed.
func (e *AggregationError) Unwrap() error {
	return ErrAggregationFailed
}

// ScoringError records a candidate that could not be scored.
type ScoringError struct {
	Candidate FlightCandidate
	Err       error
}

// Error implements the error interface.
func (e *ScoringError) Error() string {
	return fmt.Sprintf("score %s %s (%d miles): %v",
		e.Candidate.Program, e.Candidate.DepartsAt.Format("2006-01-02T15:04"), e.Candidate.Miles, e.Err)
}

// Unwrap returns the underlying error.
func (e *ScoringError) Unwrap() error {
	return e.Err
}

// WrapInvalidRequest formats a message wrapped with ErrInvalidRequest.
func WrapInvalidRequest(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidRequest, fmt.Sprintf(format, args...))
}

// IsConfigurationError reports whether err belongs to the fatal configuration class.
func IsConfigurationError(err error) bool {
	return errors.Is(err, ErrInvalidRequest) ||
		errors.Is(err, ErrUnknownCreditCard) ||
		errors.Is(err, ErrUnknownProgram) ||
		errors.Is(err, ErrEmptyQueryPlan) ||
		errors.Is(err, ErrInvalidMaxResults) ||
		errors.Is(err, ErrQueryBudgetExceeded)
}

// IsAggregationFailed reports whether every query of the search failed.
func IsAggregationFailed(err error) bool {
	return errors.Is(err, ErrAggregationFailed)
}

// IsProviderTimeout reports whether err is a provider timeout.
func IsProviderTimeout(err error) bool {
	if errors.Is(err, ErrProviderTimeout) {
		return true
	}
	var pe *ProviderError
	return errors.As(err, &pe) && pe.Kind == KindTimeout
}
