package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for the fare search domain.
var (
	// ErrInvalidRequest indicates the search parameters are malformed.
	ErrInvalidRequest = errors.New("invalid request")

	// ErrProviderFailed indicates a quote could not be obtained from the provider.
	// Every ProviderError matches it through errors.Is.
	ErrProviderFailed = errors.New("provider failed")

	// ErrProviderTimeout indicates a provider did not answer in time.
	ErrProviderTimeout = errors.New("provider timeout")

	// ErrProviderUnavailable indicates a provider is unreachable or returned a server error.
	ErrProviderUnavailable = errors.New("provider unavailable")

	// ErrRateLimited indicates the provider rejected the call because of its rate limit.
	ErrRateLimited = errors.New("provider rate limited")

	// ErrMixedCriteria indicates airport and country criteria were combined in one search.
	ErrMixedCriteria = errors.New("airport and country criteria cannot be mixed")
)

// ProviderError wraps a failure reported by a quoting provider.
type ProviderError struct {
	// Provider is the name of the provider that failed
	Provider string

	// Err is the underlying cause
	Err error

	// Retryable marks transient failures the transport may try again
	Retryable bool
}

// NewProviderError creates a non-retryable ProviderError.
func NewProviderError(provider string, err error) *ProviderError {
	return &ProviderError{Provider: provider, Err: err}
}

// NewRetryableProviderError creates a ProviderError the transport may retry.
func NewRetryableProviderError(provider string, err error) *ProviderError {
	return &ProviderError{Provider: provider, Err: err, Retryable: true}
}

// NewProviderTimeoutError creates a retryable ProviderError wrapping ErrProviderTimeout.
func NewProviderTimeoutError(provider string) *ProviderError {
	return NewRetryableProviderError(provider, ErrProviderTimeout)
}

// NewProviderUnavailableError creates a retryable ProviderError wrapping ErrProviderUnavailable.
func NewProviderUnavailableError(provider string) *ProviderError {
	return NewRetryableProviderError(provider, ErrProviderUnavailable)
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider %s: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// Is makes every ProviderError match ErrProviderFailed.
func (e *ProviderError) Is(target error) bool {
	return target == ErrProviderFailed
}

// SearchError is the invocation-level failure of a sweep. It records the date
// pair whose quote failed and wraps the underlying cause.
type SearchError struct {
	Triple SearchTriple
	Err    error
}

func (e *SearchError) Error() string {
	return fmt.Sprintf("search aborted at %s/%s: %v",
		e.Triple.OutboundDate.Format(DateLayout),
		e.Triple.InboundDate.Format(DateLayout),
		e.Err)
}

func (e *SearchError) Unwrap() error {
	return e.Err
}

// WrapInvalidRequest formats a message and wraps it with ErrInvalidRequest.
func WrapInvalidRequest(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidRequest, fmt.Sprintf(format, args...))
}

// IsInvalidRequest reports whether err is an invalid request error.
func IsInvalidRequest(err error) bool {
	return errors.Is(err, ErrInvalidRequest)
}

// IsProviderFailure reports whether err originated from a quoting provider.
func IsProviderFailure(err error) bool {
	return errors.Is(err, ErrProviderFailed)
}

// IsProviderTimeout reports whether err is a provider timeout.
func IsProviderTimeout(err error) bool {
	return errors.Is(err, ErrProviderTimeout)
}

// IsRateLimited reports whether err is a provider rate limit rejection.
func IsRateLimited(err error) bool {
	return errors.Is(err, ErrRateLimited)
}

// IsRetryable reports whether err is a ProviderError marked retryable.
func IsRetryable(err error) bool {
	var pe *ProviderError
	return errors.As(err, &pe) && pe.Retryable
}
