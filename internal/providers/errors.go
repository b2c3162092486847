package providers

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/codeGROOVE-dev/retry"
)

// AuthError indicates the provider rejected the API credential.
type AuthError struct {
	Provider string
	Message  string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("%s authentication error: %s", e.Provider, e.Message)
}

// RateLimitError indicates the provider throttled the request and retries
// were exhausted.
type RateLimitError struct {
	Provider string
}

func (e *RateLimitError) Error() string {
	return e.Provider + " rate limited"
}

// TimeoutError indicates the request timed out or the run deadline expired.
type TimeoutError struct {
	Provider string
}

func (e *TimeoutError) Error() string {
	return e.Provider + " request timed out"
}

// ModelError indicates the model returned unusable output.
type ModelError struct {
	Provider string
	Message  string
}

func (e *ModelError) Error() string {
	return fmt.Sprintf("%s model error: %s", e.Provider, e.Message)
}

// IsAuthError checks if an error is an authentication error.
func IsAuthError(err error) bool {
	var e *AuthError
	return errors.As(err, &e)
}

// IsRateLimitError checks if an error is a rate limit error.
func IsRateLimitError(err error) bool {
	var e *RateLimitError
	return errors.As(err, &e)
}

// IsTimeoutError checks if an error is a timeout error.
func IsTimeoutError(err error) bool {
	var e *TimeoutError
	return errors.As(err, &e)
}

// IsModelError checks if an error is a model output error.
func IsModelError(err error) bool {
	var e *ModelError
	return errors.As(err, &e)
}

// transientError marks a retryable server-side failure (5xx, overloaded).
type transientError struct {
	provider string
	status   int
}

func (e *transientError) Error() string {
	return fmt.Sprintf("%s server error (status %d)", e.provider, e.status)
}

func isTransient(err error) bool {
	var e *transientError
	return errors.As(err, &e)
}

// timeoutish reports whether err is a deadline or network timeout.
func timeoutish(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var nerr net.Error
	return errors.As(err, &nerr) && nerr.Timeout()
}

const (
	maxAttempts       = 3
	initialRetryDelay = time.Second
	maxRetryDelay     = 8 * time.Second
)

// retryTransient runs fn, retrying rate-limit and transient server errors
// with exponential backoff. Every other error surfaces immediately.
func retryTransient(ctx context.Context, fn func() error) error {
	return retry.Do(
		fn,
		retry.Context(ctx),
		retry.Attempts(maxAttempts),
		retry.Delay(initialRetryDelay),
		retry.MaxDelay(maxRetryDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool {
			return IsRateLimitError(err) || isTransient(err)
		}),
	)
}
