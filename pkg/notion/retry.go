package notion

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/pageforge-io/notion-client/internal/constants"
)

// BackoffStrategy selects the shape of the delay between retry attempts.
type BackoffStrategy int

const (
	// BackoffFixed waits BaseDelay between every attempt.
	BackoffFixed BackoffStrategy = iota

	// BackoffExponential doubles the delay each attempt, capped at MaxDelay.
	BackoffExponential

	// BackoffExponentialJitter doubles the delay each attempt and perturbs it
	// by a random factor in [1-JitterFactor, 1+JitterFactor] to avoid
	// synchronized retry storms.
	BackoffExponentialJitter
)

// String returns the strategy name.
func (s BackoffStrategy) String() string {
	switch s {
	case BackoffFixed:
		return "fixed"
	case BackoffExponential:
		return "exponential"
	case BackoffExponentialJitter:
		return "exponential-jitter"
	default:
		return "unknown"
	}
}

// RetryConfig controls the retry behavior of every API call. A config is
// immutable once constructed and safe to share across concurrent calls.
type RetryConfig struct {
	// Strategy is the backoff shape.
	Strategy BackoffStrategy
	// MaxRetries is the number of retries after the initial attempt.
	MaxRetries int
	// BaseDelay is the delay before the first retry. Must be <= MaxDelay.
	BaseDelay time.Duration
	// MaxDelay caps every computed delay.
	MaxDelay time.Duration
	// JitterFactor in [0, 1] scales the random perturbation applied by
	// jittered strategies.
	JitterFactor float64
	// RespectRetryAfter makes a server-provided Retry-After hint override the
	// computed delay for that attempt.
	RespectRetryAfter bool
}

// DefaultRetryConfig returns the default retry configuration.
func DefaultRetryConfig() *RetryConfig {
	return &RetryConfig{
		Strategy:          BackoffExponentialJitter,
		MaxRetries:        constants.DefaultMaxRetries,
		BaseDelay:         constants.DefaultRetryBaseDelay,
		MaxDelay:          constants.DefaultRetryMaxDelay,
		JitterFactor:      constants.DefaultJitterFactor,
		RespectRetryAfter: true,
	}
}

// growthExponentCap bounds 2^n to avoid duration overflow.
const growthExponentCap = 30

// Delay computes the backoff delay for attempt index n (starting at 0). The
// result never exceeds MaxDelay and is never negative.
func (c *RetryConfig) Delay(attempt int) time.Duration {
	if attempt < 0 {
		attempt = 0
	}

	delay := c.BaseDelay

	if c.Strategy != BackoffFixed {
		exponent := attempt
		if exponent > growthExponentCap {
			exponent = growthExponentCap
		}

		growth := math.Pow(constants.BackoffGrowthBase, float64(exponent))
		delay = c.BaseDelay * time.Duration(growth)
	}

	if delay < 0 || delay > c.MaxDelay {
		delay = c.MaxDelay
	}

	if c.Strategy == BackoffExponentialJitter && c.JitterFactor > 0 {
		jitter := math.Min(math.Max(c.JitterFactor, 0), 1)
		factor := 1 - jitter + 2*jitter*rand.Float64() // #nosec G404 -- jitter does not need crypto randomness

		delay = time.Duration(float64(delay) * factor)
		if delay < 0 {
			delay = 0
		}

		if delay > c.MaxDelay {
			delay = c.MaxDelay
		}
	}

	return delay
}

// IsRetryable reports whether a failed attempt may be retried: connection
// failures, rate limiting, and server errors are transient; everything else
// propagates immediately.
func IsRetryable(err error) bool {
	transportErr := &TransportError{}
	if errors.As(err, &transportErr) {
		return true
	}

	apiErr := &APIError{}
	if errors.As(err, &apiErr) {
		return apiErr.Retryable()
	}

	return false
}

// RetryAfterHint extracts the server-provided Retry-After duration from an
// error, if the failing response carried one.
func RetryAfterHint(err error) (time.Duration, bool) {
	apiErr := &APIError{}
	if errors.As(err, &apiErr) && apiErr.RetryAfter != nil {
		return *apiErr.RetryAfter, true
	}

	return 0, false
}

// ParseRetryAfter parses a Retry-After header value, accepting both
// delta-seconds and HTTP-date forms. The result is capped at one hour so a
// misbehaving server cannot stall a caller indefinitely.
func ParseRetryAfter(value string) (time.Duration, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, false
	}

	if seconds, err := strconv.Atoi(value); err == nil {
		if seconds <= 0 {
			return 0, false
		}

		return capRetryAfter(time.Duration(seconds) * time.Second), true
	}

	if at, err := http.ParseTime(value); err == nil {
		delay := time.Until(at)
		if delay <= 0 {
			return 0, false
		}

		return capRetryAfter(delay), true
	}

	return 0, false
}

func capRetryAfter(delay time.Duration) time.Duration {
	if delay > constants.MaxRetryAfter {
		return constants.MaxRetryAfter
	}

	return delay
}

// ExecuteWithRetry runs attempt until it succeeds, fails with a non-retryable
// error, or the retry budget is exhausted. Between retryable failures it
// waits for the configured backoff delay (or the server's Retry-After hint
// when RespectRetryAfter is set), aborting immediately if ctx is canceled.
//
// When the budget is exhausted on a rate-limited failure the returned error
// is a *RateLimitError carrying the last Retry-After hint; for any other
// retryable failure the last underlying error is returned unchanged.
func ExecuteWithRetry[T any](ctx context.Context, config *RetryConfig, attempt func(context.Context) (T, error)) (T, error) {
	var zero T

	if config == nil {
		config = DefaultRetryConfig()
	}

	if err := ctx.Err(); err != nil {
		return zero, err
	}

	var lastErr error

	for n := 0; ; n++ {
		result, err := attempt(ctx)
		if err == nil {
			return result, nil
		}

		if !IsRetryable(err) {
			return zero, err
		}

		lastErr = err

		if n >= config.MaxRetries {
			break
		}

		delay := config.Delay(n)

		if config.RespectRetryAfter {
			if hint, ok := RetryAfterHint(err); ok {
				delay = hint
			}
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()

			return zero, ctx.Err()
		case <-timer.C:
		}
	}

	apiErr := &APIError{}
	if errors.As(lastErr, &apiErr) && apiErr.Status == http.StatusTooManyRequests {
		rateErr := &RateLimitError{
			Attempts: config.MaxRetries + 1,
			Err:      lastErr,
		}

		if apiErr.RetryAfter != nil {
			rateErr.RetryAfter = *apiErr.RetryAfter
		}

		return zero, rateErr
	}

	return zero, lastErr
}
