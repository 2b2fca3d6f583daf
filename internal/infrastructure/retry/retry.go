// Package retry runs an operation again with exponential backoff when it fails
// with an error the caller deems transient.
package retry

import (
	"context"
	"errors"
	"math/rand"
	"time"
)

// Config holds the retry policy.
type Config struct {
	// MaxAttempts bounds the number of calls, the first one included.
	MaxAttempts int

	// InitialDelay is the wait before the first retry.
	InitialDelay time.Duration

	// MaxDelay caps every wait, including server-provided ones.
	MaxDelay time.Duration

	// Multiplier grows the delay after each retry.
	Multiplier float64

	// JitterFactor adds up to this fraction of the delay at random (0.0 to 1.0).
	JitterFactor float64

	// RetryIf decides whether an error is transient. Nil retries every error
	// except those wrapped with NewPermanent.
	RetryIf func(error) bool

	// OnRetry, when set, is called before each wait with the failed attempt number.
	OnRetry func(attempt int, err error, wait time.Duration)
}

// DefaultConfig provides general-purpose defaults.
var DefaultConfig = Config{
	MaxAttempts:  3,
	InitialDelay: 100 * time.Millisecond,
	MaxDelay:     2 * time.Second,
	Multiplier:   2.0,
	JitterFactor: 0.1,
}

// ProviderConfig suits calls to the availability API, which rate-limits bursts.
var ProviderConfig = Config{
	MaxAttempts:  3,
	InitialDelay: 250 * time.Millisecond,
	MaxDelay:     3 * time.Second,
	Multiplier:   2.0,
	JitterFactor: 0.2,
}

// RetryAfter is implemented by errors that carry a server-requested wait,
// such as an HTTP 429 with a Retry-After header.
type RetryAfter interface {
	RetryAfter() time.Duration
}

// Do runs fn until it succeeds, the policy gives up or ctx is done.
func Do(ctx context.Context, fn func() error, cfg Config) error {
	_, err := DoWithResult(ctx, func() (struct{}, error) {
		return struct{}{}, fn()
	}, cfg)
	return err
}

// DoWithResult runs fn until it succeeds, the policy gives up or ctx is done.
// It returns the last result and error.
func DoWithResult[T any](ctx context.Context, fn func() (T, error), cfg Config) (T, error) {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 1
	}

	var result T
	var lastErr error
	delay := cfg.InitialDelay

	for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			if lastErr != nil {
				return result, lastErr
			}
			return result, err
		}

		result, lastErr = fn()
		if lastErr == nil {
			return result, nil
		}

		if !cfg.retryable(lastErr) || attempt == cfg.MaxAttempts {
			return result, lastErr
		}

		wait := cfg.waitFor(lastErr, delay)
		if cfg.OnRetry != nil {
			cfg.OnRetry(attempt, lastErr, wait)
		}

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return result, lastErr
		case <-timer.C:
		}

		delay = time.Duration(float64(delay) * cfg.Multiplier)
	}

	return result, lastErr
}

func (c Config) retryable(err error) bool {
	if IsPermanent(err) {
		return false
	}
	if c.RetryIf != nil {
		return c.RetryIf(err)
	}
	return true
}

// waitFor honors a server-requested wait, otherwise applies jitter to delay.
func (c Config) waitFor(err error, delay time.Duration) time.Duration {
	var ra RetryAfter
	if errors.As(err, &ra) && ra.RetryAfter() > 0 {
		return capDelay(ra.RetryAfter(), c.MaxDelay)
	}
	return calculateSleepTime(delay, c.MaxDelay, c.JitterFactor)
}

func calculateSleepTime(delay, maxDelay time.Duration, jitterFactor float64) time.Duration {
	jitter := time.Duration(rand.Float64() * float64(delay) * jitterFactor)
	return capDelay(delay+jitter, maxDelay)
}

func capDelay(d, maxDelay time.Duration) time.Duration {
	if maxDelay > 0 && d > maxDelay {
		return maxDelay
	}
	return d
}

// Permanent marks an error that must not be retried.
type Permanent struct {
	Err error
}

func (p *Permanent) Error() string {
	if p.Err == nil {
		return "permanent error"
	}
	return p.Err.Error()
}

func (p *Permanent) Unwrap() error {
	return p.Err
}

// NewPermanent wraps err so it is never retried. NewPermanent(nil) is nil.
func NewPermanent(err error) error {
	if err == nil {
		return nil
	}
	return &Permanent{Err: err}
}

// IsPermanent reports whether err is marked permanent.
func IsPermanent(err error) bool {
	var permanent *Permanent
	return errors.As(err, &permanent)
}

// WithRetryIf returns a copy of the config with the given predicate.
func (c Config) WithRetryIf(fn func(error) bool) Config {
	c.RetryIf = fn
	return c
}

// WithOnRetry returns a copy of the config with the given hook.
func (c Config) WithOnRetry(fn func(attempt int, err error, wait time.Duration)) Config {
	c.OnRetry = fn
	return c
}

// WithMaxAttempts returns a copy of the config with the given attempt bound.
func (c Config) WithMaxAttempts(n int) Config {
	c.MaxAttempts = n
	return c
}
