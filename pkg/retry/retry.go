// Package retry runs an operation under a bounded attempt budget with
// exponential backoff.
package retry

import (
	"context"
	"errors"
	"time"
)

// ErrAttemptsExhausted wraps the last error once every attempt has failed.
var ErrAttemptsExhausted = errors.New("retry attempts exhausted")

type Policy struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}

// DefaultPolicy retries rate-limited model calls: three attempts, starting at
// five seconds and capped at a minute.
var DefaultPolicy = Policy{
	MaxAttempts:  3,
	InitialDelay: 5 * time.Second,
	MaxDelay:     time.Minute,
	Multiplier:   2,
}

// Delay returns the wait before the given retry (1-based).
func (p Policy) Delay(retry int) time.Duration {
	multiplier := p.Multiplier
	if multiplier < 1 {
		multiplier = 2
	}
	delay := p.InitialDelay
	for i := 1; i < retry; i++ {
		delay = time.Duration(float64(delay) * multiplier)
		if p.MaxDelay > 0 && delay >= p.MaxDelay {
			return p.MaxDelay
		}
	}
	if p.MaxDelay > 0 && delay > p.MaxDelay {
		return p.MaxDelay
	}
	return delay
}

func (p Policy) attempts() int {
	if p.MaxAttempts < 1 {
		return 1
	}
	return p.MaxAttempts
}

// Do calls fn until it succeeds, returns an error retryable rejects, the
// attempt budget runs out or ctx is done. fn receives the 1-based attempt
// number. A nil retryable retries every error.
func Do(ctx context.Context, p Policy, retryable func(error) bool, fn func(ctx context.Context, attempt int) error) error {
	var lastErr error
	for attempt := 1; attempt <= p.attempts(); attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		lastErr = fn(ctx, attempt)
		if lastErr == nil {
			return nil
		}
		if retryable != nil && !retryable(lastErr) {
			return lastErr
		}
		if attempt == p.attempts() {
			break
		}

		timer := time.NewTimer(p.Delay(attempt))
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
	return errors.Join(ErrAttemptsExhausted, lastErr)
}
