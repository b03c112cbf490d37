package ollama

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// RetryPolicy describes how a fallible generation call is retried.
// The delay doubles after every failed attempt.
type RetryPolicy struct {
	MaxAttempts  int
	InitialDelay time.Duration
}

// DefaultRetryPolicy suits transient load hiccups on a single-node runtime
var DefaultRetryPolicy = RetryPolicy{MaxAttempts: 3, InitialDelay: 2 * time.Second}

// Do runs fn up to MaxAttempts times with exponential backoff between
// attempts. The error from the final attempt is the one surfaced.
// Context cancellation during a backoff sleep aborts the loop.
func (p RetryPolicy) Do(ctx context.Context, fn func(ctx context.Context) (string, error)) (string, error) {
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}
	delay := p.InitialDelay

	var result string
	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		result, err = fn(ctx)
		if err == nil {
			return result, nil
		}
		if attempt == attempts {
			break
		}

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
		delay *= 2
	}
	return "", err
}

// GenerateWithRetry wraps Generate with a retry policy. Any failure kind
// is retried: transient transport issues and runtime load spikes are not
// distinguishable from the outside.
func (c *Client) GenerateWithRetry(ctx context.Context, model, prompt string, opts Options, maxRetries int, initialDelay time.Duration) (string, error) {
	policy := RetryPolicy{MaxAttempts: maxRetries, InitialDelay: initialDelay}
	if policy.MaxAttempts < 1 {
		policy = DefaultRetryPolicy
	}
	if policy.InitialDelay <= 0 {
		policy.InitialDelay = DefaultRetryPolicy.InitialDelay
	}

	attempt := 0
	return policy.Do(ctx, func(ctx context.Context) (string, error) {
		attempt++
		result, err := c.Generate(ctx, model, prompt, opts)
		if err != nil {
			c.log.Warn("generation attempt failed",
				zap.String("model", model),
				zap.Int("attempt", attempt),
				zap.Error(err))
		}
		return result, err
	})
}
