package api

import (
	"context"
	"time"

	"github.com/tailorly/seam/internal/metrics"
)

// RetryConfig defines retry behavior for network operations. The delay is
// fixed, not exponential.
type RetryConfig struct {
	MaxAttempts int
	Delay       time.Duration
}

// DefaultRetryConfig provides sensible defaults: at most two retries beyond
// the first attempt.
var DefaultRetryConfig = RetryConfig{
	MaxAttempts: 3,
	Delay:       2 * time.Second,
}

func (c RetryConfig) withDefaults() RetryConfig {
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = DefaultRetryConfig.MaxAttempts
	}
	if c.Delay <= 0 {
		c.Delay = DefaultRetryConfig.Delay
	}
	return c
}

// Do executes op with bounded retry. Only recoverable failures (network
// unreachable, transient server errors) consume retry budget; anything else
// propagates immediately. Do holds no state between calls, so a single
// config is safe to share across concurrent callers.
func Do[T any](ctx context.Context, cfg RetryConfig, op func(ctx context.Context) (T, error)) (T, error) {
	cfg = cfg.withDefaults()

	var zero T
	var lastErr error

	for attempt := 0; attempt < cfg.MaxAttempts; attempt++ {
		result, err := op(ctx)
		if err == nil {
			return result, nil
		}

		lastErr = err

		if !IsRecoverable(err) {
			return zero, err
		}

		if attempt == cfg.MaxAttempts-1 {
			break
		}

		metrics.RetriesTotal.Inc()
		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		case <-time.After(cfg.Delay):
		}
	}

	return zero, lastErr
}
