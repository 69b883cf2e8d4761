package services

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"time"

	"github.com/username/fincast/backend/src/logger"
)

// RetryConfig configures retry behavior with exponential backoff.
type RetryConfig struct {
	MaxRetries     int
	InitialDelay   time.Duration
	MaxDelay       time.Duration
	BackoffFactor  float64
	JitterFraction float64 // 0.0 to 1.0
}

// DefaultUpstreamRetryConfig is used for the forecast and advice calls.
var DefaultUpstreamRetryConfig = RetryConfig{
	MaxRetries:     1,
	InitialDelay:   500 * time.Millisecond,
	MaxDelay:       5 * time.Second,
	BackoffFactor:  2.0,
	JitterFraction: 0.2,
}

// WithRetries returns a copy of cfg with MaxRetries replaced.
func (cfg RetryConfig) WithRetries(n int) RetryConfig {
	if n < 0 {
		n = 0
	}
	cfg.MaxRetries = n
	return cfg
}

// WithRetry executes fn with exponential backoff + jitter.
// Only UpstreamErrors marked Retryable are retried; anything else, a cancelled
// context, or running out of attempts returns the last error.
func WithRetry[T any](ctx context.Context, cfg RetryConfig, fn func(ctx context.Context) (T, error)) (T, error) {
	var lastErr error
	var zero T

	for attempt := 0; attempt <= cfg.MaxRetries; attempt++ {
		result, err := fn(ctx)
		if err == nil {
			return result, nil
		}
		lastErr = err

		var upErr *UpstreamError
		if !errors.As(err, &upErr) || !upErr.Retryable {
			return zero, err
		}
		if ctx.Err() != nil {
			return zero, err
		}
		if attempt >= cfg.MaxRetries {
			break
		}

		delay := float64(cfg.InitialDelay) * math.Pow(cfg.BackoffFactor, float64(attempt))
		if delay > float64(cfg.MaxDelay) {
			delay = float64(cfg.MaxDelay)
		}
		if cfg.JitterFraction > 0 {
			delay += delay * cfg.JitterFraction * (rand.Float64()*2 - 1)
			if delay < 0 {
				delay = float64(cfg.InitialDelay)
			}
		}

		logger.FromContext(ctx).Warn("Retrying upstream call", "service", upErr.Service, "attempt", attempt+1, "delay", time.Duration(delay), "error", err)

		select {
		case <-ctx.Done():
			return zero, err
		case <-time.After(time.Duration(delay)):
		}
	}

	return zero, lastErr
}
