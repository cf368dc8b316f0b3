package llm

import (
	"context"
	"math/rand"
	"strings"
	"time"
)

// Retry policy for rate-limited capability calls. Only rate-limit signals
// are retried; any other failure is returned to the caller immediately so
// its deterministic fallback can take over.
const (
	// DefaultMaxAttempts is the total number of attempts, including the first.
	DefaultMaxAttempts = 3
	// DefaultBaseDelay is the backoff base; attempt n waits base * 2^n plus jitter.
	DefaultBaseDelay = 2 * time.Second
)

// IsRateLimit reports whether an error looks like an upstream rate-limit
// signal. The Gemini SDK surfaces these as HTTP 429 / RESOURCE_EXHAUSTED.
func IsRateLimit(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "429") ||
		strings.Contains(msg, "RESOURCE_EXHAUSTED") ||
		strings.Contains(msg, "rate limit")
}

// WithRetry runs fn up to maxAttempts times, backing off exponentially with
// random jitter between attempts. Only rate-limit errors trigger a retry;
// other errors, context cancellation, and retry exhaustion return the last
// error unchanged.
func WithRetry(ctx context.Context, maxAttempts int, baseDelay time.Duration, fn func() (string, error)) (string, error) {
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		result, err := fn()
		if err == nil {
			return result, nil
		}
		lastErr = err

		if !IsRateLimit(err) || attempt == maxAttempts-1 {
			return "", lastErr
		}

		delay := baseDelay*(1<<attempt) + time.Duration(rand.Float64()*float64(time.Second))
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}

	return "", lastErr
}
