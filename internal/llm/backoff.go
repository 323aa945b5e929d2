// ABOUTME: Backoff schedule for retried Groq completions
// ABOUTME: Doubles per attempt with jitter, capped at thirty seconds
package llm

import (
	"math/rand/v2"
	"time"
)

const (
	backoffCeiling  = 30 * time.Second
	maxBackoffShift = 30
)

// retryBackoff returns how long to wait before the given retry attempt.
// The delay doubles each attempt from base and carries up to 25% jitter
// in either direction so clients sharing a key do not retry in lockstep.
func retryBackoff(base time.Duration, attempt int) time.Duration {
	if attempt <= 0 {
		return 0
	}
	if attempt > maxBackoffShift {
		attempt = maxBackoffShift
	}

	delay := base << uint(attempt)
	if delay > backoffCeiling || delay <= 0 {
		delay = backoffCeiling
	}

	jitter := time.Duration(rand.Int64N(int64(delay)/2)) - delay/4
	return delay + jitter
}
